package di

import (
	"fmt"
	"log/slog"

	"stock_analysis/internal/feature/analysis/adapters/gemini"
	"stock_analysis/internal/feature/analysis/transport/handler"
	"stock_analysis/internal/feature/analysis/usecase"
	"stock_analysis/internal/platform/config"
	infrahttp "stock_analysis/internal/platform/http"
)

// NewAnalysisHandler wires the Gemini gateway, the fallback executor and the
// analysis usecase into an HTTP handler.
func NewAnalysisHandler(metrics usecase.Metrics, charts usecase.ChartFetcher) (*handler.AnalysisHandler, error) {
	cfg := gemini.LoadConfig()
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid gemini config: %w", err)
	}

	chain := cfg.Chain()
	// キーそのものは出力しない
	slog.Info("LLM credential chain loaded", "keys", chain.Len(), "model", cfg.Model)

	gateway := gemini.NewGateway(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
	executor := usecase.NewFallbackExecutor(gateway, metrics)
	uc := usecase.NewAnalysisUsecase(executor, chain, charts, metrics)
	return handler.NewAnalysisHandler(uc), nil
}
