// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"

	"stock_analysis/internal/feature/analysis/usecase"
	"stock_analysis/internal/platform/config"
	"stock_analysis/internal/platform/externalapi/chartimg"
	infrahttp "stock_analysis/internal/platform/http"
)

// NewChartFetcher creates a rate-limited Chart-Img client for the legacy endpoint.
// It returns nil when CHART_IMG_API_KEY is not set; the legacy endpoint then
// only works with caller-supplied image_data.
func NewChartFetcher() (usecase.ChartFetcher, error) {
	cfg := chartimg.LoadConfig()
	if !cfg.Enabled() {
		slog.Warn("CHART_IMG_API_KEY is not set. Legacy analysis requires image_data.")
		return nil, nil
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return chartimg.NewChartImg(cfg, httpClient, nil), nil
}
