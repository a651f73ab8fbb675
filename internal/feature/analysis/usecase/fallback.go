package usecase

import (
	"context"
	"log/slog"
	"time"

	"stock_analysis/internal/feature/analysis/domain/entity"
	"stock_analysis/internal/shared/apperror"
)

// LLMGateway は外部のマルチモーダルLLMを1回呼び出すインターフェースです。
// リトライは行わず、失敗はそのまま返します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type LLMGateway interface {
	Generate(ctx context.Context, apiKey, prompt string, image *entity.EncodedImage) (string, error)
}

// Metrics は分析処理の計測値を記録するインターフェースです。
type Metrics interface {
	ObserveAttempt(section string, success bool)
	ObserveSection(section string, success bool, elapsed time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) ObserveAttempt(string, bool) {}
func (noopMetrics) ObserveSection(string, bool, time.Duration) {}

// FallbackExecutor はAPIキーを順番に試し、最初に成功した結果を返します。
type FallbackExecutor struct {
	gateway LLMGateway
	metrics Metrics
}

// NewFallbackExecutor はFallbackExecutorの新しいインスタンスを生成します。
// metrics が nil の場合は計測しません。
func NewFallbackExecutor(gateway LLMGateway, metrics Metrics) *FallbackExecutor {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &FallbackExecutor{gateway: gateway, metrics: metrics}
}

// Execute はキー列を先頭から1回ずつ試します。
//
// 成功した時点で残りのキーは使いません。失敗の種類による分岐はなく、
// 待機もしません。全キーが失敗した場合は最後のエラーを分類した
// ALL_PROVIDERS_EXHAUSTED エラーを返します。
func (f *FallbackExecutor) Execute(ctx context.Context, chain entity.CredentialChain, label, prompt string, image *entity.EncodedImage) (string, error) {
	total := chain.Len()
	if total == 0 {
		return "", apperror.New(apperror.KindProvidersExhausted, "no API keys configured")
	}

	var lastErr error
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			// リクエストが打ち切られた後は残りのキーを消費しない
			lastErr = apperror.Wrap(apperror.KindTimeout, "request cancelled", err)
			break
		}

		slog.DebugContext(ctx, "LLM呼び出しを試行", "section", label, "key_index", i+1, "keys", total)
		text, err := f.gateway.Generate(ctx, chain.Key(i), prompt, image)
		if err == nil {
			f.metrics.ObserveAttempt(label, true)
			slog.InfoContext(ctx, "LLM呼び出しに成功", "section", label, "key_index", i+1, "keys", total)
			return text, nil
		}

		f.metrics.ObserveAttempt(label, false)
		slog.WarnContext(ctx, "LLM呼び出しに失敗",
			"section", label,
			"key_index", i+1,
			"keys", total,
			"kind", apperror.KindOf(err),
			"error", err,
		)
		lastErr = err
	}

	return "", apperror.Wrap(apperror.KindProvidersExhausted, apperror.Classify(lastErr), lastErr)
}
