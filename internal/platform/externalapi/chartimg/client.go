package chartimg

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"stock_analysis/internal/feature/analysis/usecase"
	"stock_analysis/internal/shared/apperror"
	"stock_analysis/internal/shared/ratelimiter"
)

const miniChartPath = "/v1/tradingview/mini-chart"

// ChartImg はChart-Img APIから日足チャート画像を取得するChartFetcher実装です。
type ChartImg struct {
	cfg     Config
	client  *resty.Client
	limiter ratelimiter.RateLimiterInterface
}

// ChartImgがChartFetcherを実装していることをコンパイル時に検証します。
var _ usecase.ChartFetcher = (*ChartImg)(nil)

// NewChartImg は指定された設定とHTTPクライアントでChartImgの新しいインスタンスを生成します。
// limiter が nil の場合は cfg.RatePerMinute から生成します。
func NewChartImg(cfg Config, httpClient *http.Client, limiter ratelimiter.RateLimiterInterface) *ChartImg {
	client := resty.NewWithClient(httpClient).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "image/*")
	if limiter == nil {
		limiter = ratelimiter.NewRateLimiter("chart-img", cfg.RatePerMinute, time.Minute)
	}
	return &ChartImg{cfg: cfg, client: client, limiter: limiter}
}

// FetchChart は EXCHANGE:SYMBOL の日足チャート（800x400, dark）を取得します。
// 200以外のレスポンスや通信エラーは CHART_FETCH_FAILURE になります。
func (c *ChartImg) FetchChart(ctx context.Context, symbol, exchange string) ([]byte, string, error) {
	fullSymbol := fmt.Sprintf("%s:%s", strings.ToUpper(exchange), strings.ToUpper(symbol))

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", apperror.Wrap(apperror.KindChartFetchFailure, "rate limiter wait aborted", err)
	}

	slog.Info("チャート画像を取得", "symbol", fullSymbol)

	res, err := c.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", c.cfg.APIKey).
		SetQueryParams(map[string]string{
			"symbol":   fullSymbol,
			"interval": "1D",
			"width":    "800",
			"height":   "400",
			"theme":    "dark",
		}).
		Get(miniChartPath)
	if err != nil {
		return nil, "", apperror.Wrap(apperror.KindChartFetchFailure, "chart request failed", err)
	}

	if res.StatusCode() != http.StatusOK {
		slog.Warn("チャートAPIがエラーを返しました", "symbol", fullSymbol, "status", res.StatusCode(), "body", truncate(res.String(), 200))
		return nil, "", apperror.New(apperror.KindChartFetchFailure, fmt.Sprintf("chart-img http %d", res.StatusCode()))
	}

	body := res.Body()
	if len(body) == 0 {
		return nil, "", apperror.New(apperror.KindChartFetchFailure, "chart-img returned an empty body")
	}
	return body, res.Header().Get("Content-Type"), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
