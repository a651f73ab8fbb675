// Package router はHTTPルーティングとミドルウェアチェーンを組み立てます。
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	analysishandler "stock_analysis/internal/feature/analysis/transport/handler"
	stockhandler "stock_analysis/internal/feature/popularstocks/transport/handler"
	platformhandler "stock_analysis/internal/platform/http/handler"
)

const serviceName = "stock-analysis-api"

// NewRouter はgin.Engineを生成し、すべてのルートを登録します。
// metrics が nil の場合 /metrics は公開しません。
func NewRouter(analysis *analysishandler.AnalysisHandler, stocks *stockhandler.StockHandler, metrics http.Handler) *gin.Engine {
	r := gin.New()

	r.Use(
		RequestID(),
		otelgin.Middleware(serviceName),
		AccessLog(nil),
		Recovery(),
		cors.New(corsConfig()),
	)

	// 導通確認用
	r.GET("/api/health", platformhandler.Health)
	r.HEAD("/api/health", platformhandler.Health)
	r.OPTIONS("/api/health", platformhandler.Health)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/popular-stocks", stocks.List)
		apiGroup.POST("/upload-image", analysis.UploadImage)
		apiGroup.POST("/analyze-stock", analysis.AnalyzeStock)
		// 後方互換用
		apiGroup.POST("/analyze-stock-legacy", analysis.AnalyzeStockLegacy)
	}

	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	return r
}

// corsConfig はすべてのオリジンを許可し、プリフライトに200を返します。
func corsConfig() cors.Config {
	return cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:              []string{"*"},
		ExposeHeaders:             []string{RequestIDHeader},
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}
}
