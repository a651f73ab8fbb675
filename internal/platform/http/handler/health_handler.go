// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_analysis/internal/api"
)

// ヘルスチェックのレスポンス内容
const (
	HealthStatus  = "active"
	HealthMessage = "Stock Analysis API is running"
)

// Health はサービスヘルスチェック用の /api/health エンドポイントを処理します。
// 依存サービスの状態には関係なく常に成功を返し、キャッシュを防止します。
func Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, api.HealthResponse{Status: HealthStatus, Message: HealthMessage})
	}
}
