// Package handler はpopularstocksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_analysis/internal/api"
	"stock_analysis/internal/feature/popularstocks/domain/entity"
	"stock_analysis/internal/shared/apperror"
)

// StockUsecase は人気銘柄に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type StockUsecase interface {
	ListPopularStocks(ctx context.Context) ([]entity.PopularStock, error)
}

// StockHandler は人気銘柄に関するHTTPリクエストを処理します。
type StockHandler struct {
	uc StockUsecase
}

// NewStockHandler は新しい StockHandler を作成します。
func NewStockHandler(uc StockUsecase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List は人気銘柄の一覧を返します。
//
// エンドポイント: GET /api/popular-stocks
func (h *StockHandler) List(c *gin.Context) {
	stocks, err := h.uc.ListPopularStocks(c.Request.Context())
	if err != nil {
		slog.Error("人気銘柄の取得に失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: apperror.MsgGeneric})
		return
	}
	out := make([]api.PopularStock, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, api.PopularStock{Symbol: s.Symbol, Exchange: s.Exchange, Name: s.Name})
	}
	c.JSON(http.StatusOK, api.PopularStocksResponse{PopularStocks: out})
}
