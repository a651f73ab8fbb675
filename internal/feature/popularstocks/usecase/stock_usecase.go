// Package usecase implements the business logic for the popular stocks catalog.
package usecase

import (
	"context"

	"stock_analysis/internal/feature/popularstocks/domain/entity"
)

// StockRepository abstracts where the catalog comes from.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type StockRepository interface {
	ListActive(ctx context.Context) ([]entity.PopularStock, error)
}

// StockUsecase provides the popular stocks catalog.
type StockUsecase struct {
	repo StockRepository
}

// NewStockUsecase creates a new StockUsecase with the given repository.
func NewStockUsecase(r StockRepository) *StockUsecase {
	return &StockUsecase{repo: r}
}

// ListPopularStocks returns the active entries in display order.
func (u *StockUsecase) ListPopularStocks(ctx context.Context) ([]entity.PopularStock, error) {
	return u.repo.ListActive(ctx)
}
