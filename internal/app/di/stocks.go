package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stock_analysis/internal/feature/popularstocks/adapters"
	"stock_analysis/internal/feature/popularstocks/domain/entity"
	"stock_analysis/internal/feature/popularstocks/transport/handler"
	"stock_analysis/internal/feature/popularstocks/usecase"
	"stock_analysis/internal/platform/cache"
)

// NewStockRepository creates a StockRepository implementation.
// Without a database it returns the built-in catalog. With a database it seeds
// the catalog and, if Redis is available, wraps the repository with a cache.
func NewStockRepository(ctx context.Context, db *gorm.DB, rdb *redis.Client, ttl time.Duration) (usecase.StockRepository, error) {
	if db == nil {
		return adapters.NewStaticStockRepository(), nil
	}

	repo := adapters.NewStockRepository(db)
	if err := repo.Seed(ctx, entity.DefaultCatalog()); err != nil {
		return nil, err
	}

	cached := cache.NewCachingStockRepository(rdb, ttl, repo, cache.DefaultNamespace)
	if err := cached.Invalidate(ctx); err != nil {
		slog.Warn("人気銘柄キャッシュの無効化に失敗", "error", err)
	}
	return cached, nil
}

// NewStockHandler wires a repository into the popular-stocks handler.
func NewStockHandler(repo usecase.StockRepository) *handler.StockHandler {
	return handler.NewStockHandler(usecase.NewStockUsecase(repo))
}
