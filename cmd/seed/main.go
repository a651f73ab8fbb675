// Command seed は人気銘柄リストをDBへ投入し、キャッシュを無効化します。
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"stock_analysis/internal/feature/popularstocks/adapters"
	"stock_analysis/internal/feature/popularstocks/domain/entity"
	"stock_analysis/internal/platform/cache"
	"stock_analysis/internal/platform/config"
	infradb "stock_analysis/internal/platform/db"
	"stock_analysis/internal/platform/logging"
	infraredis "stock_analysis/internal/platform/redis"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(os.Stdout)

	dbCfg := infradb.LoadConfigFromEnv()
	if !dbCfg.Enabled() {
		logger.Error("DB_DRIVER is not set")
		os.Exit(1)
	}
	// シードではマイグレーションを常に行う
	dbCfg.AutoMigrate = true
	db, err := infradb.Open(dbCfg)
	if err != nil {
		logger.Error("failed to open db", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	repo := adapters.NewStockRepository(db)
	if err := repo.Seed(ctx, entity.DefaultCatalog()); err != nil {
		logger.Error("failed to seed popular stocks", "error", err)
		os.Exit(1)
	}

	if redisCfg := infraredis.LoadConfig(); redisCfg.Enabled() {
		rdb, err := infraredis.NewRedisClient(ctx, redisCfg)
		if err != nil {
			logger.Warn("Redis unavailable. Cache not invalidated.")
		} else {
			defer func() { _ = rdb.Close() }()
			if err := cache.NewCachingStockRepository(rdb, 0, repo, cache.DefaultNamespace).Invalidate(ctx); err != nil {
				logger.Warn("failed to invalidate cache", "error", err)
			}
		}
	}
	logger.Info("seed ok")
}
