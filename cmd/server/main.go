package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stock_analysis/internal/app/di"
	"stock_analysis/internal/app/router"
	"stock_analysis/internal/platform/config"
	infradb "stock_analysis/internal/platform/db"
	"stock_analysis/internal/platform/logging"
	"stock_analysis/internal/platform/metrics"
	infraredis "stock_analysis/internal/platform/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .envを読み込む（存在しなくてもよい）
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	logger := logging.NewLogger(os.Stdout)

	serverCfg := config.LoadServerConfig()
	if err := config.Validate(serverCfg); err != nil {
		return err
	}
	if serverCfg.GinMode != "" {
		gin.SetMode(serverCfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db（任意）
	var db *gorm.DB
	if dbCfg := infradb.LoadConfigFromEnv(); dbCfg.Enabled() {
		opened, err := infradb.Open(dbCfg)
		if err != nil {
			return err
		}
		db = opened
		defer func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}()
	}

	// Redis（任意）
	var rdb *redisv9.Client
	if redisCfg := infraredis.LoadConfig(); redisCfg.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, redisCfg); err != nil {
			logger.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					logger.Error("Failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Metrics
	m := metrics.NewPrometheusMetrics(prometheus.DefaultRegisterer)

	// Repository / Usecase / Handler
	stockRepo, err := di.NewStockRepository(ctx, db, rdb, config.Duration("POPULAR_STOCKS_CACHE_TTL", 0))
	if err != nil {
		return err
	}
	charts, err := di.NewChartFetcher()
	if err != nil {
		return err
	}
	analysisH, err := di.NewAnalysisHandler(m, charts)
	if err != nil {
		return err
	}
	stockH := di.NewStockHandler(stockRepo)

	// ルータ生成
	r := router.NewRouter(analysisH, stockH, promhttp.Handler())

	srv := &http.Server{
		Addr:              ":" + serverCfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// 4セクションの生成を待つため書き込みタイムアウトは長め
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
