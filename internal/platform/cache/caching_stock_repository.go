// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_analysis/internal/feature/popularstocks/domain/entity"
	"stock_analysis/internal/feature/popularstocks/usecase"
)

// DefaultNamespace is the key prefix used when none is given.
const DefaultNamespace = "popular_stocks"

// CachingStockRepository decorates a StockRepository with Redis caching.
// A nil client disables caching and every call goes to the inner repository.
type CachingStockRepository struct {
	inner     usecase.StockRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	now       func() time.Time
}

var _ usecase.StockRepository = (*CachingStockRepository)(nil)

// NewCachingStockRepository decorates a StockRepository with Redis caching.
// If ttl is 0 the entry lives until the next daily refresh (see TimeUntilNextRefresh).
// If namespace is empty, it uses DefaultNamespace.
func NewCachingStockRepository(rdb *redis.Client, ttl time.Duration, inner usecase.StockRepository, namespace string) *CachingStockRepository {
	if ttl < 0 {
		ttl = 0
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &CachingStockRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: safe(namespace),
		now:       time.Now,
	}
}

// ListActive returns the catalog from cache, falling back to the inner repository.
func (c *CachingStockRepository) ListActive(ctx context.Context) ([]entity.PopularStock, error) {
	if c.rdb == nil {
		return c.inner.ListActive(ctx)
	}

	key := c.cacheKey()

	// 1) キャッシュ確認
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.PopularStock
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// 壊れたエントリは削除
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) 内部リポジトリへフォールバック
	out, err := c.inner.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	// 3) キャッシュへ保存（ベストエフォート）
	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.expiration()).Err(); err != nil {
			slog.Warn("人気銘柄キャッシュの保存に失敗", "key", key, "error", err)
		}
	}

	return out, nil
}

// Invalidate deletes every entry under the namespace. Call it after the
// underlying catalog has been reseeded.
func (c *CachingStockRepository) Invalidate(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.deleteByPattern(ctx, c.namespace+":*")
}

func (c *CachingStockRepository) expiration() time.Duration {
	if c.ttl > 0 {
		return c.ttl
	}
	return TimeUntilNextRefresh(c.now())
}

func (c *CachingStockRepository) cacheKey() string {
	return c.namespace + ":active"
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingStockRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
