package service

import (
	"context"
	"fmt"
	"time"

	"gcc-market-sync/pkg/common"
	redisPkg "gcc-market-sync/pkg/redis"
)

// Cache is the pipeline's view of the derived-data cache. Absence of a
// cache degrades to the no-op implementation; callers treat every error
// as non-fatal.
type Cache interface {
	// FlushAll invalidates the cache wholesale after a refresh cycle.
	FlushAll(ctx context.Context) error
	// SetLastPrice records the most recent quote for a ticker.
	SetLastPrice(ctx context.Context, ticker string, price float64, at time.Time) error
}

// redisCache backs Cache with Redis.
type redisCache struct {
	client *redisPkg.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed cache with the given last-price
// TTL.
func NewRedisCache(client *redisPkg.Client, ttl time.Duration) Cache {
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) FlushAll(ctx context.Context) error {
	return c.client.FlushAll(ctx).Err()
}

func (c *redisCache) SetLastPrice(ctx context.Context, ticker string, price float64, at time.Time) error {
	key := fmt.Sprintf(common.RedisKeyLastPrice, ticker)
	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"price":     price,
		"timestamp": at.Unix(),
	})
	pipe.Expire(ctx, key, c.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// noopCache is used when no cache is deployed.
type noopCache struct{}

// NewNoopCache creates a Cache that does nothing.
func NewNoopCache() Cache {
	return noopCache{}
}

func (noopCache) FlushAll(context.Context) error                                 { return nil }
func (noopCache) SetLastPrice(context.Context, string, float64, time.Time) error { return nil }
