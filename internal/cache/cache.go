// Package cache is a Redis-backed read-through cache for the inventory
// service's list and lookup endpoints. Entries are stored as JSON with a
// fixed TTL and invalidated by the writing service call; a cold or
// unreachable Redis degrades to plain database reads.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/observability"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/persistence"
)

// Key prefixes per resource; InvalidatePrefix drops a whole resource family.
const (
	PrefixOffices    = "inventory:offices"
	PrefixAssetTypes = "inventory:asset_types"
	PrefixAssets     = "inventory:assets"
	PrefixLicenses   = "inventory:licenses"
)

// Cache wraps the shared Redis client. A nil Cache is valid and disables
// caching entirely, which keeps the services testable without Redis.
type Cache struct {
	client  *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
	metrics *observability.Metrics
}

// New builds a cache over the shared Redis connection.
func New(r *persistence.Redis, ttl time.Duration, logger *zap.Logger, metrics *observability.Metrics) *Cache {
	if r == nil || r.Client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: r.Client, ttl: ttl, logger: logger, metrics: metrics}
}

// GetJSON loads a cached value into dest. It returns false on a miss or any
// Redis/decoding problem; callers fall through to the database either way.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("cache read failed", zap.String("key", key), zap.Error(err))
		}
		c.metrics.RecordCacheMiss()
		return false
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		c.logger.Debug("cache entry undecodable", zap.String("key", key), zap.Error(err))
		c.metrics.RecordCacheMiss()
		return false
	}

	c.metrics.RecordCacheHit()
	return true
}

// SetJSON stores a value under key with the configured TTL. Failures are
// logged and otherwise ignored.
func (c *Cache) SetJSON(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Debug("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Debug("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidatePrefix drops every entry under prefix. Writers call this after
// mutating the underlying resource.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if c == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, prefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Debug("cache invalidation failed", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Debug("cache scan failed", zap.String("prefix", prefix), zap.Error(err))
	}
}
