// Package cache provides a Redis-backed read-through cache for tenant
// lookups, keeping hostname resolution off the database on the hot path.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/soldal/booking-platform/internal/model"
)

// TenantCache stores tenant rows under lookup keys with a short TTL. Every
// operation is best-effort: a Redis failure is logged and reads fall through
// to the database.
type TenantCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewTenantCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *TenantCache {
	return &TenantCache{client: client, ttl: ttl, logger: logger}
}

func (c *TenantCache) Get(ctx context.Context, key string) (*model.Tenant, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("tenant cache read failed")
		}
		return nil, false
	}

	var t model.Tenant
	if err := json.Unmarshal(raw, &t); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("tenant cache entry corrupt")
		return nil, false
	}
	return &t, true
}

func (c *TenantCache) Set(ctx context.Context, key string, t *model.Tenant) {
	raw, err := json.Marshal(t)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("tenant cache encode failed")
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("tenant cache write failed")
	}
}

func (c *TenantCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn().Err(err).Strs("keys", keys).Msg("tenant cache invalidation failed")
	}
}
