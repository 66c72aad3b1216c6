package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache keys for the list views. Member-scoped item lists and the ledger's
// direct lookups are never cached; only the shared display lists are.
const (
	cacheKeyMissionsActive = "catalog:missions:active"
	cacheKeyMissionsAll    = "catalog:missions:all"
	cacheKeyRewardsActive  = "catalog:rewards:active"
	cacheKeyRewardsAll     = "catalog:rewards:all"
	cacheKeyItemsActive    = "catalog:items:active"
	cacheKeyItemsAll       = "catalog:items:all"
)

// Cache is a best-effort TTL cache over Redis for catalog list reads.
// Reads may be up to the configured TTL stale; admin mutations invalidate
// eagerly. A nil client disables caching entirely.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// get reports whether the key was present and decoded into v.
func (c *Cache) get(ctx context.Context, key string, v interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("catalog cache entry corrupt")
		return false
	}
	return true
}

func (c *Cache) set(ctx context.Context, key string, v interface{}) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
	}
}

func (c *Cache) invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
