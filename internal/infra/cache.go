package infra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	viewKeyPrefix = "view:"
	// InvalidationChannel carries the logical path names of changed views so
	// any caching layer listening on it can refresh.
	InvalidationChannel = "views.changed"
)

// Cache is a thin read-through cache over Redis for rendered view data,
// plus the invalidation signal emitted after every mutating operation.
// All methods are best-effort: a Redis failure degrades to a DB read and
// is logged, never surfaced to the request.
type Cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// GetJSON loads the cached value for path into dest. Returns false on miss
// or decode failure.
func (c *Cache) GetJSON(ctx context.Context, path string, dest any) bool {
	b, err := c.rdb.Get(ctx, viewKeyPrefix+path).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(b, dest) == nil
}

// SetJSON stores v under path with the given TTL.
func (c *Cache) SetJSON(ctx context.Context, path string, v any, ttl time.Duration) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, viewKeyPrefix+path, b, ttl).Err(); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("cache: set failed")
	}
}

// Invalidate drops the cached entries for the given logical paths and
// publishes each path on the invalidation channel.
func (c *Cache) Invalidate(ctx context.Context, paths ...string) {
	for _, p := range paths {
		if err := c.rdb.Del(ctx, viewKeyPrefix+p).Err(); err != nil {
			log.Debug().Err(err).Str("path", p).Msg("cache: del failed")
		}
		if err := c.rdb.Publish(ctx, InvalidationChannel, p).Err(); err != nil {
			log.Debug().Err(err).Str("path", p).Msg("cache: publish failed")
		}
	}
}
