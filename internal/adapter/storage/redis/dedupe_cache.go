package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DedupeCache implements ports.DedupeCache using Redis SET NX. It is a fast
// path only: the database status guard remains the source of truth, so a
// cache miss after eviction never causes a double settlement.
type DedupeCache struct {
	client *goredis.Client
	prefix string
}

// NewDedupeCache creates a new Redis-backed webhook dedupe cache.
func NewDedupeCache(client *goredis.Client) *DedupeCache {
	return &DedupeCache{
		client: client,
		prefix: "callback:processed:",
	}
}

// Seen reports whether a delivery key was already recorded, without
// recording anything itself.
func (c *DedupeCache) Seen(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.prefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("redis dedupe read: %w", err)
	}
	return n > 0, nil
}

// MarkProcessed atomically records a webhook delivery key. Returns true if
// the key is new (first delivery), false if it was already recorded.
func (c *DedupeCache) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	result, err := c.client.SetArgs(ctx, c.prefix+key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists, a duplicate delivery
			return false, nil
		}
		return false, fmt.Errorf("redis dedupe mark: %w", err)
	}
	return result == "OK", nil
}
