package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent from the cache.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a small JSON read-through cache over Redis. A nil client is
// allowed and turns every operation into a no-op miss, so callers do not
// need to special-case environments without Redis.
type Cache struct {
	client *redis.Client
	prefix string
}

func New(client *redis.Client, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

func (c *Cache) key(parts ...string) string {
	key := c.prefix
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// Get unmarshals the cached value for key into dest. Returns ErrCacheMiss
// when the key is absent or the cache is disabled.
func (c *Cache) Get(ctx context.Context, dest interface{}, parts ...string) error {
	if c == nil || c.client == nil {
		return ErrCacheMiss
	}

	data, err := c.client.Get(ctx, c.key(parts...)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("cache get: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("cache unmarshal: %w", err)
	}
	return nil
}

// Set stores value under key with the given TTL. Failures are returned but
// are safe to ignore; the cache is best-effort.
func (c *Cache) Set(ctx context.Context, value interface{}, ttl time.Duration, parts ...string) error {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}

	if err := c.client.Set(ctx, c.key(parts...), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes the cached value for key.
func (c *Cache) Delete(ctx context.Context, parts ...string) error {
	if c == nil || c.client == nil {
		return nil
	}

	if err := c.client.Del(ctx, c.key(parts...)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}
