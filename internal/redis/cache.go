package redisx

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Cache is a small JSON cache-aside wrapper used for upstream responses that
// change rarely (listing content).
type Cache struct{ client *redis.Client }

func NewCache(addr string) *Cache {
	c := redis.NewClient(&redis.Options{Addr: addr})
	return &Cache{client: c}
}

func (c *Cache) key(kind, id string) string { return fmt.Sprintf("%s:%s", kind, id) }

// GetJSON loads and unmarshals a cached value. The bool reports a hit; cache
// errors read as misses so Redis being down never fails a request.
func (c *Cache) GetJSON(ctx context.Context, kind, id string, target interface{}) bool {
	raw, err := c.client.Get(ctx, c.key(kind, id)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, target) == nil
}

// SetJSON stores a value with a TTL, best effort.
func (c *Cache) SetJSON(ctx context.Context, kind, id string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(kind, id), raw, ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, kind, id string) {
	_ = c.client.Del(ctx, c.key(kind, id)).Err()
}

func (c *Cache) Close() { _ = c.client.Close() }

// GetClient returns the underlying Redis client for rate limiting.
func (c *Cache) GetClient() *redis.Client {
	return c.client
}
