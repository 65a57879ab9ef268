// Package cache provides a Redis-backed read-through cache for catalog
// queries.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the subset of cache operations the catalog decorator relies on.
type Store interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
}

// Cache stores JSON documents in Redis under a common key prefix.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration

	hits    atomic.Uint64
	misses  atomic.Uint64
	sets    atomic.Uint64
	deletes atomic.Uint64
	errors  atomic.Uint64
}

var _ Store = (*Cache)(nil)

// Stats is a point-in-time view of the cache counters.
type Stats struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	Sets    uint64  `json:"sets"`
	Deletes uint64  `json:"deletes"`
	Errors  uint64  `json:"errors"`
	HitRate float64 `json:"hit_rate"`
}

// New creates a cache on top of an existing Redis client.
func New(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Get decodes the value stored at key into dest. It reports false on a miss.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.misses.Add(1)
			return false, nil
		}
		c.errors.Add(1)
		return false, fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.errors.Add(1)
		return false, fmt.Errorf("cache unmarshal error: %w", err)
	}

	c.hits.Add(1)
	return true, nil
}

// Set stores value at key with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		c.errors.Add(1)
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		c.errors.Add(1)
		return fmt.Errorf("cache set error: %w", err)
	}

	c.sets.Add(1)
	return nil
}

// Delete removes a single key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		c.errors.Add(1)
		return fmt.Errorf("cache delete error: %w", err)
	}
	c.deletes.Add(1)
	return nil
}

// DeletePattern removes every key under the prefix that matches pattern.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+pattern, 100).Result()
		if err != nil {
			c.errors.Add(1)
			return fmt.Errorf("cache scan error: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.errors.Add(1)
				return fmt.Errorf("cache delete error: %w", err)
			}
			c.deletes.Add(uint64(len(keys)))
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total) * 100
	}

	return Stats{
		Hits:    hits,
		Misses:  misses,
		Sets:    c.sets.Load(),
		Deletes: c.deletes.Load(),
		Errors:  c.errors.Load(),
		HitRate: rate,
	}
}

// Ping checks the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
