package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const gridKey = "timetable:grid"

// GridCache keeps the rendered weekly grid in Redis so read-heavy clients do
// not force a re-derivation of the timetable on every poll. A nil receiver is
// a no-op, which keeps the service usable without Redis.
type GridCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGridCache wraps a Redis client. ttl <= 0 disables expiry.
func NewGridCache(client *redis.Client, ttl time.Duration) *GridCache {
	if client == nil {
		return nil
	}
	return &GridCache{client: client, ttl: ttl}
}

// Get unmarshals the cached grid into dest. The boolean reports a cache hit.
func (c *GridCache) Get(ctx context.Context, dest interface{}) (bool, error) {
	if c == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, gridKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores the grid payload.
func (c *GridCache) Set(ctx context.Context, grid interface{}) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(grid)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, gridKey, raw, c.ttl).Err()
}

// Invalidate drops the cached grid. Called after every mutating operation.
func (c *GridCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, gridKey).Err()
}
