// Package cache keeps recent evaluations in redis so identical profiles are
// answered without recomputing the plan.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pageza/nutriplan/backend/internal/evaluator"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces evaluation keys.
const DefaultPrefix = "nutriplan:evaluation:"

// RedisCache stores evaluations as JSON with a TTL.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
}

// NewRedisCache creates a cache on client.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, prefix: DefaultPrefix}
}

// Get returns the cached evaluation for key. A miss is not an error.
func (c *RedisCache) Get(ctx context.Context, key string) (*evaluator.Evaluation, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}

	var ev evaluator.Evaluation
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached evaluation: %w", err)
	}
	return &ev, true, nil
}

// Set stores ev under key.
func (c *RedisCache) Set(ctx context.Context, key string, ev *evaluator.Evaluation) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode evaluation: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// Noop is used when redis is not configured.
type Noop struct{}

func (Noop) Get(context.Context, string) (*evaluator.Evaluation, bool, error) { return nil, false, nil }

func (Noop) Set(context.Context, string, *evaluator.Evaluation) error { return nil }
