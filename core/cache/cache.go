package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"space-booking-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when the key is absent.
var ErrMiss = errors.New("cache: miss")

// Cache is a small JSON cache used for read-mostly records such as
// per-space booking rules.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type redisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) Cache {
	return &redisCache{client: client}
}

func (c *redisCache) GetJSON(ctx context.Context, key string, dest any) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (c *redisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// NewNoopCache returns a cache that never hits; used when redis is not
// configured and in tests that do not care about caching.
func NewNoopCache() Cache {
	return &noopCache{}
}

type noopCache struct{}

func (n *noopCache) GetJSON(ctx context.Context, key string, dest any) error {
	return ErrMiss
}

func (n *noopCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

func (n *noopCache) Delete(ctx context.Context, key string) error {
	logger.Debug("Cache:Noop:Delete", "key", key)
	return nil
}
