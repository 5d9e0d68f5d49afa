package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"space-booking-api/core/logger"
	"space-booking-api/core/utils"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only when it still holds our token, so an
// expired lease taken over by another worker is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client        *redis.Client
	acquireWait   time.Duration
	retryInterval time.Duration
}

func NewRedisLocker(client *redis.Client, acquireWait, retryInterval time.Duration) *RedisLocker {
	return &RedisLocker{
		client:        client,
		acquireWait:   acquireWait,
		retryInterval: retryInterval,
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, lease time.Duration) (func() error, error) {
	token := utils.GenerateID()
	redisKey := "lock:space:" + key
	deadline := time.Now().Add(l.acquireWait)

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, lease).Result()
		if err != nil {
			return nil, fmt.Errorf("lock acquire %s: %w", key, err)
		}
		if ok {
			return func() error {
				n, err := releaseScript.Run(context.Background(), l.client, []string{redisKey}, token).Int()
				if err != nil {
					logger.Error("RedisLocker:Release:Error", "key", key, "error", err)
					return err
				}
				if n == 0 {
					// Lease expired and someone else took the lock; nothing to release.
					logger.Warn("RedisLocker:Release:LeaseLost", "key", key)
				}
				return nil
			}, nil
		}

		if time.Now().After(deadline) {
			return nil, ErrNotAcquired
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, ErrNotAcquired
			}
			return nil, ctx.Err()
		case <-time.After(l.retryInterval):
		}
	}
}
