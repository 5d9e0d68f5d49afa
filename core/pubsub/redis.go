package pubsub

import (
	"context"
	"encoding/json"

	"space-booking-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// RedisBus fans events out across all worker and API processes through
// redis pub/sub channels.
type RedisBus struct {
	client *redis.Client
}

func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{client: client}
}

func (b *RedisBus) Publish(ctx context.Context, topic string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, topic, raw).Err()
}

func (b *RedisBus) Subscribe(ctx context.Context, topic string) (<-chan []byte, func(), error) {
	sub := b.client.Subscribe(ctx, topic)

	// Force the subscription onto the wire before returning so a publish
	// immediately after Subscribe is not lost.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	out := make(chan []byte, 16)
	done := make(chan struct{})

	go func() {
		defer close(out)
		ch := sub.Channel()
		for {
			select {
			case <-done:
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				default:
					logger.Warn("RedisBus:Subscribe:SlowConsumer", "topic", topic)
				}
			}
		}
	}()

	cancel := func() {
		close(done)
		if err := sub.Close(); err != nil {
			logger.Warn("RedisBus:Subscribe:Close:Error", "topic", topic, "error", err)
		}
	}

	return out, cancel, nil
}
