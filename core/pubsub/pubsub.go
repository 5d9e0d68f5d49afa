// Package pubsub carries the fire-and-forget event fan-out used for job
// terminal outcomes and live schedule updates. Messages are JSON encoded and
// delivery is best-effort; nothing in the admission pipeline depends on a
// publish succeeding.
package pubsub

import "context"

// Bus publishes and subscribes JSON payloads on named topics.
type Bus interface {
	Publish(ctx context.Context, topic string, payload any) error

	// Subscribe returns a channel of raw message payloads for topic and a
	// cancel function that must be called to stop delivery. Messages
	// published before Subscribe returns are not delivered.
	Subscribe(ctx context.Context, topic string) (<-chan []byte, func(), error)
}
