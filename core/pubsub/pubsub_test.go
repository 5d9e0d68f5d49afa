package pubsub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBusDeliversToSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	ch1, cancel1, err := bus.Subscribe(ctx, "topic-a")
	require.NoError(t, err)
	defer cancel1()

	ch2, cancel2, err := bus.Subscribe(ctx, "topic-a")
	require.NoError(t, err)
	defer cancel2()

	require.NoError(t, bus.Publish(ctx, "topic-a", map[string]string{"hello": "world"}))

	for _, ch := range []<-chan []byte{ch1, ch2} {
		select {
		case raw := <-ch:
			var got map[string]string
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.Equal(t, "world", got["hello"])
		case <-time.After(time.Second):
			t.Fatal("message not delivered")
		}
	}
}

func TestMemoryBusTopicIsolation(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	ch, cancel, err := bus.Subscribe(ctx, "topic-a")
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, bus.Publish(ctx, "topic-b", "noise"))

	select {
	case raw := <-ch:
		t.Fatalf("unexpected message: %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryBusCancelStopsDelivery(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	ch, cancel, err := bus.Subscribe(ctx, "topic-a")
	require.NoError(t, err)
	cancel()

	require.NoError(t, bus.Publish(ctx, "topic-a", "late"))

	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after cancel")
	}
}
