package pubsub

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryBus is an in-process Bus for tests and single-node runs.
type MemoryBus struct {
	mu   sync.Mutex
	subs map[string]map[int]chan []byte
	next int
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[string]map[int]chan []byte)}
}

func (b *MemoryBus) Publish(ctx context.Context, topic string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs[topic] {
		select {
		case ch <- raw:
		default:
		}
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context, topic string) (<-chan []byte, func(), error) {
	ch := make(chan []byte, 16)

	b.mu.Lock()
	id := b.next
	b.next++
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]chan []byte)
	}
	b.subs[topic][id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[topic], id)
			b.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel, nil
}
