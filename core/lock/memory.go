package lock

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryLocker is an in-process SpaceLocker used by tests and single-node
// deployments. Lease expiry matches the redis implementation's semantics.
type MemoryLocker struct {
	mu            sync.Mutex
	held          map[string]memoryEntry
	retryInterval time.Duration
	counter       int64
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		held:          make(map[string]memoryEntry),
		retryInterval: 5 * time.Millisecond,
	}
}

func (l *MemoryLocker) tryAcquire(key, token string, lease time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.held[key]; ok && time.Now().Before(e.expiresAt) {
		return false
	}
	l.held[key] = memoryEntry{token: token, expiresAt: time.Now().Add(lease)}
	return true
}

func (l *MemoryLocker) Acquire(ctx context.Context, key string, lease time.Duration) (func() error, error) {
	l.mu.Lock()
	l.counter++
	token := key + ":" + time.Now().Format(time.RFC3339Nano) + ":" + string(rune('a'+l.counter%26))
	l.mu.Unlock()

	for {
		if l.tryAcquire(key, token, lease) {
			return func() error {
				l.mu.Lock()
				defer l.mu.Unlock()
				if e, ok := l.held[key]; ok && e.token == token {
					delete(l.held, key)
				}
				return nil
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ErrNotAcquired
		case <-time.After(l.retryInterval):
		}
	}
}
