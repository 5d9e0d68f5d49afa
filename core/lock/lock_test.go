package lock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLockerMutualExclusion(t *testing.T) {
	locker := NewMemoryLocker()
	ctx := context.Background()

	var (
		mu      sync.Mutex
		active  int
		maxSeen int
		wg      sync.WaitGroup
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := WithSpaceLock(ctx, locker, "space-1", time.Second, func(ctx context.Context) error {
				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen, "at most one holder at a time")
}

func TestMemoryLockerIndependentKeys(t *testing.T) {
	locker := NewMemoryLocker()
	ctx := context.Background()

	relA, err := locker.Acquire(ctx, "space-a", time.Second)
	require.NoError(t, err)
	defer relA()

	// A different key must not block.
	done := make(chan struct{})
	go func() {
		relB, err := locker.Acquire(ctx, "space-b", time.Second)
		assert.NoError(t, err)
		relB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
}

func TestMemoryLockerLeaseExpiry(t *testing.T) {
	locker := NewMemoryLocker()
	ctx := context.Background()

	// Simulate a crashed holder: acquire with a short lease, never release.
	_, err := locker.Acquire(ctx, "space-1", 20*time.Millisecond)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	release, err := locker.Acquire(waitCtx, "space-1", time.Second)
	require.NoError(t, err, "expired lease should be reclaimable")
	require.NoError(t, release())
}

func TestMemoryLockerAcquireTimeout(t *testing.T) {
	locker := NewMemoryLocker()
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "space-1", time.Minute)
	require.NoError(t, err)
	defer release()

	waitCtx, cancel := context.WithTimeout(ctx, 30*time.Millisecond)
	defer cancel()

	_, err = locker.Acquire(waitCtx, "space-1", time.Second)
	assert.True(t, errors.Is(err, ErrNotAcquired))
}

func TestWithSpaceLockReleasesOnError(t *testing.T) {
	locker := NewMemoryLocker()
	ctx := context.Background()

	wantErr := errors.New("boom")
	err := WithSpaceLock(ctx, locker, "space-1", time.Second, func(ctx context.Context) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	// The lock must be free again.
	waitCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	release, err := locker.Acquire(waitCtx, "space-1", time.Second)
	require.NoError(t, err)
	require.NoError(t, release())
}
