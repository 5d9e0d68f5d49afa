// Package lock provides the per-space mutual exclusion used by the booking
// admission pipeline. Admission and cancellation for a space must run under
// this lock so conflict checks can never race a concurrent commit.
package lock

import (
	"context"
	"errors"
	"time"
)

// ErrNotAcquired is returned when the lock could not be obtained within the
// acquire timeout. Callers treat it as a transient failure and requeue.
var ErrNotAcquired = errors.New("lock: not acquired")

// SpaceLocker is a lease-based exclusive lock keyed by an arbitrary string.
// The lease bounds how long a crashed holder can starve a key.
type SpaceLocker interface {
	// Acquire blocks until the lock for key is held or ctx expires. The
	// returned release function must be called exactly once.
	Acquire(ctx context.Context, key string, lease time.Duration) (release func() error, err error)
}

// WithSpaceLock runs fn while holding the lock for key, releasing it on every
// exit path including panics.
func WithSpaceLock(ctx context.Context, locker SpaceLocker, key string, lease time.Duration, fn func(ctx context.Context) error) error {
	release, err := locker.Acquire(ctx, key, lease)
	if err != nil {
		return err
	}
	defer func() {
		_ = release()
	}()
	return fn(ctx)
}
