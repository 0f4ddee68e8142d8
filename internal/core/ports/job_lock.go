package ports

import (
	"context"
	"errors"
	"time"
)

// ErrLockNotAcquired is returned by JobLock.Acquire when another worker
// holds the lock.
var ErrLockNotAcquired = errors.New("lock is held by another worker")

// JobLock provides mutual exclusion between periodic job runs, possibly
// across processes.
type JobLock interface {
	// Acquire takes the named lock for at most ttl.
	Acquire(ctx context.Context, name string, ttl time.Duration) (Lease, error)
}

// Lease is a held lock.
type Lease interface {
	Release(ctx context.Context) error
}
