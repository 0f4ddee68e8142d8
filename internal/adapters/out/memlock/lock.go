// Package memlock implements ports.JobLock for a single process. It is used
// when no Redis is configured.
package memlock

import (
	"context"
	"errors"
	"sync"
	"time"

	"relay/internal/core/ports"
	"relay/internal/pkg/errs"

	"github.com/google/uuid"
)

type holder struct {
	token     string
	expiresAt time.Time
}

type Lock struct {
	mu    sync.Mutex
	held  map[string]holder
	clock func() time.Time
}

func New() *Lock {
	return &Lock{held: make(map[string]holder), clock: time.Now}
}

// Acquire takes name unless an unexpired lease holds it.
func (l *Lock) Acquire(_ context.Context, name string, ttl time.Duration) (ports.Lease, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("ttl", errors.New("ttl must be positive"))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if h, ok := l.held[name]; ok && now.Before(h.expiresAt) {
		return nil, ports.ErrLockNotAcquired
	}

	token := uuid.NewString()
	l.held[name] = holder{token: token, expiresAt: now.Add(ttl)}
	return &lease{lock: l, name: name, token: token}, nil
}

type lease struct {
	lock  *Lock
	name  string
	token string
}

// Release frees the lock if this lease still owns it.
func (l *lease) Release(_ context.Context) error {
	l.lock.mu.Lock()
	defer l.lock.mu.Unlock()

	if h, ok := l.lock.held[l.name]; ok && h.token == l.token {
		delete(l.lock.held, l.name)
	}
	return nil
}
