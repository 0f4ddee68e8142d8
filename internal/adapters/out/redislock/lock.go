// Package redislock implements ports.JobLock on top of Redis so that job
// runs are exclusive across processes.
package redislock

import (
	"context"
	"errors"
	"time"

	"relay/internal/core/ports"
	"relay/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "relay:lock:"

// release deletes the key only while it still carries the caller's token.
var release = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ErrLeaseLost is returned by Release when the lock expired and was possibly
// taken over by another worker.
var ErrLeaseLost = errors.New("lock lease expired before release")

type Lock struct {
	client redis.UniversalClient
}

func New(client redis.UniversalClient) *Lock {
	return &Lock{client: client}
}

// Acquire sets the lock key if it is absent. The key expires after ttl so a
// crashed worker cannot block the job forever.
func (l *Lock) Acquire(ctx context.Context, name string, ttl time.Duration) (ports.Lease, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("ttl", errors.New("ttl must be positive"))
	}

	token := uuid.NewString()
	key := keyPrefix + name
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ports.ErrLockNotAcquired
	}

	return &lease{client: l.client, key: key, token: token}, nil
}

type lease struct {
	client redis.UniversalClient
	key    string
	token  string
}

func (l *lease) Release(ctx context.Context) error {
	deleted, err := release.Run(ctx, l.client, []string{l.key}, l.token).Int()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrLeaseLost
	}
	return nil
}
