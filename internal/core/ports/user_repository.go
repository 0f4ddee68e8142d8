// Package ports defines the contracts between the relay core and its
// infrastructure: repositories, the unit of work, event publishing,
// notifications, packet codes and job locks.
package ports

import (
	"context"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for users.
type UserRepository interface {
	// Add persists a new user.
	Add(ctx context.Context, u *user.User) error

	// Get retrieves a user by identifier.
	// Returns errs.ObjectNotFoundError when the user does not exist.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}
