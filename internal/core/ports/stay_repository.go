package ports

import (
	"context"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/stay"
	"relay/internal/core/domain/services"
)

// StayRepository defines the persistence contract for stays and serves the
// route search with its graph queries.
type StayRepository interface {
	services.StayFinder

	// Add persists a new stay. Its location must exist.
	Add(ctx context.Context, s *stay.Stay) error

	// Update persists schedule, snooze and deletion changes of a stay.
	Update(ctx context.Context, s *stay.Stay) error

	// Get retrieves a stay together with its location.
	Get(ctx context.Context, id kernel.UUID) (*stay.Stay, error)

	// ListByLocation returns the non-deleted stays at a location.
	ListByLocation(ctx context.Context, locationID kernel.UUID) ([]*stay.Stay, error)
}
