package ports

import (
	"context"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/location"
)

// LocationRepository defines the persistence contract for locations.
// Deleted locations stay readable since historical routes reference them.
type LocationRepository interface {
	Add(ctx context.Context, l *location.Location) error
	Update(ctx context.Context, l *location.Location) error
	Get(ctx context.Context, id kernel.UUID) (*location.Location, error)
}
