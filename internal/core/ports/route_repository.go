package ports

import (
	"context"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/route"
)

// RouteRepository defines the persistence contract for route aggregates
// including their steps.
type RouteRepository interface {
	// Add persists a new route with all its steps.
	Add(ctx context.Context, r *route.Route) error

	// Update persists the route status and the statuses of its steps.
	Update(ctx context.Context, r *route.Route) error

	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)

	// GetByStep retrieves the route a step belongs to.
	GetByStep(ctx context.Context, stepID kernel.UUID) (*route.Route, error)

	// GetCurrentForPacket retrieves the packet's current route.
	// Returns errs.ObjectNotFoundError when there is none.
	GetCurrentForPacket(ctx context.Context, packetID kernel.UUID) (*route.Route, error)

	// ListCurrentByStay returns current routes with at least one step on the stay.
	ListCurrentByStay(ctx context.Context, stayID kernel.UUID) ([]*route.Route, error)

	// LastCreatedAt returns the creation time of the packet's latest route of
	// any status, nil when the packet was never routed.
	LastCreatedAt(ctx context.Context, packetID kernel.UUID) (*time.Time, error)
}
