package packet

import (
	"time"

	"relay/internal/core/domain/model/route"
)

// Status is the delivery status of a packet as shown to its sender and
// recipient. It is always derived, never stored.
type Status string

const (
	StatusCalculatingRoute Status = "calculating_route"
	StatusNoRouteFound     Status = "no_route_found"
	StatusRouteOutdated    Status = "route_outdated"
	StatusConfirmingRoute  Status = "confirming_route"
	StatusReadyToShip      Status = "ready_to_ship"
	StatusDelivering       Status = "delivering"
	StatusDelivered        Status = "delivered"
	StatusCancelled        Status = "cancelled"
)

// DefaultNoRouteGracePeriod is how long a packet without route is reported as
// still calculating.
const DefaultNoRouteGracePeriod = 30 * 24 * time.Hour

// StatusInput collects what DeriveStatus needs beyond the packet itself.
type StatusInput struct {
	// CurrentRoute is the packet's current route, nil when there is none.
	CurrentRoute *route.Route
	// LastRouteCreatedAt is the creation time of the packet's most recent
	// route of any status, nil when the packet was never routed.
	LastRouteCreatedAt *time.Time
	// Now is the evaluation time.
	Now time.Time
	// GracePeriod overrides DefaultNoRouteGracePeriod when positive.
	GracePeriod time.Duration
}

// DeriveStatus computes the packet's delivery status.
//
// Rules, first match wins:
//   - cancelled packet: cancelled
//   - no current route: calculating_route, or no_route_found once the grace
//     period since the latest route (or the packet's creation) has passed
//   - last step completed: delivered
//   - some step rejected or cancelled: route_outdated
//   - some step completed: delivering
//   - some step suggested: confirming_route
//   - otherwise (all accepted, first step started): ready_to_ship
func (p *Packet) DeriveStatus(in StatusInput) Status {
	if p.cancelled {
		return StatusCancelled
	}

	r := in.CurrentRoute
	if r == nil || !r.IsCurrent() {
		grace := in.GracePeriod
		if grace <= 0 {
			grace = DefaultNoRouteGracePeriod
		}
		since := p.createdAt
		if in.LastRouteCreatedAt != nil && in.LastRouteCreatedAt.After(since) {
			since = *in.LastRouteCreatedAt
		}
		if in.Now.Sub(since) >= grace {
			return StatusNoRouteFound
		}
		return StatusCalculatingRoute
	}

	switch {
	case r.IsDelivered():
		return StatusDelivered
	case r.IsOutdated():
		return StatusRouteOutdated
	case r.HasStatus(route.Completed):
		return StatusDelivering
	case r.HasStatus(route.Suggested):
		return StatusConfirmingRoute
	default:
		return StatusReadyToShip
	}
}
