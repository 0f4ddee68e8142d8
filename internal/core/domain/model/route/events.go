package route

import (
	"relay/internal/core/domain/model/kernel"
)

// StepStatusChanged is recorded for every status change of a step. Forced is
// set when the change was caused by an edit or deletion of the underlying stay
// or location rather than by a participant.
type StepStatusChanged struct {
	RouteID  kernel.UUID
	PacketID kernel.UUID
	StepID   kernel.UUID
	HolderID  kernel.UUID
	PlaceName string
	From      StepStatus
	To        StepStatus
	Forced    bool
}

func (StepStatusChanged) EventName() string {
	return "route.step_status_changed"
}

// Handover is the per-step context of a fully accepted route.
type Handover struct {
	StepID    kernel.UUID
	HolderID  kernel.UUID
	PlaceName string
	Date      kernel.Date
}

// RouteFullyAccepted is recorded once every step of a route was accepted and
// the first step started.
type RouteFullyAccepted struct {
	RouteID   kernel.UUID
	PacketID  kernel.UUID
	Handovers []Handover
}

func (RouteFullyAccepted) EventName() string {
	return "route.fully_accepted"
}

// ParcelMoved is recorded when a step completes, i.e. the packet left the
// step's holder.
type ParcelMoved struct {
	RouteID   kernel.UUID
	PacketID  kernel.UUID
	StepID    kernel.UUID
	HolderID  kernel.UUID
	PlaceName string
}

func (ParcelMoved) EventName() string {
	return "route.parcel_moved"
}
