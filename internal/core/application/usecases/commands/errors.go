package commands

import (
	"context"
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/route"
)

var (
	// ErrNotStepHolder is returned when a user acts on a step held by someone else.
	ErrNotStepHolder = errors.New("user does not hold this route step")
	// ErrNotStepParty is returned when a user writes into the chat of a step
	// they neither hold nor receive the packet from.
	ErrNotStepParty = errors.New("user is not a party of this route step")
	// ErrNotOwner is returned when a user changes a stay, location or packet
	// they do not own.
	ErrNotOwner = errors.New("user does not own this object")
)

// RouteMaintainer re-plans a packet's route when it became invalid.
// Implemented by RoutePlanner.
type RouteMaintainer interface {
	CheckAndRecalculate(ctx context.Context, packetID kernel.UUID, at time.Time) (*route.Route, error)
}

var _ RouteMaintainer = (*RoutePlanner)(nil)
