// Package deliverylog holds the append-only audit trail of a packet's journey.
package deliverylog

import (
	"errors"
	"fmt"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/route"
	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via one of the deliverylog constructors")

// Action classifies a log entry.
type Action string

const (
	RouteStepChange       Action = "ROUTE_STEP_CHANGE"
	SearchingRoute        Action = "SEARCHING_ROUTE"
	NewRoute              Action = "NEW_ROUTE"
	NoRouteFound          Action = "NO_ROUTE_FOUND"
	PacketChangedLocation Action = "PACKET_CHANGED_LOCATION"
)

// Validate rejects actions outside the enumeration.
func (a Action) Validate() error {
	switch a {
	case RouteStepChange, SearchingRoute, NewRoute, NoRouteFound, PacketChangedLocation:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a known action", string(a)))
	}
}

// Entry is one immutable line of a packet's delivery log.
type Entry struct {
	id            kernel.UUID
	packetID      kernel.UUID
	routeID       *kernel.UUID
	stepID        *kernel.UUID
	action        Action
	newStepStatus route.StepStatus
	createdAt     time.Time
	guard         guard.ConstructorGuard
}

// NewStepChangeEntry logs that a step moved to status.
func NewStepChangeEntry(packetID, routeID, stepID kernel.UUID, status route.StepStatus, at time.Time) (*Entry, error) {
	return RestoreEntry(kernel.NewUUID(), packetID, &routeID, &stepID, RouteStepChange, status, at)
}

// NewPacketMovedEntry logs that the packet left the holder of stepID.
func NewPacketMovedEntry(packetID, routeID, stepID kernel.UUID, at time.Time) (*Entry, error) {
	return RestoreEntry(kernel.NewUUID(), packetID, &routeID, &stepID, PacketChangedLocation, route.UnknownStepStatus, at)
}

// NewRouteEntry logs the creation of routeID.
func NewRouteEntry(packetID, routeID kernel.UUID, at time.Time) (*Entry, error) {
	return RestoreEntry(kernel.NewUUID(), packetID, &routeID, nil, NewRoute, route.UnknownStepStatus, at)
}

// NewSearchingRouteEntry logs the start of a route calculation.
func NewSearchingRouteEntry(packetID kernel.UUID, at time.Time) (*Entry, error) {
	return RestoreEntry(kernel.NewUUID(), packetID, nil, nil, SearchingRoute, route.UnknownStepStatus, at)
}

// NewNoRouteFoundEntry logs an unsuccessful route calculation.
func NewNoRouteFoundEntry(packetID kernel.UUID, at time.Time) (*Entry, error) {
	return RestoreEntry(kernel.NewUUID(), packetID, nil, nil, NoRouteFound, route.UnknownStepStatus, at)
}

// RestoreEntry rebuilds a persisted entry. newStepStatus is only meaningful
// for RouteStepChange entries and is UnknownStepStatus otherwise.
func RestoreEntry(
	id, packetID kernel.UUID,
	routeID, stepID *kernel.UUID,
	action Action,
	newStepStatus route.StepStatus,
	createdAt time.Time,
) (*Entry, error) {
	errList := []error{id.Validate(), action.Validate()}
	if err := packetID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("packetID", err))
	}
	if action == RouteStepChange {
		errList = append(errList, newStepStatus.Validate())
		if stepID == nil {
			errList = append(errList, errs.NewValueIsRequiredError("stepID"))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Entry{
		id:            id,
		packetID:      packetID,
		routeID:       routeID,
		stepID:        stepID,
		action:        action,
		newStepStatus: newStepStatus,
		createdAt:     createdAt,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// EntriesFromEvents turns the events recorded by a route into log entries.
// A completed step is logged as PacketChangedLocation only. Events that are
// not logged are skipped.
func EntriesFromEvents(events []kernel.DomainEvent, at time.Time) ([]*Entry, error) {
	entries := make([]*Entry, 0, len(events))
	for _, event := range events {
		var (
			entry *Entry
			err   error
		)
		switch e := event.(type) {
		case route.StepStatusChanged:
			if e.To == route.Completed {
				continue
			}
			entry, err = NewStepChangeEntry(e.PacketID, e.RouteID, e.StepID, e.To, at)
		case route.ParcelMoved:
			entry, err = NewPacketMovedEntry(e.PacketID, e.RouteID, e.StepID, at)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

func (e *Entry) ID() kernel.UUID {
	return e.id
}

func (e *Entry) PacketID() kernel.UUID {
	return e.packetID
}

func (e *Entry) RouteID() *kernel.UUID {
	return e.routeID
}

func (e *Entry) StepID() *kernel.UUID {
	return e.stepID
}

func (e *Entry) Action() Action {
	return e.action
}

// NewStepStatus is set for RouteStepChange entries only.
func (e *Entry) NewStepStatus() route.StepStatus {
	return e.newStepStatus
}

func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

// Describe renders the entry for people.
func (e *Entry) Describe() string {
	switch e.action {
	case RouteStepChange:
		return fmt.Sprintf("Route step changed to %s", e.newStepStatus)
	case SearchingRoute:
		return "Searching for a new route"
	case NewRoute:
		return "New route found"
	case NoRouteFound:
		return "No route found"
	case PacketChangedLocation:
		return "Packet changed location"
	default:
		return string(e.action)
	}
}
