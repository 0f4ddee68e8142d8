package route

import (
	"errors"
	"fmt"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

var (
	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")
	ErrStepNotInRoute        = errors.New("step does not belong to route")
)

// Route is the aggregate root for one planned chain of handovers of a packet.
// Steps are kept in travel order; a step's neighbours are its index
// neighbours.
//
// The route owns the step state machine and the rules that couple steps:
//   - when every step is ACCEPTED the first step starts (ONGOING)
//   - completing a step starts the next one, or completes it right away when
//     the packet does not change hands there
//
// All changes are recorded as domain events, see DomainEvents.
type Route struct {
	id        kernel.UUID
	packetID  kernel.UUID
	status    Status
	createdAt time.Time
	steps     []*Step
	events    []kernel.DomainEvent
	guard     guard.ConstructorGuard
}

// NewRoute creates a Current route over the given steps.
//
// Returns an error when no steps are given or step identifiers repeat.
func NewRoute(id, packetID kernel.UUID, createdAt time.Time, steps []*Step) (*Route, error) {
	return RestoreRoute(id, packetID, Current, createdAt, steps)
}

// RestoreRoute rebuilds a persisted route. Steps must be given in travel order.
func RestoreRoute(
	id, packetID kernel.UUID,
	status Status,
	createdAt time.Time,
	steps []*Step,
) (*Route, error) {
	if err := errors.Join(
		id.Validate(),
		validateRef("packetID", packetID),
		status.Validate(),
		validateSteps(steps),
	); err != nil {
		return nil, err
	}

	return &Route{
		id:        id,
		packetID:  packetID,
		status:    status,
		createdAt: createdAt,
		steps:     append([]*Step(nil), steps...),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (r *Route) Validate() error {
	if r == nil {
		return ErrRouteIsNotConstructed
	}
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

func (r *Route) ID() kernel.UUID {
	return r.id
}

func (r *Route) PacketID() kernel.UUID {
	return r.packetID
}

func (r *Route) Status() Status {
	return r.status
}

func (r *Route) CreatedAt() time.Time {
	return r.createdAt
}

// Steps returns the steps in travel order. The slice is a copy; the steps are not.
func (r *Route) Steps() []*Step {
	return append([]*Step(nil), r.steps...)
}

// Step looks up a step by identifier.
func (r *Route) Step(stepID kernel.UUID) (*Step, error) {
	i, err := r.indexOf(stepID)
	if err != nil {
		return nil, err
	}
	return r.steps[i], nil
}

// IsCurrent reports whether the route is the packet's active plan.
func (r *Route) IsCurrent() bool {
	return r.status == Current
}

// IsOutdated reports whether some step was rejected or cancelled and the
// packet has not been delivered yet.
func (r *Route) IsOutdated() bool {
	if r.IsDelivered() {
		return false
	}
	for _, s := range r.steps {
		if s.status.InvalidatesRoute() {
			return true
		}
	}
	return false
}

// IsDelivered reports whether the last step was completed.
func (r *Route) IsDelivered() bool {
	return r.steps[len(r.steps)-1].status == Completed
}

// HasStatus reports whether any step is in one of the given statuses.
func (r *Route) HasStatus(statuses ...StepStatus) bool {
	for _, s := range r.steps {
		for _, want := range statuses {
			if s.status == want {
				return true
			}
		}
	}
	return false
}

// AllAccepted reports whether every step is ACCEPTED.
func (r *Route) AllAccepted() bool {
	for _, s := range r.steps {
		if s.status != Accepted {
			return false
		}
	}
	return true
}

// UsesStay reports whether any step was planned on the given stay.
func (r *Route) UsesStay(stayID kernel.UUID) bool {
	for _, s := range r.steps {
		if s.stayID.IsEqual(stayID) {
			return true
		}
	}
	return false
}

// Parties returns the users sharing the chat of a step: its holder and, when
// the packet changes hands afterwards, the holder of the next step.
func (r *Route) Parties(stepID kernel.UUID) ([]kernel.UUID, error) {
	i, err := r.indexOf(stepID)
	if err != nil {
		return nil, err
	}
	parties := []kernel.UUID{r.steps[i].holderID}
	if i+1 < len(r.steps) && !r.steps[i+1].holderID.IsEqual(r.steps[i].holderID) {
		parties = append(parties, r.steps[i+1].holderID)
	}
	return parties, nil
}

// AcceptStep records the holder's acceptance. When this completes the
// acceptance of the whole route the first step starts and a
// RouteFullyAccepted event is recorded.
func (r *Route) AcceptStep(stepID kernel.UUID) error {
	i, err := r.mutableStep(stepID)
	if err != nil {
		return err
	}
	if err = r.transition(i, Accepted, false); err != nil {
		return err
	}

	if r.AllAccepted() {
		if err = r.transition(0, Ongoing, false); err != nil {
			return err
		}
		r.events = append(r.events, RouteFullyAccepted{
			RouteID:   r.id,
			PacketID:  r.packetID,
			Handovers: r.handovers(),
		})
	}
	return nil
}

// RejectStep records the holder's refusal. The route becomes outdated.
func (r *Route) RejectStep(stepID kernel.UUID) error {
	i, err := r.mutableStep(stepID)
	if err != nil {
		return err
	}
	return r.transition(i, Rejected, false)
}

// CancelStep withdraws an earlier commitment. The route becomes outdated.
func (r *Route) CancelStep(stepID kernel.UUID) error {
	i, err := r.mutableStep(stepID)
	if err != nil {
		return err
	}
	return r.transition(i, Cancelled, false)
}

// ReportProblem flags an ongoing handover as troubled.
func (r *Route) ReportProblem(stepID kernel.UUID) error {
	i, err := r.mutableStep(stepID)
	if err != nil {
		return err
	}
	return r.transition(i, ProblemReported, false)
}

// ResumeStep continues a step after a reported problem was resolved.
func (r *Route) ResumeStep(stepID kernel.UUID) error {
	i, err := r.mutableStep(stepID)
	if err != nil {
		return err
	}
	if r.steps[i].status != ProblemReported {
		return errs.NewInvalidStateTransitionError("route step", r.steps[i].status.String(), "resume")
	}
	return r.transition(i, Ongoing, false)
}

// CompleteStep records that the packet left the step's holder and advances
// the next step:
//   - the next step is completed as well when it is the last step and its
//     holder is the recipient, or when its holder also holds the step after it
//   - otherwise the next step starts
//
// Advancing only touches an ACCEPTED next step.
func (r *Route) CompleteStep(stepID, recipientID kernel.UUID) error {
	i, err := r.mutableStep(stepID)
	if err != nil {
		return err
	}
	return r.complete(i, recipientID)
}

// InvalidateStay forces every step planned on stayID out of the plan:
// SUGGESTED steps are rejected, committed steps cancelled. It reports whether
// any step changed.
func (r *Route) InvalidateStay(stayID kernel.UUID) bool {
	if !r.UsesStay(stayID) {
		return false
	}
	return r.invalidate(func(s *Step) bool { return s.stayID.IsEqual(stayID) })
}

// InvalidateAll forces every open step out of the plan, see InvalidateStay.
func (r *Route) InvalidateAll() bool {
	return r.invalidate(func(*Step) bool { return true })
}

// Cancel retires the route so that a new one can become current.
func (r *Route) Cancel() error {
	if r.status != Current {
		return errs.NewInvalidStateTransitionError("route", r.status.String(), "cancel")
	}
	r.status = CancelledRoute
	return nil
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (r *Route) DomainEvents() []kernel.DomainEvent {
	return append([]kernel.DomainEvent(nil), r.events...)
}

// ClearDomainEvents drops recorded events, typically after publishing.
func (r *Route) ClearDomainEvents() {
	r.events = nil
}

func (r *Route) complete(i int, recipientID kernel.UUID) error {
	if err := r.transition(i, Completed, false); err != nil {
		return err
	}
	s := r.steps[i]
	r.events = append(r.events, ParcelMoved{
		RouteID:   r.id,
		PacketID:  r.packetID,
		StepID:    s.id,
		HolderID:  s.holderID,
		PlaceName: s.placeName,
	})

	n := i + 1
	if n >= len(r.steps) || r.steps[n].status != Accepted {
		return nil
	}
	next := r.steps[n]
	if err := r.transition(n, Ongoing, false); err != nil {
		return err
	}

	isLast := n == len(r.steps)-1
	reachedRecipient := isLast && next.holderID.IsEqual(recipientID)
	keepsPacket := !isLast && r.steps[n+1].holderID.IsEqual(next.holderID)
	if reachedRecipient || keepsPacket {
		return r.complete(n, recipientID)
	}
	return nil
}

func (r *Route) invalidate(match func(*Step) bool) bool {
	changed := false
	for i, s := range r.steps {
		if !match(s) {
			continue
		}
		next, ok := s.status.invalidated()
		if !ok {
			continue
		}
		prev := s.status
		s.status = next
		r.recordChange(i, prev, true)
		changed = true
	}
	return changed
}

func (r *Route) transition(i int, next StepStatus, forced bool) error {
	prev, err := r.steps[i].transitionTo(next)
	if err != nil {
		return err
	}
	r.recordChange(i, prev, forced)
	return nil
}

func (r *Route) recordChange(i int, prev StepStatus, forced bool) {
	s := r.steps[i]
	r.events = append(r.events, StepStatusChanged{
		RouteID:   r.id,
		PacketID:  r.packetID,
		StepID:    s.id,
		HolderID:  s.holderID,
		PlaceName: s.placeName,
		From:      prev,
		To:        s.status,
		Forced:    forced,
	})
}

// handovers describes each step for the parties' chat: the handover date is
// the first day shared with the next step's period, the step's end when they
// do not overlap, and the period start for the final step.
func (r *Route) handovers() []Handover {
	out := make([]Handover, 0, len(r.steps))
	for i, s := range r.steps {
		day := s.period.Start()
		if i+1 < len(r.steps) {
			day = s.period.End()
			if overlap, ok := s.OverlapWith(r.steps[i+1]); ok {
				day = overlap.Start()
			}
		}
		out = append(out, Handover{
			StepID:    s.id,
			HolderID:  s.holderID,
			PlaceName: s.placeName,
			Date:      day,
		})
	}
	return out
}

func (r *Route) mutableStep(stepID kernel.UUID) (int, error) {
	if r.status != Current {
		return 0, errs.NewInvalidStateTransitionError("route", r.status.String(), "change steps of")
	}
	return r.indexOf(stepID)
}

func (r *Route) indexOf(stepID kernel.UUID) (int, error) {
	for i, s := range r.steps {
		if s.id.IsEqual(stepID) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrStepNotInRoute, stepID)
}

func validateSteps(steps []*Step) error {
	if len(steps) == 0 {
		return errs.NewValueIsRequiredError("steps")
	}
	seen := make(map[kernel.UUID]struct{}, len(steps))
	for _, s := range steps {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, dup := seen[s.id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("steps", fmt.Errorf("step %s appears twice", s.id))
		}
		seen[s.id] = struct{}{}
	}
	return nil
}
