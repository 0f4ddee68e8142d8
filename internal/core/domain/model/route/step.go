package route

import (
	"errors"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

var ErrStepIsNotConstructed = errors.New("Step must be created via NewStep constructor")

// Step is one hop of a route: the holder of a stay keeps the packet at the
// stay's place during the proposed period and hands it to the holder of the
// next step.
type Step struct {
	id        kernel.UUID
	stayID    kernel.UUID
	holderID  kernel.UUID
	placeName string
	period    kernel.DateRange
	status    StepStatus
	guard     guard.ConstructorGuard
}

// NewStep creates a step in status SUGGESTED.
func NewStep(id, stayID, holderID kernel.UUID, placeName string, period kernel.DateRange) (*Step, error) {
	return RestoreStep(id, stayID, holderID, placeName, period, Suggested)
}

// RestoreStep rebuilds a persisted step.
func RestoreStep(
	id, stayID, holderID kernel.UUID,
	placeName string,
	period kernel.DateRange,
	status StepStatus,
) (*Step, error) {
	if err := errors.Join(
		id.Validate(),
		validateRef("stayID", stayID),
		validateRef("holderID", holderID),
		period.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Step{
		id:        id,
		stayID:    stayID,
		holderID:  holderID,
		placeName: placeName,
		period:    period,
		status:    status,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (s *Step) Validate() error {
	if s == nil {
		return ErrStepIsNotConstructed
	}
	return s.guard.Validate(ErrStepIsNotConstructed)
}

func (s *Step) ID() kernel.UUID {
	return s.id
}

func (s *Step) StayID() kernel.UUID {
	return s.stayID
}

// HolderID is the user owning the step's stay.
func (s *Step) HolderID() kernel.UUID {
	return s.holderID
}

func (s *Step) PlaceName() string {
	return s.placeName
}

// Period is the proposed date range for the handover at this step.
func (s *Step) Period() kernel.DateRange {
	return s.period
}

func (s *Step) Status() StepStatus {
	return s.status
}

// OverlapWith returns the days this step's period shares with other's period.
func (s *Step) OverlapWith(other *Step) (kernel.DateRange, bool) {
	return s.period.Intersection(other.period)
}

func (s *Step) transitionTo(next StepStatus) (StepStatus, error) {
	newStatus, err := s.status.TransitionTo(next)
	if err != nil {
		return UnknownStepStatus, err
	}
	prev := s.status
	s.status = newStatus
	return prev, nil
}

func validateRef(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
