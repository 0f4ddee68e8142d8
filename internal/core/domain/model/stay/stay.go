package stay

import (
	"errors"
	"fmt"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

var (
	ErrStayIsNotConstructed  = errors.New("Stay must be created via NewStay constructor")
	ErrPlaceIsNotConstructed = errs.NewValueIsRequiredError("place must be created via NewPlace")
)

// Place is the snapshot of a stay's location needed for route search.
type Place struct {
	locationID kernel.UUID
	name       string
	point      kernel.GeoPoint
	deleted    bool
	guard      guard.ConstructorGuard
}

// NewPlace captures a location by identifier, display name and coordinates.
func NewPlace(locationID kernel.UUID, name string, point kernel.GeoPoint, deleted bool) (Place, error) {
	if err := errors.Join(locationID.Validate(), point.Validate()); err != nil {
		return Place{}, err
	}
	return Place{
		locationID: locationID,
		name:       name,
		point:      point,
		deleted:    deleted,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (p Place) Validate() error {
	return p.guard.Validate(ErrPlaceIsNotConstructed)
}

func (p Place) LocationID() kernel.UUID {
	return p.locationID
}

func (p Place) Name() string {
	return p.name
}

func (p Place) Point() kernel.GeoPoint {
	return p.point
}

// IsDeleted reports whether the underlying location was deleted.
func (p Place) IsDeleted() bool {
	return p.deleted
}

// Stay is a user's declared presence at a location over time. It is the
// vertex of the route search graph.
//
// Invariants:
//   - start <= end whenever both are set
//   - stays created via NewStay with frequency once carry both dates
//   - a stay is active on a day d when it is not deleted and inactiveUntil is
//     unset or not after d (the snooze ends on inactiveUntil itself)
type Stay struct {
	id            kernel.UUID
	userID        kernel.UUID
	place         Place
	frequency     Frequency
	start         *kernel.Date
	end           *kernel.Date
	inactiveUntil *kernel.Date
	deleted       bool
	guard         guard.ConstructorGuard
}

// NewStay declares a presence of userID at place.
//
// See ValidateSchedule for the rules on frequency and dates.
func NewStay(
	id, userID kernel.UUID,
	place Place,
	frequency Frequency,
	start, end *kernel.Date,
) (*Stay, error) {
	s := &Stay{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		s.setID(id),
		s.setUserID(userID),
		s.setPlace(place),
		s.setSchedule(frequency, start, end, true),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreStay rebuilds a persisted stay including its snooze and deletion
// state. One-time stays stored without both dates still load; route search
// skips them (see IsPlannable).
func RestoreStay(
	id, userID kernel.UUID,
	place Place,
	frequency Frequency,
	start, end, inactiveUntil *kernel.Date,
	deleted bool,
) (*Stay, error) {
	s := &Stay{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		s.setID(id),
		s.setUserID(userID),
		s.setPlace(place),
		s.setSchedule(frequency, start, end, false),
	); err != nil {
		return nil, err
	}
	s.inactiveUntil = copyDate(inactiveUntil)
	s.deleted = deleted
	return s, nil
}

func (s *Stay) Validate() error {
	if s == nil {
		return ErrStayIsNotConstructed
	}
	return s.guard.Validate(ErrStayIsNotConstructed)
}

func (s *Stay) ID() kernel.UUID {
	return s.id
}

func (s *Stay) UserID() kernel.UUID {
	return s.userID
}

func (s *Stay) Place() Place {
	return s.place
}

func (s *Stay) Frequency() Frequency {
	return s.frequency
}

// Start returns the first day of presence, or nil when open.
func (s *Stay) Start() *kernel.Date {
	return copyDate(s.start)
}

// End returns the last day of presence, or nil when open.
func (s *Stay) End() *kernel.Date {
	return copyDate(s.end)
}

// InactiveUntil returns the end of the current snooze, or nil.
func (s *Stay) InactiveUntil() *kernel.Date {
	return copyDate(s.inactiveUntil)
}

func (s *Stay) IsDeleted() bool {
	return s.deleted
}

// IsOneTime reports whether the stay is a single visit.
func (s *Stay) IsOneTime() bool {
	return s.frequency == Once
}

// FixedRange returns the stay's date range when it is a one-time stay with
// both bounds set.
func (s *Stay) FixedRange() (kernel.DateRange, bool) {
	if !s.IsOneTime() || s.start == nil || s.end == nil {
		return kernel.DateRange{}, false
	}
	r, err := kernel.NewDateRange(*s.start, *s.end)
	if err != nil {
		return kernel.DateRange{}, false
	}
	return r, true
}

// IsPlannable reports whether route search can place a handover at the
// stay: recurring stays always, one-time stays only with both dates.
func (s *Stay) IsPlannable() bool {
	if s.frequency.IsRecurring() {
		return true
	}
	_, ok := s.FixedRange()
	return ok
}

// IsActiveOn reports whether the stay can be used for a route calculated on day.
func (s *Stay) IsActiveOn(day kernel.Date) bool {
	if s.deleted || s.place.IsDeleted() {
		return false
	}
	return s.inactiveUntil == nil || !s.inactiveUntil.After(day)
}

// HasEndedBefore reports whether a one-time stay's last day lies before day.
// Recurring and open ended stays never end.
func (s *Stay) HasEndedBefore(day kernel.Date) bool {
	return s.IsOneTime() && s.end != nil && s.end.Before(day)
}

// SnoozeUntil excludes the stay from route search until the given day.
// An existing later snooze is kept.
func (s *Stay) SnoozeUntil(day kernel.Date) error {
	if err := day.Validate(); err != nil {
		return err
	}
	if s.inactiveUntil != nil && s.inactiveUntil.After(day) {
		return nil
	}
	s.inactiveUntil = &day
	return nil
}

// Reschedule replaces frequency and dates. It reports whether anything
// changed, in which case planned handovers for this stay are no longer valid.
func (s *Stay) Reschedule(frequency Frequency, start, end *kernel.Date) (bool, error) {
	if s.deleted {
		return false, errs.NewInvalidStateTransitionError("stay", "deleted", "reschedule")
	}

	changed := frequency != s.frequency || !sameDate(start, s.start) || !sameDate(end, s.end)
	if err := s.setSchedule(frequency, start, end, true); err != nil {
		return false, err
	}
	return changed, nil
}

// Delete soft-deletes the stay. Deleting twice is a no-op.
func (s *Stay) Delete() {
	s.deleted = true
}

func (s *Stay) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Stay) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userID", err)
	}
	s.userID = userID
	return nil
}

func (s *Stay) setPlace(place Place) error {
	if err := place.Validate(); err != nil {
		return err
	}
	s.place = place
	return nil
}

// ValidateSchedule checks a frequency together with its optional dates. End
// must not be before start, and a one-time stay needs both.
func ValidateSchedule(frequency Frequency, start, end *kernel.Date) error {
	return validateSchedule(frequency, start, end, true)
}

func validateSchedule(frequency Frequency, start, end *kernel.Date, requireOnceDates bool) error {
	if err := frequency.Validate(); err != nil {
		return err
	}
	if start != nil && end != nil && end.Before(*start) {
		return errs.NewValueIsInvalidErrorWithCause(
			"stay dates",
			fmt.Errorf("end %s is before start %s", end, start),
		)
	}
	if requireOnceDates && !frequency.IsRecurring() && (start == nil || end == nil) {
		return errs.NewValueIsRequiredErrorWithCause(
			"stay dates",
			errors.New("a one-time stay needs a start and an end date"),
		)
	}
	return nil
}

func (s *Stay) setSchedule(frequency Frequency, start, end *kernel.Date, requireOnceDates bool) error {
	if err := validateSchedule(frequency, start, end, requireOnceDates); err != nil {
		return err
	}
	s.frequency = frequency
	s.start = copyDate(start)
	s.end = copyDate(end)
	return nil
}

func copyDate(d *kernel.Date) *kernel.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func sameDate(a, b *kernel.Date) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
