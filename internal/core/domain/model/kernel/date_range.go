package kernel

import (
	"fmt"

	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

// ErrDateRangeIsNotConstructed is returned when validating a zero DateRange.
var ErrDateRangeIsNotConstructed = errs.NewValueIsRequiredError("date range must be created via NewDateRange")

// DateRange is an inclusive span of calendar days with start <= end.
type DateRange struct {
	start Date
	end   Date
	guard guard.ConstructorGuard
}

// NewDateRange returns the inclusive range [start, end].
//
// Returns an error when either bound is missing or end lies before start.
func NewDateRange(start, end Date) (DateRange, error) {
	if err := start.Validate(); err != nil {
		return DateRange{}, errs.NewValueIsRequiredErrorWithCause("start", err)
	}
	if err := end.Validate(); err != nil {
		return DateRange{}, errs.NewValueIsRequiredErrorWithCause("end", err)
	}
	if end.Before(start) {
		return DateRange{}, errs.NewValueIsInvalidErrorWithCause(
			"date range",
			fmt.Errorf("end %s is before start %s", end, start),
		)
	}

	return DateRange{start: start, end: end, guard: guard.NewConstructorGuard()}, nil
}

// MustNewDateRange is like NewDateRange but panics on invalid bounds.
func MustNewDateRange(start, end Date) DateRange {
	r, err := NewDateRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

func (r DateRange) Validate() error {
	return r.guard.Validate(ErrDateRangeIsNotConstructed)
}

func (r DateRange) Start() Date {
	return r.start
}

func (r DateRange) End() Date {
	return r.end
}

// Days returns end minus start in days; a single day range has zero days.
func (r DateRange) Days() int {
	return r.start.DaysUntil(r.end)
}

// Midpoint returns start plus half the length of the range, rounded down.
func (r DateRange) Midpoint() Date {
	return r.start.AddDays(r.Days() / 2)
}

// Contains reports whether d lies within the range, bounds included.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.start) && !d.After(r.end)
}

// Overlaps reports whether the two ranges share at least one day.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.start.After(other.end) && !r.end.Before(other.start)
}

// Intersection returns the days shared by both ranges. The boolean is false
// when the ranges are disjoint.
func (r DateRange) Intersection(other DateRange) (DateRange, bool) {
	if !r.Overlaps(other) {
		return DateRange{}, false
	}
	return DateRange{
		start: MaxDate(r.start, other.start),
		end:   MinDate(r.end, other.end),
		guard: guard.NewConstructorGuard(),
	}, true
}

// IsEqual compares both bounds.
func (r DateRange) IsEqual(other DateRange) bool {
	return r.start.Equal(other.start) && r.end.Equal(other.end)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.start, r.end)
}
