package stay

import (
	"fmt"

	"relay/internal/pkg/errs"
)

// Frequency describes how often a user is present at a stay's location.
//
// Recurring frequencies (Daily, Weekly, Sometimes) have no fixed dates; the
// route finder estimates the next handover from the expected wait. Once stays
// usually carry a fixed date range.
type Frequency int

const (
	// UnknownFrequency (0) catches uninitialized values.
	UnknownFrequency Frequency = iota

	// Daily presence: the user is there nearly every day.
	Daily

	// Weekly presence: the user is there about once a week.
	Weekly

	// Sometimes covers irregular presence, roughly every couple of weeks.
	Sometimes

	// Once is a single visit, normally bounded by start and end dates.
	Once
)

func frequencyNames() map[Frequency]string {
	return map[Frequency]string{
		Daily:     "daily",
		Weekly:    "weekly",
		Sometimes: "sometimes",
		Once:      "once",
	}
}

// ParseFrequency converts the textual form ("daily", "weekly", "sometimes",
// "once") used by the API and seed files.
func ParseFrequency(s string) (Frequency, error) {
	for f, name := range frequencyNames() {
		if name == s {
			return f, nil
		}
	}
	return UnknownFrequency, errs.NewValueIsInvalidErrorWithCause("frequency", fmt.Errorf("%q is not a known frequency", s))
}

// Validate rejects UnknownFrequency and values outside the enumeration.
func (f Frequency) Validate() error {
	if _, ok := frequencyNames()[f]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("frequency", fmt.Errorf("%d is not a valid frequency", f))
	}
	return nil
}

// IsRecurring reports whether the frequency repeats (everything except Once).
func (f Frequency) IsRecurring() bool {
	return f == Daily || f == Weekly || f == Sometimes
}

func (f Frequency) String() string {
	if name, ok := frequencyNames()[f]; ok {
		return name
	}
	return "unknown"
}
