package route

import (
	"fmt"

	"relay/internal/pkg/errs"
)

// Status of a route. A packet has at most one Current route; superseded routes
// are Cancelled and kept for history.
type Status int

const (
	UnknownStatus Status = iota
	Current
	CancelledRoute
)

func (s Status) Validate() error {
	if s != Current && s != CancelledRoute {
		return errs.NewValueIsInvalidErrorWithCause("route status", fmt.Errorf("%d is not a valid route status", s))
	}
	return nil
}

func (s Status) String() string {
	switch s {
	case Current:
		return "CURRENT"
	case CancelledRoute:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}
