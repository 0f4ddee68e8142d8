package route

import (
	"fmt"

	"relay/internal/pkg/errs"
)

// StepStatus is the lifecycle state of a single handover in a route.
//
// State transitions:
//
//	SUGGESTED ──┬──> ACCEPTED ──┬──> ONGOING ──┬──> COMPLETED
//	            │               │              ├──> CANCELLED
//	            └──> REJECTED   └──> CANCELLED └──> PROBLEM_REPORTED
//
//	PROBLEM_REPORTED ──> ONGOING | COMPLETED | CANCELLED
//
// REJECTED, CANCELLED and COMPLETED are final.
type StepStatus int

const (
	UnknownStepStatus StepStatus = iota
	Suggested
	Accepted
	Rejected
	Ongoing
	Completed
	Cancelled
	ProblemReported
)

func stepStatusNames() map[StepStatus]string {
	return map[StepStatus]string{
		Suggested:       "SUGGESTED",
		Accepted:        "ACCEPTED",
		Rejected:        "REJECTED",
		Ongoing:         "ONGOING",
		Completed:       "COMPLETED",
		Cancelled:       "CANCELLED",
		ProblemReported: "PROBLEM_REPORTED",
	}
}

// allowedTransitions lists, per status, the statuses reachable by a user or
// system action.
func allowedTransitions() map[StepStatus][]StepStatus {
	//nolint:exhaustive // final statuses have no outgoing transitions
	return map[StepStatus][]StepStatus{
		Suggested:       {Accepted, Rejected},
		Accepted:        {Ongoing, Cancelled},
		Ongoing:         {Completed, Cancelled, ProblemReported},
		ProblemReported: {Ongoing, Completed, Cancelled},
	}
}

// Validate rejects UnknownStepStatus and values outside the enumeration.
func (s StepStatus) Validate() error {
	if _, ok := stepStatusNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("step status", fmt.Errorf("%d is not a valid step status", s))
	}
	return nil
}

func (s StepStatus) String() string {
	if name, ok := stepStatusNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseStepStatus converts the upper case name of a status.
func ParseStepStatus(name string) (StepStatus, error) {
	for s, n := range stepStatusNames() {
		if n == name {
			return s, nil
		}
	}
	return UnknownStepStatus, errs.NewValueIsInvalidErrorWithCause("step status", fmt.Errorf("%q is not a valid step status", name))
}

// IsFinal reports whether no transition leaves the status.
func (s StepStatus) IsFinal() bool {
	return s == Rejected || s == Cancelled || s == Completed
}

// InvalidatesRoute reports whether a route holding a step in this status needs
// to be recalculated.
func (s StepStatus) InvalidatesRoute() bool {
	return s == Rejected || s == Cancelled
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s StepStatus) CanTransitionTo(next StepStatus) bool {
	if s.IsFinal() {
		return false
	}
	for _, allowed := range allowedTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next when the transition is allowed and an
// InvalidStateTransitionError otherwise.
//
// Example:
//
//	next, err := route.Suggested.TransitionTo(route.Accepted) // ACCEPTED, nil
//	_, err = route.Completed.TransitionTo(route.Ongoing)      // error
func (s StepStatus) TransitionTo(next StepStatus) (StepStatus, error) {
	if !s.CanTransitionTo(next) {
		return UnknownStepStatus, errs.NewInvalidStateTransitionError("route step", s.String(), verbFor(next))
	}
	return next, nil
}

// invalidated returns the status a step is forced into when its stay or
// location is edited or deleted: suggestions are rejected, commitments
// cancelled. Final statuses are left untouched.
func (s StepStatus) invalidated() (StepStatus, bool) {
	if s.IsFinal() {
		return s, false
	}
	switch s {
	case Suggested:
		return Rejected, true
	case Accepted, Ongoing, ProblemReported:
		return Cancelled, true
	default:
		return s, false
	}
}

func verbFor(next StepStatus) string {
	//nolint:exhaustive // unknown targets fall through to the generic verb
	switch next {
	case Accepted:
		return "accept"
	case Rejected:
		return "reject"
	case Ongoing:
		return "start"
	case Completed:
		return "complete"
	case Cancelled:
		return "cancel"
	case ProblemReported:
		return "report a problem on"
	default:
		return "change"
	}
}
