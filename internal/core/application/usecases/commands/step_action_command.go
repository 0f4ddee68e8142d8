package commands

import (
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

var ErrStepActionCommandIsNotConstructed = errors.New(
	"StepActionCommand must be created via NewStepActionCommand constructor",
)

// StepAction is something a holder does with a committed step.
type StepAction int

const (
	UnknownStepAction StepAction = iota
	// CompleteStep: the packet left the holder.
	CompleteStep
	// CancelStep: the holder withdraws; the route is re-planned.
	CancelStep
	// ReportProblem: the handover of an ongoing step is in trouble.
	ReportProblem
	// ResumeStep: a reported problem was resolved.
	ResumeStep
)

var stepActionNames = map[StepAction]string{
	CompleteStep:  "complete",
	CancelStep:    "cancel",
	ReportProblem: "report_problem",
	ResumeStep:    "resume",
}

func ParseStepAction(s string) (StepAction, error) {
	for action, name := range stepActionNames {
		if name == s {
			return action, nil
		}
	}
	return UnknownStepAction, errs.NewValueIsInvalidError("action")
}

func (a StepAction) String() string {
	if name, ok := stepActionNames[a]; ok {
		return name
	}
	return "unknown"
}

func (a StepAction) Validate() error {
	if _, ok := stepActionNames[a]; !ok {
		return errs.NewValueIsInvalidError("action")
	}
	return nil
}

// StepActionCommand applies a StepAction to a step on behalf of its holder.
type StepActionCommand struct { //nolint:recvcheck //using for validation
	stepID kernel.UUID
	userID kernel.UUID
	action StepAction
	at     time.Time

	guard guard.ConstructorGuard
}

func NewStepActionCommand(stepID, userID kernel.UUID, action StepAction, at time.Time) (StepActionCommand, error) {
	if err := errors.Join(stepID.Validate(), userID.Validate(), action.Validate()); err != nil {
		return StepActionCommand{}, err
	}

	return StepActionCommand{
		stepID: stepID,
		userID: userID,
		action: action,
		at:     at,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c StepActionCommand) Validate() error {
	return c.guard.Validate(ErrStepActionCommandIsNotConstructed)
}

func (c StepActionCommand) StepID() kernel.UUID {
	return c.stepID
}

func (c StepActionCommand) UserID() kernel.UUID {
	return c.userID
}

func (c StepActionCommand) Action() StepAction {
	return c.action
}

func (c StepActionCommand) At() time.Time {
	return c.at
}
