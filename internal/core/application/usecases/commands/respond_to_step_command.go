package commands

import (
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

var ErrRespondToStepCommandIsNotConstructed = errors.New(
	"RespondToStepCommand must be created via NewRespondToStepCommand constructor",
)

// Response is a holder's answer to a suggested route step.
type Response int

const (
	UnknownResponse Response = iota
	Accept
	Reject
	AskLater
)

// ParseResponse reads the wire names "yes", "no" and "ask_later".
func ParseResponse(s string) (Response, error) {
	switch s {
	case "yes":
		return Accept, nil
	case "no":
		return Reject, nil
	case "ask_later":
		return AskLater, nil
	}
	return UnknownResponse, errs.NewValueIsInvalidError("response")
}

func (r Response) Validate() error {
	if r < Accept || r > AskLater {
		return errs.NewValueIsInvalidError("response")
	}
	return nil
}

// RespondToStepCommand answers a SUGGESTED step on behalf of its holder.
type RespondToStepCommand struct { //nolint:recvcheck //using for validation
	stepID   kernel.UUID
	userID   kernel.UUID
	response Response
	at       time.Time

	guard guard.ConstructorGuard
}

func NewRespondToStepCommand(stepID, userID kernel.UUID, response Response, at time.Time) (RespondToStepCommand, error) {
	cmd := RespondToStepCommand{at: at, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setStepID(stepID),
		cmd.setUserID(userID),
		cmd.setResponse(response),
	); err != nil {
		return RespondToStepCommand{}, err
	}

	return cmd, nil
}

func (c RespondToStepCommand) Validate() error {
	return c.guard.Validate(ErrRespondToStepCommandIsNotConstructed)
}

func (c RespondToStepCommand) StepID() kernel.UUID {
	return c.stepID
}

func (c RespondToStepCommand) UserID() kernel.UUID {
	return c.userID
}

func (c RespondToStepCommand) Response() Response {
	return c.response
}

func (c RespondToStepCommand) At() time.Time {
	return c.at
}

func (c *RespondToStepCommand) setStepID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.stepID = id
	return nil
}

func (c *RespondToStepCommand) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.userID = id
	return nil
}

func (c *RespondToStepCommand) setResponse(response Response) error {
	if err := response.Validate(); err != nil {
		return err
	}
	c.response = response
	return nil
}
