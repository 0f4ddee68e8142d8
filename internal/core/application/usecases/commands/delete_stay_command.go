package commands

import (
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/guard"
)

var ErrDeleteStayCommandIsNotConstructed = errors.New(
	"DeleteStayCommand must be created via NewDeleteStayCommand constructor",
)

type DeleteStayCommand struct { //nolint:recvcheck //using for validation
	stayID kernel.UUID
	userID kernel.UUID
	at     time.Time

	guard guard.ConstructorGuard
}

func NewDeleteStayCommand(stayID, userID kernel.UUID, at time.Time) (DeleteStayCommand, error) {
	if err := errors.Join(stayID.Validate(), userID.Validate()); err != nil {
		return DeleteStayCommand{}, err
	}
	return DeleteStayCommand{stayID: stayID, userID: userID, at: at, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteStayCommand) Validate() error {
	return c.guard.Validate(ErrDeleteStayCommandIsNotConstructed)
}

func (c DeleteStayCommand) StayID() kernel.UUID {
	return c.stayID
}

func (c DeleteStayCommand) UserID() kernel.UUID {
	return c.userID
}

func (c DeleteStayCommand) At() time.Time {
	return c.at
}
