package commands

import (
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/guard"
)

var ErrDeleteLocationCommandIsNotConstructed = errors.New(
	"DeleteLocationCommand must be created via NewDeleteLocationCommand constructor",
)

type DeleteLocationCommand struct { //nolint:recvcheck //using for validation
	locationID kernel.UUID
	userID     kernel.UUID
	at         time.Time

	guard guard.ConstructorGuard
}

func NewDeleteLocationCommand(locationID, userID kernel.UUID, at time.Time) (DeleteLocationCommand, error) {
	if err := errors.Join(locationID.Validate(), userID.Validate()); err != nil {
		return DeleteLocationCommand{}, err
	}
	return DeleteLocationCommand{
		locationID: locationID,
		userID:     userID,
		at:         at,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteLocationCommand) Validate() error {
	return c.guard.Validate(ErrDeleteLocationCommandIsNotConstructed)
}

func (c DeleteLocationCommand) LocationID() kernel.UUID {
	return c.locationID
}

func (c DeleteLocationCommand) UserID() kernel.UUID {
	return c.userID
}

func (c DeleteLocationCommand) At() time.Time {
	return c.at
}
