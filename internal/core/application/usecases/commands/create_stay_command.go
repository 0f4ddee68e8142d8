package commands

import (
	"errors"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/stay"
	"relay/internal/pkg/guard"
)

var ErrCreateStayCommandIsNotConstructed = errors.New(
	"CreateStayCommand must be created via NewCreateStayCommand constructor",
)

// CreateStayCommand declares that a user is present at one of their locations.
type CreateStayCommand struct { //nolint:recvcheck //using for validation
	stayID     kernel.UUID
	userID     kernel.UUID
	locationID kernel.UUID
	frequency  stay.Frequency
	start      *kernel.Date
	end        *kernel.Date

	guard guard.ConstructorGuard
}

func NewCreateStayCommand(
	stayID, userID, locationID kernel.UUID,
	frequency stay.Frequency,
	start, end *kernel.Date,
) (CreateStayCommand, error) {
	if err := errors.Join(
		stayID.Validate(),
		userID.Validate(),
		locationID.Validate(),
		stay.ValidateSchedule(frequency, start, end),
	); err != nil {
		return CreateStayCommand{}, err
	}
	return CreateStayCommand{
		stayID:     stayID,
		userID:     userID,
		locationID: locationID,
		frequency:  frequency,
		start:      start,
		end:        end,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateStayCommand) Validate() error {
	return c.guard.Validate(ErrCreateStayCommandIsNotConstructed)
}

func (c CreateStayCommand) StayID() kernel.UUID {
	return c.stayID
}

func (c CreateStayCommand) UserID() kernel.UUID {
	return c.userID
}

func (c CreateStayCommand) LocationID() kernel.UUID {
	return c.locationID
}

func (c CreateStayCommand) Frequency() stay.Frequency {
	return c.frequency
}

func (c CreateStayCommand) Start() *kernel.Date {
	return c.start
}

func (c CreateStayCommand) End() *kernel.Date {
	return c.end
}
