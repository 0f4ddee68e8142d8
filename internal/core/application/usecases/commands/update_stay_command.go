package commands

import (
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/stay"
	"relay/internal/pkg/guard"
)

var ErrUpdateStayCommandIsNotConstructed = errors.New(
	"UpdateStayCommand must be created via NewUpdateStayCommand constructor",
)

// UpdateStayCommand replaces a stay's frequency and dates.
type UpdateStayCommand struct { //nolint:recvcheck //using for validation
	stayID    kernel.UUID
	userID    kernel.UUID
	frequency stay.Frequency
	start     *kernel.Date
	end       *kernel.Date
	at        time.Time

	guard guard.ConstructorGuard
}

func NewUpdateStayCommand(
	stayID, userID kernel.UUID,
	frequency stay.Frequency,
	start, end *kernel.Date,
	at time.Time,
) (UpdateStayCommand, error) {
	if err := errors.Join(
		stayID.Validate(),
		userID.Validate(),
		stay.ValidateSchedule(frequency, start, end),
	); err != nil {
		return UpdateStayCommand{}, err
	}
	return UpdateStayCommand{
		stayID:    stayID,
		userID:    userID,
		frequency: frequency,
		start:     start,
		end:       end,
		at:        at,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateStayCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStayCommandIsNotConstructed)
}

func (c UpdateStayCommand) StayID() kernel.UUID {
	return c.stayID
}

func (c UpdateStayCommand) UserID() kernel.UUID {
	return c.userID
}

func (c UpdateStayCommand) Frequency() stay.Frequency {
	return c.frequency
}

func (c UpdateStayCommand) Start() *kernel.Date {
	return c.start
}

func (c UpdateStayCommand) End() *kernel.Date {
	return c.end
}

func (c UpdateStayCommand) At() time.Time {
	return c.at
}
