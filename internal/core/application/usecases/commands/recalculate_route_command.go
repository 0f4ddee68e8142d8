package commands

import (
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/guard"
)

var ErrRecalculateRouteCommandIsNotConstructed = errors.New(
	"RecalculateRouteCommand must be created via NewRecalculateRouteCommand constructor",
)

// RecalculateRouteCommand asks for a packet's route to be checked and
// re-planned when outdated.
type RecalculateRouteCommand struct { //nolint:recvcheck //using for validation
	packetID kernel.UUID
	at       time.Time

	guard guard.ConstructorGuard
}

func NewRecalculateRouteCommand(packetID kernel.UUID, at time.Time) (RecalculateRouteCommand, error) {
	if err := packetID.Validate(); err != nil {
		return RecalculateRouteCommand{}, err
	}
	return RecalculateRouteCommand{packetID: packetID, at: at, guard: guard.NewConstructorGuard()}, nil
}

func (c RecalculateRouteCommand) Validate() error {
	return c.guard.Validate(ErrRecalculateRouteCommandIsNotConstructed)
}

func (c RecalculateRouteCommand) PacketID() kernel.UUID {
	return c.packetID
}

func (c RecalculateRouteCommand) At() time.Time {
	return c.at
}
