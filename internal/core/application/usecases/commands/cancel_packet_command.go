package commands

import (
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/guard"
)

var ErrCancelPacketCommandIsNotConstructed = errors.New(
	"CancelPacketCommand must be created via NewCancelPacketCommand constructor",
)

// CancelPacketCommand withdraws a packet on behalf of its sender.
type CancelPacketCommand struct { //nolint:recvcheck //using for validation
	packetID kernel.UUID
	userID   kernel.UUID
	at       time.Time

	guard guard.ConstructorGuard
}

func NewCancelPacketCommand(packetID, userID kernel.UUID, at time.Time) (CancelPacketCommand, error) {
	if err := errors.Join(packetID.Validate(), userID.Validate()); err != nil {
		return CancelPacketCommand{}, err
	}
	return CancelPacketCommand{
		packetID: packetID,
		userID:   userID,
		at:       at,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CancelPacketCommand) Validate() error {
	return c.guard.Validate(ErrCancelPacketCommandIsNotConstructed)
}

func (c CancelPacketCommand) PacketID() kernel.UUID {
	return c.packetID
}

func (c CancelPacketCommand) UserID() kernel.UUID {
	return c.userID
}

func (c CancelPacketCommand) At() time.Time {
	return c.at
}
