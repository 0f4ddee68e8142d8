package commands

import (
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

var ErrCreatePacketCommandIsNotConstructed = errors.New(
	"CreatePacketCommand must be created via NewCreatePacketCommand constructor",
)

// CreatePacketCommand registers a packet from sender to recipient.
//
// Example:
//
//	cmd, err := NewCreatePacketCommand(kernel.NewUUID(), senderID, recipientID, time.Now())
//	if err != nil {
//	    return fmt.Errorf("invalid packet data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create packet: %w", err)
//	}
type CreatePacketCommand struct { //nolint:recvcheck //using for validation
	packetID    kernel.UUID
	senderID    kernel.UUID
	recipientID kernel.UUID
	at          time.Time

	guard guard.ConstructorGuard
}

func NewCreatePacketCommand(packetID, senderID, recipientID kernel.UUID, at time.Time) (CreatePacketCommand, error) {
	cmd := CreatePacketCommand{at: at, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		packetID.Validate(),
		cmd.setParties(senderID, recipientID),
	); err != nil {
		return CreatePacketCommand{}, err
	}
	cmd.packetID = packetID

	return cmd, nil
}

func (c CreatePacketCommand) Validate() error {
	return c.guard.Validate(ErrCreatePacketCommandIsNotConstructed)
}

func (c CreatePacketCommand) PacketID() kernel.UUID {
	return c.packetID
}

func (c CreatePacketCommand) SenderID() kernel.UUID {
	return c.senderID
}

func (c CreatePacketCommand) RecipientID() kernel.UUID {
	return c.recipientID
}

func (c CreatePacketCommand) At() time.Time {
	return c.at
}

func (c *CreatePacketCommand) setParties(senderID, recipientID kernel.UUID) error {
	if err := errors.Join(senderID.Validate(), recipientID.Validate()); err != nil {
		return err
	}
	if senderID.IsEqual(recipientID) {
		return errs.NewValueIsInvalidError("recipient must differ from sender")
	}
	c.senderID = senderID
	c.recipientID = recipientID
	return nil
}
