package packet

import (
	"errors"
	"strings"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

var ErrPacketIsNotConstructed = errors.New("Packet must be created via NewPacket constructor")

// Packet is a parcel travelling from sender to recipient. Its delivery status
// is not stored; it is derived from the packet's current route, see
// DeriveStatus.
type Packet struct {
	id          kernel.UUID
	senderID    kernel.UUID
	recipientID kernel.UUID
	humanID     string
	createdAt   time.Time
	cancelled   bool
	guard       guard.ConstructorGuard
}

// NewPacket creates a packet. The humanID is the short code printed on the
// parcel; it must be unique, which the repository enforces.
//
// Returns an error when sender and recipient are the same user.
func NewPacket(id, senderID, recipientID kernel.UUID, humanID string, createdAt time.Time) (*Packet, error) {
	p := &Packet{createdAt: createdAt, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		p.setID(id),
		p.setParties(senderID, recipientID),
		p.setHumanID(humanID),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePacket rebuilds a persisted packet.
func RestorePacket(
	id, senderID, recipientID kernel.UUID,
	humanID string,
	createdAt time.Time,
	cancelled bool,
) (*Packet, error) {
	p, err := NewPacket(id, senderID, recipientID, humanID, createdAt)
	if err != nil {
		return nil, err
	}
	p.cancelled = cancelled
	return p, nil
}

func (p *Packet) Validate() error {
	if p == nil {
		return ErrPacketIsNotConstructed
	}
	return p.guard.Validate(ErrPacketIsNotConstructed)
}

func (p *Packet) ID() kernel.UUID {
	return p.id
}

func (p *Packet) SenderID() kernel.UUID {
	return p.senderID
}

func (p *Packet) RecipientID() kernel.UUID {
	return p.recipientID
}

// HumanID is the short code identifying the packet to people.
func (p *Packet) HumanID() string {
	return p.humanID
}

func (p *Packet) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Packet) IsCancelled() bool {
	return p.cancelled
}

// Cancel withdraws the packet. A cancelled packet is never routed again.
func (p *Packet) Cancel() error {
	if p.cancelled {
		return errs.NewInvalidStateTransitionError("packet", string(StatusCancelled), "cancel")
	}
	p.cancelled = true
	return nil
}

func (p *Packet) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Packet) setParties(senderID, recipientID kernel.UUID) error {
	if err := errors.Join(
		validateRef("senderID", senderID),
		validateRef("recipientID", recipientID),
	); err != nil {
		return err
	}
	if senderID.IsEqual(recipientID) {
		return errs.NewValueIsInvalidErrorWithCause("recipientID", errors.New("recipient must differ from sender"))
	}
	p.senderID = senderID
	p.recipientID = recipientID
	return nil
}

func (p *Packet) setHumanID(humanID string) error {
	humanID = strings.TrimSpace(humanID)
	if humanID == "" {
		return errs.NewValueIsRequiredError("humanID")
	}
	p.humanID = humanID
	return nil
}

func validateRef(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
