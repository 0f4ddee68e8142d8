// Package packetrepo persists packets with GORM.
package packetrepo

import (
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/packet"

	"github.com/google/uuid"
)

// humanIDConstraint is the unique index guarding packet codes.
const humanIDConstraint = "idx_packets_human_id"

// PacketDTO represents the database structure for persisting packets.
type PacketDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SenderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index"`
	HumanID     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_packets_human_id"`
	CreatedAt   time.Time `gorm:"not null;index"`
	Cancelled   bool      `gorm:"not null;default:false"`
}

// TableName overrides GORM's default "packet_dtos".
func (PacketDTO) TableName() string {
	return "packets"
}

func fromDomain(p *packet.Packet) PacketDTO {
	return PacketDTO{
		ID:          p.ID().Bytes(),
		SenderID:    p.SenderID().Bytes(),
		RecipientID: p.RecipientID().Bytes(),
		HumanID:     p.HumanID(),
		CreatedAt:   p.CreatedAt(),
		Cancelled:   p.IsCancelled(),
	}
}

func toDomain(dto PacketDTO) (*packet.Packet, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}
	return packet.RestorePacket(id, senderID, recipientID, dto.HumanID, dto.CreatedAt, dto.Cancelled)
}
