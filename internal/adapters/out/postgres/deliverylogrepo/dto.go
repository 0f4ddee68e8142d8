// Package deliverylogrepo persists the append-only delivery log with GORM.
package deliverylogrepo

import (
	"time"

	"relay/internal/core/domain/model/deliverylog"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// EntryDTO represents one delivery log line. Seq breaks ties between entries
// written in the same transaction.
type EntryDTO struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Seq           int64              `gorm:"autoIncrement;not null"`
	PacketID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	RouteID       *uuid.UUID         `gorm:"type:uuid"`
	StepID        *uuid.UUID         `gorm:"type:uuid"`
	Action        deliverylog.Action `gorm:"type:varchar(32);not null"`
	NewStepStatus route.StepStatus   `gorm:"type:smallint;not null;default:0"`
	CreatedAt     time.Time          `gorm:"not null"`
}

// TableName overrides GORM's default "entry_dtos".
func (EntryDTO) TableName() string {
	return "delivery_logs"
}

func fromDomain(e *deliverylog.Entry) EntryDTO {
	return EntryDTO{
		ID:            e.ID().Bytes(),
		PacketID:      e.PacketID().Bytes(),
		RouteID:       optionalID(e.RouteID()),
		StepID:        optionalID(e.StepID()),
		Action:        e.Action(),
		NewStepStatus: e.NewStepStatus(),
		CreatedAt:     e.CreatedAt(),
	}
}

// ToDomain converts a stored log line back to an entry.
func ToDomain(dto EntryDTO) (*deliverylog.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	packetID, err := kernel.UUIDFromBytes(dto.PacketID[:])
	if err != nil {
		return nil, err
	}
	routeID, err := restoreID(dto.RouteID)
	if err != nil {
		return nil, err
	}
	stepID, err := restoreID(dto.StepID)
	if err != nil {
		return nil, err
	}
	return deliverylog.RestoreEntry(id, packetID, routeID, stepID, dto.Action, dto.NewStepStatus, dto.CreatedAt)
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
