package deliverylogrepo

import (
	"context"

	"relay/internal/core/domain/model/deliverylog"
	"relay/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormDeliveryLogRepository implements ports.DeliveryLogRepository using GORM.
// Entries are immutable and carry no domain events, so nothing is tracked.
type GormDeliveryLogRepository struct {
	db *gorm.DB
}

func NewGormDeliveryLogRepository(db *gorm.DB) *GormDeliveryLogRepository {
	return &GormDeliveryLogRepository{db: db}
}

func (r *GormDeliveryLogRepository) Add(ctx context.Context, entries ...*deliverylog.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(e))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

func (r *GormDeliveryLogRepository) ListByPacket(ctx context.Context, packetID kernel.UUID) ([]*deliverylog.Entry, error) {
	if err := packetID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).
		Where("packet_id = ?", packetID.Bytes()).
		Order("created_at DESC, seq DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]*deliverylog.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
