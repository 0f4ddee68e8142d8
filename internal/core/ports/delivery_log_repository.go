package ports

import (
	"context"

	"relay/internal/core/domain/model/deliverylog"
	"relay/internal/core/domain/model/kernel"
)

// DeliveryLogRepository is the append-only store of delivery log entries.
type DeliveryLogRepository interface {
	Add(ctx context.Context, entries ...*deliverylog.Entry) error

	// ListByPacket returns the packet's entries, newest first.
	ListByPacket(ctx context.Context, packetID kernel.UUID) ([]*deliverylog.Entry, error)
}
