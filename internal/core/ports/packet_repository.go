package ports

import (
	"context"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/packet"
)

// PacketRepository defines the persistence contract for packets.
type PacketRepository interface {
	// Add persists a new packet. Returns ErrHumanIDTaken when the packet's
	// human readable code is already in use.
	Add(ctx context.Context, p *packet.Packet) error

	// Update persists the cancellation flag.
	Update(ctx context.Context, p *packet.Packet) error

	Get(ctx context.Context, id kernel.UUID) (*packet.Packet, error)

	// GetForUpdate loads the packet and locks its row until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*packet.Packet, error)

	// ListWithoutValidRoute returns identifiers of packets that are not
	// cancelled and either have no current route or a current route with a
	// rejected or cancelled step that is not delivered yet. Packets whose
	// latest log entry is a NO_ROUTE_FOUND written after retryAfter are left
	// out. At most limit identifiers are returned, oldest packets first.
	ListWithoutValidRoute(ctx context.Context, limit int, retryAfter time.Time) ([]kernel.UUID, error)
}
