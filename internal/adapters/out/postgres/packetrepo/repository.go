package packetrepo

import (
	"context"
	"errors"
	"time"

	"relay/internal/core/domain/model/deliverylog"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/packet"
	"relay/internal/core/domain/model/route"
	"relay/internal/core/ports"
	"relay/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// uniqueViolation is the postgres SQLSTATE of unique constraint violations.
const uniqueViolation = "23505"

// GormPacketRepository implements ports.PacketRepository using GORM.
type GormPacketRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPacketRepository(db *gorm.DB, tracker aggregateTracker) *GormPacketRepository {
	return &GormPacketRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new packet. A duplicate packet code is reported as
// ports.ErrHumanIDTaken.
func (r *GormPacketRepository) Add(ctx context.Context, aggregate *packet.Packet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == humanIDConstraint {
			return ports.ErrHumanIDTaken
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPacketRepository) Update(ctx context.Context, aggregate *packet.Packet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&PacketDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("cancelled", aggregate.IsCancelled())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("packet", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPacketRepository) Get(ctx context.Context, id kernel.UUID) (*packet.Packet, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate takes a FOR UPDATE lock on the packet row.
func (r *GormPacketRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*packet.Packet, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormPacketRepository) get(db *gorm.DB, id kernel.UUID) (*packet.Packet, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PacketDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("packet", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListWithoutValidRoute returns packets that are not cancelled and have no
// current route that is either delivered or free of rejected and cancelled
// steps. Packets that failed to find a route after retryAfter wait for a
// later sweep. Oldest packets come first.
func (r *GormPacketRepository) ListWithoutValidRoute(
	ctx context.Context,
	limit int,
	retryAfter time.Time,
) ([]kernel.UUID, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT p.id
		FROM packets p
		WHERE p.cancelled = false
		  AND NOT EXISTS (
			SELECT 1
			FROM routes r
			WHERE r.packet_id = p.id
			  AND r.status = ?
			  AND (
				EXISTS (
					SELECT 1 FROM route_steps last
					WHERE last.route_id = r.id
					  AND last.status = ?
					  AND last.position = (SELECT max(position) FROM route_steps WHERE route_id = r.id)
				)
				OR NOT EXISTS (
					SELECT 1 FROM route_steps s
					WHERE s.route_id = r.id AND s.status IN ?
				)
			  )
		  )
		  AND NOT EXISTS (
			SELECT 1
			FROM (
				SELECT l.action, l.created_at
				FROM delivery_logs l
				WHERE l.packet_id = p.id
				ORDER BY l.created_at DESC, l.seq DESC
				LIMIT 1
			) latest
			WHERE latest.action = ? AND latest.created_at > ?
		  )
		ORDER BY p.created_at, p.id
		LIMIT ?
	`, int(route.Current), int(route.Completed), []int{int(route.Rejected), int(route.Cancelled)},
		string(deliverylog.NoRouteFound), retryAfter, limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]kernel.UUID, 0)
	for rows.Next() {
		var raw uuid.UUID
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}
		id, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
