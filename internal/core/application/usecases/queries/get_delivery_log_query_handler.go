package queries

import (
	"context"

	"relay/internal/core/domain/model/deliverylog"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/route"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryLogQueryHandler reads the delivery log of a packet, newest
// entries first. Entries written in the same instant keep their reverse
// insertion order.
//
// Example:
//
//	handler := NewGetDeliveryLogQueryHandler(db)
//	query, _ := NewGetDeliveryLogQuery(packetID)
//
//	lines, err := handler.Handle(ctx, query)
//	for _, line := range lines {
//	    fmt.Printf("%s %s\n", line.CreatedAt.Format(time.DateTime), line.Description)
//	}
type GetDeliveryLogQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryLogQueryHandler(db *gorm.DB) GetDeliveryLogQueryHandler {
	return GetDeliveryLogQueryHandler{db: db}
}

func (h GetDeliveryLogQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryLogQuery,
) ([]GetDeliveryLogQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			route_id,
			step_id,
			action,
			new_step_status,
			created_at
		FROM delivery_logs
		WHERE packet_id = ?
		ORDER BY created_at DESC, seq DESC
	`, query.PacketID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]GetDeliveryLogQueryResponse, 0)
	for rows.Next() {
		var (
			id            uuid.UUID
			routeID       uuid.NullUUID
			stepID        uuid.NullUUID
			action        string
			newStepStatus int16
			line          GetDeliveryLogQueryResponse
		)
		if err = rows.Scan(&id, &routeID, &stepID, &action, &newStepStatus, &line.CreatedAt); err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		if line.RouteID, err = nullableID(routeID); err != nil {
			return nil, err
		}
		if line.StepID, err = nullableID(stepID); err != nil {
			return nil, err
		}

		entry, entryErr := deliverylog.RestoreEntry(
			entryID,
			query.PacketID(),
			line.RouteID,
			line.StepID,
			deliverylog.Action(action),
			route.StepStatus(newStepStatus),
			line.CreatedAt,
		)
		if entryErr != nil {
			return nil, entryErr
		}
		line.Action = entry.Action()
		line.Description = entry.Describe()
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func nullableID(raw uuid.NullUUID) (*kernel.UUID, error) {
	if !raw.Valid {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
