package queries

import (
	"errors"
	"time"

	"relay/internal/core/domain/model/deliverylog"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

var (
	ErrGetDeliveryLogQueryIsNotConstructed = errors.New(
		"GetDeliveryLogQuery must be created via NewGetDeliveryLogQuery constructor",
	)
)

// GetDeliveryLogQuery retrieves the history of one packet.
type GetDeliveryLogQuery struct {
	packetID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDeliveryLogQuery(packetID kernel.UUID) (GetDeliveryLogQuery, error) {
	if err := packetID.Validate(); err != nil {
		return GetDeliveryLogQuery{}, errs.NewValueIsRequiredErrorWithCause("packetID", err)
	}
	return GetDeliveryLogQuery{packetID: packetID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveryLogQuery) PacketID() kernel.UUID {
	return q.packetID
}

func (q GetDeliveryLogQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryLogQueryIsNotConstructed)
}

// GetDeliveryLogQueryResponse is one rendered log line.
type GetDeliveryLogQueryResponse struct {
	CreatedAt   time.Time
	Action      deliverylog.Action
	Description string
	RouteID     *kernel.UUID
	StepID      *kernel.UUID
}
