package queries

import (
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/packet"
	"relay/internal/core/domain/model/route"
	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

var (
	ErrGetPacketStatusQueryIsNotConstructed = errors.New(
		"GetPacketStatusQuery must be created via NewGetPacketStatusQuery constructor",
	)
)

// GetPacketStatusQuery asks for the derived delivery status of a packet as of
// a point in time.
//
// Example:
//
//	query, err := NewGetPacketStatusQuery(packetID, time.Now())
//	if err != nil {
//	    return err
//	}
//
//	status, err := handler.Handle(ctx, query)
//	fmt.Println(status.Status) // e.g. "confirming_route"
type GetPacketStatusQuery struct {
	packetID kernel.UUID
	at       time.Time

	guard guard.ConstructorGuard
}

func NewGetPacketStatusQuery(packetID kernel.UUID, at time.Time) (GetPacketStatusQuery, error) {
	if err := packetID.Validate(); err != nil {
		return GetPacketStatusQuery{}, errs.NewValueIsRequiredErrorWithCause("packetID", err)
	}
	if at.IsZero() {
		return GetPacketStatusQuery{}, errs.NewValueIsRequiredError("at")
	}

	return GetPacketStatusQuery{
		packetID: packetID,
		at:       at,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetPacketStatusQuery) PacketID() kernel.UUID {
	return q.packetID
}

func (q GetPacketStatusQuery) At() time.Time {
	return q.at
}

func (q GetPacketStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetPacketStatusQueryIsNotConstructed)
}

// GetPacketStatusQueryResponse is the packet read model shown to sender and
// recipient. Route is nil while the packet has no current route.
type GetPacketStatusQueryResponse struct {
	ID          kernel.UUID
	HumanID     string
	SenderID    kernel.UUID
	RecipientID kernel.UUID
	CreatedAt   time.Time
	Status      packet.Status
	Route       *RouteView
}

type RouteView struct {
	ID        kernel.UUID
	CreatedAt time.Time
	Steps     []StepView
}

type StepView struct {
	ID        kernel.UUID
	HolderID  kernel.UUID
	PlaceName string
	Start     kernel.Date
	End       kernel.Date
	Status    route.StepStatus
}

func newRouteView(r *route.Route) *RouteView {
	steps := make([]StepView, 0, len(r.Steps()))
	for _, s := range r.Steps() {
		steps = append(steps, StepView{
			ID:        s.ID(),
			HolderID:  s.HolderID(),
			PlaceName: s.PlaceName(),
			Start:     s.Period().Start(),
			End:       s.Period().End(),
			Status:    s.Status(),
		})
	}
	return &RouteView{ID: r.ID(), CreatedAt: r.CreatedAt(), Steps: steps}
}
