package queries

import (
	"context"
	"errors"
	"time"

	"relay/internal/core/domain/model/packet"
	"relay/internal/core/ports"
	"relay/internal/pkg/errs"
)

type (
	// PacketReadUoW exposes the repositories a packet read needs. Reads run
	// without an explicit transaction.
	PacketReadUoW interface {
		PacketRepository() ports.PacketRepository
		RouteRepository() ports.RouteRepository
	}

	PacketReadUoWFactory interface {
		Create() PacketReadUoW
	}
)

// GetPacketStatusQueryHandler loads a packet with its current route and
// derives the status from them.
type GetPacketStatusQueryHandler struct {
	uowFactory  PacketReadUoWFactory
	gracePeriod time.Duration
}

// NewGetPacketStatusQueryHandler creates the handler. A non-positive
// gracePeriod falls back to packet.DefaultNoRouteGracePeriod.
func NewGetPacketStatusQueryHandler(uowFactory PacketReadUoWFactory, gracePeriod time.Duration) *GetPacketStatusQueryHandler {
	return &GetPacketStatusQueryHandler{uowFactory: uowFactory, gracePeriod: gracePeriod}
}

func (h *GetPacketStatusQueryHandler) Handle(
	ctx context.Context,
	query GetPacketStatusQuery,
) (GetPacketStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPacketStatusQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	pkt, err := uow.PacketRepository().Get(ctx, query.PacketID())
	if err != nil {
		return GetPacketStatusQueryResponse{}, err
	}

	routes := uow.RouteRepository()
	current, err := routes.GetCurrentForPacket(ctx, pkt.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		current, err = nil, nil
	}
	if err != nil {
		return GetPacketStatusQueryResponse{}, err
	}

	lastCreatedAt, err := routes.LastCreatedAt(ctx, pkt.ID())
	if err != nil {
		return GetPacketStatusQueryResponse{}, err
	}

	response := GetPacketStatusQueryResponse{
		ID:          pkt.ID(),
		HumanID:     pkt.HumanID(),
		SenderID:    pkt.SenderID(),
		RecipientID: pkt.RecipientID(),
		CreatedAt:   pkt.CreatedAt(),
		Status: pkt.DeriveStatus(packet.StatusInput{
			CurrentRoute:       current,
			LastRouteCreatedAt: lastCreatedAt,
			Now:                query.At(),
			GracePeriod:        h.gracePeriod,
		}),
	}
	if current != nil {
		response.Route = newRouteView(current)
	}
	return response, nil
}
