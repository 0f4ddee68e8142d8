package commands

import (
	"context"
	"errors"

	"relay/internal/core/domain/model/deliverylog"
	"relay/internal/pkg/errs"
)

// CancelPacketCommandHandler cancels a packet together with the open steps
// and the current route. Delivered packets cannot be cancelled.
type CancelPacketCommandHandler struct {
	uowFactory PlanningUoWFactory
}

func NewCancelPacketCommandHandler(uowFactory PlanningUoWFactory) CancelPacketCommandHandler {
	return CancelPacketCommandHandler{uowFactory: uowFactory}
}

func (h CancelPacketCommandHandler) Handle(ctx context.Context, cmd CancelPacketCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	packetRepo := uow.PacketRepository()
	p, err := packetRepo.Get(ctx, cmd.PacketID())
	if err != nil {
		return err
	}
	if !p.SenderID().IsEqual(cmd.UserID()) {
		return ErrNotOwner
	}

	routeRepo := uow.RouteRepository()
	r, err := routeRepo.GetCurrentForPacket(ctx, cmd.PacketID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		r = nil
	case err != nil:
		return err
	case r.IsDelivered():
		return errs.NewInvalidStateTransitionError("packet", "delivered", "cancel")
	}

	if err = p.Cancel(); err != nil {
		return err
	}
	if err = packetRepo.Update(ctx, p); err != nil {
		return err
	}
	if r == nil {
		return uow.Commit(ctx)
	}

	r.InvalidateAll()
	if err = r.Cancel(); err != nil {
		return err
	}
	entries, err := deliverylog.EntriesFromEvents(r.DomainEvents(), cmd.At())
	if err != nil {
		return err
	}
	if err = routeRepo.Update(ctx, r); err != nil {
		return err
	}
	if err = uow.DeliveryLogRepository().Add(ctx, entries...); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
