package commands

import (
	"context"
	"log/slog"
	"time"

	"relay/internal/core/domain/model/deliverylog"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/route"
)

// invalidateStays forces the steps planned on the given stays out of all
// current routes and returns the packets whose routes changed.
func invalidateStays(ctx context.Context, uow UoW, stayIDs []kernel.UUID, at time.Time) ([]kernel.UUID, error) {
	routeRepo := uow.RouteRepository()

	loaded := make(map[kernel.UUID]*route.Route)
	var changed []*route.Route
	for _, stayID := range stayIDs {
		routes, err := routeRepo.ListCurrentByStay(ctx, stayID)
		if err != nil {
			return nil, err
		}
		for _, r := range routes {
			if known, ok := loaded[r.ID()]; ok {
				r = known
			} else {
				loaded[r.ID()] = r
			}
			wasChanged := len(r.DomainEvents()) > 0
			if r.InvalidateStay(stayID) && !wasChanged {
				changed = append(changed, r)
			}
		}
	}

	var entries []*deliverylog.Entry
	packetIDs := make([]kernel.UUID, 0, len(changed))
	for _, r := range changed {
		routeEntries, err := deliverylog.EntriesFromEvents(r.DomainEvents(), at)
		if err != nil {
			return nil, err
		}
		if err = routeRepo.Update(ctx, r); err != nil {
			return nil, err
		}
		entries = append(entries, routeEntries...)
		packetIDs = append(packetIDs, r.PacketID())
	}

	if len(entries) > 0 {
		if err := uow.DeliveryLogRepository().Add(ctx, entries...); err != nil {
			return nil, err
		}
	}
	return packetIDs, nil
}

// maintain re-plans the given packets after their routes were invalidated.
func maintain(ctx context.Context, planner RouteMaintainer, logger *slog.Logger, packetIDs []kernel.UUID, at time.Time) {
	for _, packetID := range packetIDs {
		replan(ctx, planner, logger, packetID, at)
	}
}

// replan runs the planner after a committed change. A failure leaves the
// change in place; the maintenance sweep picks the packet up again.
func replan(ctx context.Context, planner RouteMaintainer, logger *slog.Logger, packetID kernel.UUID, at time.Time) {
	if _, err := planner.CheckAndRecalculate(ctx, packetID, at); err != nil {
		logger.WarnContext(ctx, "route planning failed, left to maintenance sweep",
			"packet_id", packetID.String(), "error", err)
	}
}
