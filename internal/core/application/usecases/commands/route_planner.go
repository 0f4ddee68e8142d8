package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"relay/internal/core/domain/model/deliverylog"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/packet"
	"relay/internal/core/domain/model/route"
	"relay/internal/core/domain/model/stay"
	"relay/internal/core/domain/services"
	"relay/internal/pkg/errs"
)

// RoutePlanner keeps a packet's current route valid. It is the single path
// through which routes are created: packet creation, the maintenance sweep and
// every change that invalidates a route end up in CheckAndRecalculate.
type RoutePlanner struct {
	uowFactory PlanningUoWFactory
	policy     services.Policy
	allocator  services.DateRangeAllocator
	logger     *slog.Logger
}

func NewRoutePlanner(uowFactory PlanningUoWFactory, policy services.Policy, logger *slog.Logger) *RoutePlanner {
	return &RoutePlanner{
		uowFactory: uowFactory,
		policy:     policy,
		allocator:  services.NewDateRangeAllocator(),
		logger:     logger.With("component", "route_planner"),
	}
}

// CheckAndRecalculate returns the packet's current route when it is still
// valid. Otherwise the outdated route is cancelled and a new one planned for
// the day of at, all in one transaction.
//
// A nil route with nil error means no route exists: the packet is cancelled
// or the search found none (a NO_ROUTE_FOUND entry is logged). When planning
// fails unexpectedly nothing but a NO_ROUTE_FOUND entry is written and the
// error is returned.
func (p *RoutePlanner) CheckAndRecalculate(ctx context.Context, packetID kernel.UUID, at time.Time) (*route.Route, error) {
	r, searched, err := p.checkAndRecalculate(ctx, packetID, at)
	if err == nil || !searched {
		return r, err
	}

	p.logger.ErrorContext(ctx, "route planning failed", "packet_id", packetID.String(), "error", err)
	if logErr := p.recordNoRoute(ctx, packetID, at); logErr != nil {
		p.logger.ErrorContext(ctx, "failed to record missing route", "packet_id", packetID.String(), "error", logErr)
	}
	return nil, err
}

func (p *RoutePlanner) checkAndRecalculate(
	ctx context.Context,
	packetID kernel.UUID,
	at time.Time,
) (*route.Route, bool, error) {
	uow := p.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// The row lock serializes planners of the same packet until commit.
	pkt, err := uow.PacketRepository().GetForUpdate(ctx, packetID)
	if err != nil {
		return nil, false, err
	}
	if pkt.IsCancelled() {
		return nil, false, nil
	}

	routeRepo := uow.RouteRepository()
	current, err := routeRepo.GetCurrentForPacket(ctx, packetID)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		current = nil
	case err != nil:
		return nil, false, err
	case !current.IsOutdated():
		return current, false, nil
	}

	logRepo := uow.DeliveryLogRepository()
	searching, err := deliverylog.NewSearchingRouteEntry(packetID, at)
	if err != nil {
		return nil, true, err
	}
	if err = logRepo.Add(ctx, searching); err != nil {
		return nil, true, err
	}

	if current != nil {
		if err = current.Cancel(); err != nil {
			return nil, true, err
		}
		if err = routeRepo.Update(ctx, current); err != nil {
			return nil, true, err
		}
	}

	day := kernel.DateOf(at)
	path, err := services.NewRouteFinder(uow.StayRepository(), p.policy).FindRoute(ctx, pkt, day)
	if errors.Is(err, services.ErrNoRouteFound) {
		p.logger.WarnContext(ctx, "no route found", "packet_id", packetID.String(), "day", day.String())
		noRoute, entryErr := deliverylog.NewNoRouteFoundEntry(packetID, at)
		if entryErr != nil {
			return nil, true, entryErr
		}
		if err = logRepo.Add(ctx, noRoute); err != nil {
			return nil, true, err
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, true, err
		}
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}

	planned, err := p.materialize(pkt, path, day, at)
	if err != nil {
		return nil, true, err
	}
	if err = routeRepo.Add(ctx, planned); err != nil {
		return nil, true, err
	}

	created, err := deliverylog.NewRouteEntry(packetID, planned.ID(), at)
	if err != nil {
		return nil, true, err
	}
	if err = logRepo.Add(ctx, created); err != nil {
		return nil, true, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, true, err
	}

	p.logger.InfoContext(ctx, "route created",
		"packet_id", packetID.String(),
		"route_id", planned.ID().String(),
		"steps", len(planned.Steps()),
	)
	return planned, false, nil
}

func (p *RoutePlanner) materialize(
	pkt *packet.Packet,
	path []*stay.Stay,
	day kernel.Date,
	at time.Time,
) (*route.Route, error) {
	periods, err := p.allocator.Allocate(path, day)
	if err != nil {
		return nil, fmt.Errorf("allocate handover dates: %w", err)
	}

	steps := make([]*route.Step, len(path))
	for i, s := range path {
		steps[i], err = route.NewStep(kernel.NewUUID(), s.ID(), s.UserID(), s.Place().Name(), periods[i])
		if err != nil {
			return nil, err
		}
	}
	return route.NewRoute(kernel.NewUUID(), pkt.ID(), at, steps)
}

func (p *RoutePlanner) recordNoRoute(ctx context.Context, packetID kernel.UUID, at time.Time) error {
	entry, err := deliverylog.NewNoRouteFoundEntry(packetID, at)
	if err != nil {
		return err
	}

	uow := p.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryLogRepository().Add(ctx, entry); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
