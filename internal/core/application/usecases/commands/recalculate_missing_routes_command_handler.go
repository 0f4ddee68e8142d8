package commands

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// SweepResult summarizes one maintenance sweep.
type SweepResult struct {
	Checked int
	Routed  int
	Failed  int
}

// DefaultRetryBackoff is how long a packet without a route rests before the
// sweep searches again.
const DefaultRetryBackoff = time.Hour

// RecalculateMissingRoutesCommandHandler re-plans every packet without a
// valid route. Packets are independent and are planned in parallel, each in
// its own transaction. A packet whose last search found nothing is retried
// once retryBackoff has passed.
type RecalculateMissingRoutesCommandHandler struct {
	uowFactory   PlanningUoWFactory
	planner      RouteMaintainer
	concurrency  int
	retryBackoff time.Duration
}

func NewRecalculateMissingRoutesCommandHandler(
	uowFactory PlanningUoWFactory,
	planner RouteMaintainer,
	concurrency int,
	retryBackoff time.Duration,
) RecalculateMissingRoutesCommandHandler {
	if concurrency <= 0 {
		concurrency = 1
	}
	if retryBackoff < 0 {
		retryBackoff = 0
	}
	return RecalculateMissingRoutesCommandHandler{
		uowFactory:   uowFactory,
		planner:      planner,
		concurrency:  concurrency,
		retryBackoff: retryBackoff,
	}
}

func (h RecalculateMissingRoutesCommandHandler) Handle(
	ctx context.Context,
	cmd RecalculateMissingRoutesCommand,
) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SweepResult{}, err
	}
	packetIDs, err := uow.PacketRepository().ListWithoutValidRoute(ctx, cmd.BatchSize(), cmd.At().Add(-h.retryBackoff))
	_ = uow.Rollback(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	var routed, failed atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(h.concurrency)
	for _, packetID := range packetIDs {
		g.Go(func() error {
			r, planErr := h.planner.CheckAndRecalculate(ctx, packetID, cmd.At())
			switch {
			case planErr != nil:
				failed.Add(1)
			case r != nil:
				routed.Add(1)
			}
			// one failing packet must not stop the sweep
			return nil
		})
	}
	_ = g.Wait()

	return SweepResult{
		Checked: len(packetIDs),
		Routed:  int(routed.Load()),
		Failed:  int(failed.Load()),
	}, ctx.Err()
}
