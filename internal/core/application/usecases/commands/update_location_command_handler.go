package commands

import (
	"context"
	"log/slog"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/location"
)

// UpdateLocationCommandHandler edits a location. When the point moves, every
// current route planned on one of its stays is invalidated and re-planned.
type UpdateLocationCommandHandler struct {
	uowFactory UoWFactory
	planner    RouteMaintainer
	logger     *slog.Logger
}

func NewUpdateLocationCommandHandler(uowFactory UoWFactory, planner RouteMaintainer, logger *slog.Logger) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		logger:     logger.With("component", "update_location"),
	}
}

func (h UpdateLocationCommandHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	packetIDs, err := changeLocation(ctx, h.uowFactory, cmd.LocationID(), cmd.UserID(), cmd.At(),
		func(l *location.Location) (bool, error) {
			return l.Edit(cmd.Name(), cmd.Point())
		})
	if err != nil {
		return err
	}

	maintain(ctx, h.planner, h.logger, packetIDs, cmd.At())
	return nil
}

// changeLocation applies change to an owned location and, when it reports
// true, invalidates routes planned on the location's stays.
func changeLocation(
	ctx context.Context,
	uowFactory UoWFactory,
	locationID, userID kernel.UUID,
	at time.Time,
	change func(*location.Location) (bool, error),
) ([]kernel.UUID, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	locationRepo := uow.LocationRepository()
	l, err := locationRepo.Get(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if !l.UserID().IsEqual(userID) {
		return nil, ErrNotOwner
	}

	invalidates, err := change(l)
	if err != nil {
		return nil, err
	}
	if err = locationRepo.Update(ctx, l); err != nil {
		return nil, err
	}

	var packetIDs []kernel.UUID
	if invalidates {
		stays, listErr := uow.StayRepository().ListByLocation(ctx, locationID)
		if listErr != nil {
			return nil, listErr
		}
		stayIDs := make([]kernel.UUID, len(stays))
		for i, s := range stays {
			stayIDs[i] = s.ID()
		}
		if packetIDs, err = invalidateStays(ctx, uow, stayIDs, at); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return packetIDs, nil
}
