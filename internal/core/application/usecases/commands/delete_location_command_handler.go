package commands

import (
	"context"
	"log/slog"

	"relay/internal/core/domain/model/location"
)

// DeleteLocationCommandHandler soft-deletes a location. Its stays drop out of
// route search and current routes planned on them are re-planned.
type DeleteLocationCommandHandler struct {
	uowFactory UoWFactory
	planner    RouteMaintainer
	logger     *slog.Logger
}

func NewDeleteLocationCommandHandler(uowFactory UoWFactory, planner RouteMaintainer, logger *slog.Logger) DeleteLocationCommandHandler {
	return DeleteLocationCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		logger:     logger.With("component", "delete_location"),
	}
}

func (h DeleteLocationCommandHandler) Handle(ctx context.Context, cmd DeleteLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	packetIDs, err := changeLocation(ctx, h.uowFactory, cmd.LocationID(), cmd.UserID(), cmd.At(),
		func(l *location.Location) (bool, error) {
			l.Delete()
			return true, nil
		})
	if err != nil {
		return err
	}

	maintain(ctx, h.planner, h.logger, packetIDs, cmd.At())
	return nil
}
