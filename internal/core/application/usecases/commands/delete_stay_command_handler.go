package commands

import (
	"context"
	"log/slog"

	"relay/internal/core/domain/model/stay"
)

// DeleteStayCommandHandler soft-deletes a stay and re-plans the current
// routes that used it.
type DeleteStayCommandHandler struct {
	uowFactory UoWFactory
	planner    RouteMaintainer
	logger     *slog.Logger
}

func NewDeleteStayCommandHandler(uowFactory UoWFactory, planner RouteMaintainer, logger *slog.Logger) DeleteStayCommandHandler {
	return DeleteStayCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		logger:     logger.With("component", "delete_stay"),
	}
}

func (h DeleteStayCommandHandler) Handle(ctx context.Context, cmd DeleteStayCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	packetIDs, err := changeStay(ctx, h.uowFactory, cmd.StayID(), cmd.UserID(), cmd.At(),
		func(s *stay.Stay) (bool, error) {
			s.Delete()
			return true, nil
		})
	if err != nil {
		return err
	}

	maintain(ctx, h.planner, h.logger, packetIDs, cmd.At())
	return nil
}
