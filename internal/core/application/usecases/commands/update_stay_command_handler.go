package commands

import (
	"context"
	"log/slog"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/stay"
)

// UpdateStayCommandHandler reschedules a stay. When the schedule actually
// changes, current routes planned on the stay are invalidated and re-planned.
type UpdateStayCommandHandler struct {
	uowFactory UoWFactory
	planner    RouteMaintainer
	logger     *slog.Logger
}

func NewUpdateStayCommandHandler(uowFactory UoWFactory, planner RouteMaintainer, logger *slog.Logger) UpdateStayCommandHandler {
	return UpdateStayCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		logger:     logger.With("component", "update_stay"),
	}
}

func (h UpdateStayCommandHandler) Handle(ctx context.Context, cmd UpdateStayCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	packetIDs, err := changeStay(ctx, h.uowFactory, cmd.StayID(), cmd.UserID(), cmd.At(),
		func(s *stay.Stay) (bool, error) {
			return s.Reschedule(cmd.Frequency(), cmd.Start(), cmd.End())
		})
	if err != nil {
		return err
	}

	maintain(ctx, h.planner, h.logger, packetIDs, cmd.At())
	return nil
}

// changeStay applies change to an owned stay and, when it reports true,
// invalidates current routes planned on it.
func changeStay(
	ctx context.Context,
	uowFactory UoWFactory,
	stayID, userID kernel.UUID,
	at time.Time,
	change func(*stay.Stay) (bool, error),
) ([]kernel.UUID, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stayRepo := uow.StayRepository()
	s, err := stayRepo.Get(ctx, stayID)
	if err != nil {
		return nil, err
	}
	if !s.UserID().IsEqual(userID) {
		return nil, ErrNotOwner
	}

	invalidates, err := change(s)
	if err != nil {
		return nil, err
	}
	if err = stayRepo.Update(ctx, s); err != nil {
		return nil, err
	}

	var packetIDs []kernel.UUID
	if invalidates {
		if packetIDs, err = invalidateStays(ctx, uow, []kernel.UUID{stayID}, at); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return packetIDs, nil
}
