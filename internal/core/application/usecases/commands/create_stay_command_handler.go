package commands

import (
	"context"

	"relay/internal/core/domain/model/stay"
	"relay/internal/pkg/errs"
)

type CreateStayCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateStayCommandHandler(uowFactory UoWFactory) CreateStayCommandHandler {
	return CreateStayCommandHandler{uowFactory: uowFactory}
}

// Handle stores the stay. The location must belong to the user and must not
// be deleted.
func (h CreateStayCommandHandler) Handle(ctx context.Context, cmd CreateStayCommand) error {
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

	l, err := uow.LocationRepository().Get(ctx, cmd.LocationID())
	if err != nil {
		return err
	}
	if !l.UserID().IsEqual(cmd.UserID()) {
		return ErrNotOwner
	}
	if l.IsDeleted() {
		return errs.NewInvalidStateTransitionError("location", "deleted", "add stay to")
	}

	place, err := stay.NewPlace(l.ID(), l.Name(), l.Point(), l.IsDeleted())
	if err != nil {
		return err
	}
	s, err := stay.NewStay(cmd.StayID(), cmd.UserID(), place, cmd.Frequency(), cmd.Start(), cmd.End())
	if err != nil {
		return err
	}
	if err = uow.StayRepository().Add(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
