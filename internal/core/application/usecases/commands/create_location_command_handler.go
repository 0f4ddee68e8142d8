package commands

import (
	"context"

	"relay/internal/core/domain/model/location"
)

type CreateLocationCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateLocationCommandHandler(uowFactory UoWFactory) CreateLocationCommandHandler {
	return CreateLocationCommandHandler{uowFactory: uowFactory}
}

func (h CreateLocationCommandHandler) Handle(ctx context.Context, cmd CreateLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	l, err := location.NewLocation(cmd.LocationID(), cmd.UserID(), cmd.Name(), cmd.Point(), cmd.IsHome())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.UserRepository().Get(ctx, cmd.UserID()); err != nil {
		return err
	}
	if err = uow.LocationRepository().Add(ctx, l); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
