package commands

import (
	"context"
	"slices"

	"relay/internal/core/domain/model/chat"
	"relay/internal/core/ports"
)

// PostChatMessageCommandHandler forwards a user's message to the chat of a
// step they take part in.
type PostChatMessageCommandHandler struct {
	uowFactory PlanningUoWFactory
	notifier   ports.Notifier
}

func NewPostChatMessageCommandHandler(uowFactory PlanningUoWFactory, notifier ports.Notifier) PostChatMessageCommandHandler {
	return PostChatMessageCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h PostChatMessageCommandHandler) Handle(ctx context.Context, cmd PostChatMessageCommand) error {
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

	r, err := uow.RouteRepository().GetByStep(ctx, cmd.StepID())
	if err != nil {
		return err
	}
	parties, err := r.Parties(cmd.StepID())
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(parties, cmd.AuthorID().IsEqual) {
		return ErrNotStepParty
	}

	return h.notifier.SendChatMessage(ctx, chat.NewUserMessage(cmd.StepID(), cmd.AuthorID(), cmd.Text(), cmd.At()))
}
