package commands

import (
	"context"
	"log/slog"

	"relay/internal/core/domain/model/deliverylog"
	"relay/internal/core/domain/model/route"
)

// StepActionCommandHandler applies holder actions to committed steps.
// Completing a step may advance the following steps; cancelling one
// re-plans the packet's route after commit.
type StepActionCommandHandler struct {
	uowFactory PlanningUoWFactory
	planner    RouteMaintainer
	logger     *slog.Logger
}

func NewStepActionCommandHandler(
	uowFactory PlanningUoWFactory,
	planner RouteMaintainer,
	logger *slog.Logger,
) StepActionCommandHandler {
	return StepActionCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		logger:     logger.With("component", "step_action"),
	}
}

func (h StepActionCommandHandler) Handle(ctx context.Context, cmd StepActionCommand) error {
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

	routeRepo := uow.RouteRepository()
	r, err := routeRepo.GetByStep(ctx, cmd.StepID())
	if err != nil {
		return err
	}
	step, err := r.Step(cmd.StepID())
	if err != nil {
		return err
	}
	if !step.HolderID().IsEqual(cmd.UserID()) {
		return ErrNotStepHolder
	}

	if err = h.apply(ctx, uow, r, cmd); err != nil {
		return err
	}

	entries, err := deliverylog.EntriesFromEvents(r.DomainEvents(), cmd.At())
	if err != nil {
		return err
	}
	if err = routeRepo.Update(ctx, r); err != nil {
		return err
	}
	if err = uow.DeliveryLogRepository().Add(ctx, entries...); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if cmd.Action() == CancelStep {
		replan(ctx, h.planner, h.logger, r.PacketID(), cmd.At())
	}
	return nil
}

func (h StepActionCommandHandler) apply(ctx context.Context, uow PlanningUoW, r *route.Route, cmd StepActionCommand) error {
	switch cmd.Action() {
	case CompleteStep:
		p, err := uow.PacketRepository().Get(ctx, r.PacketID())
		if err != nil {
			return err
		}
		return r.CompleteStep(cmd.StepID(), p.RecipientID())
	case CancelStep:
		return r.CancelStep(cmd.StepID())
	case ReportProblem:
		return r.ReportProblem(cmd.StepID())
	case ResumeStep:
		return r.ResumeStep(cmd.StepID())
	case UnknownStepAction:
	}
	return cmd.Action().Validate()
}
