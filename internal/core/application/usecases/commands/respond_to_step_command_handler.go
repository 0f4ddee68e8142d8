package commands

import (
	"context"
	"log/slog"

	"relay/internal/core/domain/model/deliverylog"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/route"
)

// Cooldowns are the days a stay is left out of route search after its holder
// turned a suggested step down.
type Cooldowns struct {
	Reject   int
	AskLater int
}

func DefaultCooldowns() Cooldowns {
	return Cooldowns{Reject: 90, AskLater: 7}
}

// RespondToStepCommandHandler records a holder's answer to a suggested step.
//
// Accepting the last open step starts the route. Rejecting (or asking to be
// asked later) snoozes the step's stay and re-plans the packet's route.
//
// Example:
//
//	cmd, _ := NewRespondToStepCommand(stepID, userID, Reject, time.Now())
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrInvalidStateTransition) {
//	    // the step was answered already
//	}
type RespondToStepCommandHandler struct {
	uowFactory PlanningUoWFactory
	planner    RouteMaintainer
	cooldowns  Cooldowns
	logger     *slog.Logger
}

func NewRespondToStepCommandHandler(
	uowFactory PlanningUoWFactory,
	planner RouteMaintainer,
	cooldowns Cooldowns,
	logger *slog.Logger,
) RespondToStepCommandHandler {
	return RespondToStepCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		cooldowns:  cooldowns,
		logger:     logger.With("component", "respond_to_step"),
	}
}

func (h RespondToStepCommandHandler) Handle(ctx context.Context, cmd RespondToStepCommand) error {
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

	if cmd.Response() == Accept {
		err = r.AcceptStep(cmd.StepID())
	} else {
		err = h.reject(ctx, uow, r, step.StayID(), cmd)
	}
	if err != nil {
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

	if cmd.Response() != Accept {
		replan(ctx, h.planner, h.logger, r.PacketID(), cmd.At())
	}
	return nil
}

func (h RespondToStepCommandHandler) reject(
	ctx context.Context,
	uow PlanningUoW,
	r *route.Route,
	stayID kernel.UUID,
	cmd RespondToStepCommand,
) error {
	if err := r.RejectStep(cmd.StepID()); err != nil {
		return err
	}

	days := h.cooldowns.Reject
	if cmd.Response() == AskLater {
		days = h.cooldowns.AskLater
	}

	stayRepo := uow.StayRepository()
	s, err := stayRepo.Get(ctx, stayID)
	if err != nil {
		return err
	}
	if err = s.SnoozeUntil(kernel.DateOf(cmd.At()).AddDays(days)); err != nil {
		return err
	}
	return stayRepo.Update(ctx, s)
}
