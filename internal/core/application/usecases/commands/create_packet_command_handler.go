package commands

import (
	"context"
	"log/slog"
	"errors"
	"fmt"

	"relay/internal/core/domain/model/packet"
	"relay/internal/core/ports"
)

// maxHumanIDAttempts bounds retries on packet code collisions.
const maxHumanIDAttempts = 5

// CreatePacketCommandHandler registers a packet under a fresh human readable
// code and plans its first route.
type CreatePacketCommandHandler struct {
	uowFactory UoWFactory
	humanIDs   ports.HumanIDGenerator
	planner    RouteMaintainer
	logger     *slog.Logger
}

func NewCreatePacketCommandHandler(
	uowFactory UoWFactory,
	humanIDs ports.HumanIDGenerator,
	planner RouteMaintainer,
	logger *slog.Logger,
) CreatePacketCommandHandler {
	return CreatePacketCommandHandler{
		uowFactory: uowFactory,
		humanIDs:   humanIDs,
		planner:    planner,
		logger:     logger.With("component", "create_packet"),
	}
}

// Handle stores the packet and runs route planning. A packet for which no
// route could be planned yet is still created; the maintenance sweep keeps
// trying.
func (h CreatePacketCommandHandler) Handle(ctx context.Context, cmd CreatePacketCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var err error
	for attempt := 1; attempt <= maxHumanIDAttempts; attempt++ {
		err = h.create(ctx, cmd)
		if !errors.Is(err, ports.ErrHumanIDTaken) {
			break
		}
	}
	if err != nil {
		return err
	}

	replan(ctx, h.planner, h.logger, cmd.PacketID(), cmd.At())
	return nil
}

func (h CreatePacketCommandHandler) create(ctx context.Context, cmd CreatePacketCommand) error {
	humanID, err := h.humanIDs.Generate()
	if err != nil {
		return fmt.Errorf("generate packet code: %w", err)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	if _, err = userRepo.Get(ctx, cmd.SenderID()); err != nil {
		return err
	}
	if _, err = userRepo.Get(ctx, cmd.RecipientID()); err != nil {
		return err
	}

	p, err := packet.NewPacket(cmd.PacketID(), cmd.SenderID(), cmd.RecipientID(), humanID, cmd.At())
	if err != nil {
		return err
	}
	if err = uow.PacketRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
