package commands

import (
	"context"

	"relay/internal/core/domain/model/route"
)

type RecalculateRouteCommandHandler struct {
	planner RouteMaintainer
}

func NewRecalculateRouteCommandHandler(planner RouteMaintainer) RecalculateRouteCommandHandler {
	return RecalculateRouteCommandHandler{planner: planner}
}

// Handle returns the packet's valid route, nil when none could be planned.
func (h RecalculateRouteCommandHandler) Handle(ctx context.Context, cmd RecalculateRouteCommand) (*route.Route, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.planner.CheckAndRecalculate(ctx, cmd.PacketID(), cmd.At())
}
