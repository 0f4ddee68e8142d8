package events

import (
	"context"
	"log/slog"

	"relay/internal/core/domain/model/chat"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/route"
	"relay/internal/core/ports"
)

type eventSource interface {
	Events() <-chan kernel.DomainEvent
}

// Dispatcher turns route events into chat messages and notifications. A
// fully accepted route opens every step's chat; a committed step that is
// cancelled by a change elsewhere gets a cancellation notice.
// Failed deliveries are logged and do not stop the dispatcher.
type Dispatcher struct {
	source   eventSource
	notifier ports.Notifier
	logger   *slog.Logger
}

func NewDispatcher(source eventSource, notifier ports.Notifier, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		source:   source,
		notifier: notifier,
		logger:   logger.With("component", "event_dispatcher"),
	}
}

// Run handles events until the source is closed or ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-d.source.Events():
			if !ok {
				return
			}
			d.Dispatch(ctx, event)
		}
	}
}

// Dispatch handles a single event synchronously.
func (d *Dispatcher) Dispatch(ctx context.Context, event kernel.DomainEvent) {
	switch e := event.(type) {
	case route.RouteFullyAccepted:
		for _, h := range e.Handovers {
			msg := chat.NewSystemMessage(h.StepID, chat.HandoverArranged, chat.SystemArgs{
				Date:     h.Date,
				Location: h.PlaceName,
			})
			if err := d.notifier.SendChatMessage(ctx, msg); err != nil {
				d.logger.ErrorContext(ctx, "failed to send handover message",
					"route_id", e.RouteID.String(), "step_id", h.StepID.String(), "error", err)
			}
		}
	case route.StepStatusChanged:
		if e.Forced && e.To == route.Cancelled {
			msg := chat.NewSystemMessage(e.StepID, chat.HandoverCancelled, chat.SystemArgs{Location: e.PlaceName})
			if err := d.notifier.SendChatMessage(ctx, msg); err != nil {
				d.logger.ErrorContext(ctx, "failed to send cancellation message",
					"route_id", e.RouteID.String(), "step_id", e.StepID.String(), "error", err)
			}
		}
		d.notify(ctx, e.HolderID, event)
	case route.ParcelMoved:
		d.notify(ctx, e.HolderID, event)
	default:
		d.logger.DebugContext(ctx, "event ignored", "event", event.EventName())
	}
}

func (d *Dispatcher) notify(ctx context.Context, userID kernel.UUID, event kernel.DomainEvent) {
	if err := d.notifier.Notify(ctx, userID, event); err != nil {
		d.logger.ErrorContext(ctx, "failed to notify user",
			"user_id", userID.String(), "event", event.EventName(), "error", err)
	}
}
