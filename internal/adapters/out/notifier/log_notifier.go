// Package notifier contains ports.Notifier implementations.
package notifier

import (
	"context"
	"log/slog"

	"relay/internal/core/domain/model/chat"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/route"
)

// LogNotifier writes every message to the log instead of delivering it.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

func (n *LogNotifier) SendChatMessage(ctx context.Context, msg chat.Message) error {
	attrs := []any{"step_id", msg.StepID().String(), "text", msg.Render()}
	switch m := msg.(type) {
	case chat.SystemMessage:
		n.logger.InfoContext(ctx, "system chat message", append(attrs, "kind", string(m.Kind()))...)
	case chat.UserMessage:
		n.logger.InfoContext(ctx, "user chat message",
			append(attrs, "author_id", m.AuthorID().String(), "sent_at", m.SentAt())...)
	}
	return nil
}

func (n *LogNotifier) Notify(ctx context.Context, userID kernel.UUID, event kernel.DomainEvent) error {
	attrs := []any{"user_id", userID.String(), "event", event.EventName()}
	switch e := event.(type) {
	case route.StepStatusChanged:
		attrs = append(attrs, "step_id", e.StepID.String(), "from", e.From.String(), "to", e.To.String(), "forced", e.Forced)
	case route.ParcelMoved:
		attrs = append(attrs, "step_id", e.StepID.String(), "place", e.PlaceName)
	}
	n.logger.InfoContext(ctx, "user notification", attrs...)
	return nil
}
