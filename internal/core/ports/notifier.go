package ports

import (
	"context"

	"relay/internal/core/domain/model/chat"
	"relay/internal/core/domain/model/kernel"
)

// Notifier delivers messages to the people involved in a route. Delivery
// itself (chat, mail, push) lives outside the core.
type Notifier interface {
	// SendChatMessage posts a system or user message into a step's chat.
	SendChatMessage(ctx context.Context, msg chat.Message) error

	// Notify tells a user about something that happened to one of their steps.
	Notify(ctx context.Context, userID kernel.UUID, event kernel.DomainEvent) error
}
