package ports

import (
	"context"

	"relay/internal/core/domain/model/kernel"
)

// EventPublisher hands committed domain events to their consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}
