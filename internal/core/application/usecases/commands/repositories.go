// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"relay/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	LocationRepoFactory interface {
		LocationRepository() ports.LocationRepository
	}

	StayRepoFactory interface {
		StayRepository() ports.StayRepository
	}

	PacketRepoFactory interface {
		PacketRepository() ports.PacketRepository
	}

	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	DeliveryLogRepoFactory interface {
		DeliveryLogRepository() ports.DeliveryLogRepository
	}

	// PlanningUoW covers route planning and step changes: packets, their
	// routes, the stays routes are planned on and the delivery log.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   r, err := uow.RouteRepository().GetByStep(ctx, stepID)
	//   // ... change steps, append log entries
	//
	//   err = uow.Commit(ctx)
	PlanningUoW interface {
		TxManager
		StayRepoFactory
		PacketRepoFactory
		RouteRepoFactory
		DeliveryLogRepoFactory
	}

	// PlanningUoWFactory creates new planning unit of work instances.
	PlanningUoWFactory interface {
		Create() PlanningUoW
	}

	// UoW manages transactions across all aggregates. Used for user,
	// location and stay changes that may invalidate planned routes.
	UoW interface {
		TxManager
		UserRepoFactory
		LocationRepoFactory
		StayRepoFactory
		PacketRepoFactory
		RouteRepoFactory
		DeliveryLogRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
