// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work spans one database transaction across all
// repositories and publishes the domain events of the aggregates it saw once
// that transaction committed.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, bus, services.NewReachabilityRule(policy), logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	r, err := uow.RouteRepository().GetByStep(ctx, stepID)
//	if err != nil {
//	    return err
//	}
//	if err = r.AcceptStep(stepID); err != nil {
//	    return err
//	}
//	if err = uow.RouteRepository().Update(ctx, r); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx) // publishes the route's StepStatusChanged events
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines must use separate UnitOfWork instances
//   - Repositories returned before Begin run outside any transaction
package postgres

import (
	"context"
	"log/slog"

	"relay/internal/adapters/out/postgres/deliverylogrepo"
	"relay/internal/adapters/out/postgres/locationrepo"
	"relay/internal/adapters/out/postgres/packetrepo"
	"relay/internal/adapters/out/postgres/routerepo"
	"relay/internal/adapters/out/postgres/stayrepo"
	"relay/internal/adapters/out/postgres/userrepo"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/services"
	"relay/internal/core/ports"

	"gorm.io/gorm"
)

// eventSource is implemented by aggregates that record domain events.
type eventSource interface {
	DomainEvents() []kernel.DomainEvent
	ClearDomainEvents()
}

// trackedAggregate represents an aggregate added or updated during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one database
// connection pool and one event publisher.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	rule      services.ReachabilityRule
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory. publisher may be nil, in which
// case events are dropped after commit.
func NewGormUnitOfWorkFactory(
	db *gorm.DB,
	publisher ports.EventPublisher,
	rule services.ReachabilityRule,
	logger *slog.Logger,
) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		rule:      rule,
		logger:    logger.With("component", "unit_of_work"),
	}
}

// Create produces a fresh unit of work with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		rule:              f.rule,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	rule              services.ReachabilityRule
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling Begin twice keeps the first one.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit makes the changes permanent and then publishes the domain events of
// every tracked aggregate. Publishing failures are logged; the data is
// committed either way.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publishTracked(ctx)
	return nil
}

// Rollback discards the transaction and forgets tracked aggregates.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active, which is
// the case for the usual deferred Rollback after a successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) LocationRepository() ports.LocationRepository {
	return locationrepo.NewGormLocationRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) StayRepository() ports.StayRepository {
	return stayrepo.NewGormStayRepository(uow.conn(), uow, uow.rule)
}

func (uow *GormUnitOfWork) PacketRepository() ports.PacketRepository {
	return packetrepo.NewGormPacketRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) RouteRepository() ports.RouteRepository {
	return routerepo.NewGormRouteRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) DeliveryLogRepository() ports.DeliveryLogRepository {
	return deliverylogrepo.NewGormDeliveryLogRepository(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after every successful Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// publishTracked hands out each tracked aggregate's events once, in the
// order the aggregates were first tracked, and clears them.
func (uow *GormUnitOfWork) publishTracked(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	seen := make(map[kernel.UUID]struct{}, len(tracked))
	var events []kernel.DomainEvent
	for _, t := range tracked {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}

		source, ok := t.Aggregate.(eventSource)
		if !ok {
			continue
		}
		events = append(events, source.DomainEvents()...)
		source.ClearDomainEvents()
	}

	if len(events) == 0 || uow.publisher == nil {
		return
	}
	if err := uow.publisher.Publish(ctx, events...); err != nil {
		uow.logger.ErrorContext(ctx, "failed to publish domain events", "error", err, "events", len(events))
	}
}
