package routerepo

import (
	"context"
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/route"
	"relay/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRouteRepository implements ports.RouteRepository using GORM.
type GormRouteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormRouteRepository(db *gorm.DB, tracker aggregateTracker) *GormRouteRepository {
	return &GormRouteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new route together with its steps.
func (r *GormRouteRepository) Add(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the route status and every step status. Step dates, order
// and stays never change after creation.
func (r *GormRouteRepository) Update(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	result := db.Model(&RouteDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("status", aggregate.Status())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("route", aggregate.ID().String())
	}

	for _, s := range aggregate.Steps() {
		if err := db.Model(&RouteStepDTO{}).
			Where("id = ?", s.ID().Bytes()).
			Update("status", s.Status()).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "route", id, "id = ?", id.Bytes())
}

// GetByStep retrieves the route the step belongs to.
func (r *GormRouteRepository) GetByStep(ctx context.Context, stepID kernel.UUID) (*route.Route, error) {
	if err := stepID.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "route step", stepID,
		"id = (SELECT route_id FROM route_steps WHERE id = ?)", stepID.Bytes())
}

// GetCurrentForPacket returns errs.ObjectNotFoundError when the packet has
// no current route.
func (r *GormRouteRepository) GetCurrentForPacket(ctx context.Context, packetID kernel.UUID) (*route.Route, error) {
	if err := packetID.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "current route", packetID,
		"packet_id = ? AND status = ?", packetID.Bytes(), route.Current)
}

func (r *GormRouteRepository) ListCurrentByStay(ctx context.Context, stayID kernel.UUID) ([]*route.Route, error) {
	var dtos []RouteDTO
	if err := r.withSteps(ctx).
		Where("status = ? AND id IN (SELECT route_id FROM route_steps WHERE stay_id = ?)", route.Current, stayID.Bytes()).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	routes := make([]*route.Route, 0, len(dtos))
	for _, dto := range dtos {
		rt, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, nil
}

func (r *GormRouteRepository) LastCreatedAt(ctx context.Context, packetID kernel.UUID) (*time.Time, error) {
	var last *time.Time
	row := r.db.WithContext(ctx).
		Model(&RouteDTO{}).
		Select("max(created_at)").
		Where("packet_id = ?", packetID.Bytes()).
		Row()
	if err := row.Scan(&last); err != nil {
		return nil, err
	}
	return last, nil
}

func (r *GormRouteRepository) first(ctx context.Context, name string, id kernel.UUID, query string, args ...any) (*route.Route, error) {
	var dto RouteDTO
	if err := r.withSteps(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(name, id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormRouteRepository) withSteps(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}
