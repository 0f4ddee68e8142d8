package stayrepo

import (
	"context"
	"errors"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/stay"
	"relay/internal/core/domain/services"
	"relay/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// withinRadiusSQL is the haversine distance between the candidate's location
// and a point (lat, lat, lon), compared against a radius in kilometres.
const withinRadiusSQL = `2 * ? * asin(sqrt(
	power(sin(radians(locations.lat - ?) / 2), 2) +
	cos(radians(?)) * cos(radians(locations.lat)) * power(sin(radians(locations.lon - ?) / 2), 2)
)) <= ?`

// GormStayRepository implements ports.StayRepository using GORM.
//
// The reachability queries filter in SQL and then apply the same
// services.ReachabilityRule the in-memory search uses, so distance rounding
// in the database never changes which stays are reachable.
type GormStayRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	rule    services.ReachabilityRule
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormStayRepository(db *gorm.DB, tracker aggregateTracker, rule services.ReachabilityRule) *GormStayRepository {
	return &GormStayRepository{
		db:      db,
		tracker: tracker,
		rule:    rule,
	}
}

func (r *GormStayRepository) Add(ctx context.Context, aggregate *stay.Stay) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormStayRepository) Update(ctx context.Context, aggregate *stay.Stay) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&dto).Omit(clause.Associations).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("stay", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormStayRepository) Get(ctx context.Context, id kernel.UUID) (*stay.Stay, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StayDTO
	if err := r.db.WithContext(ctx).Preload("Location").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stay", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormStayRepository) ListByLocation(ctx context.Context, locationID kernel.UUID) ([]*stay.Stay, error) {
	var dtos []StayDTO
	if err := r.db.WithContext(ctx).
		Preload("Location").
		Where("location_id = ? AND deleted = ?", locationID.Bytes(), false).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// FindReachable returns the stays accepted by the reachability rule from
// origin, ordered by identifier.
func (r *GormStayRepository) FindReachable(
	ctx context.Context,
	origin *stay.Stay,
	exclude []kernel.UUID,
	day kernel.Date,
) ([]*stay.Stay, error) {
	excluded := make([]string, 0, len(exclude)+1)
	excluded = append(excluded, origin.ID().String())
	for _, id := range exclude {
		excluded = append(excluded, id.String())
	}

	point := origin.Place().Point()
	var dtos []StayDTO
	if err := r.active(ctx, day).
		Where("stays.id <> ALL(?::uuid[])", pq.Array(excluded)).
		Where(
			r.db.Where("stays.user_id = ?", origin.UserID().Bytes()).
				Or(withinRadiusSQL, kernel.EarthRadiusKm, point.Lat(), point.Lat(), point.Lon(), r.rule.RadiusKm()),
		).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	candidates, err := toDomainList(dtos)
	if err != nil {
		return nil, err
	}

	reachable := candidates[:0]
	for _, c := range candidates {
		if r.rule.IsReachable(origin, c, day) {
			reachable = append(reachable, c)
		}
	}
	return reachable, nil
}

// FindStartCandidates returns the user's stays that are active on day.
func (r *GormStayRepository) FindStartCandidates(ctx context.Context, userID kernel.UUID, day kernel.Date) ([]*stay.Stay, error) {
	var dtos []StayDTO
	if err := r.active(ctx, day).
		Where("stays.user_id = ?", userID.Bytes()).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// active selects non-deleted, non-snoozed stays at non-deleted locations.
func (r *GormStayRepository) active(ctx context.Context, day kernel.Date) *gorm.DB {
	return r.db.WithContext(ctx).
		Select("stays.*").
		Preload("Location").
		Joins("JOIN locations ON locations.id = stays.location_id").
		Where("stays.deleted = ? AND locations.deleted = ?", false, false).
		Where("(stays.inactive_until IS NULL OR stays.inactive_until <= ?)", day.Time()).
		Order("stays.id")
}

func toDomainList(dtos []StayDTO) ([]*stay.Stay, error) {
	stays := make([]*stay.Stay, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		stays = append(stays, s)
	}
	return stays, nil
}
