// Package stayrepo persists stays with GORM and answers the route search's
// reachability queries.
package stayrepo

import (
	"time"

	"relay/internal/adapters/out/postgres/locationrepo"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/stay"

	"github.com/google/uuid"
)

// StayDTO represents the database structure for persisting stays. Location
// is loaded with the stay and never written through it.
type StayDTO struct {
	ID            uuid.UUID                `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID                `gorm:"type:uuid;not null;index"`
	LocationID    uuid.UUID                `gorm:"type:uuid;not null;index"`
	Location      locationrepo.LocationDTO `gorm:"foreignKey:LocationID"`
	Frequency     stay.Frequency           `gorm:"type:smallint;not null"`
	StartDate     *time.Time               `gorm:"type:date"`
	EndDate       *time.Time               `gorm:"type:date"`
	InactiveUntil *time.Time               `gorm:"type:date"`
	Deleted       bool                     `gorm:"not null;default:false"`
}

// TableName overrides GORM's default "stay_dtos".
func (StayDTO) TableName() string {
	return "stays"
}

func fromDomain(s *stay.Stay) StayDTO {
	return StayDTO{
		ID:            s.ID().Bytes(),
		UserID:        s.UserID().Bytes(),
		LocationID:    s.Place().LocationID().Bytes(),
		Frequency:     s.Frequency(),
		StartDate:     dateToTime(s.Start()),
		EndDate:       dateToTime(s.End()),
		InactiveUntil: dateToTime(s.InactiveUntil()),
		Deleted:       s.IsDeleted(),
	}
}

func toDomain(dto StayDTO) (*stay.Stay, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	locationID, err := kernel.UUIDFromBytes(dto.LocationID[:])
	if err != nil {
		return nil, err
	}
	point, err := kernel.NewGeoPoint(dto.Location.Lon, dto.Location.Lat)
	if err != nil {
		return nil, err
	}
	place, err := stay.NewPlace(locationID, dto.Location.Name, point, dto.Location.Deleted)
	if err != nil {
		return nil, err
	}

	return stay.RestoreStay(
		id, userID, place, dto.Frequency,
		timeToDate(dto.StartDate), timeToDate(dto.EndDate), timeToDate(dto.InactiveUntil),
		dto.Deleted,
	)
}

func dateToTime(d *kernel.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time()
	return &t
}

func timeToDate(t *time.Time) *kernel.Date {
	if t == nil {
		return nil
	}
	d := kernel.DateOf(*t)
	return &d
}
