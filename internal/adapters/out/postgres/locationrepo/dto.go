// Package locationrepo persists user locations with GORM.
package locationrepo

import (
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/location"

	"github.com/google/uuid"
)

// LocationDTO represents the database structure for persisting locations.
// Points are stored as WGS84 longitude and latitude in degrees.
type LocationDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name    string    `gorm:"type:varchar(256);not null"`
	Lon     float64   `gorm:"type:double precision;not null"`
	Lat     float64   `gorm:"type:double precision;not null"`
	IsHome  bool      `gorm:"not null;default:false"`
	Deleted bool      `gorm:"not null;default:false"`
}

// TableName overrides GORM's default "location_dtos".
func (LocationDTO) TableName() string {
	return "locations"
}

// FromDomain converts a location aggregate to its database representation.
func FromDomain(l *location.Location) LocationDTO {
	return LocationDTO{
		ID:      l.ID().Bytes(),
		UserID:  l.UserID().Bytes(),
		Name:    l.Name(),
		Lon:     l.Point().Lon(),
		Lat:     l.Point().Lat(),
		IsHome:  l.IsHome(),
		Deleted: l.IsDeleted(),
	}
}

func toDomain(dto LocationDTO) (*location.Location, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	point, err := kernel.NewGeoPoint(dto.Lon, dto.Lat)
	if err != nil {
		return nil, err
	}
	return location.RestoreLocation(id, userID, dto.Name, point, dto.IsHome, dto.Deleted)
}
