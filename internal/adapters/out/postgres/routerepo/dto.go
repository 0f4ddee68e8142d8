// Package routerepo persists route aggregates and their ordered steps with GORM.
package routerepo

import (
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// RouteDTO represents the database structure for persisting routes.
type RouteDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	PacketID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status    route.Status   `gorm:"type:smallint;not null;index"`
	CreatedAt time.Time      `gorm:"not null"`
	Steps     []RouteStepDTO `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default "route_dtos".
func (RouteDTO) TableName() string {
	return "routes"
}

// RouteStepDTO is one step of a route. Position keeps the travel order.
type RouteStepDTO struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	RouteID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	Position  int              `gorm:"not null"`
	StayID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	HolderID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	PlaceName string           `gorm:"type:varchar(256);not null"`
	StartDate time.Time        `gorm:"type:date;not null"`
	EndDate   time.Time        `gorm:"type:date;not null"`
	Status    route.StepStatus `gorm:"type:smallint;not null"`
}

// TableName overrides GORM's default "route_step_dtos".
func (RouteStepDTO) TableName() string {
	return "route_steps"
}

func fromDomain(r *route.Route) RouteDTO {
	routeID := r.ID().Bytes()
	steps := make([]RouteStepDTO, 0, len(r.Steps()))
	for i, s := range r.Steps() {
		steps = append(steps, RouteStepDTO{
			ID:        s.ID().Bytes(),
			RouteID:   routeID,
			Position:  i,
			StayID:    s.StayID().Bytes(),
			HolderID:  s.HolderID().Bytes(),
			PlaceName: s.PlaceName(),
			StartDate: s.Period().Start().Time(),
			EndDate:   s.Period().End().Time(),
			Status:    s.Status(),
		})
	}

	return RouteDTO{
		ID:        routeID,
		PacketID:  r.PacketID().Bytes(),
		Status:    r.Status(),
		CreatedAt: r.CreatedAt(),
		Steps:     steps,
	}
}

func toDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	packetID, err := kernel.UUIDFromBytes(dto.PacketID[:])
	if err != nil {
		return nil, err
	}

	steps := make([]*route.Step, 0, len(dto.Steps))
	for _, stepDTO := range dto.Steps {
		s, stepErr := stepToDomain(stepDTO)
		if stepErr != nil {
			return nil, stepErr
		}
		steps = append(steps, s)
	}

	return route.RestoreRoute(id, packetID, dto.Status, dto.CreatedAt, steps)
}

func stepToDomain(dto RouteStepDTO) (*route.Step, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	stayID, err := kernel.UUIDFromBytes(dto.StayID[:])
	if err != nil {
		return nil, err
	}
	holderID, err := kernel.UUIDFromBytes(dto.HolderID[:])
	if err != nil {
		return nil, err
	}
	period, err := kernel.NewDateRange(kernel.DateOf(dto.StartDate), kernel.DateOf(dto.EndDate))
	if err != nil {
		return nil, err
	}
	return route.RestoreStep(id, stayID, holderID, dto.PlaceName, period, dto.Status)
}
