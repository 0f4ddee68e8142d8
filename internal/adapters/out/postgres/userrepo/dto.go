// Package userrepo persists user aggregates with GORM.
package userrepo

import (
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for persisting users.
type UserDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username string    `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email    string    `gorm:"type:varchar(254);not null"`
}

// TableName overrides GORM's default "user_dtos".
func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:       u.ID().Bytes(),
		Username: u.Username(),
		Email:    u.Email(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return user.RestoreUser(id, dto.Username, dto.Email)
}
