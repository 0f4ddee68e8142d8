package commands

import (
	"errors"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/guard"
)

var ErrCreateLocationCommandIsNotConstructed = errors.New(
	"CreateLocationCommand must be created via NewCreateLocationCommand constructor",
)

type CreateLocationCommand struct { //nolint:recvcheck //using for validation
	locationID kernel.UUID
	userID     kernel.UUID
	name       string
	point      kernel.GeoPoint
	isHome     bool

	guard guard.ConstructorGuard
}

func NewCreateLocationCommand(
	locationID, userID kernel.UUID,
	name string,
	point kernel.GeoPoint,
	isHome bool,
) (CreateLocationCommand, error) {
	if err := errors.Join(locationID.Validate(), userID.Validate(), point.Validate()); err != nil {
		return CreateLocationCommand{}, err
	}
	return CreateLocationCommand{
		locationID: locationID,
		userID:     userID,
		name:       name,
		point:      point,
		isHome:     isHome,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateLocationCommand) Validate() error {
	return c.guard.Validate(ErrCreateLocationCommandIsNotConstructed)
}

func (c CreateLocationCommand) LocationID() kernel.UUID {
	return c.locationID
}

func (c CreateLocationCommand) UserID() kernel.UUID {
	return c.userID
}

func (c CreateLocationCommand) Name() string {
	return c.name
}

func (c CreateLocationCommand) Point() kernel.GeoPoint {
	return c.point
}

func (c CreateLocationCommand) IsHome() bool {
	return c.isHome
}
