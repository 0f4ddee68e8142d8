package commands

import (
	"errors"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/guard"
)

var ErrUpdateLocationCommandIsNotConstructed = errors.New(
	"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
)

// UpdateLocationCommand renames or moves a location. Moving it invalidates
// handovers planned at the old point.
type UpdateLocationCommand struct { //nolint:recvcheck //using for validation
	locationID kernel.UUID
	userID     kernel.UUID
	name       string
	point      kernel.GeoPoint
	at         time.Time

	guard guard.ConstructorGuard
}

func NewUpdateLocationCommand(
	locationID, userID kernel.UUID,
	name string,
	point kernel.GeoPoint,
	at time.Time,
) (UpdateLocationCommand, error) {
	if err := errors.Join(locationID.Validate(), userID.Validate(), point.Validate()); err != nil {
		return UpdateLocationCommand{}, err
	}
	return UpdateLocationCommand{
		locationID: locationID,
		userID:     userID,
		name:       name,
		point:      point,
		at:         at,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

func (c UpdateLocationCommand) LocationID() kernel.UUID {
	return c.locationID
}

func (c UpdateLocationCommand) UserID() kernel.UUID {
	return c.userID
}

func (c UpdateLocationCommand) Name() string {
	return c.name
}

func (c UpdateLocationCommand) Point() kernel.GeoPoint {
	return c.point
}

func (c UpdateLocationCommand) At() time.Time {
	return c.at
}
