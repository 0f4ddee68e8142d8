// Package location holds the Location aggregate: a named place owned by a
// user, at which the user declares stays.
package location

import (
	"errors"
	"strings"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

var ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation constructor")

// Location is a geographic point a user frequents. Deleting a location is a
// soft delete; stays declared at a deleted location never take part in route
// search.
type Location struct {
	id      kernel.UUID
	userID  kernel.UUID
	name    string
	isHome  bool
	point   kernel.GeoPoint
	deleted bool
	guard   guard.ConstructorGuard
}

// NewLocation creates an active location for the given owner.
func NewLocation(id, userID kernel.UUID, name string, point kernel.GeoPoint, isHome bool) (*Location, error) {
	l := &Location{isHome: isHome, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		l.setID(id),
		l.setUserID(userID),
		l.setName(name),
		l.setPoint(point),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreLocation rebuilds a persisted location, including its deletion flag.
func RestoreLocation(
	id, userID kernel.UUID,
	name string,
	point kernel.GeoPoint,
	isHome bool,
	deleted bool,
) (*Location, error) {
	l, err := NewLocation(id, userID, name, point, isHome)
	if err != nil {
		return nil, err
	}
	l.deleted = deleted
	return l, nil
}

func (l *Location) Validate() error {
	if l == nil {
		return ErrLocationIsNotConstructed
	}
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l *Location) ID() kernel.UUID {
	return l.id
}

func (l *Location) UserID() kernel.UUID {
	return l.userID
}

func (l *Location) Name() string {
	return l.name
}

func (l *Location) IsHome() bool {
	return l.isHome
}

func (l *Location) Point() kernel.GeoPoint {
	return l.point
}

func (l *Location) IsDeleted() bool {
	return l.deleted
}

// Edit renames and moves the location. It reports whether the point changed,
// which is what invalidates planned handovers at this place.
func (l *Location) Edit(name string, point kernel.GeoPoint) (moved bool, err error) {
	if l.deleted {
		return false, errs.NewInvalidStateTransitionError("location", "deleted", "edit")
	}
	if err = errors.Join(l.validateName(name), point.Validate()); err != nil {
		return false, err
	}

	moved = point.Lon() != l.point.Lon() || point.Lat() != l.point.Lat()
	l.name = strings.TrimSpace(name)
	l.point = point
	return moved, nil
}

// Delete soft-deletes the location. Deleting twice is a no-op.
func (l *Location) Delete() {
	l.deleted = true
}

func (l *Location) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Location) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userID", err)
	}
	l.userID = userID
	return nil
}

func (l *Location) setName(name string) error {
	if err := l.validateName(name); err != nil {
		return err
	}
	l.name = strings.TrimSpace(name)
	return nil
}

func (l *Location) validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	return nil
}

func (l *Location) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	l.point = point
	return nil
}
