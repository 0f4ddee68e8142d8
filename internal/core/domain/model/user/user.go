// Package user holds the account aggregate. Everything else in the domain
// refers to users by identifier only.
package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is a registered participant who can send, receive and carry packets.
type User struct {
	id       kernel.UUID
	username string
	email    string
	guard    guard.ConstructorGuard
}

// NewUser validates the username (non-blank) and email address (RFC 5322).
func NewUser(id kernel.UUID, username, email string) (*User, error) {
	u := &User{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		u.setID(id),
		u.setUsername(username),
		u.setEmail(email),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rebuilds a persisted user.
func RestoreUser(id kernel.UUID, username, email string) (*User, error) {
	return NewUser(id, username, email)
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Username() string {
	return u.username
}

func (u *User) Email() string {
	return u.email
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	u.username = username
	return nil
}

func (u *User) setEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q: %w", email, err))
	}
	u.email = addr.Address
	return nil
}
