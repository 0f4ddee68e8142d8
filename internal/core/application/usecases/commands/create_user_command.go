package commands

import (
	"errors"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

var ErrCreateUserCommandIsNotConstructed = errors.New(
	"CreateUserCommand must be created via NewCreateUserCommand constructor",
)

type CreateUserCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UUID
	username string
	email    string

	guard guard.ConstructorGuard
}

func NewCreateUserCommand(userID kernel.UUID, username, email string) (CreateUserCommand, error) {
	var errList []error
	if err := userID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if username == "" {
		errList = append(errList, errs.NewValueIsRequiredError("username"))
	}
	if email == "" {
		errList = append(errList, errs.NewValueIsRequiredError("email"))
	}
	if err := errors.Join(errList...); err != nil {
		return CreateUserCommand{}, err
	}

	return CreateUserCommand{
		userID:   userID,
		username: username,
		email:    email,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateUserCommand) Validate() error {
	return c.guard.Validate(ErrCreateUserCommandIsNotConstructed)
}

func (c CreateUserCommand) UserID() kernel.UUID {
	return c.userID
}

func (c CreateUserCommand) Username() string {
	return c.username
}

func (c CreateUserCommand) Email() string {
	return c.email
}
