package commands

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

var ErrPostChatMessageCommandIsNotConstructed = errors.New(
	"PostChatMessageCommand must be created via NewPostChatMessageCommand constructor",
)

// MaxChatMessageLength bounds a user message in runes.
const MaxChatMessageLength = 2000

// PostChatMessageCommand posts free text into the chat of a route step.
type PostChatMessageCommand struct { //nolint:recvcheck //using for validation
	stepID   kernel.UUID
	authorID kernel.UUID
	text     string
	at       time.Time

	guard guard.ConstructorGuard
}

func NewPostChatMessageCommand(stepID, authorID kernel.UUID, text string, at time.Time) (PostChatMessageCommand, error) {
	text = strings.TrimSpace(text)
	if err := errors.Join(stepID.Validate(), authorID.Validate(), validateChatText(text)); err != nil {
		return PostChatMessageCommand{}, err
	}
	return PostChatMessageCommand{
		stepID:   stepID,
		authorID: authorID,
		text:     text,
		at:       at,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func validateChatText(text string) error {
	if text == "" {
		return errs.NewValueIsRequiredError("text")
	}
	if n := utf8.RuneCountInString(text); n > MaxChatMessageLength {
		return errs.NewValueIsOutOfRangeError("text length", n, 1, MaxChatMessageLength)
	}
	return nil
}

func (c PostChatMessageCommand) Validate() error {
	return c.guard.Validate(ErrPostChatMessageCommandIsNotConstructed)
}

func (c PostChatMessageCommand) StepID() kernel.UUID {
	return c.stepID
}

func (c PostChatMessageCommand) AuthorID() kernel.UUID {
	return c.authorID
}

func (c PostChatMessageCommand) Text() string {
	return c.text
}

func (c PostChatMessageCommand) At() time.Time {
	return c.at
}
