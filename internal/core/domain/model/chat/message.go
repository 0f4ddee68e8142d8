// Package chat models the messages exchanged between the two parties of a
// handover. A message is either a system notice or text written by a user.
package chat

import (
	"fmt"
	"time"

	"relay/internal/core/domain/model/kernel"
)

// Message is implemented by SystemMessage and UserMessage only.
type Message interface {
	StepID() kernel.UUID
	Render() string
	isMessage()
}

// SystemKind selects the template of a system notice.
type SystemKind string

const (
	// HandoverArranged opens the chat of a step once the whole route was accepted.
	HandoverArranged SystemKind = "handover_arranged"
	// HandoverCancelled tells the parties a committed step was withdrawn by a
	// stay, location or packet change.
	HandoverCancelled SystemKind = "handover_cancelled"
)

// SystemArgs are the template arguments of a system notice.
type SystemArgs struct {
	Date     kernel.Date
	Location string
}

// SystemMessage is a notice generated by the relay itself.
type SystemMessage struct {
	stepID kernel.UUID
	kind   SystemKind
	args   SystemArgs
}

// NewSystemMessage creates a system notice for a step.
func NewSystemMessage(stepID kernel.UUID, kind SystemKind, args SystemArgs) SystemMessage {
	return SystemMessage{stepID: stepID, kind: kind, args: args}
}

func (m SystemMessage) StepID() kernel.UUID {
	return m.stepID
}

func (m SystemMessage) Kind() SystemKind {
	return m.kind
}

func (m SystemMessage) Args() SystemArgs {
	return m.args
}

func (m SystemMessage) Render() string {
	switch m.kind {
	case HandoverArranged:
		return fmt.Sprintf("Everyone agreed on the route. Please arrange the handover around %s at %s.",
			m.args.Date, m.args.Location)
	case HandoverCancelled:
		return fmt.Sprintf("The handover at %s was called off because the plan changed.", m.args.Location)
	default:
		return string(m.kind)
	}
}

func (SystemMessage) isMessage() {}

// UserMessage is free text written by one of the parties.
type UserMessage struct {
	stepID   kernel.UUID
	authorID kernel.UUID
	text     string
	sentAt   time.Time
}

// NewUserMessage creates a message written by authorID.
func NewUserMessage(stepID, authorID kernel.UUID, text string, sentAt time.Time) UserMessage {
	return UserMessage{stepID: stepID, authorID: authorID, text: text, sentAt: sentAt}
}

func (m UserMessage) StepID() kernel.UUID {
	return m.stepID
}

func (m UserMessage) AuthorID() kernel.UUID {
	return m.authorID
}

func (m UserMessage) SentAt() time.Time {
	return m.sentAt
}

func (m UserMessage) Render() string {
	return m.text
}

func (UserMessage) isMessage() {}
