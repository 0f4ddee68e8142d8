package kernel

// DomainEvent is a fact recorded by an aggregate while handling a command.
// Events are published only after the surrounding transaction commits.
type DomainEvent interface {
	EventName() string
}
