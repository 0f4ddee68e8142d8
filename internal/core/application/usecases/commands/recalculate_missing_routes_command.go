package commands

import (
	"errors"
	"time"

	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

var ErrRecalculateMissingRoutesCommandIsNotConstructed = errors.New(
	"RecalculateMissingRoutesCommand must be created via NewRecalculateMissingRoutesCommand constructor",
)

// RecalculateMissingRoutesCommand sweeps packets that lack a valid route.
type RecalculateMissingRoutesCommand struct { //nolint:recvcheck //using for validation
	at        time.Time
	batchSize int

	guard guard.ConstructorGuard
}

// NewRecalculateMissingRoutesCommand creates a sweep over at most batchSize packets.
func NewRecalculateMissingRoutesCommand(at time.Time, batchSize int) (RecalculateMissingRoutesCommand, error) {
	if batchSize <= 0 {
		return RecalculateMissingRoutesCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}
	return RecalculateMissingRoutesCommand{at: at, batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c RecalculateMissingRoutesCommand) Validate() error {
	return c.guard.Validate(ErrRecalculateMissingRoutesCommandIsNotConstructed)
}

func (c RecalculateMissingRoutesCommand) At() time.Time {
	return c.at
}

func (c RecalculateMissingRoutesCommand) BatchSize() int {
	return c.batchSize
}
