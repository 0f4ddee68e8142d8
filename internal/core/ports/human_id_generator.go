package ports

import "errors"

// ErrHumanIDTaken is returned by PacketRepository.Add when a generated packet
// code collides with an existing one.
var ErrHumanIDTaken = errors.New("packet human id is already taken")

// HumanIDGenerator produces short human readable packet codes.
type HumanIDGenerator interface {
	Generate() (string, error)
}
