// Package humanid generates the short codes printed on packets, for example
// "calm-turtle-42".
package humanid

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

var adjectives = []string{
	"brave", "calm", "clever", "eager", "gentle", "happy", "jolly", "kind",
	"lively", "lucky", "merry", "nimble", "patient", "proud", "quiet", "quick",
	"shiny", "steady", "swift", "tidy", "bold", "bright", "cosy", "witty",
}

var animals = []string{
	"turtle", "otter", "badger", "heron", "lynx", "marten", "owl", "puffin",
	"rabbit", "robin", "salmon", "seal", "sparrow", "stork", "swan", "toad",
	"beaver", "crane", "finch", "fox", "hedgehog", "mole", "newt", "wren",
}

// maxNumber bounds the numeric suffix. Together with the word lists this
// gives about half a million distinct codes.
const maxNumber = 1000

// Generator implements ports.HumanIDGenerator. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a generator seeded from the runtime's random source.
func New() *Generator {
	return NewWithSource(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewWithSource returns a generator drawing from src. Equal sources yield
// equal code sequences.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

func (g *Generator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return fmt.Sprintf("%s-%s-%d",
		adjectives[g.rnd.IntN(len(adjectives))],
		animals[g.rnd.IntN(len(animals))],
		g.rnd.IntN(maxNumber)+1,
	), nil
}
