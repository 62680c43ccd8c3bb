package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// PassIDGenerator issues the identifier stamped on each recalculation pass.
// Implementations must be safe for concurrent use.
type PassIDGenerator interface {
	Generate() string
}

// UUIDv7Generator issues time-sortable UUIDv7 pass IDs.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
// Panics only if the system random source fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator issues predictable IDs for tests: "pass-1", "pass-2", ...
type FixedGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewFixedGenerator returns a generator using the given prefix.
// An empty prefix means "pass".
func NewFixedGenerator(prefix string) *FixedGenerator {
	if prefix == "" {
		prefix = "pass"
	}
	return &FixedGenerator{prefix: prefix}
}

// Generate returns the next ID in the sequence.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
