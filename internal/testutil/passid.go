package testutil

import (
	"fmt"
	"sync"
)

// SequentialPassIDs issues "<prefix>-0001", "<prefix>-0002", ... and can be
// reset so the same scenario replays with identical pass IDs.
//
// Thread-safety: all methods are safe for concurrent use.
type SequentialPassIDs struct {
	mu     sync.Mutex
	prefix string
	seq    int64
}

// NewSequentialPassIDs creates a generator. An empty prefix means "test-pass".
func NewSequentialPassIDs(prefix string) *SequentialPassIDs {
	if prefix == "" {
		prefix = "test-pass"
	}
	return &SequentialPassIDs{prefix: prefix}
}

// Generate returns the next ID. Implements engine.PassIDGenerator.
func (g *SequentialPassIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%04d", g.prefix, g.seq)
}

// Issued returns how many IDs have been generated since the last Reset.
func (g *SequentialPassIDs) Issued() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq
}

// Reset rewinds the sequence. The next Generate returns "<prefix>-0001".
func (g *SequentialPassIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}

// ConstantPassID returns the same ID on every call.
//
// Golden snapshots use it so that the number of passes a scenario runs does
// not leak into the recorded output.
type ConstantPassID string

// Generate returns the ID, or "test-pass-fixed" when it is empty.
func (c ConstantPassID) Generate() string {
	if c == "" {
		return "test-pass-fixed"
	}
	return string(c)
}
