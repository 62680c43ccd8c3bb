package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequentialPassIDs_Sequence(t *testing.T) {
	gen := NewSequentialPassIDs("scn")

	assert.Equal(t, "scn-0001", gen.Generate())
	assert.Equal(t, "scn-0002", gen.Generate())
	assert.Equal(t, int64(2), gen.Issued())
}

func TestSequentialPassIDs_DefaultPrefix(t *testing.T) {
	gen := NewSequentialPassIDs("")
	assert.Equal(t, "test-pass-0001", gen.Generate())
}

func TestSequentialPassIDs_Reset(t *testing.T) {
	gen := NewSequentialPassIDs("p")
	gen.Generate()
	gen.Generate()

	gen.Reset()
	assert.Equal(t, int64(0), gen.Issued())
	assert.Equal(t, "p-0001", gen.Generate())
}

func TestSequentialPassIDs_ThreadSafe(t *testing.T) {
	gen := NewSequentialPassIDs("p")
	const goroutines = 50
	const perGoroutine = 20

	var wg sync.WaitGroup
	ids := make(chan string, goroutines*perGoroutine)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				ids <- gen.Generate()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, goroutines*perGoroutine)
}

func TestConstantPassID(t *testing.T) {
	assert.Equal(t, "fixed", ConstantPassID("fixed").Generate())
	assert.Equal(t, "fixed", ConstantPassID("fixed").Generate())
	assert.Equal(t, "test-pass-fixed", ConstantPassID("").Generate())
}
