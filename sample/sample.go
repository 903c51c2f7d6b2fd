// Package sample supplies the single random draw consumed by each compiled
// check invocation.
//
// One fixed-width draw is produced per top-level check, never one per
// nesting level: every container level reuses the same draw reduced modulo
// its own length, keeping compiled cost proportional to the hint tree's
// depth and independent of container size.
package sample

import (
	"math/rand/v2"
	"sync"
)

// Width is the bit width of a draw. It is large enough that a single draw
// covers any practical container: indices at or beyond 2^64 are unreachable
// by any draw, an accepted and documented bias, not a defect.
const Width = 64

// Source produces one uniformly distributed unsigned draw per call.
// Implementations must be safe for concurrent use.
type Source interface {
	Draw() uint64
}

// sharedSource draws from the process-wide generator.
// math/rand/v2's top-level functions are safe for concurrent use.
type sharedSource struct{}

func (sharedSource) Draw() uint64 {
	return rand.Uint64()
}

// Shared returns the process-wide source used by default.
func Shared() Source {
	return sharedSource{}
}

// seededSource is a deterministic source for tests.
type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Seeded returns a deterministic source producing the same draw sequence for
// the same seed. Intended for tests that need reproducible sampling.
func Seeded(seed uint64) Source {
	return &seededSource{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (s *seededSource) Draw() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Uint64()
}

// Fixed returns a source that always draws the same value. Useful for tests
// that must deterministically select a known container index.
func Fixed(draw uint64) Source {
	return fixedSource(draw)
}

type fixedSource uint64

func (f fixedSource) Draw() uint64 {
	return uint64(f)
}
