// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"
)

// PRNG is a wrapper over the standard generator that lets the whole game run
// on a seeded, reproducible random stream.
type PRNG struct {
	rng *rand.Rand
}

// NewPRNG creates a generator with the given seed. Seed 0 means "seed from
// the clock", which is what normal play uses; tests pass a fixed seed.
func NewPRNG(seed int64) *PRNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNG{rng: rand.New(rand.NewSource(seed))}
}

// Intn returns a random int in [0, n).
func (p *PRNG) Intn(n int) int {
	return p.rng.Intn(n)
}

// Float64 returns a random float in [0.0, 1.0).
func (p *PRNG) Float64() float64 {
	return p.rng.Float64()
}

// ChooseWeighted picks an index from weights proportionally to their values.
// Returns -1 for an empty or non-positive table.
func (p *PRNG) ChooseWeighted(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		if len(weights) > 0 {
			return 0
		}
		return -1
	}

	r := p.Intn(total)
	upto := 0
	for i, w := range weights {
		upto += w
		if r < upto {
			return i
		}
	}
	return len(weights) - 1
}
