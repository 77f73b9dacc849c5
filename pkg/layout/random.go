package layout

import (
	"math/rand/v2"
	"time"

	"github.com/benjaminghys/Tile-Generator-Maya/pkg/params"
)

// RandomSource yields uniformly distributed values in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
}

// Uniform draws a value from r. A fixed range returns its bound exactly.
func Uniform(rng RandomSource, r params.Range) float64 {
	u := rng.Float64()
	if r.Fixed() {
		return r.Min
	}
	return r.Min + (r.Max-r.Min)*u
}

// NewRandom returns a PCG source seeded from the clock.
func NewRandom() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return NewSeeded(seed)
}

// NewSeeded returns a PCG source that repeats for the same seed.
func NewSeeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
