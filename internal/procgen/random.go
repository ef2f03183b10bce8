package procgen

import "math/rand/v2"

// RandomSource supplies uniform floats in [0, 1).
type RandomSource interface {
	Float64() float64
}

// NewRandom returns a deterministic PCG-backed source for the given seed.
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

// uniform maps a [0,1) draw onto [lo, hi).
func uniform(rng RandomSource, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
