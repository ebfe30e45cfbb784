package core

import "math/rand"

// Rand is the pseudo-random source consumed by generation and spawning.
// *math/rand.Rand satisfies it, so tests can pass a seeded generator.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded generator.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Uniform returns a value drawn uniformly from [min, max).
// When max <= min, min is returned without consuming randomness.
func Uniform(r Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.Float64()*(max-min)
}
