package analysis

import "math/rand"

// RandomSource supplies uniform draws in [0, 1) for the noise step.
type RandomSource interface {
	Float64() float64
}

// RandomFunc adapts a plain function to RandomSource.
type RandomFunc func() float64

func (f RandomFunc) Float64() float64 { return f() }

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }

// DefaultRandom returns the process-wide source. It is safe for concurrent
// use and has no seeding contract: results are not reproducible across runs.
func DefaultRandom() RandomSource { return globalRandom{} }

// NoNoise never triggers the noise step. Useful when only the statistical
// classification should be observed.
var NoNoise RandomSource = RandomFunc(func() float64 { return 1 })
