package flock

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// VelocitySampler draws the initial velocity of a new agent.
type VelocitySampler func(rng *rand.Rand) geometry.Vector2D

// UnitCircle returns a unit vector with a uniformly distributed direction.
func UnitCircle(rng *rand.Rand) geometry.Vector2D {
	return geometry.NewVectorPolar(1, rng.Float64()*2*math.Pi)
}

// UniformDisk returns a point uniformly distributed inside the unit disk.
func UniformDisk(rng *rand.Rand) geometry.Vector2D {
	r := math.Sqrt(rng.Float64())
	return geometry.NewVectorPolar(r, rng.Float64()*2*math.Pi)
}

// NewRand returns a PCG generator for seed. A zero seed draws one from the
// runtime source, so unseeded runs differ.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// uniform returns a value in [-extent/2, extent/2).
func uniform(rng *rand.Rand, extent float64) float64 {
	return (rng.Float64() - 0.5) * extent
}
