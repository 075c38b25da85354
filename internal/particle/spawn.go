package particle

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/iburimskiy/particle-field/internal/config"
)

// NewRand returns a generator for Spawn. Equal seeds give equal fields.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Spawn creates n particles placed uniformly inside b with small random
// velocities and random look.
func Spawn(rng *rand.Rand, n int, b Bounds) []Particle {
	ps := make([]Particle, n)
	for i := range ps {
		ps[i] = Particle{
			Pos: r2.Vec{
				X: rng.Float64() * b.Width,
				Y: rng.Float64() * b.Height,
			},
			Vel: r2.Vec{
				X: (rng.Float64() - 0.5) * config.SpawnSpeed,
				Y: (rng.Float64() - 0.5) * config.SpawnSpeed,
			},
			Radius:  rng.Float64()*config.SpawnRadiusSpan + config.SpawnRadiusMin,
			Opacity: rng.Float64()*config.SpawnOpacitySpan + config.SpawnOpacityMin,
			Class:   pickClass(rng),
		}
	}
	return ps
}

func pickClass(rng *rand.Rand) ColorClass {
	if rng.Float64() > 1-config.AccentChance {
		return Accent
	}
	if rng.Float64() > 0.5 {
		return Primary
	}
	return Dim
}
