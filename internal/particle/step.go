package particle

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/iburimskiy/particle-field/internal/config"
)

// Params are the motion constants of the step.
type Params struct {
	InfluenceRadius float64
	Force           float64
	SpeedCap        float64
	Damping         float64
}

func DefaultParams() Params {
	return Params{
		InfluenceRadius: config.PointerRadius,
		Force:           config.PointerForce,
		SpeedCap:        config.SpeedCap,
		Damping:         config.Damping,
	}
}

// Step advances every particle one tick in place.
//
// The order per particle is integrate, reflect, clamp, pointer repulsion,
// damping. Reflection only flips the velocity sign; a particle that
// overshoots is pulled back by the clamp, not mirrored.
func Step(ps []Particle, ptr Pointer, b Bounds, prm Params) {
	for i := range ps {
		p := &ps[i]

		p.Pos = r2.Add(p.Pos, p.Vel)

		if p.Pos.X < 0 || p.Pos.X > b.Width {
			p.Vel.X = -p.Vel.X
		}
		if p.Pos.Y < 0 || p.Pos.Y > b.Height {
			p.Vel.Y = -p.Vel.Y
		}

		p.Pos.X = clamp(p.Pos.X, b.Width)
		p.Pos.Y = clamp(p.Pos.Y, b.Height)

		if ptr.Present {
			repel(p, ptr.Pos, prm)
		}

		if p.Speed() > prm.SpeedCap {
			p.Vel = r2.Scale(prm.Damping, p.Vel)
		}
	}
}

// repel pushes p away from the pointer, linearly weaker with distance and
// zero at the influence radius. A particle exactly under the pointer has no
// direction and is left alone for this tick, as is any distance that is not
// a finite number.
func repel(p *Particle, at r2.Vec, prm Params) {
	d := r2.Sub(p.Pos, at)
	dist := r2.Norm(d)
	if !(dist > 0 && dist < prm.InfluenceRadius) {
		return
	}
	force := (prm.InfluenceRadius - dist) / prm.InfluenceRadius
	p.Vel = r2.Add(p.Vel, r2.Scale(force*prm.Force/dist, d))
}
