// Package particle holds the particle model and the per-tick simulation step.
package particle

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ColorClass selects one of the palette colours.
type ColorClass int

const (
	Accent ColorClass = iota
	Primary
	Dim
)

func (c ColorClass) String() string {
	switch c {
	case Accent:
		return "Accent"
	case Primary:
		return "Primary"
	case Dim:
		return "Dim"
	default:
		return "Unknown"
	}
}

// A Particle is one point of the field. Pos and Vel are in logical surface units.
type Particle struct {
	Pos     r2.Vec
	Vel     r2.Vec
	Radius  float64 // > 0
	Opacity float64 // in [0, 1]
	Class   ColorClass
}

// Speed returns the length of the velocity vector.
func (p Particle) Speed() float64 {
	return r2.Norm(p.Vel)
}

// Bounds is the logical drawing-surface size.
type Bounds struct {
	Width  float64
	Height float64
}

// Contains reports whether v lies in [0, Width] x [0, Height].
func (b Bounds) Contains(v r2.Vec) bool {
	return v.X >= 0 && v.X <= b.Width && v.Y >= 0 && v.Y <= b.Height
}

// clamp pins v into [0, hi]. NaN goes to 0.
func clamp(v, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v > hi {
		v = hi
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Finite reports whether both coordinates are finite numbers.
func Finite(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && !math.IsNaN(y) && !math.IsInf(y, 0)
}
