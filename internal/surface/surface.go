// Package surface sizes a drawing surface for the display's pixel density.
package surface

import (
	"math"

	"github.com/iburimskiy/particle-field/internal/particle"
)

// Host reports the size the surface is displayed at and the display density.
type Host interface {
	// ContainerSize is the displayed size in logical units.
	ContainerSize() (width, height float64)
	// PixelRatio is physical pixels per logical unit.
	PixelRatio() float64
}

// Target is a surface whose backing store can be resized.
type Target interface {
	Host
	Resize(r Resolution)
}

// Resolution describes how a surface is backed.
type Resolution struct {
	BackingWidth  int // physical pixels
	BackingHeight int
	DisplayWidth  float64 // logical units
	DisplayHeight float64
	Scale         float64 // logical to physical
}

// Bounds is the logical size drawn into.
func (r Resolution) Bounds() particle.Bounds {
	return particle.Bounds{Width: r.DisplayWidth, Height: r.DisplayHeight}
}

// Measure computes the resolution for a displayed size at the given density.
// Non-positive sizes collapse to 0 and a non-positive or NaN density is
// taken as 1.
func Measure(width, height, ratio float64) Resolution {
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		ratio = 1
	}
	width = nonNegative(width)
	height = nonNegative(height)
	return Resolution{
		BackingWidth:  int(math.Round(width * ratio)),
		BackingHeight: int(math.Round(height * ratio)),
		DisplayWidth:  width,
		DisplayHeight: height,
		Scale:         ratio,
	}
}

// Fit reads t's container size and density, resizes its backing store and
// returns the new logical bounds. Particles are not touched.
func Fit(t Target) particle.Bounds {
	w, h := t.ContainerSize()
	r := Measure(w, h, t.PixelRatio())
	t.Resize(r)
	return r.Bounds()
}

func nonNegative(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return v
}
