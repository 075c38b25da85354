package render

import (
	"math"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/particle"
)

// Renderer draws a full frame of the field. It keeps no state between frames.
type Renderer struct {
	Palette   Palette
	Threshold float64 // connection distance
	MaxAlpha  float64 // edge alpha at zero distance
	EdgeWidth float64
}

func NewRenderer() *Renderer {
	return &Renderer{
		Palette:   DefaultPalette(),
		Threshold: config.ConnectionDistance,
		MaxAlpha:  config.EdgeMaxAlpha,
		EdgeWidth: config.EdgeWidth,
	}
}

// EdgeAlpha fades linearly from peak at distance 0 to 0 at threshold.
func EdgeAlpha(dist, threshold, peak float64) float64 {
	if dist >= threshold {
		return 0
	}
	return (1 - dist/threshold) * peak
}

// Connect returns the distance between a and b and the alpha of their edge.
// ok is false when they are too far apart to connect.
func (r *Renderer) Connect(a, b particle.Particle) (dist, alpha float64, ok bool) {
	dx := a.Pos.X - b.Pos.X
	dy := a.Pos.Y - b.Pos.Y
	dist = math.Sqrt(dx*dx + dy*dy)
	if dist >= r.Threshold {
		return dist, 0, false
	}
	return dist, EdgeAlpha(dist, r.Threshold, r.MaxAlpha), true
}

// Frame clears c and draws ps: each particle, followed by its edges to
// the particles after it. Global alpha is back at 1 when Frame returns.
func (r *Renderer) Frame(c Canvas, ps []particle.Particle) {
	c.Clear()
	edge := r.Palette.Edge

	for i := range ps {
		p := &ps[i]
		c.SetGlobalAlpha(p.Opacity)
		c.FillCircle(p.Pos.X, p.Pos.Y, p.Radius, r.Palette.Color(p.Class))

		for j := i + 1; j < len(ps); j++ {
			q := &ps[j]
			_, alpha, ok := r.Connect(*p, *q)
			if !ok {
				continue
			}
			c.SetGlobalAlpha(alpha)
			c.StrokeLine(p.Pos.X, p.Pos.Y, q.Pos.X, q.Pos.Y, r.EdgeWidth, edge)
		}
	}

	c.SetGlobalAlpha(1)
}
