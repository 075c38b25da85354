// Package render draws the particle field and its proximity graph onto a Canvas.
package render

import (
	"image/color"
)

// Canvas is the 2D drawing context a frame is drawn onto. Coordinates are
// logical surface units; the canvas applies its own pixel scale.
type Canvas interface {
	// Clear wipes the whole surface.
	Clear()
	// SetGlobalAlpha multiplies the alpha of every following draw.
	SetGlobalAlpha(a float64)
	FillCircle(x, y, r float64, c color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
}

// WithAlpha returns c with its alpha replaced by a in [0, 1].
func WithAlpha(c color.Color, a float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(clamp01(a)*255 + 0.5)
	return n
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
