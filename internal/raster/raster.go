// Package raster is an in-memory drawing surface backed by gg, for headless
// previews and for hosts that blit pixels themselves.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"sync"

	"github.com/fogleman/gg"

	"github.com/iburimskiy/particle-field/internal/render"
	"github.com/iburimskiy/particle-field/internal/surface"
)

// Surface implements field.Surface on an RGBA image.
type Surface struct {
	mu         sync.Mutex
	dc         *gg.Context
	res        surface.Resolution
	width      float64
	height     float64
	ratio      float64
	alpha      float64
	background color.Color
}

// New returns a surface displayed at width x height logical units with the
// given pixel ratio. The backing image is allocated on the first Resize.
func New(width, height, ratio float64, background color.Color) *Surface {
	if background == nil {
		background = color.Black
	}
	return &Surface{
		width:      width,
		height:     height,
		ratio:      ratio,
		alpha:      1,
		background: background,
		dc:         gg.NewContext(1, 1),
	}
}

// SetContainer changes the displayed size and density. The backing image
// follows on the next Resize.
func (s *Surface) SetContainer(width, height, ratio float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height, s.ratio = width, height, ratio
}

func (s *Surface) ContainerSize() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *Surface) PixelRatio() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratio
}

// Resize reallocates the backing image and scales drawing so coordinates
// stay logical.
func (s *Surface) Resize(r surface.Resolution) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, h := r.BackingWidth, r.BackingHeight
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	s.dc = gg.NewContext(w, h)
	s.dc.Scale(r.Scale, r.Scale)
	s.res = r
}

func (s *Surface) Resolution() surface.Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.res
}

func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dc.SetColor(s.background)
	s.dc.Clear()
}

func (s *Surface) SetGlobalAlpha(a float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alpha = a
}

func (s *Surface) FillCircle(x, y, r float64, c color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dc.DrawCircle(x, y, r)
	s.dc.SetColor(render.WithAlpha(c, s.alpha))
	s.dc.Fill()
}

// StrokeLine draws a line width logical units wide. gg does not scale line
// widths with the transform, so the width is scaled here.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dc.SetLineWidth(width * s.res.Scale)
	s.dc.SetColor(render.WithAlpha(c, s.alpha))
	s.dc.DrawLine(x0, y0, x1, y1)
	s.dc.Stroke()
}

// Image returns a copy of the backing image.
func (s *Surface) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.dc.Image()
	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	return out
}

// EncodePNG writes the backing image as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dc.EncodePNG(w)
}
