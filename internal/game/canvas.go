package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/particle-field/internal/render"
	"github.com/iburimskiy/particle-field/internal/surface"
)

// canvas draws onto the screen image ebiten hands to Draw. Coordinates are
// logical and multiplied by the device scale factor here.
type canvas struct {
	g          *Game
	dst        *ebiten.Image
	res        surface.Resolution
	alpha      float64
	background color.Color
}

func newCanvas(g *Game, background color.Color) *canvas {
	return &canvas{g: g, alpha: 1, background: background, res: surface.Measure(0, 0, 1)}
}

func (c *canvas) bind(dst *ebiten.Image) { c.dst = dst }

func (c *canvas) ContainerSize() (float64, float64) { return c.g.outsideW, c.g.outsideH }
func (c *canvas) PixelRatio() float64               { return c.g.scale }

// Resize records the resolution. The screen image itself is sized by
// LayoutF from the same outside size and scale.
func (c *canvas) Resize(r surface.Resolution) { c.res = r }

func (c *canvas) Clear() {
	if c.dst == nil {
		return
	}
	c.dst.Fill(c.background)
}

func (c *canvas) SetGlobalAlpha(a float64) { c.alpha = a }

func (c *canvas) FillCircle(x, y, r float64, clr color.Color) {
	if c.dst == nil {
		return
	}
	s := c.res.Scale
	vector.DrawFilledCircle(c.dst, scaled(x, s), scaled(y, s), scaled(r, s), render.WithAlpha(clr, c.alpha), true)
}

func (c *canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	if c.dst == nil {
		return
	}
	s := c.res.Scale
	vector.StrokeLine(c.dst, scaled(x0, s), scaled(y0, s), scaled(x1, s), scaled(y1, s), scaled(width, s), render.WithAlpha(clr, c.alpha), true)
}
