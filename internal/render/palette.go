package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/particle"
)

// Palette maps colour classes and edges to colours.
type Palette struct {
	Accent  colorful.Color
	Primary colorful.Color
	Dim     colorful.Color
	Edge    colorful.Color
}

// DefaultPalette is cyan accent, blue primary and a dim navy, with edges in
// the accent colour.
func DefaultPalette() Palette {
	accent := mustHex(config.AccentHex)
	return Palette{
		Accent:  accent,
		Primary: mustHex(config.PrimaryHex),
		Dim:     mustHex(config.DimHex),
		Edge:    accent,
	}
}

func (p Palette) Color(c particle.ColorClass) colorful.Color {
	switch c {
	case particle.Primary:
		return p.Primary
	case particle.Dim:
		return p.Dim
	default:
		return p.Accent
	}
}

// ParseColor parses a "#rrggbb" colour.
func ParseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parse colour %q: %w", hex, err)
	}
	return c, nil
}

func mustHex(hex string) colorful.Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}
