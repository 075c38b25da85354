package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/iburimskiy/particle-field/internal/render"
)

func scaled(v, scale float64) float32 {
	return float32(v * scale)
}

func parseHex(hex string) (color.Color, error) {
	c, err := render.ParseColor(hex)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// formatTick formats a tick duration as milliseconds with two decimals.
func formatTick(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
}
