// Package scene generates the demo workload: a grid of rounded rectangles
// cycling through corner shapes and colors.
package scene

import (
	"math"

	"github.com/kjkrol/rrect/pkg/gfx"
)

type Config struct {
	Columns int     `toml:"columns"`
	Rows    int     `toml:"rows"`
	Gap     float32 `toml:"gap"`
	Radius  float32 `toml:"radius"`
	Animate bool    `toml:"animate"`
}

func DefaultConfig() Config {
	return Config{
		Columns: 24,
		Rows:    16,
		Gap:     6,
		Radius:  12,
		Animate: true,
	}
}

// Submitter is satisfied by *gfx.Context.
type Submitter interface {
	SubmitRectangle(x, y, z, width, height, r, g, b, a, radiusTL, radiusTR, radiusBR, radiusBL float32) bool
}

// Submit lays out the grid over width x height at animation time t and
// returns how many rectangles were accepted.
func Submit(s Submitter, c Config, width, height int, t float64) int {
	if c.Columns <= 0 || c.Rows <= 0 {
		return 0
	}
	cellW := (float32(width) - c.Gap) / float32(c.Columns)
	cellH := (float32(height) - c.Gap) / float32(c.Rows)
	w, h := cellW-c.Gap, cellH-c.Gap
	if w <= 0 || h <= 0 {
		return 0
	}

	accepted := 0
	for row := 0; row < c.Rows; row++ {
		for col := 0; col < c.Columns; col++ {
			i := row*c.Columns + col
			phase := float64(i)*0.37 + t
			r := 0.5 + 0.5*float32(math.Sin(phase))
			g := 0.5 + 0.5*float32(math.Sin(phase+2.1))
			b := 0.5 + 0.5*float32(math.Sin(phase+4.2))

			radii := CornerPattern(i, c.Radius)
			x := c.Gap + float32(col)*cellW
			y := c.Gap + float32(row)*cellH
			if s.SubmitRectangle(x, y, 0, w, h, r, g, b, 0.9, radii[0], radii[1], radii[2], radii[3]) {
				accepted++
			}
		}
	}
	return accepted
}

// CornerPattern cycles through uniform, pill, tab and leaf shapes.
func CornerPattern(i int, radius float32) [4]float32 {
	switch i % 4 {
	case 0:
		return gfx.UniformRadius(radius)
	case 1:
		return gfx.UniformRadius(math.MaxFloat32)
	case 2:
		return [4]float32{radius, radius, 0, 0}
	default:
		return [4]float32{radius * 2, 0, radius * 2, 0}
	}
}
