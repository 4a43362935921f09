package gfx_test

import (
	"math"
	"testing"

	"github.com/kjkrol/rrect/pkg/gfx"
	"github.com/stretchr/testify/assert"
)

func TestSDRoundedBox_Sign(t *testing.T) {
	radii := gfx.UniformRadius(4)
	assert.Less(t, gfx.SDRoundedBox(0, 0, 10, 5, radii), float32(0), "center is inside")
	assert.InDelta(t, 0, gfx.SDRoundedBox(10, 0, 10, 5, radii), 1e-5, "edge midpoint is on the boundary")
	assert.Greater(t, gfx.SDRoundedBox(12, 0, 10, 5, radii), float32(0), "outside")
	assert.InDelta(t, -5, gfx.SDRoundedBox(0, 0, 10, 5, radii), 1e-5)
}

func TestSDRoundedBox_CornerSelection(t *testing.T) {
	// only the bottom-right corner is rounded; +y points down
	radii := [4]float32{0, 0, 5, 0}
	corner := float32(9.9)
	assert.Greater(t, gfx.SDRoundedBox(corner, corner, 10, 10, radii), float32(0), "bottom-right is cut")
	assert.Less(t, gfx.SDRoundedBox(-corner, -corner, 10, 10, radii), float32(0), "top-left is square")
	assert.Less(t, gfx.SDRoundedBox(corner, -corner, 10, 10, radii), float32(0), "top-right is square")
	assert.Less(t, gfx.SDRoundedBox(-corner, corner, 10, 10, radii), float32(0), "bottom-left is square")
}

func TestClampRadii(t *testing.T) {
	got := gfx.ClampRadii([4]float32{1, 50, 100, math.MaxFloat32}, [2]float32{40, 20})
	assert.Equal(t, [4]float32{1, 10, 10, 10}, got)
}

func TestCoverage_InteriorAndOutside(t *testing.T) {
	size := [2]float32{100, 50}
	radii := gfx.UniformRadius(10)
	assert.Equal(t, float32(1), gfx.Coverage(50, 25, size, radii))
	assert.True(t, gfx.Discarded(gfx.Coverage(0.1, 0.1, size, radii)), "corner outside the arc is discarded")
	// one pixel outside the top-left arc sits in the middle of the AA band
	d := float32(10 - 11/math.Sqrt2)
	assert.InDelta(t, 0.5, gfx.Coverage(d, d, size, radii), 1e-3)
}

func TestCoverage_OversizedRadiiFormPill(t *testing.T) {
	size := [2]float32{100, 40}
	huge := gfx.UniformRadius(1000)
	pill := gfx.UniformRadius(20)

	for y := float32(0.5); y < 40; y += 1 {
		for x := float32(0.5); x < 100; x += 1 {
			assert.Equal(t, gfx.Coverage(x, y, size, pill), gfx.Coverage(x, y, size, huge), "at %v,%v", x, y)
		}
	}
	// the straight middle section stays fully covered: no seams
	for x := float32(20.5); x < 80; x += 1 {
		assert.Equal(t, float32(1), gfx.Coverage(x, 20, size, huge))
	}
	// distance along the center line never goes below -half height
	assert.InDelta(t, -20, gfx.SDRoundedBox(0, 0, 50, 20, gfx.ClampRadii(huge, size)), 1e-4)
}

func TestSmoothstep(t *testing.T) {
	assert.Equal(t, float32(0), gfx.Smoothstep(0, 2, -1))
	assert.Equal(t, float32(0.5), gfx.Smoothstep(0, 2, 1))
	assert.Equal(t, float32(1), gfx.Smoothstep(0, 2, 3))
}
