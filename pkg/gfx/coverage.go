package gfx

import "math"

const (
	// AABand is the width in pixels of the antialiased edge.
	AABand = 2.0
	// DiscardThreshold is the coverage below which a fragment is discarded.
	DiscardThreshold = 0.01
)

// ClampRadii limits every radius to half the smaller side of size so corners
// never overlap.
func ClampRadii(radii [4]float32, size [2]float32) [4]float32 {
	limit := min(size[0], size[1]) * 0.5
	for i, r := range radii {
		radii[i] = min(r, limit)
	}
	return radii
}

// cornerRadius picks the radius of the quadrant p lies in. p is relative to
// the center with +y down; radii are top-left, top-right, bottom-right,
// bottom-left.
func cornerRadius(px, py float32, radii [4]float32) float32 {
	if px > 0 {
		if py > 0 {
			return radii[2]
		}
		return radii[1]
	}
	if py > 0 {
		return radii[3]
	}
	return radii[0]
}

// SDRoundedBox is the signed distance from p to a box of half-extent b with
// per-corner radii: negative inside, zero on the edge, positive outside.
func SDRoundedBox(px, py, bx, by float32, radii [4]float32) float32 {
	r := cornerRadius(px, py, radii)
	qx := abs32(px) - bx + r
	qy := abs32(py) - by + r
	outside := float32(math.Hypot(float64(max(qx, 0)), float64(max(qy, 0))))
	return min(max(qx, qy), 0) + outside - r
}

// Smoothstep is the GLSL smoothstep.
func Smoothstep(edge0, edge1, x float32) float32 {
	t := (x - edge0) / (edge1 - edge0)
	t = min(max(t, 0), 1)
	return t * t * (3 - 2*t)
}

// Coverage is the alpha multiplier of the fragment at local (offset from the
// rectangle's top-left corner) for a rectangle of the given size and radii.
func Coverage(localX, localY float32, size [2]float32, radii [4]float32) float32 {
	hx, hy := size[0]*0.5, size[1]*0.5
	dist := SDRoundedBox(localX-hx, localY-hy, hx, hy, ClampRadii(radii, size))
	return 1 - Smoothstep(0, AABand, dist)
}

// Discarded reports whether a fragment with this coverage is dropped.
func Discarded(coverage float32) bool {
	return coverage < DiscardThreshold
}

func abs32(v float32) float32 {
	return math.Float32frombits(math.Float32bits(v) &^ (1 << 31))
}
