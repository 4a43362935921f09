package gfx

import "github.com/go-gl/mathgl/mgl32"

// FrameState holds the per-frame transforms. The renderer reads it during
// Flush and never keeps it.
type FrameState struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Width      int
	Height     int
}

// NewFrameState returns the transforms for a width x height pixel viewport
// with the origin at the top-left corner.
func NewFrameState(width, height int) *FrameState {
	f := &FrameState{}
	f.Resize(width, height)
	return f
}

// Resize recomputes the orthographic projection: x in [0,width], y in
// [height,0], z in [-1,1]. View is reset to identity.
func (f *FrameState) Resize(width, height int) {
	f.Width = width
	f.Height = height
	f.View = mgl32.Ident4()
	f.Projection = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// ToClip maps a world point to normalized device coordinates.
func (f *FrameState) ToClip(x, y, z float32) mgl32.Vec3 {
	return mgl32.TransformCoordinate(mgl32.Vec3{x, y, z}, f.Projection.Mul4(f.View))
}
