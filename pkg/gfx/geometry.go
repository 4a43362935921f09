package gfx

import "unsafe"

// QuadVertexCount is the vertex count of the unit quad triangle strip.
const QuadVertexCount = 4

const quadStride = 2 * 4

// quadVertices is the unit square as a triangle strip. Never mutated.
var quadVertices = [QuadVertexCount * 2]float32{
	0, 0,
	1, 0,
	0, 1,
	1, 1,
}

// QuadVertices returns a copy of the unit quad local positions.
func QuadVertices() [QuadVertexCount * 2]float32 {
	return quadVertices
}

func quadBytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&quadVertices[0])), len(quadVertices)*4)
}

// QuadAttrib describes location 0: two floats per vertex from the quad buffer.
func QuadAttrib(quad Buffer) VertexAttrib {
	return VertexAttrib{Buffer: quad, Location: 0, Size: 2, Stride: quadStride}
}

// InstanceAttribs describes locations 1..4 over the instance buffer. Offsets
// come from InstanceRecord itself so the layout cannot drift from the struct.
func InstanceAttribs(instances Buffer) []VertexAttrib {
	var rec InstanceRecord
	return []VertexAttrib{
		{Buffer: instances, Location: 1, Size: 3, Stride: RecordSize, Offset: int(unsafe.Offsetof(rec.WorldPos)), Divisor: 1},
		{Buffer: instances, Location: 2, Size: 4, Stride: RecordSize, Offset: int(unsafe.Offsetof(rec.Color)), Divisor: 1},
		{Buffer: instances, Location: 3, Size: 2, Stride: RecordSize, Offset: int(unsafe.Offsetof(rec.RectSize)), Divisor: 1},
		{Buffer: instances, Location: 4, Size: 4, Stride: RecordSize, Offset: int(unsafe.Offsetof(rec.Radii)), Divisor: 1},
	}
}

// RectLayout is the complete vertex layout of the rectangle pipeline.
func RectLayout(quad, instances Buffer) VertexLayout {
	attribs := make([]VertexAttrib, 0, 5)
	attribs = append(attribs, QuadAttrib(quad))
	attribs = append(attribs, InstanceAttribs(instances)...)
	return VertexLayout{Attribs: attribs}
}
