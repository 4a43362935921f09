package gfx_test

import (
	"encoding/binary"
	"image/color"
	"math"
	"testing"
	"unsafe"

	"github.com/kjkrol/rrect/pkg/gfx"
	"github.com/stretchr/testify/assert"
)

func TestInstanceRecord_Layout(t *testing.T) {
	assert.Equal(t, uintptr(52), unsafe.Sizeof(gfx.InstanceRecord{}))

	attribs := gfx.InstanceAttribs(7)
	want := []struct {
		loc    uint32
		size   int32
		offset int
	}{
		{1, 3, 0},
		{2, 4, 12},
		{3, 2, 28},
		{4, 4, 36},
	}
	assert.Len(t, attribs, len(want))
	for i, w := range want {
		a := attribs[i]
		assert.Equal(t, w.loc, a.Location)
		assert.Equal(t, w.size, a.Size)
		assert.Equal(t, w.offset, a.Offset)
		assert.Equal(t, int32(gfx.RecordSize), a.Stride)
		assert.Equal(t, uint32(1), a.Divisor, "instance attributes advance per instance")
		assert.Equal(t, gfx.Buffer(7), a.Buffer)
	}

	last := attribs[len(attribs)-1]
	assert.Equal(t, gfx.RecordSize, last.Offset+int(last.Size)*4, "attributes cover the record without gaps")
}

func TestRecordBytes_FieldOrder(t *testing.T) {
	rec := gfx.NewRect(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13)
	raw := gfx.RecordBytes([]gfx.InstanceRecord{rec})
	assert.Len(t, raw, gfx.RecordSize)
	for i := 0; i < gfx.FloatsPerInstance; i++ {
		bits := binary.NativeEndian.Uint32(raw[i*4:])
		assert.Equal(t, float32(i+1), math.Float32frombits(bits), "float %d", i)
	}
}

func TestDecodeRecords_IgnoresPartialTail(t *testing.T) {
	recs := []gfx.InstanceRecord{rectAt(1), rectAt(2)}
	raw := append(gfx.RecordBytes(recs), 1, 2, 3)
	assert.Equal(t, recs, gfx.DecodeRecords(raw))
	assert.Nil(t, gfx.DecodeRecords(raw[:10]))
}

func TestQuadVertices(t *testing.T) {
	assert.Equal(t, [8]float32{0, 0, 1, 0, 0, 1, 1, 1}, gfx.QuadVertices())

	q := gfx.QuadAttrib(3)
	assert.Equal(t, uint32(0), q.Location)
	assert.Equal(t, int32(2), q.Size)
	assert.Equal(t, uint32(0), q.Divisor, "quad advances per vertex")
}

func TestColorFromRGBA(t *testing.T) {
	assert.Equal(t, [4]float32{1, 0, 0, 1}, gfx.ColorFromRGBA(color.NRGBA{R: 255, A: 255}))
	assert.Equal(t, [4]float32{}, gfx.ColorFromRGBA(nil))

	// premultiplied half-transparent white comes back unpremultiplied
	c := gfx.ColorFromRGBA(color.RGBA{R: 128, G: 128, B: 128, A: 128})
	assert.InDelta(t, 1.0, c[0], 0.01)
	assert.InDelta(t, 128.0/255.0, c[3], 0.001)
}
