package gfx

import (
	"image/color"
	"unsafe"
)

const (
	// FloatsPerInstance is the number of float32 values in one InstanceRecord.
	FloatsPerInstance = 13
	// RecordSize is the byte stride of one InstanceRecord in the instance buffer.
	RecordSize = FloatsPerInstance * 4
)

// InstanceRecord is the per-rectangle payload uploaded to the instance buffer.
// Field order and sizes mirror the per-instance attributes of the rectangle
// vertex shader (locations 1..4); see InstanceAttribs.
type InstanceRecord struct {
	WorldPos [3]float32 // top-left corner; z only orders draws
	Color    [4]float32 // unpremultiplied RGBA
	RectSize [2]float32 // width, height
	Radii    [4]float32 // top-left, top-right, bottom-right, bottom-left
}

// Fails to compile if InstanceRecord is not exactly RecordSize bytes.
var (
	_ [RecordSize - unsafe.Sizeof(InstanceRecord{})]struct{}
	_ [unsafe.Sizeof(InstanceRecord{}) - RecordSize]struct{}
)

// NewRect builds an InstanceRecord from the flat argument list used by the
// frame driver.
func NewRect(x, y, z, width, height, r, g, b, a, radiusTL, radiusTR, radiusBR, radiusBL float32) InstanceRecord {
	return InstanceRecord{
		WorldPos: [3]float32{x, y, z},
		Color:    [4]float32{r, g, b, a},
		RectSize: [2]float32{width, height},
		Radii:    [4]float32{radiusTL, radiusTR, radiusBR, radiusBL},
	}
}

// UniformRadius returns four equal corner radii.
func UniformRadius(r float32) [4]float32 {
	return [4]float32{r, r, r, r}
}

// ColorFromRGBA converts a Go color into the unpremultiplied float RGBA the
// shader expects. A nil color maps to transparent black.
func ColorFromRGBA(c color.Color) [4]float32 {
	if c == nil {
		return [4]float32{}
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	const inv = 1.0 / 255.0
	return [4]float32{
		float32(nc.R) * inv,
		float32(nc.G) * inv,
		float32(nc.B) * inv,
		float32(nc.A) * inv,
	}
}

// RecordBytes returns a byte view over records without copying. The view
// aliases records and is only valid while records is unchanged.
func RecordBytes(records []InstanceRecord) []byte {
	if len(records) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&records[0])), len(records)*RecordSize)
}

// DecodeRecords copies a tightly packed instance byte stream back into
// records. Trailing bytes that do not form a whole record are ignored.
func DecodeRecords(data []byte) []InstanceRecord {
	n := len(data) / RecordSize
	if n == 0 {
		return nil
	}
	out := make([]InstanceRecord, n)
	copy(RecordBytes(out), data[:n*RecordSize])
	return out
}
