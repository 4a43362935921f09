// Package raster is a software gfx.Device. It draws the rectangle pipeline
// into an *image.RGBA by evaluating gfx.Coverage per pixel instead of running
// GLSL, which makes frames reproducible without a GPU.
package raster

import (
	"fmt"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kjkrol/rrect/pkg/gfx"
)

const (
	viewLocation int32 = iota
	projectionLocation
)

type buffer struct {
	usage gfx.BufferUsage
	data  []byte
}

// Device renders into Target. The zero value is not usable; call New.
type Device struct {
	Target *image.RGBA
	depth  []float32

	next     uint32
	shaders  map[gfx.Shader]gfx.ShaderStage
	programs map[gfx.Program]bool
	buffers  map[gfx.Buffer]*buffer
	layouts  map[gfx.VertexArray]gfx.VertexLayout

	view       mgl32.Mat4
	projection mgl32.Mat4
	viewport   image.Rectangle
	state      gfx.DrawState

	// Draws counts DrawInstanced calls.
	Draws int
}

// New returns a device drawing into a width x height image.
func New(width, height int) *Device {
	d := &Device{
		Target:     image.NewRGBA(image.Rect(0, 0, width, height)),
		depth:      make([]float32, width*height),
		shaders:    make(map[gfx.Shader]gfx.ShaderStage),
		programs:   make(map[gfx.Program]bool),
		buffers:    make(map[gfx.Buffer]*buffer),
		layouts:    make(map[gfx.VertexArray]gfx.VertexLayout),
		view:       mgl32.Ident4(),
		projection: mgl32.Ident4(),
		viewport:   image.Rect(0, 0, width, height),
	}
	for i := range d.depth {
		d.depth[i] = 1
	}
	return d
}

func (d *Device) name() uint32 {
	d.next++
	return d.next
}

func (d *Device) CreateShader(stage gfx.ShaderStage, _ string) gfx.Shader {
	s := gfx.Shader(d.name())
	d.shaders[s] = stage
	return s
}

func (d *Device) ShaderCompiled(s gfx.Shader) bool {
	_, ok := d.shaders[s]
	return ok
}

func (d *Device) ShaderInfoLog(gfx.Shader) []byte { return nil }

func (d *Device) DeleteShader(s gfx.Shader) { delete(d.shaders, s) }

func (d *Device) CreateProgram(vertex, fragment gfx.Shader) gfx.Program {
	p := gfx.Program(d.name())
	d.programs[p] = d.shaders[vertex] == gfx.VertexStage && d.shaders[fragment] == gfx.FragmentStage
	return p
}

func (d *Device) ProgramLinked(p gfx.Program) bool { return d.programs[p] }

func (d *Device) ProgramInfoLog(p gfx.Program) []byte {
	if d.programs[p] {
		return nil
	}
	return []byte("raster: program needs one vertex and one fragment stage")
}

func (d *Device) DeleteProgram(p gfx.Program) { delete(d.programs, p) }

func (d *Device) UniformLocation(_ gfx.Program, name string) int32 {
	switch name {
	case "view":
		return viewLocation
	case "projection":
		return projectionLocation
	}
	return gfx.UniformNotFound
}

func (d *Device) UseProgram(gfx.Program) {}

func (d *Device) UniformMatrix4(location int32, m *[16]float32) {
	switch location {
	case viewLocation:
		d.view = mgl32.Mat4(*m)
	case projectionLocation:
		d.projection = mgl32.Mat4(*m)
	}
}

func (d *Device) CreateBuffer(usage gfx.BufferUsage, size int, data []byte) (gfx.Buffer, error) {
	if len(data) > size {
		return 0, fmt.Errorf("raster: buffer data (%d bytes) exceeds size %d", len(data), size)
	}
	b := &buffer{usage: usage, data: make([]byte, size)}
	copy(b.data, data)
	name := gfx.Buffer(d.name())
	d.buffers[name] = b
	return name, nil
}

func (d *Device) UploadSubrange(name gfx.Buffer, offset int, data []byte) {
	b, ok := d.buffers[name]
	if !ok || offset < 0 || offset+len(data) > len(b.data) {
		return
	}
	copy(b.data[offset:], data)
}

func (d *Device) DeleteBuffer(name gfx.Buffer) { delete(d.buffers, name) }

// BindVertexLayout accepts only the rectangle layout: the draw path decodes
// the instance buffer as gfx.InstanceRecord.
func (d *Device) BindVertexLayout(layout gfx.VertexLayout) (gfx.VertexArray, error) {
	inst, ok := instanceBuffer(layout)
	if !ok {
		return 0, fmt.Errorf("raster: layout has no instance attribute at location 1")
	}
	want := gfx.InstanceAttribs(inst)
	for _, w := range want {
		if !hasAttrib(layout, w) {
			return 0, fmt.Errorf("raster: attribute %d does not match the instance record layout", w.Location)
		}
	}
	va := gfx.VertexArray(d.name())
	d.layouts[va] = layout
	return va, nil
}

func instanceBuffer(layout gfx.VertexLayout) (gfx.Buffer, bool) {
	for _, a := range layout.Attribs {
		if a.Location == 1 && a.Divisor == 1 {
			return a.Buffer, true
		}
	}
	return 0, false
}

func hasAttrib(layout gfx.VertexLayout, want gfx.VertexAttrib) bool {
	for _, a := range layout.Attribs {
		if a == want {
			return true
		}
	}
	return false
}

func (d *Device) DeleteVertexArray(va gfx.VertexArray) { delete(d.layouts, va) }

func (d *Device) DrawInstanced(va gfx.VertexArray, _ int, instanceCount int) {
	layout, ok := d.layouts[va]
	if !ok {
		return
	}
	inst, _ := instanceBuffer(layout)
	b, ok := d.buffers[inst]
	if !ok {
		return
	}
	d.Draws++
	n := min(instanceCount, len(b.data)/gfx.RecordSize)
	records := gfx.DecodeRecords(b.data[:n*gfx.RecordSize])
	mvp := d.projection.Mul4(d.view)
	for _, rec := range records {
		d.drawRect(mvp, rec)
	}
}

func (d *Device) SetState(state gfx.DrawState) { d.state = state }

func (d *Device) Clear(rgba [4]float32) {
	c := [4]uint8{to8(rgba[0]), to8(rgba[1]), to8(rgba[2]), to8(rgba[3])}
	pix := d.Target.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		copy(pix[i:i+4], c[:])
	}
	for i := range d.depth {
		d.depth[i] = 1
	}
}

// Viewport takes GL coordinates: (x, y) is the lower-left corner.
func (d *Device) Viewport(x, y, width, height int) {
	d.viewport = image.Rect(x, y, x+width, y+height)
}

// toScreen maps clip space to image pixels (origin top-left).
func (d *Device) toScreen(ndc mgl32.Vec3) (float32, float32, float32) {
	vp := d.viewport
	sx := float32(vp.Min.X) + (ndc.X()+1)*0.5*float32(vp.Dx())
	glY := float32(vp.Min.Y) + (ndc.Y()+1)*0.5*float32(vp.Dy())
	sy := float32(d.Target.Rect.Dy()) - glY
	return sx, sy, (ndc.Z() + 1) * 0.5
}

func (d *Device) drawRect(mvp mgl32.Mat4, rec gfx.InstanceRecord) {
	w, h := rec.RectSize[0], rec.RectSize[1]
	if w <= 0 || h <= 0 {
		return
	}
	x, y, z := rec.WorldPos[0], rec.WorldPos[1], rec.WorldPos[2]
	x0, y0, depth := d.toScreen(mgl32.TransformCoordinate(mgl32.Vec3{x, y, z}, mvp))
	x1, y1, _ := d.toScreen(mgl32.TransformCoordinate(mgl32.Vec3{x + w, y + h, z}, mvp))
	if depth < 0 || depth > 1 {
		return
	}

	bounds := d.Target.Rect
	minX := max(int(math.Floor(float64(min(x0, x1)))), bounds.Min.X)
	maxX := min(int(math.Ceil(float64(max(x0, x1)))), bounds.Max.X)
	minY := max(int(math.Floor(float64(min(y0, y1)))), bounds.Min.Y)
	maxY := min(int(math.Ceil(float64(max(y0, y1)))), bounds.Max.Y)

	for py := minY; py < maxY; py++ {
		cy := float32(py) + 0.5
		ly := (cy - y0) / (y1 - y0) * h
		if ly < 0 || ly >= h {
			continue
		}
		for px := minX; px < maxX; px++ {
			cx := float32(px) + 0.5
			lx := (cx - x0) / (x1 - x0) * w
			if lx < 0 || lx >= w {
				continue
			}
			cov := gfx.Coverage(lx, ly, rec.RectSize, rec.Radii)
			if gfx.Discarded(cov) {
				continue
			}
			d.shade(px, py, depth, rec.Color, cov)
		}
	}
}

func (d *Device) shade(px, py int, depth float32, color [4]float32, cov float32) {
	di := (py-d.Target.Rect.Min.Y)*d.Target.Rect.Dx() + (px - d.Target.Rect.Min.X)
	if d.state.DepthTest {
		if depth > d.depth[di] {
			return
		}
		d.depth[di] = depth
	}
	a := color[3] * cov
	i := d.Target.PixOffset(px, py)
	pix := d.Target.Pix[i : i+4 : i+4]
	if !d.state.Blend {
		pix[0], pix[1], pix[2], pix[3] = to8(color[0]), to8(color[1]), to8(color[2]), to8(a)
		return
	}
	src := [4]float32{color[0], color[1], color[2], a}
	for c := 0; c < 4; c++ {
		dst := float32(pix[c]) / 255
		pix[c] = to8(src[c]*a + dst*(1-a))
	}
}

func to8(v float32) uint8 {
	v = min(max(v, 0), 1)
	return uint8(v*255 + 0.5)
}
