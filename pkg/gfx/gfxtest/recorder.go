// Package gfxtest provides a recording gfx.Device for tests.
package gfxtest

import (
	"fmt"

	"github.com/kjkrol/rrect/pkg/gfx"
)

// Call is one recorded device method invocation.
type Call struct {
	Method string
	Args   []any
}

// Upload is one UploadSubrange call with a copy of its data.
type Upload struct {
	Buffer gfx.Buffer
	Offset int
	Data   []byte
}

// Records decodes the uploaded bytes as instance records.
func (u Upload) Records() []gfx.InstanceRecord {
	return gfx.DecodeRecords(u.Data)
}

// Draw is one DrawInstanced call.
type Draw struct {
	VertexArray gfx.VertexArray
	Vertices    int
	Instances   int
}

// Recorder implements gfx.Device by recording every call. Failures can be
// scripted through the exported fields before the device is used.
type Recorder struct {
	// FailStage makes compilation of that stage fail with StageLog.
	FailStage *gfx.ShaderStage
	StageLog  []byte
	// FailLink makes linking fail with LinkLog.
	FailLink bool
	LinkLog  []byte
	// FailBuffer makes CreateBuffer fail for that usage.
	FailBuffer *gfx.BufferUsage
	// MissingUniforms reports UniformNotFound for these names.
	MissingUniforms map[string]bool

	Calls    []Call
	Uploads  []Upload
	Draws    []Draw
	Matrices map[int32][16]float32
	Buffers  map[gfx.Buffer]int
	Layouts  map[gfx.VertexArray]gfx.VertexLayout
	State    gfx.DrawState
	// ViewportRect is the last Viewport call as x, y, width, height.
	ViewportRect [4]int

	live     map[uint32]string
	next     uint32
	failed   map[gfx.Shader]bool
	uniforms map[string]int32
}

func NewRecorder() *Recorder {
	return &Recorder{
		MissingUniforms: make(map[string]bool),
		Matrices:        make(map[int32][16]float32),
		Buffers:         make(map[gfx.Buffer]int),
		Layouts:         make(map[gfx.VertexArray]gfx.VertexLayout),
		live:            make(map[uint32]string),
		failed:          make(map[gfx.Shader]bool),
		uniforms:        make(map[string]int32),
	}
}

func (r *Recorder) record(method string, args ...any) {
	r.Calls = append(r.Calls, Call{Method: method, Args: args})
}

func (r *Recorder) alloc(kind string) uint32 {
	r.next++
	r.live[r.next] = kind
	return r.next
}

func (r *Recorder) release(name uint32) {
	delete(r.live, name)
}

// Live returns the number of objects created and not yet deleted.
func (r *Recorder) Live() int { return len(r.live) }

// Count returns how many times method was called.
func (r *Recorder) Count(method string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls, uploads and draws but keeps object state.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Uploads = nil
	r.Draws = nil
}

func (r *Recorder) CreateShader(stage gfx.ShaderStage, source string) gfx.Shader {
	s := gfx.Shader(r.alloc("shader"))
	r.record("CreateShader", stage, source)
	if r.FailStage != nil && *r.FailStage == stage {
		r.failed[s] = true
	}
	return s
}

func (r *Recorder) ShaderCompiled(s gfx.Shader) bool {
	r.record("ShaderCompiled", s)
	return !r.failed[s]
}

func (r *Recorder) ShaderInfoLog(s gfx.Shader) []byte {
	r.record("ShaderInfoLog", s)
	if r.failed[s] {
		return r.StageLog
	}
	return nil
}

func (r *Recorder) DeleteShader(s gfx.Shader) {
	r.record("DeleteShader", s)
	r.release(uint32(s))
}

func (r *Recorder) CreateProgram(vertex, fragment gfx.Shader) gfx.Program {
	p := gfx.Program(r.alloc("program"))
	r.record("CreateProgram", vertex, fragment)
	return p
}

func (r *Recorder) ProgramLinked(p gfx.Program) bool {
	r.record("ProgramLinked", p)
	return !r.FailLink
}

func (r *Recorder) ProgramInfoLog(p gfx.Program) []byte {
	r.record("ProgramInfoLog", p)
	return r.LinkLog
}

func (r *Recorder) DeleteProgram(p gfx.Program) {
	r.record("DeleteProgram", p)
	r.release(uint32(p))
}

func (r *Recorder) UniformLocation(p gfx.Program, name string) int32 {
	r.record("UniformLocation", p, name)
	if r.MissingUniforms[name] {
		return gfx.UniformNotFound
	}
	loc, ok := r.uniforms[name]
	if !ok {
		loc = int32(len(r.uniforms))
		r.uniforms[name] = loc
	}
	return loc
}

func (r *Recorder) UseProgram(p gfx.Program) {
	r.record("UseProgram", p)
}

func (r *Recorder) UniformMatrix4(location int32, m *[16]float32) {
	r.record("UniformMatrix4", location)
	r.Matrices[location] = *m
}

// UniformMatrix returns the last matrix uploaded for a uniform name.
func (r *Recorder) UniformMatrix(name string) ([16]float32, bool) {
	loc, ok := r.uniforms[name]
	if !ok {
		return [16]float32{}, false
	}
	m, ok := r.Matrices[loc]
	return m, ok
}

func (r *Recorder) CreateBuffer(usage gfx.BufferUsage, size int, data []byte) (gfx.Buffer, error) {
	r.record("CreateBuffer", usage, size)
	if r.FailBuffer != nil && *r.FailBuffer == usage {
		return 0, fmt.Errorf("gfxtest: scripted buffer failure")
	}
	b := gfx.Buffer(r.alloc("buffer"))
	r.Buffers[b] = size
	return b, nil
}

func (r *Recorder) UploadSubrange(b gfx.Buffer, offset int, data []byte) {
	r.record("UploadSubrange", b, offset, len(data))
	r.Uploads = append(r.Uploads, Upload{Buffer: b, Offset: offset, Data: append([]byte(nil), data...)})
}

func (r *Recorder) DeleteBuffer(b gfx.Buffer) {
	r.record("DeleteBuffer", b)
	delete(r.Buffers, b)
	r.release(uint32(b))
}

func (r *Recorder) BindVertexLayout(layout gfx.VertexLayout) (gfx.VertexArray, error) {
	r.record("BindVertexLayout", len(layout.Attribs))
	va := gfx.VertexArray(r.alloc("vertex array"))
	r.Layouts[va] = layout
	return va, nil
}

func (r *Recorder) DeleteVertexArray(va gfx.VertexArray) {
	r.record("DeleteVertexArray", va)
	delete(r.Layouts, va)
	r.release(uint32(va))
}

func (r *Recorder) DrawInstanced(va gfx.VertexArray, vertexCount, instanceCount int) {
	r.record("DrawInstanced", va, vertexCount, instanceCount)
	r.Draws = append(r.Draws, Draw{VertexArray: va, Vertices: vertexCount, Instances: instanceCount})
}

func (r *Recorder) SetState(state gfx.DrawState) {
	r.record("SetState", state)
	r.State = state
}

func (r *Recorder) Clear(rgba [4]float32) {
	r.record("Clear", rgba)
}

func (r *Recorder) Viewport(x, y, width, height int) {
	r.record("Viewport", x, y, width, height)
	r.ViewportRect = [4]int{x, y, width, height}
}
