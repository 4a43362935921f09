//go:build !js

package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/kjkrol/rrect/pkg/gfx"
)

// device drives an OpenGL 3.3 core context through go-gl. Setup must have
// succeeded and the context must be current on the calling thread.
type device struct{}

// NewDevice returns a gfx.Device for the current GL context.
func NewDevice() gfx.Device {
	return &device{}
}

func (d *device) CreateShader(stage gfx.ShaderStage, source string) gfx.Shader {
	shader := gl.CreateShader(shaderType(stage))
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)
	return gfx.Shader(shader)
}

func (d *device) ShaderCompiled(s gfx.Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *device) ShaderInfoLog(s gfx.Shader) []byte {
	var logLength int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return nil
	}
	log := make([]byte, logLength)
	var written int32
	gl.GetShaderInfoLog(uint32(s), logLength, &written, &log[0])
	return log[:written]
}

func (d *device) DeleteShader(s gfx.Shader) {
	gl.DeleteShader(uint32(s))
}

func (d *device) CreateProgram(vertex, fragment gfx.Shader) gfx.Program {
	program := gl.CreateProgram()
	gl.AttachShader(program, uint32(vertex))
	gl.AttachShader(program, uint32(fragment))
	gl.LinkProgram(program)
	return gfx.Program(program)
}

func (d *device) ProgramLinked(p gfx.Program) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *device) ProgramInfoLog(p gfx.Program) []byte {
	var logLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return nil
	}
	log := make([]byte, logLength)
	var written int32
	gl.GetProgramInfoLog(uint32(p), logLength, &written, &log[0])
	return log[:written]
}

func (d *device) DeleteProgram(p gfx.Program) {
	gl.DeleteProgram(uint32(p))
}

func (d *device) UniformLocation(p gfx.Program, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

func (d *device) UseProgram(p gfx.Program) {
	gl.UseProgram(uint32(p))
}

func (d *device) UniformMatrix4(location int32, m *[16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *device) CreateBuffer(usage gfx.BufferUsage, size int, data []byte) (gfx.Buffer, error) {
	if len(data) > size {
		return 0, fmt.Errorf("buffer data (%d bytes) exceeds size %d", len(data), size)
	}
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	if vbo == 0 {
		return 0, fmt.Errorf("glGenBuffers returned no name")
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, bufferUsage(usage))
	if len(data) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data), gl.Ptr(data))
	}
	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteBuffers(1, &vbo)
		return 0, fmt.Errorf("buffer allocation of %d bytes: gl error 0x%x", size, code)
	}
	return gfx.Buffer(vbo), nil
}

func (d *device) UploadSubrange(b gfx.Buffer, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
	gl.BufferSubData(gl.ARRAY_BUFFER, offset, len(data), gl.Ptr(data))
}

func (d *device) DeleteBuffer(b gfx.Buffer) {
	vbo := uint32(b)
	gl.DeleteBuffers(1, &vbo)
}

func (d *device) BindVertexLayout(layout gfx.VertexLayout) (gfx.VertexArray, error) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	if vao == 0 {
		return 0, fmt.Errorf("glGenVertexArrays returned no name")
	}
	gl.BindVertexArray(vao)
	for _, a := range layout.Attribs {
		gl.BindBuffer(gl.ARRAY_BUFFER, uint32(a.Buffer))
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointer(a.Location, a.Size, gl.FLOAT, false, a.Stride, gl.PtrOffset(a.Offset))
		gl.VertexAttribDivisor(a.Location, a.Divisor)
	}
	gl.BindVertexArray(0)
	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteVertexArrays(1, &vao)
		return 0, fmt.Errorf("vertex layout: gl error 0x%x", code)
	}
	return gfx.VertexArray(vao), nil
}

func (d *device) DeleteVertexArray(va gfx.VertexArray) {
	vao := uint32(va)
	gl.DeleteVertexArrays(1, &vao)
}

func (d *device) DrawInstanced(va gfx.VertexArray, vertexCount, instanceCount int) {
	gl.BindVertexArray(uint32(va))
	gl.DrawArraysInstanced(gl.TRIANGLE_STRIP, 0, int32(vertexCount), int32(instanceCount))
	gl.BindVertexArray(0)
}

func (d *device) SetState(state gfx.DrawState) {
	if state.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LEQUAL)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	if state.Blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
}

func (d *device) Clear(rgba [4]float32) {
	gl.ClearColor(rgba[0], rgba[1], rgba[2], rgba[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func shaderType(stage gfx.ShaderStage) uint32 {
	if stage == gfx.FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func bufferUsage(usage gfx.BufferUsage) uint32 {
	if usage == gfx.DynamicDraw {
		return gl.DYNAMIC_DRAW
	}
	return gl.STATIC_DRAW
}
