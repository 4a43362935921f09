//go:build js && wasm

package glbackend

import (
	"fmt"
	"strings"
	"syscall/js"
	"unsafe"

	"github.com/kjkrol/rrect/pkg/gfx"
)

const (
	desktopVersion = "#version 330 core"
	webVersion     = "#version 300 es\nprecision highp float;"
)

type glConsts struct {
	arrayBuffer      int
	staticDraw       int
	dynamicDraw      int
	floatType        int
	triangleStrip    int
	colorBufferBit   int
	depthBufferBit   int
	depthTest        int
	lequal           int
	blend            int
	srcAlpha         int
	oneMinusSrcAlpha int
	compileStatus    int
	linkStatus       int
	vertexShader     int
	fragmentShader   int
}

// webDevice drives a WebGL2 context. JS objects are kept in tables so that
// gfx sees plain integer names.
type webDevice struct {
	gl      js.Value
	consts  glConsts
	next    uint32
	objects map[uint32]js.Value
	uniform []js.Value
}

// NewWebDevice wraps a WebGL2RenderingContext.
func NewWebDevice(ctx js.Value) (gfx.Device, error) {
	if ctx.IsUndefined() || ctx.IsNull() {
		return nil, fmt.Errorf("glbackend: webgl2 context is required")
	}
	d := &webDevice{
		gl:      ctx,
		objects: make(map[uint32]js.Value),
	}
	d.initConsts()
	return d, nil
}

func (d *webDevice) initConsts() {
	d.consts = glConsts{
		arrayBuffer:      d.gl.Get("ARRAY_BUFFER").Int(),
		staticDraw:       d.gl.Get("STATIC_DRAW").Int(),
		dynamicDraw:      d.gl.Get("DYNAMIC_DRAW").Int(),
		floatType:        d.gl.Get("FLOAT").Int(),
		triangleStrip:    d.gl.Get("TRIANGLE_STRIP").Int(),
		colorBufferBit:   d.gl.Get("COLOR_BUFFER_BIT").Int(),
		depthBufferBit:   d.gl.Get("DEPTH_BUFFER_BIT").Int(),
		depthTest:        d.gl.Get("DEPTH_TEST").Int(),
		lequal:           d.gl.Get("LEQUAL").Int(),
		blend:            d.gl.Get("BLEND").Int(),
		srcAlpha:         d.gl.Get("SRC_ALPHA").Int(),
		oneMinusSrcAlpha: d.gl.Get("ONE_MINUS_SRC_ALPHA").Int(),
		compileStatus:    d.gl.Get("COMPILE_STATUS").Int(),
		linkStatus:       d.gl.Get("LINK_STATUS").Int(),
		vertexShader:     d.gl.Get("VERTEX_SHADER").Int(),
		fragmentShader:   d.gl.Get("FRAGMENT_SHADER").Int(),
	}
}

func (d *webDevice) put(v js.Value) uint32 {
	if v.IsNull() || v.IsUndefined() {
		return 0
	}
	d.next++
	d.objects[d.next] = v
	return d.next
}

func (d *webDevice) take(name uint32) js.Value {
	v, ok := d.objects[name]
	if !ok {
		return js.Null()
	}
	delete(d.objects, name)
	return v
}

func (d *webDevice) CreateShader(stage gfx.ShaderStage, source string) gfx.Shader {
	kind := d.consts.vertexShader
	if stage == gfx.FragmentStage {
		kind = d.consts.fragmentShader
	}
	shader := d.gl.Call("createShader", kind)
	d.gl.Call("shaderSource", shader, webSource(source))
	d.gl.Call("compileShader", shader)
	return gfx.Shader(d.put(shader))
}

// webSource swaps the desktop version line for its GLSL ES 3.00 equivalent.
func webSource(source string) string {
	return strings.Replace(source, desktopVersion, webVersion, 1)
}

func (d *webDevice) ShaderCompiled(s gfx.Shader) bool {
	return d.gl.Call("getShaderParameter", d.objects[uint32(s)], d.consts.compileStatus).Bool()
}

func (d *webDevice) ShaderInfoLog(s gfx.Shader) []byte {
	return []byte(d.gl.Call("getShaderInfoLog", d.objects[uint32(s)]).String())
}

func (d *webDevice) DeleteShader(s gfx.Shader) {
	d.gl.Call("deleteShader", d.take(uint32(s)))
}

func (d *webDevice) CreateProgram(vertex, fragment gfx.Shader) gfx.Program {
	program := d.gl.Call("createProgram")
	d.gl.Call("attachShader", program, d.objects[uint32(vertex)])
	d.gl.Call("attachShader", program, d.objects[uint32(fragment)])
	d.gl.Call("linkProgram", program)
	return gfx.Program(d.put(program))
}

func (d *webDevice) ProgramLinked(p gfx.Program) bool {
	return d.gl.Call("getProgramParameter", d.objects[uint32(p)], d.consts.linkStatus).Bool()
}

func (d *webDevice) ProgramInfoLog(p gfx.Program) []byte {
	return []byte(d.gl.Call("getProgramInfoLog", d.objects[uint32(p)]).String())
}

func (d *webDevice) DeleteProgram(p gfx.Program) {
	d.gl.Call("deleteProgram", d.take(uint32(p)))
}

func (d *webDevice) UniformLocation(p gfx.Program, name string) int32 {
	loc := d.gl.Call("getUniformLocation", d.objects[uint32(p)], name)
	if loc.IsNull() {
		return gfx.UniformNotFound
	}
	d.uniform = append(d.uniform, loc)
	return int32(len(d.uniform) - 1)
}

func (d *webDevice) UseProgram(p gfx.Program) {
	d.gl.Call("useProgram", d.objects[uint32(p)])
}

func (d *webDevice) UniformMatrix4(location int32, m *[16]float32) {
	if location < 0 || int(location) >= len(d.uniform) {
		return
	}
	d.gl.Call("uniformMatrix4fv", d.uniform[location], false, float32Array(m[:]))
}

func (d *webDevice) CreateBuffer(usage gfx.BufferUsage, size int, data []byte) (gfx.Buffer, error) {
	if len(data) > size {
		return 0, fmt.Errorf("buffer data (%d bytes) exceeds size %d", len(data), size)
	}
	vbo := d.gl.Call("createBuffer")
	if vbo.IsNull() {
		return 0, fmt.Errorf("createBuffer returned null")
	}
	hint := d.consts.staticDraw
	if usage == gfx.DynamicDraw {
		hint = d.consts.dynamicDraw
	}
	d.gl.Call("bindBuffer", d.consts.arrayBuffer, vbo)
	d.gl.Call("bufferData", d.consts.arrayBuffer, size, hint)
	if len(data) > 0 {
		d.gl.Call("bufferSubData", d.consts.arrayBuffer, 0, uint8Array(data))
	}
	return gfx.Buffer(d.put(vbo)), nil
}

func (d *webDevice) UploadSubrange(b gfx.Buffer, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	d.gl.Call("bindBuffer", d.consts.arrayBuffer, d.objects[uint32(b)])
	d.gl.Call("bufferSubData", d.consts.arrayBuffer, offset, uint8Array(data))
}

func (d *webDevice) DeleteBuffer(b gfx.Buffer) {
	d.gl.Call("deleteBuffer", d.take(uint32(b)))
}

func (d *webDevice) BindVertexLayout(layout gfx.VertexLayout) (gfx.VertexArray, error) {
	vao := d.gl.Call("createVertexArray")
	if vao.IsNull() {
		return 0, fmt.Errorf("createVertexArray returned null")
	}
	d.gl.Call("bindVertexArray", vao)
	for _, a := range layout.Attribs {
		d.gl.Call("bindBuffer", d.consts.arrayBuffer, d.objects[uint32(a.Buffer)])
		d.gl.Call("enableVertexAttribArray", a.Location)
		d.gl.Call("vertexAttribPointer", a.Location, a.Size, d.consts.floatType, false, a.Stride, a.Offset)
		d.gl.Call("vertexAttribDivisor", a.Location, a.Divisor)
	}
	d.gl.Call("bindVertexArray", js.Null())
	return gfx.VertexArray(d.put(vao)), nil
}

func (d *webDevice) DeleteVertexArray(va gfx.VertexArray) {
	d.gl.Call("deleteVertexArray", d.take(uint32(va)))
}

func (d *webDevice) DrawInstanced(va gfx.VertexArray, vertexCount, instanceCount int) {
	d.gl.Call("bindVertexArray", d.objects[uint32(va)])
	d.gl.Call("drawArraysInstanced", d.consts.triangleStrip, 0, vertexCount, instanceCount)
	d.gl.Call("bindVertexArray", js.Null())
}

func (d *webDevice) SetState(state gfx.DrawState) {
	if state.DepthTest {
		d.gl.Call("enable", d.consts.depthTest)
		d.gl.Call("depthFunc", d.consts.lequal)
	} else {
		d.gl.Call("disable", d.consts.depthTest)
	}
	if state.Blend {
		d.gl.Call("enable", d.consts.blend)
		d.gl.Call("blendFunc", d.consts.srcAlpha, d.consts.oneMinusSrcAlpha)
	} else {
		d.gl.Call("disable", d.consts.blend)
	}
}

func (d *webDevice) Clear(rgba [4]float32) {
	d.gl.Call("clearColor", rgba[0], rgba[1], rgba[2], rgba[3])
	d.gl.Call("clear", d.consts.colorBufferBit|d.consts.depthBufferBit)
}

func (d *webDevice) Viewport(x, y, width, height int) {
	d.gl.Call("viewport", x, y, width, height)
}

func float32Array(data []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(data))
	if len(data) == 0 {
		return arr
	}
	buf := arr.Get("buffer")
	view := js.Global().Get("Uint8Array").New(buf, arr.Get("byteOffset"), arr.Get("byteLength"))
	js.CopyBytesToJS(view, unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4))
	return arr
}

func uint8Array(data []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(arr, data)
	return arr
}
