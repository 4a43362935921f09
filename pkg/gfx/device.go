package gfx

// Shader, Program, Buffer and VertexArray are opaque device object names.
// Zero is never a valid object.
type (
	Shader      uint32
	Program     uint32
	Buffer      uint32
	VertexArray uint32
)

type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

type BufferUsage int

const (
	StaticDraw BufferUsage = iota
	DynamicDraw
)

// UniformNotFound is the location reported for a uniform the program does not
// declare. Uploads to it are skipped.
const UniformNotFound int32 = -1

// VertexAttrib binds one shader input location to a range of a buffer.
// Divisor 0 advances per vertex, 1 advances per instance.
type VertexAttrib struct {
	Buffer   Buffer
	Location uint32
	Size     int32 // float32 components
	Stride   int32 // bytes
	Offset   int   // bytes
	Divisor  uint32
}

// VertexLayout is the full attribute setup captured in one vertex array.
type VertexLayout struct {
	Attribs []VertexAttrib
}

// DrawState is the fixed-function state set once at initialization.
type DrawState struct {
	DepthTest bool
	Blend     bool
}

// Device is the narrow slice of a graphics API the renderer drives.
// Implementations must be used from the thread that owns the context.
type Device interface {
	CreateShader(stage ShaderStage, source string) Shader
	ShaderCompiled(s Shader) bool
	ShaderInfoLog(s Shader) []byte
	DeleteShader(s Shader)

	// CreateProgram attaches the stages and links them.
	CreateProgram(vertex, fragment Shader) Program
	ProgramLinked(p Program) bool
	ProgramInfoLog(p Program) []byte
	DeleteProgram(p Program)

	UniformLocation(p Program, name string) int32
	UseProgram(p Program)
	UniformMatrix4(location int32, m *[16]float32)

	// CreateBuffer allocates size bytes. data may be nil or up to size bytes.
	CreateBuffer(usage BufferUsage, size int, data []byte) (Buffer, error)
	UploadSubrange(b Buffer, offset int, data []byte)
	DeleteBuffer(b Buffer)

	BindVertexLayout(layout VertexLayout) (VertexArray, error)
	DeleteVertexArray(va VertexArray)
	// DrawInstanced draws a triangle strip of vertexCount vertices
	// instanceCount times.
	DrawInstanced(va VertexArray, vertexCount, instanceCount int)

	SetState(state DrawState)
	Clear(rgba [4]float32)
	Viewport(x, y, width, height int)
}
