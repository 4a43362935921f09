package gfx

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode/utf8"
)

//go:embed shaders/rect.vert
var RectVertexShader string

//go:embed shaders/rect.frag
var RectFragmentShader string

const (
	compileLogFallback = "shader error log was not utf8"
	linkLogFallback    = "linker error log was not utf8"
)

// CompileError carries the driver's diagnostic log for a failed stage.
type CompileError struct {
	Stage ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compile error: %s", e.Stage, e.Log)
}

// LinkError carries the driver's diagnostic log for a failed link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link error: %s", e.Log)
}

// CompileShader compiles one stage. On failure the stage is deleted and the
// info log is returned inside a *CompileError.
func CompileShader(dev Device, stage ShaderStage, source string) (Shader, error) {
	shader := dev.CreateShader(stage, source)
	if dev.ShaderCompiled(shader) {
		return shader, nil
	}
	log := infoLog(dev.ShaderInfoLog(shader), compileLogFallback)
	dev.DeleteShader(shader)
	return 0, &CompileError{Stage: stage, Log: log}
}

// LinkProgram links two compiled stages. The stages are released on success;
// on failure they are released together with the program.
func LinkProgram(dev Device, vertex, fragment Shader) (Program, error) {
	program := dev.CreateProgram(vertex, fragment)
	if !dev.ProgramLinked(program) {
		log := infoLog(dev.ProgramInfoLog(program), linkLogFallback)
		dev.DeleteProgram(program)
		dev.DeleteShader(vertex)
		dev.DeleteShader(fragment)
		return 0, &LinkError{Log: log}
	}
	dev.DeleteShader(vertex)
	dev.DeleteShader(fragment)
	return program, nil
}

// infoLog turns a raw driver log into text. Drivers pad logs with NULs.
func infoLog(raw []byte, fallback string) string {
	if !utf8.Valid(raw) {
		return fallback
	}
	return strings.TrimRight(string(raw), "\x00")
}

// ShaderProgram is a linked program with its cached matrix uniforms.
type ShaderProgram struct {
	dev           Device
	program       Program
	viewLoc       int32
	projectionLoc int32
}

// NewShaderProgram compiles and links the pair and resolves the "view" and
// "projection" uniforms.
func NewShaderProgram(dev Device, vertexSource, fragmentSource string) (*ShaderProgram, error) {
	vs, err := CompileShader(dev, VertexStage, vertexSource)
	if err != nil {
		return nil, err
	}
	fs, err := CompileShader(dev, FragmentStage, fragmentSource)
	if err != nil {
		dev.DeleteShader(vs)
		return nil, err
	}
	program, err := LinkProgram(dev, vs, fs)
	if err != nil {
		return nil, err
	}
	sp := &ShaderProgram{dev: dev, program: program}
	sp.viewLoc = sp.ResolveUniform("view")
	sp.projectionLoc = sp.ResolveUniform("projection")
	return sp, nil
}

// ResolveUniform returns the location of name, or UniformNotFound.
func (sp *ShaderProgram) ResolveUniform(name string) int32 {
	loc := sp.dev.UniformLocation(sp.program, name)
	if loc < 0 {
		Logger().Debug("uniform not found", "name", name)
		return UniformNotFound
	}
	return loc
}

func (sp *ShaderProgram) Activate() {
	sp.dev.UseProgram(sp.program)
}

func (sp *ShaderProgram) Program() Program          { return sp.program }
func (sp *ShaderProgram) ViewLocation() int32       { return sp.viewLoc }
func (sp *ShaderProgram) ProjectionLocation() int32 { return sp.projectionLoc }

// SetMatrix uploads m unless loc is UniformNotFound.
func (sp *ShaderProgram) SetMatrix(loc int32, m *[16]float32) {
	if loc == UniformNotFound {
		return
	}
	sp.dev.UniformMatrix4(loc, m)
}

func (sp *ShaderProgram) Delete() {
	if sp.program != 0 {
		sp.dev.DeleteProgram(sp.program)
		sp.program = 0
	}
}
