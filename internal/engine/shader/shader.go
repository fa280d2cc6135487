// Package shader compiles GLSL programs and tracks uniform locations.
package shader

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Program is a linked GLSL program built from a vertex and a fragment
// shader file, plus the locations of the uniforms the renderer updates
// each frame. Locations are queried once per link; a uniform the
// shader does not declare resolves to -1 and its updates are skipped.
type Program struct {
	handle    uint32
	vertPath  string
	fragPath  string
	uniforms  []string
	locations map[string]int32
}

// Load reads, compiles and links the shader pair and resolves the
// named uniforms. The source paths are kept for later reloads.
func Load(vertPath, fragPath string, uniforms ...string) (*Program, error) {
	p := &Program{
		vertPath: vertPath,
		fragPath: fragPath,
		uniforms: uniforms,
	}

	handle, err := p.compile()
	if err != nil {
		return nil, err
	}
	p.adopt(handle)
	return p, nil
}

// Reload recompiles the program from the same two source paths. On
// success the old program is destroyed and replaced. On failure the
// old program stays bound to this Program untouched, so rendering
// continues with the previous shading.
func (p *Program) Reload() error {
	handle, err := p.compile()
	if err != nil {
		return err
	}
	gl.DeleteProgram(p.handle)
	p.adopt(handle)
	return nil
}

// Location returns the uniform location resolved at link time, or -1
// for uniforms absent from the program.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	return -1
}

// Handle returns the GL program object.
func (p *Program) Handle() uint32 {
	return p.handle
}

// Bind activates the program.
func (p *Program) Bind() {
	gl.UseProgram(p.handle)
}

// Unbind deactivates any program.
func (p *Program) Unbind() {
	gl.UseProgram(0)
}

// Destroy deletes the GL program.
func (p *Program) Destroy() {
	if p.handle != 0 {
		gl.DeleteProgram(p.handle)
		p.handle = 0
	}
}

// adopt installs a freshly linked program and re-resolves uniforms.
func (p *Program) adopt(handle uint32) {
	p.handle = handle
	p.locations = make(map[string]int32, len(p.uniforms))
	for _, name := range p.uniforms {
		p.locations[name] = gl.GetUniformLocation(handle, gl.Str(name+"\x00"))
	}
}

// compile builds a new program object from the source files.
func (p *Program) compile() (uint32, error) {
	vertSrc, err := os.ReadFile(p.vertPath)
	if err != nil {
		return 0, fmt.Errorf("reading vertex shader: %w", err)
	}
	fragSrc, err := os.ReadFile(p.fragPath)
	if err != nil {
		return 0, fmt.Errorf("reading fragment shader: %w", err)
	}

	vert, err := compileStage(string(vertSrc), gl.VERTEX_SHADER, p.vertPath)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileStage(string(fragSrc), gl.FRAGMENT_SHADER, p.fragPath)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := programInfoLog(program)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("linking %s + %s: %s", p.vertPath, p.fragPath, log)
	}

	return program, nil
}

// compileStage compiles a single shader stage.
func compileStage(source string, stage uint32, path string) (uint32, error) {
	shader := gl.CreateShader(stage)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log := shaderInfoLog(shader)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compiling %s: %s", path, log)
	}

	return shader, nil
}

func shaderInfoLog(shader uint32) string {
	var logLen int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return "no info log"
	}
	log := make([]byte, logLen)
	gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
	return string(log)
}

func programInfoLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return "no info log"
	}
	log := make([]byte, logLen)
	gl.GetProgramInfoLog(program, logLen, nil, &log[0])
	return string(log)
}
