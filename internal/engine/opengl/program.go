package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/boardview/internal/engine/gfx"
)

// glProgram is a linked program with its shading uniforms resolved.
// An inactive uniform resolves to -1, which OpenGL ignores on upload.
type glProgram struct {
	id uint32

	model, view, projection, normal int32
	albedo, lightDir, lightColor    int32
}

// linkProgram builds a program from vertex and fragment sources.
// The shader objects are released once the program holds them.
func linkProgram(vertexSrc, fragmentSrc string) (*glProgram, error) {
	vs, err := compileStage(gl.VERTEX_SHADER, "vertex", vertexSrc)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vs)

	fs, err := compileStage(gl.FRAGMENT_SHADER, "fragment", fragmentSrc)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)

	var ok int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		msg := infoLog(id, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("link: %s", msg)
	}

	loc := func(name string) int32 {
		return gl.GetUniformLocation(id, gl.Str(name+"\x00"))
	}
	return &glProgram{
		id:         id,
		model:      loc("uModel"),
		view:       loc("uView"),
		projection: loc("uProjection"),
		normal:     loc("uNormal"),
		albedo:     loc("uAlbedo"),
		lightDir:   loc("uLightDir"),
		lightColor: loc("uLightColor"),
	}, nil
}

// use binds the program and uploads u.
func (p *glProgram) use(u gfx.Uniforms) {
	gl.UseProgram(p.id)
	gl.UniformMatrix4fv(p.model, 1, false, u.Model.Ptr())
	gl.UniformMatrix4fv(p.view, 1, false, u.View.Ptr())
	gl.UniformMatrix4fv(p.projection, 1, false, u.Projection.Ptr())
	gl.UniformMatrix4fv(p.normal, 1, false, u.Normal.Ptr())
	gl.Uniform4f(p.albedo, u.Albedo.R, u.Albedo.G, u.Albedo.B, u.Albedo.A)
	gl.Uniform3f(p.lightDir, u.LightDir.X, u.LightDir.Y, u.LightDir.Z)
	gl.Uniform4f(p.lightColor, u.LightColor.R, u.LightColor.G, u.LightColor.B, u.LightColor.A)
}

func (p *glProgram) delete() {
	gl.DeleteProgram(p.id)
}

func compileStage(kind uint32, stage, source string) (uint32, error) {
	id := gl.CreateShader(kind)
	src, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, src, nil)
	free()
	gl.CompileShader(id)

	var ok int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		msg := infoLog(id, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(id)
		return 0, fmt.Errorf("%s shader: %s", stage, msg)
	}
	return id, nil
}

// infoLog reads the info log of a shader or program object.
func infoLog(id uint32, param func(uint32, uint32, *int32), read func(uint32, int32, *int32, *uint8)) string {
	var n int32
	param(id, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return "no info log"
	}
	buf := make([]byte, n)
	var written int32
	read(id, n, &written, &buf[0])
	return string(buf[:written])
}
