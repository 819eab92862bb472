package opengl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// Gouraud shading: one directional light evaluated per vertex.
const vertSrc = `
#version 410 core
in vec3 vPos;
in vec3 vertexNormal;

uniform mat4 mvpMatrix;
uniform mat3 normalMatrix;
uniform vec3 materialColor;
uniform vec3 lightDirection;
uniform vec3 lightColor;

out vec3 color;

void main() {
    gl_Position = mvpMatrix * vec4(vPos, 1.0);

    vec3  n       = normalize(normalMatrix * vertexNormal);
    vec3  l       = normalize(-lightDirection);
    float diffuse = max(dot(n, l), 0.0);
    color = materialColor * (0.15 + 0.85 * diffuse * lightColor);
}
` + "\x00"

const fragSrc = `
#version 410 core
in vec3 color;

out vec4 fragColorOut;

void main() {
    fragColorOut = vec4(color, 1.0);
}
` + "\x00"

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", log)
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}

// uniformLocation looks up a uniform by name; -1 means the name is unused.
func uniformLocation(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

// attribLocation looks up a vertex attribute by name.
func attribLocation(prog uint32, name string) (uint32, error) {
	loc := gl.GetAttribLocation(prog, gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, fmt.Errorf("attribute %q not found", name)
	}
	return uint32(loc), nil
}
