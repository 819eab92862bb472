package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"cabin-engine/scene"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
	Primitive  uint32
}

// Renderer is the OpenGL rendering backend. It owns the lighting program and
// every vertex array: one per built-in shape plus one per custom mesh.
type Renderer struct {
	program uint32

	mvpLoc        int32
	normalLoc     int32
	colorLoc      int32
	lightDirLoc   int32
	lightColorLoc int32

	posAttrib    uint32
	normalAttrib uint32

	shapes map[scene.Shape]*GPUMesh
	meshes map[*scene.Mesh]*GPUMesh

	viewportW, viewportH int32
}

var builtinShapes = []scene.Shape{scene.ShapeQuad, scene.ShapeCube, scene.ShapeSphere, scene.ShapeCylinder}

// NewRenderer initialises OpenGL, builds the lighting program and uploads the
// built-in shapes. Must be called after the GLFW window context is made
// current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	fmt.Printf("[INFO]: OpenGL version: %s\n", gl.GoStr(gl.GetString(gl.VERSION)))
	fmt.Printf("[INFO]: GLSL version:   %s\n", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("lighting shader: %w", err)
	}

	posAttrib, err := attribLocation(prog, "vPos")
	if err != nil {
		gl.DeleteProgram(prog)
		return nil, fmt.Errorf("lighting shader: %w", err)
	}
	normalAttrib, err := attribLocation(prog, "vertexNormal")
	if err != nil {
		gl.DeleteProgram(prog)
		return nil, fmt.Errorf("lighting shader: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0, 0, 0, 1)

	r := &Renderer{
		program: prog,

		mvpLoc:        uniformLocation(prog, "mvpMatrix"),
		normalLoc:     uniformLocation(prog, "normalMatrix"),
		colorLoc:      uniformLocation(prog, "materialColor"),
		lightDirLoc:   uniformLocation(prog, "lightDirection"),
		lightColorLoc: uniformLocation(prog, "lightColor"),

		posAttrib:    posAttrib,
		normalAttrib: normalAttrib,

		shapes: make(map[scene.Shape]*GPUMesh),
		meshes: make(map[*scene.Mesh]*GPUMesh),
	}
	fmt.Println("[INFO]: Shader program built")

	for _, shape := range builtinShapes {
		r.shapes[shape] = r.upload(scene.ShapeMesh(shape))
	}
	fmt.Printf("[INFO]: %d shape buffers uploaded\n", len(r.shapes))

	return r, nil
}

// SetViewport resizes the OpenGL viewport.
func (r *Renderer) SetViewport(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
	gl.Viewport(0, 0, r.viewportW, r.viewportH)
}

// SetLight uploads the directional light. It only needs to be sent once.
func (r *Renderer) SetLight(direction, color mgl32.Vec3) {
	gl.ProgramUniform3fv(r.program, r.lightDirLoc, 1, &direction[0])
	gl.ProgramUniform3fv(r.program, r.lightColorLoc, 1, &color[0])
}

// BeginFrame clears the framebuffer and binds the lighting program.
func (r *Renderer) BeginFrame(clear mgl32.Vec3) {
	gl.ClearColor(clear[0], clear[1], clear[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
}

// DrawShape draws a built-in shape and returns the number of triangles sent.
func (r *Renderer) DrawShape(shape scene.Shape, mvp mgl32.Mat4, normal mgl32.Mat3, color mgl32.Vec3) int {
	gpu, ok := r.shapes[shape]
	if !ok {
		return 0
	}
	return r.draw(gpu, mvp, normal, color)
}

// DrawMesh uploads mesh on first use, then draws it.
func (r *Renderer) DrawMesh(mesh *scene.Mesh, mvp mgl32.Mat4, normal mgl32.Mat3, color mgl32.Vec3) int {
	if mesh == nil {
		return 0
	}
	gpu, ok := r.meshes[mesh]
	if !ok {
		gpu = r.upload(mesh)
		r.meshes[mesh] = gpu
	}
	return r.draw(gpu, mvp, normal, color)
}

func (r *Renderer) draw(gpu *GPUMesh, mvp mgl32.Mat4, normal mgl32.Mat3, color mgl32.Vec3) int {
	if gpu == nil {
		return 0
	}
	// mgl32 matrices are column-major, pass directly (transpose=false).
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, &mvp[0])
	gl.UniformMatrix3fv(r.normalLoc, 1, false, &normal[0])
	gl.Uniform3fv(r.colorLoc, 1, &color[0])

	gl.BindVertexArray(gpu.VAO)
	gl.DrawElements(gpu.Primitive, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	if gpu.Primitive == gl.TRIANGLE_STRIP {
		return int(gpu.IndexCount) - 2
	}
	return int(gpu.IndexCount) / 3
}

// upload creates the VAO, VBO and EBO for mesh.
func (r *Renderer) upload(mesh *scene.Mesh) *GPUMesh {
	if mesh == nil || len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return nil
	}

	gpu := &GPUMesh{
		IndexCount: int32(len(mesh.Indices)),
		Primitive:  gl.TRIANGLES,
	}
	if mesh.DrawMode == scene.DrawTriangleStrip {
		gpu.Primitive = gl.TRIANGLE_STRIP
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.BindVertexArray(gpu.VAO)

	gl.GenBuffers(1, &gpu.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*4, gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	stride := int32(scene.FloatsPerVertex * 4)
	gl.EnableVertexAttribArray(r.posAttrib)
	gl.VertexAttribPointer(r.posAttrib, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(r.normalAttrib)
	gl.VertexAttribPointer(r.normalAttrib, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))

	gl.GenBuffers(1, &gpu.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return gpu
}

func release(gpu *GPUMesh) {
	if gpu == nil {
		return
	}
	gl.DeleteVertexArrays(1, &gpu.VAO)
	gl.DeleteBuffers(1, &gpu.VBO)
	gl.DeleteBuffers(1, &gpu.EBO)
}

// ReleaseMesh frees GPU buffers for a custom mesh.
func (r *Renderer) ReleaseMesh(mesh *scene.Mesh) {
	if gpu, ok := r.meshes[mesh]; ok {
		release(gpu)
		delete(r.meshes, mesh)
	}
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	fmt.Println("[INFO]: ...deleting Shaders.")
	gl.DeleteProgram(r.program)

	fmt.Println("[INFO]: ...deleting VAOs and VBOs.")
	for shape, gpu := range r.shapes {
		release(gpu)
		delete(r.shapes, shape)
	}
	fmt.Println("[INFO]: ...deleting models.")
	for mesh := range r.meshes {
		r.ReleaseMesh(mesh)
	}
}
