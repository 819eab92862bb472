package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"cabin-engine/core"
	"cabin-engine/internal/opengl"
	"cabin-engine/scene"
)

// RenderEngine is the high-level renderer that drives the OpenGL backend.
// It reads the scene and never mutates it.
type RenderEngine struct {
	gl     *opengl.Renderer
	window *core.Window
	Scene  *scene.Scene

	ClearColor     mgl32.Vec3
	FrustumCulling bool // skip placed objects outside the view

	// Per-frame stats (populated during Render)
	lastDraws     int
	lastTriangles int
	lastCulled    int
}

func NewRenderEngine(window *core.Window, light Light) (*RenderEngine, error) {
	glRenderer, err := opengl.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}

	w, h := window.FramebufferSize()
	glRenderer.SetViewport(w, h)
	glRenderer.SetLight(light.Direction, light.Color)

	fmt.Println("[INFO]: Render engine initialized (OpenGL)")
	return &RenderEngine{
		gl:     glRenderer,
		window: window,
	}, nil
}

func (re *RenderEngine) SetScene(s *scene.Scene) {
	re.Scene = s
}

// Render draws the ground, then every placed object, then the actor.
func (re *RenderEngine) Render() error {
	if re.Scene == nil || re.Scene.Camera == nil {
		return fmt.Errorf("no scene or camera")
	}

	frame := BuildFrame(re.Scene)
	culled := 0
	if re.FrustumCulling {
		culled = frame.CullObjects()
	}
	re.gl.BeginFrame(re.ClearColor)

	triangles := re.draw(frame.Ground)
	for _, item := range frame.Objects {
		triangles += re.draw(item)
	}
	for _, item := range frame.Actor {
		triangles += re.draw(item)
	}

	re.lastDraws = frame.Len()
	re.lastTriangles = triangles
	re.lastCulled = culled
	return nil
}

func (re *RenderEngine) draw(item DrawItem) int {
	if item.Shape == scene.ShapeCustom {
		return re.gl.DrawMesh(item.Mesh, item.MVP, item.Normal, item.Color)
	}
	return re.gl.DrawShape(item.Shape, item.MVP, item.Normal, item.Color)
}

// Present swaps the window's buffers.
func (re *RenderEngine) Present() {
	re.window.SwapBuffers()
}

// Resize updates the viewport and the camera's aspect ratio.
func (re *RenderEngine) Resize(width, height int) {
	re.gl.SetViewport(width, height)
	if re.Scene != nil && re.Scene.Camera != nil {
		re.Scene.Camera.SetAspect(float32(width), float32(height))
	}
}

func (re *RenderEngine) Destroy() {
	re.gl.Destroy()
}

// DrawStats returns stats from the most recent Render call.
func (re *RenderEngine) DrawStats() (draws, triangles, culled int) {
	return re.lastDraws, re.lastTriangles, re.lastCulled
}
