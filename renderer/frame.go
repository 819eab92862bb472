package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"cabin-engine/scene"
)

// Light is the single directional light.
type Light struct {
	Direction mgl32.Vec3
	Color     mgl32.Vec3
}

// DrawItem is one draw call: a backend shape (or custom mesh) with its
// matrices and material colour.
type DrawItem struct {
	Shape  scene.Shape
	Mesh   *scene.Mesh // only for scene.ShapeCustom
	Model  mgl32.Mat4
	MVP    mgl32.Mat4
	Normal mgl32.Mat3
	Color  mgl32.Vec3
}

// Frame is everything drawn in one frame, in draw order.
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Ground     DrawItem
	Objects    []DrawItem
	Actor      []DrawItem
}

// Len is the number of draw calls in the frame.
func (f *Frame) Len() int {
	return 1 + len(f.Objects) + len(f.Actor)
}

func newItem(shape scene.Shape, mesh *scene.Mesh, model, viewProj mgl32.Mat4, color mgl32.Vec3) DrawItem {
	return DrawItem{
		Shape:  shape,
		Mesh:   mesh,
		Model:  model,
		MVP:    viewProj.Mul4(model),
		Normal: model.Inv().Transpose().Mat3(),
		Color:  color,
	}
}

// BuildFrame computes the draw list for the scene's current state. It only
// reads the scene.
func BuildFrame(s *scene.Scene) Frame {
	view := s.Camera.ViewMatrix()
	proj := s.Camera.ProjectionMatrix()
	vp := proj.Mul4(view)

	size := s.Settings.WorldSize
	f := Frame{
		View:       view,
		Projection: proj,
		Ground:     newItem(scene.ShapeQuad, nil, mgl32.Scale3D(size, 1, size), vp, s.Settings.GroundColor),
		Objects:    make([]DrawItem, 0, s.Layout.Len()),
	}

	s.Layout.Each(func(o scene.PlacedObject) {
		f.Objects = append(f.Objects, newItem(scene.ShapeCube, nil, o.Transform, vp, o.Color))
	})

	actor := s.ActorTransform()
	for _, p := range s.Actor.Parts() {
		f.Actor = append(f.Actor, newItem(p.Shape, p.Mesh, actor.Mul4(p.Local), vp, p.Color))
	}
	return f
}
