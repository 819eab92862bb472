package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"cabin-engine/input"
)

// Variant is the camera-strategy / actor-behaviour pairing that drives a
// scene.
type Variant interface {
	Name() string
	Update(s *Scene, in *input.Latch)
	ActorTransform(s *Scene) mgl32.Mat4
}

// applyDrag rotates the camera by the mouse drag accumulated in the latch.
// Moving right increases theta, moving up increases phi.
func applyDrag(cam Camera, in *input.Latch, sensitivity float32) {
	dx, dy := in.ConsumeDrag()
	if dx == 0 && dy == 0 {
		return
	}
	cam.Rotate(float32(dx)*sensitivity, float32(-dy)*sensitivity)
}

// Walker is the orbit variant: the camera orbits a hero that walks the
// ground inside the world bounds.
type Walker struct {
	Hero   *Hero
	Camera *OrbitCamera
}

// NewWalkerScene creates the orbit camera and hero and places the camera
// on the hero.
func NewWalkerScene(settings Settings, layout *Layout) *Scene {
	hero := NewHero(settings.TurnStep)

	cam := NewOrbitCamera(settings.Radius, settings.MinRadius, settings.Lens)
	cam.SetTheta(settings.Theta)
	cam.SetPhi(settings.Phi)

	w := &Walker{Hero: hero, Camera: cam}
	s := &Scene{
		Camera:   cam,
		Actor:    hero,
		Layout:   layout,
		Settings: settings,
		variant:  w,
	}
	w.follow(s)
	return s
}

func (w *Walker) Name() string { return "walker" }

// follow re-derives the camera look-at point from the hero position.
func (w *Walker) follow(s *Scene) {
	w.Camera.SetLookAtPoint(w.Hero.Position().Mul(s.Settings.DisplayScale))
}

func (w *Walker) Update(s *Scene, in *input.Latch) {
	st := s.Settings

	applyDrag(w.Camera, in, st.MouseSensitivity)
	for n := in.ConsumeZoom(); n != 0; {
		if n > 0 {
			w.Camera.MoveForward(st.MoveSpeed)
			n--
		} else {
			w.Camera.MoveBackward(st.MoveSpeed)
			n++
		}
	}

	if in.Held(input.MoveForward) {
		w.Hero.WalkForward(st.Step)
		w.Hero.Clamp(st.ActorBound)
		w.follow(s)
	}
	if in.Held(input.MoveBackward) {
		w.Hero.WalkBackward(st.Step)
		w.Hero.Clamp(st.ActorBound)
		w.follow(s)
	}

	if in.Held(input.TurnRight) {
		w.Hero.TurnRight()
	}
	if in.Held(input.TurnLeft) {
		w.Hero.TurnLeft()
	}

	w.Hero.Hover(st.HoverAmplitude)
	w.follow(s)
}

// ActorTransform places the hero on the camera's look-at point, turned to
// its heading.
func (w *Walker) ActorTransform(s *Scene) mgl32.Mat4 {
	p := w.Camera.LookAtPoint()
	return mgl32.Translate3D(p.X(), p.Y(), p.Z()).Mul4(mgl32.HomogRotate3DY(w.Hero.Heading()))
}

// flyerStart is the free camera's initial position: outside the grid on
// +Z, looking back over it.
var flyerStart = mgl32.Vec3{0, 8, 60}

// flyerStartPitch tilts the initial view slightly down.
const flyerStartPitch = 0.15

// Flyer is the free-fly variant: the camera flies along its facing
// direction and the plane is drawn just ahead of it.
type Flyer struct {
	Plane  *Plane
	Camera *FreeCamera
}

// NewFlyerScene creates the free camera and plane.
func NewFlyerScene(settings Settings, layout *Layout) *Scene {
	plane := NewPlane(settings.RotateSpeed)

	cam := NewFreeCamera(settings.Lens)
	cam.SetPosition(flyerStart)
	cam.SetPhi(math.Pi/2 - flyerStartPitch)

	return &Scene{
		Camera:   cam,
		Actor:    plane,
		Layout:   layout,
		Settings: settings,
		variant:  &Flyer{Plane: plane, Camera: cam},
	}
}

func (f *Flyer) Name() string { return "flyer" }

func (f *Flyer) Update(s *Scene, in *input.Latch) {
	st := s.Settings

	applyDrag(f.Camera, in, st.MouseSensitivity)
	f.Plane.SetHeading(-f.Camera.Theta())
	f.Plane.Settle()

	if in.Held(input.Fly) {
		if in.Held(input.Reverse) {
			f.Camera.MoveBackward(st.MoveSpeed)
			f.Plane.FlyBackward()
		} else {
			f.Camera.MoveForward(st.MoveSpeed)
			f.Plane.FlyForward()
		}
	}

	// The plane owns the yaw; the camera looks where it points.
	if in.Held(input.TurnLeft) {
		f.Plane.TurnLeft()
	}
	if in.Held(input.TurnRight) {
		f.Plane.TurnRight()
	}
	f.Camera.SetTheta(-f.Plane.Heading())
	if in.Held(input.PitchUp) {
		f.Camera.Rotate(0, st.RotateSpeed)
	}
	if in.Held(input.PitchDown) {
		f.Camera.Rotate(0, -st.RotateSpeed)
	}
}

// ActorTransform places the plane on the look-at point, turned to its
// heading and pitched with the camera.
func (f *Flyer) ActorTransform(s *Scene) mgl32.Mat4 {
	p := f.Camera.LookAtPoint()
	yaw := mgl32.HomogRotate3DY(f.Plane.Heading())
	pitch := mgl32.HomogRotate3DX(f.Camera.Phi() - math.Pi/2)
	return mgl32.Translate3D(p.X(), p.Y(), p.Z()).Mul4(yaw).Mul4(pitch)
}
