package scene

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is the capability shared by the orbit and free-fly cameras.
type Camera interface {
	// Rotate adjusts the spherical angles by the given deltas.
	Rotate(dTheta, dPhi float32)
	MoveForward(speed float32)
	MoveBackward(speed float32)

	Position() mgl32.Vec3
	LookAtPoint() mgl32.Vec3
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
	SetAspect(width, height float32)
}

// phiEpsilon keeps phi strictly inside (0, π) so the view never aligns
// with the up vector.
const phiEpsilon = 0.001

var worldUp = mgl32.Vec3{0, 1, 0}

// Lens holds the perspective projection parameters.
type Lens struct {
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32
}

func DefaultLens() Lens {
	return Lens{
		FOV:    math.Pi / 4,
		Aspect: 640.0 / 480.0,
		Near:   0.001,
		Far:    1000,
	}
}

func (l *Lens) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(l.FOV, l.Aspect, l.Near, l.Far)
}

func (l *Lens) SetAspect(width, height float32) {
	if height > 0 {
		l.Aspect = width / height
	}
}

// sphericalDirection returns the unit vector for yaw theta and polar angle
// phi. phi = π/2 is level; theta = 0 faces -Z.
func sphericalDirection(theta, phi float32) mgl32.Vec3 {
	st, ct := math32.Sincos(theta)
	sp, cp := math32.Sincos(phi)
	return mgl32.Vec3{st * sp, -cp, -ct * sp}
}

func clampPhi(phi float32) float32 {
	if phi <= 0 {
		return phiEpsilon
	}
	if phi >= math.Pi {
		return math.Pi - phiEpsilon
	}
	return phi
}

// OrbitCamera always faces its look-at point from a given radius.
type OrbitCamera struct {
	Lens

	lookAt    mgl32.Vec3
	radius    float32
	minRadius float32
	theta     float32
	phi       float32

	// Derived state
	eye   mgl32.Vec3
	view  mgl32.Mat4
	dirty bool
}

// NewOrbitCamera creates an orbit camera around the origin. minRadius is
// raised to 0.1 if not positive.
func NewOrbitCamera(radius, minRadius float32, lens Lens) *OrbitCamera {
	if minRadius <= 0 {
		minRadius = 0.1
	}
	c := &OrbitCamera{
		Lens:      lens,
		minRadius: minRadius,
		phi:       math.Pi / 2,
	}
	c.radius = c.clampRadius(radius)
	c.recomputeOrientation()
	return c
}

func (c *OrbitCamera) clampRadius(r float32) float32 {
	if r < c.minRadius {
		return c.minRadius
	}
	return r
}

func (c *OrbitCamera) recomputeOrientation() {
	c.eye = c.lookAt.Add(sphericalDirection(c.theta, c.phi).Mul(c.radius))
	c.dirty = true
}

func (c *OrbitCamera) SetLookAtPoint(p mgl32.Vec3) {
	c.lookAt = p
	c.recomputeOrientation()
}

func (c *OrbitCamera) SetRadius(r float32) {
	c.radius = c.clampRadius(r)
	c.recomputeOrientation()
}

func (c *OrbitCamera) SetTheta(theta float32) {
	c.theta = theta
	c.recomputeOrientation()
}

func (c *OrbitCamera) SetPhi(phi float32) {
	c.phi = clampPhi(phi)
	c.recomputeOrientation()
}

func (c *OrbitCamera) Rotate(dTheta, dPhi float32) {
	c.theta += dTheta
	c.phi = clampPhi(c.phi + dPhi)
	c.recomputeOrientation()
}

// MoveForward zooms in, never below the minimum radius.
func (c *OrbitCamera) MoveForward(speed float32) {
	c.radius = c.clampRadius(c.radius - speed)
	c.recomputeOrientation()
}

// MoveBackward zooms out.
func (c *OrbitCamera) MoveBackward(speed float32) {
	c.radius = c.clampRadius(c.radius + speed)
	c.recomputeOrientation()
}

func (c *OrbitCamera) Radius() float32 { return c.radius }
func (c *OrbitCamera) MinRadius() float32 { return c.minRadius }
func (c *OrbitCamera) Theta() float32 { return c.theta }
func (c *OrbitCamera) Phi() float32 { return c.phi }
func (c *OrbitCamera) Position() mgl32.Vec3 { return c.eye }
func (c *OrbitCamera) LookAtPoint() mgl32.Vec3 { return c.lookAt }

func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	if c.dirty {
		c.view = mgl32.LookAtV(c.eye, c.lookAt, worldUp)
		c.dirty = false
	}
	return c.view
}

// FreeCamera flies along its own facing direction.
type FreeCamera struct {
	Lens

	position  mgl32.Vec3
	theta     float32
	phi       float32
	direction mgl32.Vec3

	view  mgl32.Mat4
	dirty bool
}

// NewFreeCamera creates a level camera at the origin facing -Z.
func NewFreeCamera(lens Lens) *FreeCamera {
	c := &FreeCamera{
		Lens: lens,
		phi:  math.Pi / 2,
	}
	c.recomputeOrientation()
	return c
}

func (c *FreeCamera) recomputeOrientation() {
	c.direction = sphericalDirection(c.theta, c.phi)
	c.dirty = true
}

func (c *FreeCamera) SetPosition(p mgl32.Vec3) {
	c.position = p
	c.dirty = true
}

func (c *FreeCamera) SetTheta(theta float32) {
	c.theta = theta
	c.recomputeOrientation()
}

func (c *FreeCamera) SetPhi(phi float32) {
	c.phi = clampPhi(phi)
	c.recomputeOrientation()
}

func (c *FreeCamera) Rotate(dTheta, dPhi float32) {
	c.theta += dTheta
	c.phi = clampPhi(c.phi + dPhi)
	c.recomputeOrientation()
}

func (c *FreeCamera) MoveForward(speed float32) {
	c.position = c.position.Add(c.direction.Mul(speed))
	c.dirty = true
}

func (c *FreeCamera) MoveBackward(speed float32) {
	c.position = c.position.Sub(c.direction.Mul(speed))
	c.dirty = true
}

func (c *FreeCamera) Theta() float32 { return c.theta }
func (c *FreeCamera) Phi() float32 { return c.phi }
func (c *FreeCamera) Direction() mgl32.Vec3 { return c.direction }
func (c *FreeCamera) Position() mgl32.Vec3 { return c.position }
func (c *FreeCamera) LookAtPoint() mgl32.Vec3 { return c.position.Add(c.direction) }

func (c *FreeCamera) ViewMatrix() mgl32.Mat4 {
	if c.dirty {
		c.view = mgl32.LookAtV(c.position, c.LookAtPoint(), worldUp)
		c.dirty = false
	}
	return c.view
}
