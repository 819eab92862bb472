package scene

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Shape names a mesh owned by the renderer backend.
type Shape int

const (
	ShapeQuad Shape = iota // the ±1 ground quad
	ShapeCube
	ShapeSphere
	ShapeCylinder
	ShapeCustom // Part.Mesh holds the geometry
)

// Part is one piece of an actor's geometry in actor space.
type Part struct {
	Shape Shape
	Mesh  *Mesh // only for ShapeCustom
	Local mgl32.Mat4
	Color mgl32.Vec3
}

// Actor is the single animated model in the scene. It exposes geometry
// only; the renderer owns every GPU resource used to draw it.
type Actor interface {
	TurnLeft()
	TurnRight()
	// Heading is the yaw in radians, counter-clockwise seen from above.
	Heading() float32
	Parts() []Part
}

func part(shape Shape, color mgl32.Vec3, local ...mgl32.Mat4) Part {
	m := mgl32.Ident4()
	for _, l := range local {
		m = m.Mul4(l)
	}
	return Part{Shape: shape, Local: m, Color: color}
}

// Hero is the ground walker. It faces +X at heading 0.
type Hero struct {
	position  mgl32.Vec3
	heading   float32
	turnStep  float32
	hoverTime float32
}

func NewHero(turnStep float32) *Hero {
	return &Hero{turnStep: turnStep}
}

func (h *Hero) TurnLeft() { h.heading += h.turnStep }
func (h *Hero) TurnRight() { h.heading -= h.turnStep }

func (h *Hero) Heading() float32 { return h.heading }
func (h *Hero) Position() mgl32.Vec3 { return h.position }
func (h *Hero) SetPosition(p mgl32.Vec3) { h.position = p }

// Forward is the unit walking direction for the current heading.
func (h *Hero) Forward() mgl32.Vec3 {
	s, c := math32.Sincos(h.heading)
	return mgl32.Vec3{c, 0, -s}
}

func (h *Hero) WalkForward(step float32) {
	f := h.Forward()
	h.position[0] += f[0] * step
	h.position[2] += f[2] * step
}

func (h *Hero) WalkBackward(step float32) {
	f := h.Forward()
	h.position[0] -= f[0] * step
	h.position[2] -= f[2] * step
}

// Clamp limits X and Z independently to [-bound, bound] and reports whether
// either axis was adjusted.
func (h *Hero) Clamp(bound float32) bool {
	clamped := false
	for _, a := range []int{0, 2} {
		switch {
		case h.position[a] > bound:
			h.position[a] = bound
			clamped = true
		case h.position[a] < -bound:
			h.position[a] = -bound
			clamped = true
		}
	}
	return clamped
}

// Hover advances the idle animation one frame: the height moves by
// amplitude*sin(t degrees) and t advances by one degree.
func (h *Hero) Hover(amplitude float32) {
	h.position[1] += amplitude * math32.Sin(math.Pi/180*h.hoverTime)
	h.hoverTime++
}

// HoverPhase returns the idle animation phase in degrees.
func (h *Hero) HoverPhase() float32 { return h.hoverTime }

var (
	heroFur   = mgl32.Vec3{0.45, 0.3, 0.15}
	heroFace  = mgl32.Vec3{0.9, 0.75, 0.55}
	heroEye   = mgl32.Vec3{0.05, 0.05, 0.05}
	heroBoots = mgl32.Vec3{0.2, 0.2, 0.25}
)

// Parts returns the hero in actor space, facing +X, feet at y=0. Heading
// is applied by the variant's actor transform.
func (h *Hero) Parts() []Part {
	parts := []Part{
		part(ShapeCube, heroFur, mgl32.Translate3D(0, 1.0, 0), mgl32.Scale3D(0.8, 1.0, 1.0)),
		part(ShapeSphere, heroFace, mgl32.Translate3D(0, 1.85, 0), mgl32.Scale3D(0.45, 0.45, 0.45)),
		part(ShapeSphere, heroEye, mgl32.Translate3D(0.38, 1.95, 0.15), mgl32.Scale3D(0.08, 0.08, 0.08)),
		part(ShapeSphere, heroEye, mgl32.Translate3D(0.38, 1.95, -0.15), mgl32.Scale3D(0.08, 0.08, 0.08)),
		part(ShapeCylinder, heroBoots, mgl32.Translate3D(0, 0.25, 0.25), mgl32.Scale3D(0.2, 0.5, 0.2)),
		part(ShapeCylinder, heroBoots, mgl32.Translate3D(0, 0.25, -0.25), mgl32.Scale3D(0.2, 0.5, 0.2)),
	}
	return parts
}

// Plane is the flyer. Its nose points down -Z in actor space at heading 0.
type Plane struct {
	heading   float32
	turnStep  float32
	propAngle float32
	propStep  float32
	bank      float32
	maxBank   float32
}

func NewPlane(turnStep float32) *Plane {
	return &Plane{
		turnStep: turnStep,
		propStep: math.Pi / 16,
		maxBank:  math.Pi / 9,
	}
}

func (p *Plane) TurnLeft() {
	p.heading += p.turnStep
	p.bank = p.maxBank
}

func (p *Plane) TurnRight() {
	p.heading -= p.turnStep
	p.bank = -p.maxBank
}

func (p *Plane) Heading() float32 { return p.heading }

// SetHeading sets the yaw without banking, e.g. after a mouse look.
func (p *Plane) SetHeading(h float32) { p.heading = h }

// FlyForward spins the propeller one step.
func (p *Plane) FlyForward() { p.propAngle += p.propStep }

// FlyBackward spins the propeller the other way.
func (p *Plane) FlyBackward() { p.propAngle -= p.propStep }

func (p *Plane) PropellerAngle() float32 { return p.propAngle }
func (p *Plane) Bank() float32 { return p.bank }

// Settle eases the bank back to level; called once per frame.
func (p *Plane) Settle() {
	p.bank *= 0.85
	if math32.Abs(p.bank) < 1e-3 {
		p.bank = 0
	}
}

var (
	planeBody  = mgl32.Vec3{0.8, 0.1, 0.1}
	planeWing  = mgl32.Vec3{0.9, 0.9, 0.9}
	planeProp  = mgl32.Vec3{0.15, 0.15, 0.15}
	planeGlass = mgl32.Vec3{0.3, 0.6, 0.9}
)

// Parts returns the plane in actor space, scaled to sit just ahead of the
// camera.
func (p *Plane) Parts() []Part {
	roll := mgl32.HomogRotate3DZ(p.bank)
	scale := mgl32.Scale3D(0.05, 0.05, 0.05)
	return []Part{
		part(ShapeCube, planeBody, scale, roll, mgl32.Scale3D(0.4, 0.4, 2.0)),
		part(ShapeCube, planeWing, scale, roll, mgl32.Translate3D(0, 0, -0.2), mgl32.Scale3D(3.0, 0.08, 0.5)),
		part(ShapeCube, planeWing, scale, roll, mgl32.Translate3D(0, 0.05, 0.9), mgl32.Scale3D(1.2, 0.06, 0.3)),
		part(ShapeCube, planeBody, scale, roll, mgl32.Translate3D(0, 0.3, 0.9), mgl32.Scale3D(0.06, 0.5, 0.3)),
		part(ShapeSphere, planeGlass, scale, roll, mgl32.Translate3D(0, 0.25, -0.3), mgl32.Scale3D(0.2, 0.15, 0.3)),
		part(ShapeCube, planeProp, scale, roll, mgl32.Translate3D(0, 0, -1.05), mgl32.HomogRotate3DZ(p.propAngle), mgl32.Scale3D(1.0, 0.1, 0.05)),
	}
}

// meshActor swaps an actor's built-in geometry for a loaded mesh.
type meshActor struct {
	Actor
	mesh  *Mesh
	local mgl32.Mat4
	color mgl32.Vec3
}

// WithMesh returns an actor that behaves like a but draws mesh, normalised
// to unit height with its base at y=0.
func WithMesh(a Actor, mesh *Mesh, color mgl32.Vec3) Actor {
	if mesh == nil || mesh.VertexCount() == 0 {
		return a
	}
	min, max := mesh.Bounds()
	size := max.Sub(min)
	extent := size.X()
	if size.Y() > extent {
		extent = size.Y()
	}
	if size.Z() > extent {
		extent = size.Z()
	}
	if extent <= 0 {
		extent = 1
	}
	s := 1 / extent
	center := min.Add(max).Mul(0.5)
	local := mgl32.Scale3D(s, s, s).Mul4(mgl32.Translate3D(-center.X(), -min.Y(), -center.Z()))

	return &meshActor{Actor: a, mesh: mesh, local: local, color: color}
}

func (m *meshActor) Parts() []Part {
	return []Part{{Shape: ShapeCustom, Mesh: m.mesh, Local: m.local, Color: m.color}}
}
