package scene

import (
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// CreateGroundQuad builds the unit ground quad (corners at ±1 on X/Z, y=0)
// drawn as a four-index triangle strip.
func CreateGroundQuad() *Mesh {
	m := NewMesh("Ground")
	up := mgl32.Vec3{0, 1, 0}
	m.AddVertex(mgl32.Vec3{-1, 0, -1}, up)
	m.AddVertex(mgl32.Vec3{1, 0, -1}, up)
	m.AddVertex(mgl32.Vec3{-1, 0, 1}, up)
	m.AddVertex(mgl32.Vec3{1, 0, 1}, up)
	m.Indices = []uint32{0, 1, 2, 3}
	m.DrawMode = DrawTriangleStrip
	return m
}

// CreateCube builds an axis-aligned cube of the given edge length centred on
// the origin, with per-face normals.
func CreateCube(size float32) *Mesh {
	s := size / 2
	m := NewMesh("Cube")

	faces := []struct {
		normal  mgl32.Vec3
		corners [4]mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{s, -s, -s}, {-s, -s, -s}, {-s, s, -s}, {s, s, -s}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-s, s, s}, {s, s, s}, {s, s, -s}, {-s, s, -s}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-s, -s, -s}, {s, -s, -s}, {s, -s, s}, {-s, -s, s}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{s, -s, s}, {s, -s, -s}, {s, s, -s}, {s, s, s}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-s, -s, -s}, {-s, -s, s}, {-s, s, s}, {-s, s, -s}}},
	}

	for _, f := range faces {
		base := m.AddVertex(f.corners[0], f.normal)
		for _, c := range f.corners[1:] {
			m.AddVertex(c, f.normal)
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base+2, base+3, base)
	}
	return m
}

// CreateSphere generates a UV-sphere mesh
func CreateSphere(radius float32, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}
	m := NewMesh("Sphere")

	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * stdmath.Pi / float64(rings)
		sinPhi := float32(stdmath.Sin(phi))
		cosPhi := float32(stdmath.Cos(phi))

		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2.0 * stdmath.Pi / float64(segments)
			normal := mgl32.Vec3{
				sinPhi * float32(stdmath.Cos(theta)),
				cosPhi,
				sinPhi * float32(stdmath.Sin(theta)),
			}
			m.AddVertex(normal.Mul(radius), normal)
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)

			m.Indices = append(m.Indices, current, current+1, next)
			m.Indices = append(m.Indices, current+1, next+1, next)
		}
	}
	return m
}

// CreateCylinder generates a capped cylinder along Y centred on the origin.
func CreateCylinder(radius, height float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := NewMesh("Cylinder")
	half := height / 2

	for i := 0; i <= segments; i++ {
		theta := float64(i) * 2.0 * stdmath.Pi / float64(segments)
		cosT := float32(stdmath.Cos(theta))
		sinT := float32(stdmath.Sin(theta))
		normal := mgl32.Vec3{cosT, 0, sinT}

		m.AddVertex(mgl32.Vec3{cosT * radius, -half, sinT * radius}, normal)
		m.AddVertex(mgl32.Vec3{cosT * radius, half, sinT * radius}, normal)
	}
	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		m.Indices = append(m.Indices, base, base+1, base+2)
		m.Indices = append(m.Indices, base+2, base+1, base+3)
	}

	addCap := func(y float32, normal mgl32.Vec3, flip bool) {
		center := m.AddVertex(mgl32.Vec3{0, y, 0}, normal)
		for i := 0; i < segments; i++ {
			a := float64(i) * 2.0 * stdmath.Pi / float64(segments)
			b := float64(i+1) * 2.0 * stdmath.Pi / float64(segments)
			v1 := m.AddVertex(mgl32.Vec3{float32(stdmath.Cos(a)) * radius, y, float32(stdmath.Sin(a)) * radius}, normal)
			v2 := m.AddVertex(mgl32.Vec3{float32(stdmath.Cos(b)) * radius, y, float32(stdmath.Sin(b)) * radius}, normal)
			if flip {
				m.Indices = append(m.Indices, center, v1, v2)
			} else {
				m.Indices = append(m.Indices, center, v2, v1)
			}
		}
	}
	addCap(half, mgl32.Vec3{0, 1, 0}, false)
	addCap(-half, mgl32.Vec3{0, -1, 0}, true)

	return m
}

// ShapeMesh builds the mesh for a built-in shape. Cube, sphere and cylinder
// span [-0.5, 0.5] on each axis. ShapeCustom has no built-in mesh.
func ShapeMesh(shape Shape) *Mesh {
	switch shape {
	case ShapeQuad:
		return CreateGroundQuad()
	case ShapeCube:
		return CreateCube(1)
	case ShapeSphere:
		return CreateSphere(0.5, 24, 16)
	case ShapeCylinder:
		return CreateCylinder(0.5, 1, 24)
	}
	return nil
}
