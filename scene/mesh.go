package scene

import "github.com/go-gl/mathgl/mgl32"

// DrawMode controls the OpenGL primitive type used when rendering a mesh.
type DrawMode int

const (
	DrawTriangles     DrawMode = iota // gl.TRIANGLES (default)
	DrawTriangleStrip                 // gl.TRIANGLE_STRIP
)

// FloatsPerVertex is the interleaved vertex layout: 3 position + 3 normal.
const FloatsPerVertex = 6

// Mesh holds CPU-side interleaved vertex data and indices.
// GPU upload is owned by the renderer backend.
type Mesh struct {
	Name     string
	Vertices []float32
	Indices  []uint32
	DrawMode DrawMode
}

func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddVertex appends one vertex and returns its index.
func (m *Mesh) AddVertex(position, normal mgl32.Vec3) uint32 {
	idx := uint32(m.VertexCount())
	m.Vertices = append(m.Vertices,
		position.X(), position.Y(), position.Z(),
		normal.X(), normal.Y(), normal.Z(),
	)
	return idx
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / FloatsPerVertex
}

func (m *Mesh) Position(i int) mgl32.Vec3 {
	o := i * FloatsPerVertex
	return mgl32.Vec3{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]}
}

func (m *Mesh) Normal(i int) mgl32.Vec3 {
	o := i*FloatsPerVertex + 3
	return mgl32.Vec3{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]}
}

// Bounds returns the local-space axis-aligned bounds of the mesh.
func (m *Mesh) Bounds() (min, max mgl32.Vec3) {
	if m.VertexCount() == 0 {
		return
	}
	min = m.Position(0)
	max = min
	for i := 1; i < m.VertexCount(); i++ {
		p := m.Position(i)
		for a := 0; a < 3; a++ {
			if p[a] < min[a] {
				min[a] = p[a]
			}
			if p[a] > max[a] {
				max[a] = p[a]
			}
		}
	}
	return min, max
}
