package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF opens a .glb or .gltf file and flattens it into a single mesh:
// every triangle primitive reachable from the default scene, baked into
// model space. The colour is the base colour of the first material.
func LoadGLTF(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	model, err := modelFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("gltf %q: %w", path, err)
	}
	model.Mesh.Name = path
	return model, nil
}

func modelFromDocument(doc *gltf.Document) (*Model, error) {
	model := &Model{Mesh: NewMesh("gltf"), Color: mgl32.Vec3{1, 1, 1}}
	colorSet := false

	appendMesh := func(mi int, world mgl32.Mat4) {
		if doc.Meshes[mi] == nil {
			return
		}
		for pi, prim := range doc.Meshes[mi].Primitives {
			if prim == nil || prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			if err := appendPrimitive(model.Mesh, doc, prim, world); err != nil {
				fmt.Printf("[WARN]: gltf mesh %d primitive %d skipped: %v\n", mi, pi, err)
				continue
			}
			if !colorSet && prim.Material != nil && *prim.Material >= 0 && *prim.Material < len(doc.Materials) {
				if pbr := doc.Materials[*prim.Material].PBRMetallicRoughness; pbr != nil {
					cf := pbr.BaseColorFactorOrDefault()
					model.Color = mgl32.Vec3{float32(cf[0]), float32(cf[1]), float32(cf[2])}
					colorSet = true
				}
			}
		}
	}

	roots := rootNodes(doc)
	if len(roots) == 0 {
		for mi := range doc.Meshes {
			appendMesh(mi, mgl32.Ident4())
		}
	}

	var visit func(ni int, parent mgl32.Mat4, depth int)
	visit = func(ni int, parent mgl32.Mat4, depth int) {
		if ni < 0 || ni >= len(doc.Nodes) || depth > len(doc.Nodes) {
			return
		}
		n := doc.Nodes[ni]
		if n == nil {
			return
		}
		world := parent.Mul4(nodeTransform(n))
		if n.Mesh != nil && *n.Mesh >= 0 && *n.Mesh < len(doc.Meshes) {
			appendMesh(*n.Mesh, world)
		}
		for _, c := range n.Children {
			visit(c, world, depth+1)
		}
	}
	for _, r := range roots {
		visit(r, mgl32.Ident4(), 0)
	}

	if model.Mesh.VertexCount() == 0 {
		return nil, fmt.Errorf("no triangle geometry")
	}
	return model, nil
}

// rootNodes returns the default scene's nodes, or every parentless node when
// the document names no default scene.
func rootNodes(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func nodeTransform(n *gltf.Node) mgl32.Mat4 {
	if n.Matrix != [16]float64{} && n.Matrix != identityMatrix {
		var m mgl32.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault() // x, y, z, w
	s := n.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

// accessor returns the accessor at idx or an error for a dangling index.
func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) || doc.Accessors[idx] == nil {
		return nil, fmt.Errorf("accessor %d out of range (%d accessors)", idx, len(doc.Accessors))
	}
	return doc.Accessors[idx], nil
}

// appendPrimitive bakes one primitive into m using the world transform.
// Nothing is appended when it returns an error.
func appendPrimitive(m *Mesh, doc *gltf.Document, prim *gltf.Primitive, world mgl32.Mat4) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	acc, err := accessor(doc, posIdx)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}
	positions, err := modeler.ReadPosition(doc, acc, nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		acc, err := accessor(doc, idx)
		if err != nil {
			return fmt.Errorf("normals: %w", err)
		}
		if normals, err = modeler.ReadNormal(doc, acc, nil); err != nil {
			return fmt.Errorf("normals: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		acc, err := accessor(doc, *prim.Indices)
		if err != nil {
			return fmt.Errorf("indices: %w", err)
		}
		if indices, err = modeler.ReadIndices(doc, acc, nil); err != nil {
			return fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	for _, idx := range indices {
		if int(idx) >= len(positions) {
			return fmt.Errorf("index %d out of range", idx)
		}
	}

	normalMat := world.Mat3().Inv().Transpose()
	base := uint32(m.VertexCount())
	for i, p := range positions {
		pos := world.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1}).Vec3()
		n := mgl32.Vec3{0, 1, 0}
		if i < len(normals) {
			n = normalMat.Mul3x1(mgl32.Vec3(normals[i]))
			if n.Len() > 0 {
				n = n.Normalize()
			}
		}
		m.AddVertex(pos, n)
	}
	for _, idx := range indices {
		m.Indices = append(m.Indices, base+idx)
	}
	return nil
}
