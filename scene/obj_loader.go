package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// objCorner is one face-vertex reference: 0-based position and normal
// indices, -1 when absent.
type objCorner struct{ v, vn int }

// LoadOBJ parses a Wavefront .obj file into a single mesh. Polygons are
// fan-triangulated; the diffuse colour of the first material used is read
// from the companion .mtl file when present.
func LoadOBJ(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	model, err := parseOBJ(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("obj %q: %w", path, err)
	}
	model.Mesh.Name = path
	return model, nil
}

func parseOBJ(r io.Reader, dir string) (*Model, error) {
	var positions, normals []mgl32.Vec3
	var faces [][3]objCorner
	colors := map[string]mgl32.Vec3{}
	firstMaterial := ""

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if v, ok := parseVec3(fields); ok {
				positions = append(positions, v)
			}
		case "vn":
			if v, ok := parseVec3(fields); ok {
				normals = append(normals, v)
			}
		case "usemtl":
			if len(fields) > 1 && firstMaterial == "" {
				firstMaterial = fields[1]
			}
		case "mtllib":
			if len(fields) > 1 && dir != "" {
				if loaded, err := loadMTL(filepath.Join(dir, fields[1])); err == nil {
					for k, c := range loaded {
						colors[k] = c
					}
				}
			}
		case "f":
			if len(fields) < 4 {
				continue
			}
			corners := make([]objCorner, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				corners = append(corners, parseCorner(tok, len(positions), len(normals)))
			}
			// Fan triangulation: 0-1-2, 0-2-3, ...
			for i := 1; i+1 < len(corners); i++ {
				faces = append(faces, [3]objCorner{corners[0], corners[i], corners[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("no geometry found")
	}

	mesh, err := buildOBJMesh(faces, positions, normals)
	if err != nil {
		return nil, err
	}
	model := &Model{Mesh: mesh, Color: mgl32.Vec3{1, 1, 1}}
	if c, ok := colors[firstMaterial]; ok {
		model.Color = c
	}
	return model, nil
}

func parseVec3(fields []string) (mgl32.Vec3, bool) {
	if len(fields) < 4 {
		return mgl32.Vec3{}, false
	}
	var v mgl32.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return mgl32.Vec3{}, false
		}
		v[i] = float32(f)
	}
	return v, true
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn". OBJ indices are
// 1-based; negative indices count back from the current end.
func parseCorner(tok string, nPos, nNorm int) objCorner {
	resolve := func(s string, n int) int {
		if s == "" {
			return -1
		}
		i, err := strconv.Atoi(s)
		switch {
		case err != nil:
			return -1
		case i > 0:
			return i - 1
		case i < 0:
			return n + i
		}
		return -1
	}
	parts := strings.Split(tok, "/")
	c := objCorner{v: resolve(parts[0], nPos), vn: -1}
	if len(parts) > 2 {
		c.vn = resolve(parts[2], nNorm)
	}
	return c
}

// buildOBJMesh deduplicates corners into an indexed mesh. Faces without
// normals get area-weighted vertex normals.
func buildOBJMesh(faces [][3]objCorner, positions, normals []mgl32.Vec3) (*Mesh, error) {
	m := NewMesh("obj")
	seen := map[objCorner]uint32{}
	missingNormals := false

	for _, face := range faces {
		for _, c := range face {
			if c.v < 0 || c.v >= len(positions) {
				return nil, fmt.Errorf("vertex index %d out of range", c.v+1)
			}
			idx, ok := seen[c]
			if !ok {
				n := mgl32.Vec3{}
				if c.vn >= 0 && c.vn < len(normals) {
					n = normals[c.vn]
				} else {
					missingNormals = true
				}
				idx = m.AddVertex(positions[c.v], n)
				seen[c] = idx
			}
			m.Indices = append(m.Indices, idx)
		}
	}

	if missingNormals {
		generateNormals(m)
	}
	return m, nil
}

// generateNormals fills zero normals with the area-weighted average of the
// adjacent face normals.
func generateNormals(m *Mesh) {
	accum := make([]mgl32.Vec3, m.VertexCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		v0, v1, v2 := m.Position(int(i0)), m.Position(int(i1)), m.Position(int(i2))
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	for i, n := range accum {
		if m.Normal(i).Len() > 0 || n.Len() == 0 {
			continue
		}
		n = n.Normalize()
		copy(m.Vertices[i*FloatsPerVertex+3:i*FloatsPerVertex+6], n[:])
	}
}

// loadMTL reads the diffuse colour (Kd) of every material in an .mtl file.
func loadMTL(path string) (map[string]mgl32.Vec3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	colors := map[string]mgl32.Vec3{}
	cur := ""

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "newmtl":
			if len(fields) > 1 {
				cur = fields[1]
				colors[cur] = mgl32.Vec3{1, 1, 1}
			}
		case "Kd":
			if v, ok := parseVec3(fields); ok && cur != "" {
				colors[cur] = v
			}
		}
	}
	return colors, scanner.Err()
}
