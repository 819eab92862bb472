package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Model is a loaded actor mesh and its base colour.
type Model struct {
	Mesh  *Mesh
	Color mgl32.Vec3
}

// LoadModel loads a .glb, .gltf or .obj file, chosen by extension.
func LoadModel(path string) (*Model, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return LoadGLTF(path)
	case ".obj":
		return LoadOBJ(path)
	}
	return nil, fmt.Errorf("unsupported model format %q", filepath.Ext(path))
}
