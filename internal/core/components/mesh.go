package components

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zeusync/scenecore/internal/core/document"
	"github.com/zeusync/scenecore/internal/core/scene"
)

// Mesh references geometry by path. Decoding the file is left to the
// renderer; the core only stores the shared reference.
type Mesh struct {
	Path      string
	Format    string
	Primitive string
}

func (*Mesh) Kind() string { return KindMesh }

var primitives = map[string]struct{}{
	"cube": {}, "sphere": {}, "plane": {}, "cylinder": {}, "capsule": {},
}

// DescribeMesh builds a mesh descriptor from its path. Paths without an
// extension must name a built-in primitive.
func DescribeMesh(path string) (*Mesh, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		if _, ok := primitives[path]; !ok {
			return nil, fmt.Errorf("%w: unknown primitive %q", ErrInvalidValue, path)
		}
		return &Mesh{Path: path, Primitive: path}, nil
	}
	return &Mesh{Path: path, Format: ext}, nil
}

func (lib *Library) mesh(node document.Node, owner *scene.GameObject) (scene.Component, error) {
	var path string
	switch {
	case node.IsScalar():
		path, _ = node.String()
	case node.IsMapping():
		path = document.StringOf(node, "Path")
	}
	if path == "" {
		return nil, fmt.Errorf("%w: mesh needs a path", ErrInvalidValue)
	}
	load := lib.LoadMesh
	if load == nil {
		load = DescribeMesh
	}
	m, err := lib.Meshes.GetOrLoad(path, load)
	if err != nil {
		return nil, err
	}
	owner.SetSlot(scene.SlotMesh, m)
	return m, nil
}
