// Package components holds the built-in component kinds and their document
// factories. Register must be called once during startup, before any
// document is built.
package components

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/scenecore/internal/core/assets"
	"github.com/zeusync/scenecore/internal/core/document"
	"github.com/zeusync/scenecore/internal/core/scene"
)

// Document keys, also used as component kinds.
const (
	KindMaterial  = "Material"
	KindMesh      = "Mesh"
	KindLight     = "Light"
	KindCamera    = "Camera"
	KindAnimation = "Animation"
)

var ErrInvalidValue = errors.New("invalid component value")

// Library carries the shared asset caches the factories draw from.
type Library struct {
	Materials *assets.Cache[*Material]
	Meshes    *assets.Cache[*Mesh]

	// LoadMesh resolves a mesh path. Defaults to a descriptor-only loader.
	LoadMesh assets.LoadFunc[*Mesh]
}

// NewLibrary creates a library with caches of the given shard count.
func NewLibrary(shards int) *Library {
	return &Library{
		Materials: assets.NewCache[*Material](shards),
		Meshes:    assets.NewCache[*Mesh](shards),
		LoadMesh:  DescribeMesh,
	}
}

// Register binds every built-in kind to reg.
func Register(reg *scene.ComponentRegistry, lib *Library) error {
	if lib == nil {
		lib = NewLibrary(0)
	}
	factories := []struct {
		key string
		fn  scene.Factory
	}{
		{KindMaterial, lib.material},
		{KindMesh, lib.mesh},
		{KindLight, newLight},
		{KindCamera, newCamera},
		{KindAnimation, newAnimation},
	}
	var errs []error
	for _, f := range factories {
		if err := reg.Register(f.key, f.fn); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func vec3(v []float64, def mgl64.Vec3) (mgl64.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return mgl64.Vec3{v[0], v[1], v[2]}, nil
	default:
		return def, fmt.Errorf("%w: expected 3 numbers, got %d", ErrInvalidValue, len(v))
	}
}

func decode(node document.Node, key string, v any) error {
	if err := node.Decode(v); err != nil {
		return fmt.Errorf("%s at line %d: %w", key, node.Line(), err)
	}
	return nil
}
