package components

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/scenecore/internal/core/document"
	"github.com/zeusync/scenecore/internal/core/scene"
)

// Material describes surface appearance. Materials are shared by name.
type Material struct {
	Name      string
	Color     mgl64.Vec4
	Texture   string
	Roughness float64
	Metallic  float64
}

func (*Material) Kind() string { return KindMaterial }

// DefaultMaterial is an untextured white material.
func DefaultMaterial(name string) *Material {
	return &Material{Name: name, Color: mgl64.Vec4{1, 1, 1, 1}, Roughness: 0.5}
}

// material accepts either a name ("stone") or an inline definition. Named
// definitions enter the cache; the first definition of a name wins.
func (lib *Library) material(node document.Node, owner *scene.GameObject) (scene.Component, error) {
	var m *Material
	switch {
	case node.IsScalar():
		name, _ := node.String()
		m, _ = lib.Materials.GetOrLoad(name, func(key string) (*Material, error) {
			return DefaultMaterial(key), nil
		})
	case node.IsMapping():
		var raw struct {
			Name      string    `yaml:"Name"`
			Color     []float64 `yaml:"Color"`
			Texture   string    `yaml:"Texture"`
			Roughness *float64  `yaml:"Roughness"`
			Metallic  float64   `yaml:"Metallic"`
		}
		if err := decode(node, KindMaterial, &raw); err != nil {
			return nil, err
		}
		def := DefaultMaterial(raw.Name)
		switch len(raw.Color) {
		case 0:
		case 3:
			def.Color = mgl64.Vec4{raw.Color[0], raw.Color[1], raw.Color[2], 1}
		case 4:
			def.Color = mgl64.Vec4{raw.Color[0], raw.Color[1], raw.Color[2], raw.Color[3]}
		default:
			return nil, fmt.Errorf("%w: material color needs 3 or 4 numbers", ErrInvalidValue)
		}
		def.Texture = raw.Texture
		def.Metallic = raw.Metallic
		if raw.Roughness != nil {
			def.Roughness = *raw.Roughness
		}
		m = def
		if raw.Name != "" {
			m, _ = lib.Materials.GetOrLoad(raw.Name, func(string) (*Material, error) { return def, nil })
		}
	default:
		return nil, fmt.Errorf("%w: material must be a name or a mapping", ErrInvalidValue)
	}
	owner.SetSlot(scene.SlotMaterial, m)
	return m, nil
}
