package components

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/scenecore/internal/core/document"
	"github.com/zeusync/scenecore/internal/core/scene"
)

type LightType uint8

const (
	LightDirectional LightType = iota
	LightPoint
	LightSpot
)

func (t LightType) String() string {
	switch t {
	case LightPoint:
		return "point"
	case LightSpot:
		return "spot"
	default:
		return "directional"
	}
}

func ParseLightType(s string) (LightType, error) {
	switch strings.ToLower(s) {
	case "", "directional":
		return LightDirectional, nil
	case "point":
		return LightPoint, nil
	case "spot":
		return LightSpot, nil
	}
	return 0, fmt.Errorf("%w: light type %q", ErrInvalidValue, s)
}

type Light struct {
	Type      LightType
	Color     mgl64.Vec3
	Intensity float64
	Range     float64
	// SpotAngle is the cone half-angle in degrees, spot lights only.
	SpotAngle float64
}

func (*Light) Kind() string { return KindLight }

func (l *Light) Clone() scene.Component {
	cp := *l
	return &cp
}

func newLight(node document.Node, owner *scene.GameObject) (scene.Component, error) {
	var raw struct {
		Type      string    `yaml:"Type"`
		Color     []float64 `yaml:"Color"`
		Intensity *float64  `yaml:"Intensity"`
		Range     float64   `yaml:"Range"`
		SpotAngle float64   `yaml:"SpotAngle"`
	}
	if err := decode(node, KindLight, &raw); err != nil {
		return nil, err
	}
	typ, err := ParseLightType(raw.Type)
	if err != nil {
		return nil, err
	}
	color, err := vec3(raw.Color, mgl64.Vec3{1, 1, 1})
	if err != nil {
		return nil, err
	}
	l := &Light{Type: typ, Color: color, Intensity: 1, Range: raw.Range, SpotAngle: raw.SpotAngle}
	if raw.Intensity != nil {
		l.Intensity = *raw.Intensity
	}
	if l.Type != LightDirectional && l.Range <= 0 {
		l.Range = 10
	}
	if l.Type == LightSpot && l.SpotAngle <= 0 {
		l.SpotAngle = 30
	}
	owner.SetSlot(scene.SlotLight, l)
	return l, nil
}
