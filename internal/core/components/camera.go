package components

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/scenecore/internal/core/document"
	"github.com/zeusync/scenecore/internal/core/scene"
)

// Camera is a perspective camera. FOV is vertical, in degrees.
type Camera struct {
	FOV     float64
	Near    float64
	Far     float64
	Primary bool
}

func (*Camera) Kind() string { return KindCamera }

func (c *Camera) Clone() scene.Component {
	cp := *c
	return &cp
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c *Camera) Projection(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// View returns the inverse of the owner's world matrix.
func (c *Camera) View(owner *scene.GameObject) mgl64.Mat4 {
	return owner.Transform().Matrix().Inv()
}

func newCamera(node document.Node, owner *scene.GameObject) (scene.Component, error) {
	c := &Camera{FOV: 60, Near: 0.1, Far: 1000}
	if node.IsMapping() {
		var raw struct {
			FOV     *float64 `yaml:"FOV"`
			Near    *float64 `yaml:"Near"`
			Far     *float64 `yaml:"Far"`
			Primary bool     `yaml:"Primary"`
		}
		if err := decode(node, KindCamera, &raw); err != nil {
			return nil, err
		}
		if raw.FOV != nil {
			c.FOV = *raw.FOV
		}
		if raw.Near != nil {
			c.Near = *raw.Near
		}
		if raw.Far != nil {
			c.Far = *raw.Far
		}
		c.Primary = raw.Primary
	}
	if c.FOV <= 0 || c.FOV >= 180 || c.Near <= 0 || c.Far <= c.Near {
		return nil, fmt.Errorf("%w: camera fov=%g near=%g far=%g", ErrInvalidValue, c.FOV, c.Near, c.Far)
	}
	owner.SetSlot(scene.SlotCamera, c)
	return c, nil
}
