package components

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/scenecore/internal/core/document"
	"github.com/zeusync/scenecore/internal/core/observability/log"
	"github.com/zeusync/scenecore/internal/core/scene"
)

func newBuilder(t *testing.T) (*scene.Builder, *Library) {
	t.Helper()
	lib := NewLibrary(4)
	b := scene.NewBuilder(nil, nil, nil, log.NewNop())
	require.NoError(t, Register(b.Components, lib))
	return b, lib
}

func TestRegisterTwiceFails(t *testing.T) {
	reg := scene.NewComponentRegistry()
	require.NoError(t, Register(reg, nil))
	assert.ErrorIs(t, Register(reg, nil), scene.ErrDuplicateKey)
	assert.Equal(t, []string{KindAnimation, KindCamera, KindLight, KindMaterial, KindMesh}, reg.Keys())
}

func TestMaterialSharedByName(t *testing.T) {
	b, lib := newBuilder(t)
	a := b.Create(document.MustParse(`{Name: a, Material: stone}`), nil)
	c := b.Create(document.MustParse(`{Name: c, Material: stone}`), nil)

	require.NotNil(t, a.Material())
	assert.Same(t, a.Material(), c.Material())
	got, ok := a.Component(KindMaterial)
	require.True(t, ok)
	assert.Same(t, a.Material(), got)
	assert.Equal(t, 1, lib.Materials.Len())
}

func TestMaterialInline(t *testing.T) {
	b, lib := newBuilder(t)
	o := b.Create(document.MustParse(`{Name: o, Material: {Name: red, Color: [1, 0, 0], Roughness: 0.1}}`), nil)
	m := o.Material().(*Material)
	assert.Equal(t, mgl64.Vec4{1, 0, 0, 1}, m.Color)
	assert.Equal(t, 0.1, m.Roughness)

	// later references by name reuse the definition
	other := b.Create(document.MustParse(`{Name: other, Material: red}`), nil)
	assert.Same(t, m, other.Material())
	assert.Equal(t, []string{"red"}, lib.Materials.Keys())

	anon := b.Create(document.MustParse(`{Name: anon, Material: {Color: [0, 0, 1, 0.5]}}`), nil)
	assert.Equal(t, mgl64.Vec4{0, 0, 1, 0.5}, anon.Material().(*Material).Color)
	assert.Equal(t, 1, lib.Materials.Len())
}

func TestMeshSharedByPath(t *testing.T) {
	b, _ := newBuilder(t)
	a := b.Create(document.MustParse(`{Name: a, Mesh: models/crate.OBJ}`), nil)
	c := b.Create(document.MustParse(`{Name: c, Mesh: {Path: models/crate.OBJ}}`), nil)
	require.NotNil(t, a.Mesh())
	assert.Same(t, a.Mesh(), c.Mesh())
	assert.Equal(t, "obj", a.Mesh().(*Mesh).Format)

	p := b.Create(document.MustParse(`{Name: p, Mesh: cube}`), nil)
	assert.Equal(t, "cube", p.Mesh().(*Mesh).Primitive)

	bad := b.Create(document.MustParse(`{Name: bad, Mesh: teapot}`), nil)
	assert.Nil(t, bad.Mesh())
}

func TestMeshIsNotOwned(t *testing.T) {
	b, lib := newBuilder(t)
	a := b.Create(document.MustParse(`{Name: a, Mesh: cube}`), nil)
	a.SetSlot(scene.SlotMesh, nil)
	a.RemoveComponent(KindMesh)

	cached, ok := lib.Meshes.Get("cube")
	require.True(t, ok)
	assert.Equal(t, "cube", cached.Path)
}

func TestLight(t *testing.T) {
	b, _ := newBuilder(t)
	o := b.Create(document.MustParse(`{Name: lamp, Light: {Type: spot, Color: [1, 0.5, 0], Intensity: 3}}`), nil)
	l := o.Light().(*Light)
	assert.Equal(t, LightSpot, l.Type)
	assert.Equal(t, mgl64.Vec3{1, 0.5, 0}, l.Color)
	assert.Equal(t, 3.0, l.Intensity)
	assert.Equal(t, 10.0, l.Range)
	assert.Equal(t, 30.0, l.SpotAngle)

	sun := b.Create(document.MustParse(`{Name: sun, Light: {}}`), nil)
	assert.Equal(t, LightDirectional, sun.Light().(*Light).Type)
	assert.Equal(t, 1.0, sun.Light().(*Light).Intensity)

	bad := b.Create(document.MustParse(`{Name: bad, Light: {Type: laser}}`), nil)
	assert.Nil(t, bad.Light())
}

func TestCamera(t *testing.T) {
	b, _ := newBuilder(t)
	o := b.Create(document.MustParse(`{Name: cam, Camera: {FOV: 75, Primary: true}, Transform: {Position: [0, 0, 10]}}`), nil)
	c := o.Camera().(*Camera)
	assert.Equal(t, 75.0, c.FOV)
	assert.Equal(t, 0.1, c.Near)
	assert.True(t, c.Primary)

	view := c.View(o)
	assert.True(t, view.Mul4x1(mgl64.Vec4{0, 0, 10, 1}).ApproxEqualThreshold(mgl64.Vec4{0, 0, 0, 1}, 1e-9))
	assert.NotEqual(t, mgl64.Mat4{}, c.Projection(16.0/9.0))

	bad := b.Create(document.MustParse(`{Name: bad, Camera: {Near: 5, Far: 1}}`), nil)
	assert.Nil(t, bad.Camera())
}

func TestAnimationPosition(t *testing.T) {
	b, _ := newBuilder(t)
	o := b.Create(document.MustParse(`
Name: mover
Transform: {Position: [0, 0, 0]}
Animation:
  Tracks:
    - {Property: Position, To: [10, 0, 0], Duration: 1}
`), nil)
	anim := o.Animation().(*Animation)
	require.Len(t, anim.Tracks, 1)

	o.Update(0.5)
	assert.InDelta(t, 5.0, o.Transform().Position[0], 1e-4)
	o.Update(0.5)
	assert.InDelta(t, 10.0, o.Transform().Position[0], 1e-4)
	assert.True(t, anim.Finished())

	o.Update(0.5)
	assert.InDelta(t, 10.0, o.Transform().Position[0], 1e-4)
}

func TestAnimationYoyo(t *testing.T) {
	o := scene.NewObject("o")
	tr, err := NewTrack(PropertyScale, mgl64.Vec3{3, 3, 3}, 1, "linear")
	require.NoError(t, err)
	tr.Yoyo = true
	anim := &Animation{Tracks: []*Track{tr}, Playing: true}
	o.AddComponent(anim)

	o.Update(1)
	assert.InDelta(t, 3.0, o.Transform().Scale[0], 1e-4)
	assert.False(t, anim.Finished())
	o.Update(0.5)
	assert.InDelta(t, 2.0, o.Transform().Scale[0], 1e-4)
	o.Update(0.5)
	assert.InDelta(t, 1.0, o.Transform().Scale[0], 1e-4)
	assert.True(t, anim.Finished())
}

func TestAnimationRotation(t *testing.T) {
	o := scene.NewObject("o")
	tr, err := NewTrack(PropertyRotation, mgl64.Vec3{0, 90, 0}, 2, "inOutSine")
	require.NoError(t, err)
	o.AddComponent(&Animation{Tracks: []*Track{tr}, Playing: true})

	o.Update(2)
	want := scene.EulerToQuat(0, 90, 0)
	assert.True(t, want.ApproxEqualThreshold(o.Transform().Rotation, 1e-6))
}

func TestAnimationClonedForPrefabInstances(t *testing.T) {
	b, _ := newBuilder(t)
	_, err := b.RegisterPrefab("Spinner", document.MustParse(`
Name: Spinner
Mesh: cube
Animation:
  Tracks: [{Property: Position, To: [0, 4, 0], Duration: 1, Loop: true}]
`))
	require.NoError(t, err)

	a := b.Create(document.MustParse(`{Name: a, Prefab: Spinner}`), nil)
	c := b.Create(document.MustParse(`{Name: c, Prefab: Spinner}`), nil)
	assert.NotSame(t, a.Animation(), c.Animation())
	assert.Same(t, a.Mesh(), c.Mesh())

	a.Update(0.5)
	assert.InDelta(t, 2.0, a.Transform().Position[1], 1e-4)
	assert.Equal(t, 0.0, c.Transform().Position[1])
}

func TestAnimationErrors(t *testing.T) {
	_, err := NewTrack(PropertyPosition, mgl64.Vec3{}, 0, "")
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = Easing("wobble")
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, EaseNames(), "outbounce")

	b, _ := newBuilder(t)
	o := b.Create(document.MustParse(`{Name: o, Animation: {Tracks: [{Property: Color, To: [1,1,1], Duration: 1}]}}`), nil)
	assert.Nil(t, o.Animation())
}
