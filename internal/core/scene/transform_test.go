package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chain(t *testing.T) (root, mid, leaf *GameObject) {
	t.Helper()
	root, mid, leaf = NewObject("root"), NewObject("mid"), NewObject("leaf")
	require.NoError(t, root.AddChild(mid))
	require.NoError(t, mid.AddChild(leaf))

	root.Transform().Position = mgl64.Vec3{1, 2, 3}
	root.Transform().SetEuler(30, 45, 60)
	root.Transform().Scale = mgl64.Vec3{2, 1, 0.5}

	mid.Transform().Position = mgl64.Vec3{-4, 0.5, 7}
	mid.Transform().SetEuler(-90, 10, 0)
	mid.Transform().Scale = mgl64.Vec3{1, 3, 1}

	leaf.Transform().Position = mgl64.Vec3{0.25, -1, 2}
	leaf.Transform().SetEuler(0, 0, 135)
	leaf.Transform().Scale = mgl64.Vec3{0.5, 0.5, 0.5}
	return root, mid, leaf
}

func TestLocalMatrixIsTranslateRotateScale(t *testing.T) {
	o := NewObject("o")
	tr := o.Transform()
	tr.Position = mgl64.Vec3{4, 5, 6}
	tr.SetEuler(10, 20, 30)
	tr.Scale = mgl64.Vec3{2, 3, 4}

	want := mgl64.Translate3D(4, 5, 6).Mul4(tr.Rotation.Mat4()).Mul4(mgl64.Scale3D(2, 3, 4))
	assertMatEqual(t, want, tr.LocalMatrix())
}

func TestNoParentWorldEqualsLocal(t *testing.T) {
	o := NewObject("o")
	o.Transform().Position = mgl64.Vec3{1, 1, 1}
	o.Transform().SetEuler(0, 90, 0)

	assertMatEqual(t, o.Transform().LocalMatrix(), o.Transform().Matrix())
	assert.Equal(t, o.Transform().Position, o.Transform().WorldPosition())
	assert.Equal(t, o.Transform().Rotation, o.Transform().WorldRotation())
}

func TestWorldMatrixComposition(t *testing.T) {
	root, mid, leaf := chain(t)

	want := root.Transform().LocalMatrix().
		Mul4(mid.Transform().LocalMatrix()).
		Mul4(leaf.Transform().LocalMatrix())
	assertMatEqual(t, want, leaf.Transform().Matrix())
}

func TestUpdateMatrixPropagatesToDescendants(t *testing.T) {
	root, mid, leaf := chain(t)
	_ = leaf.Transform().Matrix()

	midLocal := mid.Transform().LocalMatrix()
	leafLocal := leaf.Transform().LocalMatrix()
	leafPos := leaf.Transform().Position

	root.Transform().Position = mgl64.Vec3{100, -50, 25}
	root.Transform().UpdateMatrix()

	assert.False(t, mid.Transform().IsDirty())
	assert.False(t, leaf.Transform().IsDirty())
	assert.Equal(t, leafPos, leaf.Transform().Position)

	want := root.Transform().LocalMatrix().Mul4(midLocal).Mul4(leafLocal)
	// read the cache directly: no recomputation may be needed to observe the update
	assertMatEqual(t, want, leaf.Transform().matrix)
}

func TestMatrixIsIdempotent(t *testing.T) {
	root, mid, leaf := chain(t)

	first := leaf.Transform().Matrix()
	counts := []uint64{root.Transform().recomputes, mid.Transform().recomputes, leaf.Transform().recomputes}

	second := leaf.Transform().Matrix()
	assert.Equal(t, first, second)
	assert.Equal(t, counts, []uint64{root.Transform().recomputes, mid.Transform().recomputes, leaf.Transform().recomputes})
}

func TestDirtyAncestorRecomputesOnce(t *testing.T) {
	root, mid, leaf := chain(t)
	_ = leaf.Transform().Matrix()
	before := leaf.Transform().recomputes

	root.Transform().Translate(mgl64.Vec3{1, 0, 0})
	assert.True(t, leaf.Transform().IsDirty())
	assert.False(t, mid.Transform().selfDirty())

	_ = leaf.Transform().Matrix()
	assert.Equal(t, before+1, leaf.Transform().recomputes)
}

func TestRotationAffectsChildWorldPosition(t *testing.T) {
	parent, child := NewObject("p"), NewObject("c")
	require.NoError(t, parent.AddChild(child))

	parent.Transform().Position = mgl64.Vec3{5, 0, 0}
	parent.Transform().SetEuler(0, 90, 0)
	child.Transform().Position = mgl64.Vec3{1, 0, 0}

	assertVecEqual(t, mgl64.Vec3{5, 0, -1}, child.Transform().WorldPosition())
	assertVecEqual(t, mgl64.Vec3{5, 0, -1}, child.Transform().Matrix().Col(3).Vec3())
}

func TestWorldRotationParentFirst(t *testing.T) {
	parent, child := NewObject("p"), NewObject("c")
	require.NoError(t, parent.AddChild(child))
	parent.Transform().SetEuler(0, 90, 0)
	child.Transform().SetEuler(90, 0, 0)

	want := parent.Transform().Rotation.Mul(child.Transform().Rotation)
	got := child.Transform().WorldRotation()
	assert.True(t, want.ApproxEqualThreshold(got, eps), "want %v got %v", want, got)
}

func TestReparentInvalidatesMatrix(t *testing.T) {
	a, b, child := NewObject("a"), NewObject("b"), NewObject("child")
	a.Transform().Position = mgl64.Vec3{10, 0, 0}
	b.Transform().Position = mgl64.Vec3{0, 0, -3}

	require.NoError(t, a.AddChild(child))
	assertVecEqual(t, mgl64.Vec3{10, 0, 0}, child.Transform().Matrix().Col(3).Vec3())

	require.NoError(t, b.AddChild(child))
	assertVecEqual(t, mgl64.Vec3{0, 0, -3}, child.Transform().Matrix().Col(3).Vec3())

	require.NoError(t, b.RemoveChild(child))
	assertVecEqual(t, mgl64.Vec3{}, child.Transform().Matrix().Col(3).Vec3())
}

func TestAxes(t *testing.T) {
	o := NewObject("o")
	tr := o.Transform()
	for _, e := range [][3]float64{{0, 0, 0}, {0, 90, 0}, {30, -45, 120}, {180, 10, -70}} {
		tr.SetEuler(e[0], e[1], e[2])
		assertVecEqual(t, tr.Rotation.Rotate(mgl64.Vec3{0, 0, 1}), tr.Forward())
		assertVecEqual(t, tr.Rotation.Rotate(mgl64.Vec3{0, 1, 0}), tr.Up())
		assertVecEqual(t, tr.Rotation.Rotate(mgl64.Vec3{1, 0, 0}), tr.Right())
	}
}

func TestEulerOrderXThenYThenZ(t *testing.T) {
	q := EulerToQuat(90, 0, 90)
	want := mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{1, 0, 0}).
		Mul(mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 0, 1}))
	assert.True(t, want.ApproxEqualThreshold(q, eps))
	assert.True(t, EulerToQuat(0, 0, 0).ApproxEqualThreshold(mgl64.QuatIdent(), eps))
}

func TestEulerAxesAreIntrinsic(t *testing.T) {
	// y turns about the local y axis, which x=90 has moved onto world z
	q := EulerToQuat(90, 90, 0)
	world := mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 0, 1}).
		Mul(mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{1, 0, 0}))
	assert.True(t, world.ApproxEqualThreshold(q, eps))

	// the local z axis ends on world x
	assertVecEqual(t, mgl64.Vec3{1, 0, 0}, q.Rotate(mgl64.Vec3{0, 0, 1}))
}
