package scene

import "github.com/go-gl/mathgl/mgl64"

// Transform holds an object's local position, rotation and scale and caches
// the resulting world matrix. It is owned by exactly one GameObject.
//
// The world matrix is parentWorld * T(position) * R(rotation) * S(scale).
// A transform is dirty when any local value differs from the snapshot taken
// by the last UpdateMatrix, or when an ancestor is dirty.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3

	owner *GameObject

	matrix    mgl64.Mat4
	computed  bool
	prevPos   mgl64.Vec3
	prevRot   mgl64.Quat
	prevScale mgl64.Vec3

	recomputes uint64
}

func newTransform(owner *GameObject) *Transform {
	return &Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
		owner:    owner,
		matrix:   mgl64.Ident4(),
	}
}

// Owner returns the GameObject this transform belongs to.
func (t *Transform) Owner() *GameObject {
	return t.owner
}

func (t *Transform) parent() *Transform {
	if t.owner == nil || t.owner.parent == nil {
		return nil
	}
	return t.owner.parent.transform
}

// LocalMatrix builds T * R * S from the current local values.
func (t *Transform) LocalMatrix() mgl64.Mat4 {
	m := mgl64.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	m = t.Rotation.Mat4().Mul4(m)
	m.SetCol(3, mgl64.Vec4{t.Position[0], t.Position[1], t.Position[2], 1})
	return m
}

// IsDirty reports whether the cached world matrix is stale.
func (t *Transform) IsDirty() bool {
	for c := t; c != nil; c = c.parent() {
		if c.selfDirty() {
			return true
		}
	}
	return false
}

func (t *Transform) selfDirty() bool {
	return !t.computed ||
		t.Position != t.prevPos ||
		t.Rotation != t.prevRot ||
		t.Scale != t.prevScale
}

// Matrix returns the world matrix, recomputing it only when dirty. The
// recomputation starts at the highest dirty ancestor so that each affected
// transform is computed once.
func (t *Transform) Matrix() mgl64.Mat4 {
	if !t.IsDirty() {
		return t.matrix
	}
	top := t
	for p := t.parent(); p != nil; p = p.parent() {
		if p.selfDirty() {
			top = p
		}
	}
	top.UpdateMatrix()
	return t.matrix
}

// UpdateMatrix snapshots the local values, recomputes the world matrix and
// then recomputes every descendant depth-first. Children are always
// recomputed since their world matrix depends on this one.
func (t *Transform) UpdateMatrix() {
	t.prevPos = t.Position
	t.prevRot = t.Rotation
	t.prevScale = t.Scale
	t.computed = true

	local := t.LocalMatrix()
	if p := t.parent(); p != nil {
		t.matrix = p.Matrix().Mul4(local)
	} else {
		t.matrix = local
	}
	t.recomputes++

	if t.owner == nil {
		return
	}
	for _, child := range t.owner.children {
		child.transform.UpdateMatrix()
	}
}

// WorldPosition transforms the local position through the parent's world matrix.
func (t *Transform) WorldPosition() mgl64.Vec3 {
	p := t.parent()
	if p == nil {
		return t.Position
	}
	return p.Matrix().Mul4x1(t.Position.Vec4(1)).Vec3()
}

// WorldRotation composes ancestor rotations with the local rotation, parent first.
func (t *Transform) WorldRotation() mgl64.Quat {
	p := t.parent()
	if p == nil {
		return t.Rotation
	}
	return p.WorldRotation().Mul(t.Rotation)
}

// Forward is the local +Z axis rotated by Rotation.
func (t *Transform) Forward() mgl64.Vec3 {
	w, x, y, z := t.Rotation.W, t.Rotation.V[0], t.Rotation.V[1], t.Rotation.V[2]
	return mgl64.Vec3{
		2 * (x*z + w*y),
		2 * (y*z - w*x),
		1 - 2*(x*x+y*y),
	}
}

// Up is the local +Y axis rotated by Rotation.
func (t *Transform) Up() mgl64.Vec3 {
	w, x, y, z := t.Rotation.W, t.Rotation.V[0], t.Rotation.V[1], t.Rotation.V[2]
	return mgl64.Vec3{
		2 * (x*y - w*z),
		1 - 2*(x*x+z*z),
		2 * (y*z + w*x),
	}
}

// Right is the local +X axis rotated by Rotation.
func (t *Transform) Right() mgl64.Vec3 {
	w, x, y, z := t.Rotation.W, t.Rotation.V[0], t.Rotation.V[1], t.Rotation.V[2]
	return mgl64.Vec3{
		1 - 2*(y*y+z*z),
		2 * (x*y + w*z),
		2 * (x*z - w*y),
	}
}

// SetEuler sets Rotation from Euler angles in degrees, composed onto identity
// about x, then y, then z. See EulerToQuat for the axis convention.
func (t *Transform) SetEuler(xDeg, yDeg, zDeg float64) {
	t.Rotation = EulerToQuat(xDeg, yDeg, zDeg)
}

// EulerToQuat composes rotations about x, y and z (degrees) onto identity as
// I·Rx·Ry·Rz. The order is intrinsic: x turns about the object's own x axis,
// y then turns about the already rotated y axis, z last about the twice
// rotated z axis. In fixed world axes this is z first, then y, then x.
func EulerToQuat(xDeg, yDeg, zDeg float64) mgl64.Quat {
	q := mgl64.QuatIdent()
	q = q.Mul(mgl64.QuatRotate(mgl64.DegToRad(xDeg), mgl64.Vec3{1, 0, 0}))
	q = q.Mul(mgl64.QuatRotate(mgl64.DegToRad(yDeg), mgl64.Vec3{0, 1, 0}))
	q = q.Mul(mgl64.QuatRotate(mgl64.DegToRad(zDeg), mgl64.Vec3{0, 0, 1}))
	return q
}

// Translate moves the local position by delta.
func (t *Transform) Translate(delta mgl64.Vec3) {
	t.Position = t.Position.Add(delta)
}

// Rotate applies q after the current local rotation.
func (t *Transform) Rotate(q mgl64.Quat) {
	t.Rotation = t.Rotation.Mul(q).Normalize()
}

func (t *Transform) copyLocal(src *Transform) {
	t.Position = src.Position
	t.Rotation = src.Rotation
	t.Scale = src.Scale
}

// invalidate forces the next Matrix call to recompute this subtree. Used when
// the owner changes parent without any local value changing.
func (t *Transform) invalidate() {
	t.computed = false
}
