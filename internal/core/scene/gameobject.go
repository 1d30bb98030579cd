package scene

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

// ID identifies a GameObject for the lifetime of the process. Ids are never reused.
type ID uint64

var idCounter atomic.Uint64

func nextID() ID {
	return ID(idCounter.Add(1))
}

// LastID returns the most recently assigned object id.
func LastID() ID {
	return ID(idCounter.Load())
}

// GameObject is a node of the scene hierarchy. It owns its Transform and its
// child list; its parent pointer is a back reference only.
type GameObject struct {
	id         ID
	name       string
	nameLocked bool

	class    *Class
	behavior Behavior
	initArgs any

	transform *Transform
	parent    *GameObject
	children  []*GameObject

	slots      [slotCount]Component
	components map[string]Component
	kinds      []string

	Flags Flags

	scene    *Scene // set on scene roots only
	shutdown bool
}

// NewObject creates a plain object with the base behavior.
func NewObject(name string) *GameObject {
	return NewObjectOf(name, nil)
}

// NewObjectOf creates an object whose behavior is a fresh instance of class.
// A nil class gives the base behavior.
func NewObjectOf(name string, class *Class) *GameObject {
	o := &GameObject{
		id:         nextID(),
		name:       name,
		class:      class,
		components: make(map[string]Component),
		Flags:      DefaultFlags(),
	}
	o.transform = newTransform(o)
	if class != nil {
		o.behavior = class.New()
	}
	if o.behavior == nil {
		o.behavior = BaseBehavior{}
	}
	return o
}

// ID returns the object's process-unique id.
func (o *GameObject) ID() ID { return o.id }

// Name returns the display name. Names are not unique.
func (o *GameObject) Name() string { return o.name }

// NameLocked reports whether SetName is currently refused.
func (o *GameObject) NameLocked() bool { return o.nameLocked }

// Class returns the script class the object was built from, or nil.
func (o *GameObject) Class() *Class { return o.class }

// Behavior returns the hook implementation, BaseBehavior for plain objects.
func (o *GameObject) Behavior() Behavior { return o.behavior }

// Transform returns the object's transform. It is never nil.
func (o *GameObject) Transform() *Transform { return o.transform }

// Parent returns the parent object, or nil for roots and detached objects.
func (o *GameObject) Parent() *GameObject { return o.parent }

// ClassName returns the script class name, or "" for plain objects.
func (o *GameObject) ClassName() string {
	if o.class == nil {
		return ""
	}
	return o.class.Name
}

// SetName renames the object. Names are locked while the object has a parent.
func (o *GameObject) SetName(name string) error {
	if o.nameLocked {
		return fmt.Errorf("rename %q to %q: %w", o.name, name, ErrNameLocked)
	}
	o.name = name
	return nil
}

func (o *GameObject) String() string {
	return fmt.Sprintf("%s#%d", o.name, o.id)
}

// Init runs the behavior's custom-initialization hook and remembers args so
// that clones of this object can be initialized the same way.
func (o *GameObject) Init(args any) {
	o.initArgs = args
	o.behavior.Init(o, args)
}

// --- Components ---

// Slot returns the component held in slot s, or nil.
func (o *GameObject) Slot(s Slot) Component {
	if s >= slotCount {
		return nil
	}
	return o.slots[s]
}

// SetSlot stores c in slot s. A nil c clears the slot.
func (o *GameObject) SetSlot(s Slot, c Component) {
	if s >= slotCount {
		return
	}
	o.slots[s] = c
}

// Material returns the material slot, or nil.
func (o *GameObject) Material() Component { return o.slots[SlotMaterial] }

// Mesh returns the mesh slot, or nil.
func (o *GameObject) Mesh() Component { return o.slots[SlotMesh] }

// Animation returns the animation slot, or nil.
func (o *GameObject) Animation() Component { return o.slots[SlotAnimation] }

// Light returns the light slot, or nil.
func (o *GameObject) Light() Component { return o.slots[SlotLight] }

// Camera returns the camera slot, or nil.
func (o *GameObject) Camera() Component { return o.slots[SlotCamera] }

// AddComponent stores c under its kind, replacing any previous instance of
// that kind. A nil component is ignored.
func (o *GameObject) AddComponent(c Component) {
	if c == nil {
		return
	}
	kind := c.Kind()
	if _, ok := o.components[kind]; !ok {
		o.kinds = append(o.kinds, kind)
	}
	o.components[kind] = c
}

// Component returns the component stored under kind.
func (o *GameObject) Component(kind string) (Component, bool) {
	c, ok := o.components[kind]
	return c, ok
}

// RemoveComponent drops the component of the given kind. Slots are left untouched.
func (o *GameObject) RemoveComponent(kind string) {
	if _, ok := o.components[kind]; !ok {
		return
	}
	delete(o.components, kind)
	for i, k := range o.kinds {
		if k == kind {
			o.kinds = append(o.kinds[:i], o.kinds[i+1:]...)
			break
		}
	}
}

// Components returns attached components in insertion order.
func (o *GameObject) Components() []Component {
	out := make([]Component, 0, len(o.kinds))
	for _, k := range o.kinds {
		out = append(out, o.components[k])
	}
	return out
}

// --- Tree manipulation ---

// AddChild appends child to this object's children. If child already has a
// different parent it is detached from it first. If the tree this object
// belongs to is rooted in a Scene, the whole child subtree is registered in
// the scene index before AddChild returns.
func (o *GameObject) AddChild(child *GameObject) error {
	if child == nil {
		return ErrNilChild
	}
	if child.parent == o {
		return nil
	}
	if child.scene != nil {
		return fmt.Errorf("add %s under %s: %w", child, o, ErrSceneRoot)
	}
	if child.isAncestorOf(o) {
		return fmt.Errorf("add %s under %s: %w", child, o, ErrCycle)
	}
	if child.parent != nil {
		if err := child.parent.RemoveChild(child); err != nil {
			return err
		}
	}

	o.children = append(o.children, child)
	child.parent = o
	child.nameLocked = true
	child.transform.invalidate()

	if sc := o.Root().scene; sc != nil {
		sc.register(child)
	}
	return nil
}

// RemoveChild detaches child, clears its parent and unlocks its name. A
// subtree detached from a scene-rooted tree is purged from the scene index.
func (o *GameObject) RemoveChild(child *GameObject) error {
	if child == nil || child.parent != o {
		return ErrNotChild
	}
	sc := o.Root().scene

	o.removeChildByPtr(child)
	child.parent = nil
	child.nameLocked = false
	child.transform.invalidate()

	if sc != nil {
		sc.unregister(child, o)
	}
	return nil
}

// RemoveFromParent detaches this object from its parent. No-op without a parent.
func (o *GameObject) RemoveFromParent() {
	if o.parent == nil {
		return
	}
	_ = o.parent.RemoveChild(o)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (o *GameObject) Children() []*GameObject {
	return o.children
}

func (o *GameObject) NumChildren() int {
	return len(o.children)
}

func (o *GameObject) ChildAt(index int) *GameObject {
	return o.children[index]
}

// Root walks parent pointers up to the topmost ancestor.
func (o *GameObject) Root() *GameObject {
	r := o
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Scene returns the scene the object's tree is attached to, or nil.
func (o *GameObject) Scene() *Scene {
	return o.Root().scene
}

// isAncestorOf reports whether o is node or one of node's ancestors.
func (o *GameObject) isAncestorOf(node *GameObject) bool {
	for p := node; p != nil; p = p.parent {
		if p == o {
			return true
		}
	}
	return false
}

func (o *GameObject) removeChildByPtr(child *GameObject) {
	for i, c := range o.children {
		if c == child {
			copy(o.children[i:], o.children[i+1:])
			o.children[len(o.children)-1] = nil
			o.children = o.children[:len(o.children)-1]
			return
		}
	}
}

// --- Traversal ---

// Update runs the update hook and component updates when Flags.Update is
// set, then recurses into children when Flags.UpdateChildren is set.
func (o *GameObject) Update(dt float64) {
	if o.Flags.Update {
		o.behavior.Update(o, dt)
		for _, kind := range o.kinds {
			if u, ok := o.components[kind].(Updater); ok {
				u.Update(o, dt)
			}
		}
	}
	if o.Flags.UpdateChildren {
		for _, child := range o.children {
			child.Update(dt)
		}
	}
}

// Draw runs the draw hook, submits mesh and light slots to r when allowed
// by the flags, then recurses into children. r may be nil.
func (o *GameObject) Draw(r Renderer) {
	o.behavior.Draw(o)
	if r != nil {
		if mesh := o.slots[SlotMesh]; mesh != nil && o.Flags.DrawMesh {
			r.DrawMesh(o, mesh, o.slots[SlotMaterial])
		}
		if light := o.slots[SlotLight]; light != nil && o.Flags.DrawLight {
			r.DrawLight(o, light)
		}
	}
	for _, child := range o.children {
		child.Draw(r)
	}
}

// Shutdown runs the shutdown hook, parent before children. Each object
// receives the hook at most once.
func (o *GameObject) Shutdown() {
	if !o.shutdown {
		o.shutdown = true
		o.behavior.Shutdown(o)
	}
	for _, child := range o.children {
		child.Shutdown()
	}
}

// Walk visits the subtree in pre-order. Returning false from fn skips the
// visited object's children.
func (o *GameObject) Walk(fn func(*GameObject) bool) {
	if !fn(o) {
		return
	}
	for _, child := range o.children {
		child.Walk(fn)
	}
}

// Find returns the first object named name in a depth-first search, including o.
func (o *GameObject) Find(name string) *GameObject {
	if o.name == name {
		return o
	}
	for _, child := range o.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Cloning ---

// Clone deep-copies the subtree with fresh ids. Components are shared unless
// they implement Cloner. The clone is detached.
func (o *GameObject) Clone() *GameObject {
	return o.cloneAs(o.class, true)
}

// cloneAs copies the subtree giving the root class. When replayInit is set and
// the root keeps its class, the root's Init args are replayed on the copy;
// descendants always replay theirs.
func (o *GameObject) cloneAs(class *Class, replayInit bool) *GameObject {
	c := NewObjectOf(o.name, class)
	c.Flags = o.Flags
	c.transform.copyLocal(o.transform)

	copied := make(map[Component]Component, len(o.kinds))
	dup := func(src Component) Component {
		if src == nil {
			return nil
		}
		// slices, maps and funcs cannot key the memo; they are shared as-is
		memo := reflect.TypeOf(src).Comparable()
		if memo {
			if d, ok := copied[src]; ok {
				return d
			}
		}
		d := src
		if cl, ok := src.(Cloner); ok {
			d = cl.Clone()
		}
		if memo {
			copied[src] = d
		}
		return d
	}
	for _, kind := range o.kinds {
		c.AddComponent(dup(o.components[kind]))
	}
	for s := range o.slots {
		c.slots[s] = dup(o.slots[s])
	}

	if replayInit && class == o.class && o.initArgs != nil {
		c.Init(o.initArgs)
	}

	c.children = make([]*GameObject, 0, len(o.children))
	for _, child := range o.children {
		cc := child.cloneAs(child.class, true)
		cc.parent = c
		cc.nameLocked = true
		c.children = append(c.children, cc)
	}
	return c
}
