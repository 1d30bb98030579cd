package scene

// Component is a pluggable capability attached to a GameObject. Instances may
// be shared by several objects; an object never owns the components it holds.
// Any dynamic type works; Clone shares instances of comparable types once per
// copied subtree and shares other values (slices, maps) by value.
type Component interface {
	// Kind is the key the component is stored under, one instance per kind per object.
	Kind() string
}

// Updater is implemented by components that take part in the update traversal.
type Updater interface {
	Update(owner *GameObject, dt float64)
}

// Cloner is implemented by components carrying per-object state. Clone
// copies those instead of sharing the reference.
type Cloner interface {
	Clone() Component
}

// Slot names one of the fixed component slots of a GameObject.
type Slot uint8

const (
	SlotMaterial Slot = iota
	SlotMesh
	SlotAnimation
	SlotLight
	SlotCamera
	slotCount
)

func (s Slot) String() string {
	switch s {
	case SlotMaterial:
		return "material"
	case SlotMesh:
		return "mesh"
	case SlotAnimation:
		return "animation"
	case SlotLight:
		return "light"
	case SlotCamera:
		return "camera"
	default:
		return "unknown"
	}
}

// Renderer receives draw submissions during the Draw traversal. The core
// never inspects the slot contents it passes along.
type Renderer interface {
	DrawMesh(obj *GameObject, mesh, material Component)
	DrawLight(obj *GameObject, light Component)
}

// Flags gate per-object traversal work.
type Flags struct {
	Update         bool
	UpdateChildren bool
	DrawMesh       bool
	DrawLight      bool
}

// DefaultFlags has everything enabled.
func DefaultFlags() Flags {
	return Flags{Update: true, UpdateChildren: true, DrawMesh: true, DrawLight: true}
}
