package scene

import (
	"github.com/zeusync/scenecore/internal/core/events/bus"
	"github.com/zeusync/scenecore/internal/core/observability/log"
	"github.com/zeusync/scenecore/pkg/sequence"
)

const (
	EventObjectAttached = "scene.object.attached"
	EventObjectDetached = "scene.object.detached"
)

// ObjectEvent is the payload of attach and detach events.
type ObjectEvent struct {
	ID     ID
	Name   string
	Parent ID
}

// Scene indexes every object of the tree under its root by id and by name.
// The index is updated synchronously by AddChild and RemoveChild.
type Scene struct {
	name string
	root *GameObject

	objectByID map[ID]*GameObject
	idByName   map[string]ID

	bus bus.EventBus
	log log.Log
}

type SceneOption func(*Scene)

// WithBus publishes attach and detach events on b.
func WithBus(b bus.EventBus) SceneOption {
	return func(s *Scene) { s.bus = b }
}

func WithLogger(l log.Log) SceneOption {
	return func(s *Scene) {
		if l != nil {
			s.log = l
		}
	}
}

// NewScene creates a scene with an empty root object named after the scene.
func NewScene(name string, opts ...SceneOption) *Scene {
	s := &Scene{
		name:       name,
		objectByID: make(map[ID]*GameObject),
		idByName:   make(map[string]ID),
		log:        log.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.root = NewObject(name)
	s.root.scene = s
	s.objectByID[s.root.id] = s.root
	s.idByName[s.root.name] = s.root.id
	return s
}

func (s *Scene) Name() string      { return s.name }
func (s *Scene) Root() *GameObject { return s.root }
func (s *Scene) Len() int          { return len(s.objectByID) }

// Add attaches obj under the scene root.
func (s *Scene) Add(obj *GameObject) error {
	return s.root.AddChild(obj)
}

// ObjectByID returns the attached object with the given id.
func (s *Scene) ObjectByID(id ID) (*GameObject, bool) {
	o, ok := s.objectByID[id]
	return o, ok
}

// IDByName returns the id indexed under name. Attaching overwrites the entry
// (last write wins). Detaching its owner hands the name to another attached
// object of that name, if one is left.
func (s *Scene) IDByName(name string) (ID, bool) {
	id, ok := s.idByName[name]
	return id, ok
}

// ObjectByName resolves name through the name index. When several attached
// objects share a name the most recently attached one wins.
func (s *Scene) ObjectByName(name string) (*GameObject, bool) {
	id, ok := s.idByName[name]
	if !ok {
		return nil, false
	}
	return s.ObjectByID(id)
}

func (s *Scene) Update(dt float64) { s.root.Update(dt) }
func (s *Scene) Draw(r Renderer)   { s.root.Draw(r) }
func (s *Scene) Shutdown()         { s.root.Shutdown() }

// register indexes the subtree rooted at top, breadth-first.
func (s *Scene) register(top *GameObject) {
	var queue sequence.Queue[*GameObject]
	queue.Enqueue(top)
	for queue.Len() > 0 {
		o, _ := queue.Dequeue()

		s.objectByID[o.id] = o
		s.idByName[o.name] = o.id
		s.publish(EventObjectAttached, o, o.parent)

		queue.Enqueue(o.children...)
	}
}

// unregister purges the subtree rooted at top. formerParent is the object
// top was detached from.
func (s *Scene) unregister(top, formerParent *GameObject) {
	var orphaned map[string]struct{}
	var queue sequence.Queue[*GameObject]
	queue.Enqueue(top)
	for queue.Len() > 0 {
		o, _ := queue.Dequeue()

		delete(s.objectByID, o.id)
		if id, ok := s.idByName[o.name]; ok && id == o.id {
			delete(s.idByName, o.name)
			if orphaned == nil {
				orphaned = make(map[string]struct{})
			}
			orphaned[o.name] = struct{}{}
		}
		parent := o.parent
		if o == top {
			parent = formerParent
		}
		s.publish(EventObjectDetached, o, parent)

		queue.Enqueue(o.children...)
	}

	if len(orphaned) > 0 {
		s.root.Walk(func(o *GameObject) bool {
			if _, ok := orphaned[o.name]; ok {
				s.idByName[o.name] = o.id
			}
			return true
		})
	}
}

func (s *Scene) publish(typ string, o, parent *GameObject) {
	if s.bus == nil {
		return
	}
	ev := ObjectEvent{ID: o.id, Name: o.name}
	if parent != nil {
		ev.Parent = parent.id
	}
	if err := s.bus.Publish(bus.NewEvent(typ, s.name, ev)); err != nil {
		s.log.Warn("scene event handler failed",
			log.String("event", typ),
			log.Uint64("id", uint64(o.id)),
			log.Error(err),
		)
	}
}
