package scene

import (
	"fmt"
	"sort"
	"sync"

	"github.com/zeusync/scenecore/internal/core/document"
)

// Behavior carries the per-class hooks of a GameObject. Script classes
// implement it; objects without a class use BaseBehavior.
type Behavior interface {
	// Init is the custom-initialization hook fed with the deserialized Fields block.
	Init(obj *GameObject, args any)
	Update(obj *GameObject, dt float64)
	Draw(obj *GameObject)
	Shutdown(obj *GameObject)
}

// BaseBehavior implements every hook as a no-op. Embed it to override only
// the hooks a class needs.
type BaseBehavior struct{}

func (BaseBehavior) Init(*GameObject, any)       {}
func (BaseBehavior) Update(*GameObject, float64) {}
func (BaseBehavior) Draw(*GameObject)            {}
func (BaseBehavior) Shutdown(*GameObject)        {}

// FieldDeserializer turns a Fields block into the argument object handed to Behavior.Init.
type FieldDeserializer func(node document.Node) (any, error)

// Class is a registered script class.
type Class struct {
	Name   string
	New    func() Behavior
	Fields FieldDeserializer
}

// ClassRegistry maps class names to constructible classes. It is filled
// during startup and read-only afterwards.
type ClassRegistry struct {
	mu      sync.RWMutex
	classes map[string]*Class
}

func NewClassRegistry() *ClassRegistry {
	return &ClassRegistry{classes: make(map[string]*Class)}
}

// Register adds a class. Names must be unique.
func (r *ClassRegistry) Register(c *Class) error {
	if c == nil || c.Name == "" || c.New == nil {
		return fmt.Errorf("register class: %w", ErrInvalidKey)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.classes[c.Name]; ok {
		return fmt.Errorf("register class %s: %w", c.Name, ErrDuplicateKey)
	}
	r.classes[c.Name] = c
	return nil
}

// RegisterFields attaches a field deserializer to an already registered class.
func (r *ClassRegistry) RegisterFields(name string, fn FieldDeserializer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.classes[name]
	if !ok {
		return fmt.Errorf("register fields %s: %w", name, ErrUnknownClass)
	}
	c.Fields = fn
	return nil
}

func (r *ClassRegistry) Lookup(name string) (*Class, bool) {
	r.mu.RLock()
	c, ok := r.classes[name]
	r.mu.RUnlock()
	return c, ok
}

// Resolve is Lookup with an ErrUnknownClass error.
func (r *ClassRegistry) Resolve(name string) (*Class, error) {
	c, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}
	return c, nil
}

func (r *ClassRegistry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.classes))
	for n := range r.classes {
		names = append(names, n)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
