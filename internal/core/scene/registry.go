package scene

import (
	"fmt"
	"sort"
	"sync"

	"github.com/zeusync/scenecore/internal/core/document"
)

// Factory builds a component from its document node for owner. A nil
// component with a nil error means the factory attached nothing.
type Factory func(node document.Node, owner *GameObject) (Component, error)

// Reserved document keys handled by the construction pipeline itself.
const (
	KeyName      = "Name"
	KeyClass     = "Class"
	KeyFields    = "Fields"
	KeyPrefab    = "Prefab"
	KeyTransform = "Transform"
	KeyChildren  = "Children"
	KeyParent    = "Parent"
	KeyFlags     = "Flags"
)

var reservedKeys = map[string]struct{}{
	KeyName: {}, KeyClass: {}, KeyFields: {}, KeyPrefab: {},
	KeyTransform: {}, KeyChildren: {}, KeyParent: {}, KeyFlags: {},
}

// IsReserved reports whether key is consumed by the pipeline rather than dispatched.
func IsReserved(key string) bool {
	_, ok := reservedKeys[key]
	return ok
}

// ComponentRegistry maps document keys to component factories. Each
// component kind registers itself once during startup.
type ComponentRegistry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{factories: make(map[string]Factory)}
}

// Register binds key to factory. Reserved keys and duplicates are rejected.
func (r *ComponentRegistry) Register(key string, factory Factory) error {
	if key == "" || factory == nil || IsReserved(key) {
		return fmt.Errorf("register component %q: %w", key, ErrInvalidKey)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[key]; ok {
		return fmt.Errorf("register component %s: %w", key, ErrDuplicateKey)
	}
	r.factories[key] = factory
	return nil
}

func (r *ComponentRegistry) Lookup(key string) (Factory, bool) {
	r.mu.RLock()
	f, ok := r.factories[key]
	r.mu.RUnlock()
	return f, ok
}

// Build runs the factory registered under key.
func (r *ComponentRegistry) Build(key string, node document.Node, owner *GameObject) (Component, error) {
	f, ok := r.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, key)
	}
	return f(node, owner)
}

func (r *ComponentRegistry) Keys() []string {
	r.mu.RLock()
	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	r.mu.RUnlock()
	sort.Strings(keys)
	return keys
}
