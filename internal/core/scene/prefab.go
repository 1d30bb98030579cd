package scene

import (
	"fmt"
	"sort"
	"sync"
)

// Prefab is a named template subtree. Instances are deep copies with fresh ids.
type Prefab struct {
	name     string
	template *GameObject
	baseline ID
}

// NewPrefab wraps template. The template must be detached; it is never
// attached to a scene and never updated.
func NewPrefab(name string, template *GameObject) *Prefab {
	return &Prefab{name: name, template: template, baseline: LastID()}
}

// Name is the key the prefab is registered under.
func (p *Prefab) Name() string { return p.name }

// Template returns the detached template subtree.
func (p *Prefab) Template() *GameObject { return p.template }

// Baseline is the value of the id counter when the prefab was registered.
// Every instance id is greater than it.
func (p *Prefab) Baseline() ID { return p.baseline }

// Instantiate deep-copies the template. A non-nil class replaces the class
// of the instance root only; descendants keep their template classes.
func (p *Prefab) Instantiate(class *Class) *GameObject {
	return p.instance(class, true)
}

// instance is Instantiate with control over replaying the template root's
// Init args. The builder turns replay off when the node brings its own Fields.
func (p *Prefab) instance(class *Class, replayInit bool) *GameObject {
	if class == nil {
		class = p.template.class
	}
	return p.template.cloneAs(class, replayInit)
}

// PrefabTable holds the registered prefabs. Like the other registries it is
// filled during startup and read-only afterwards.
type PrefabTable struct {
	mu      sync.RWMutex
	prefabs map[string]*Prefab
}

func NewPrefabTable() *PrefabTable {
	return &PrefabTable{prefabs: make(map[string]*Prefab)}
}

func (t *PrefabTable) Register(p *Prefab) error {
	if p == nil || p.name == "" || p.template == nil {
		return fmt.Errorf("register prefab: %w", ErrInvalidKey)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.prefabs[p.name]; ok {
		return fmt.Errorf("register prefab %s: %w", p.name, ErrDuplicateKey)
	}
	t.prefabs[p.name] = p
	return nil
}

func (t *PrefabTable) Lookup(name string) (*Prefab, bool) {
	t.mu.RLock()
	p, ok := t.prefabs[name]
	t.mu.RUnlock()
	return p, ok
}

func (t *PrefabTable) Names() []string {
	t.mu.RLock()
	names := make([]string, 0, len(t.prefabs))
	for n := range t.prefabs {
		names = append(names, n)
	}
	t.mu.RUnlock()
	sort.Strings(names)
	return names
}
