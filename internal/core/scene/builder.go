package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/scenecore/internal/core/document"
	"github.com/zeusync/scenecore/internal/core/observability/log"
)

// Builder turns document nodes into object trees. Registries are filled
// before the first Create call and only read afterwards.
type Builder struct {
	Components *ComponentRegistry
	Classes    *ClassRegistry
	Prefabs    *PrefabTable

	log log.Log
}

// NewBuilder creates a builder. Nil registries are replaced with empty ones.
func NewBuilder(components *ComponentRegistry, classes *ClassRegistry, prefabs *PrefabTable, logger log.Log) *Builder {
	if components == nil {
		components = NewComponentRegistry()
	}
	if classes == nil {
		classes = NewClassRegistry()
	}
	if prefabs == nil {
		prefabs = NewPrefabTable()
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Builder{
		Components: components,
		Classes:    classes,
		Prefabs:    prefabs,
		log:        logger.Named("builder"),
	}
}

// Create builds one object (and its inline children) from node. override,
// when non-nil, takes precedence over the node's Class key. Create never
// fails: unresolvable references and malformed blocks are logged and skipped.
func (b *Builder) Create(node document.Node, override *Class) *GameObject {
	if node == nil || !node.IsMapping() {
		line := 0
		if node != nil {
			line = node.Line()
		}
		b.log.Warn("object node is not a mapping", log.Int("line", line), log.Error(ErrMalformed))
		return NewObject("")
	}

	class := b.resolveClass(node, override)
	obj, fromPrefab := b.instantiate(node, class)

	b.applyName(node, obj, fromPrefab)
	b.applyTransform(node, obj)
	b.applyFlags(node, obj)
	b.applyFields(node, obj, class)
	b.applyChildren(node, obj)

	if parent, ok := node.Get(KeyParent); ok {
		ref, _ := parent.String()
		b.warn(obj, parent, "parent reference ignored, nest the object under Children instead",
			log.String("parent", ref), log.Bool("deprecated", true))
	}

	b.applyComponents(node, obj)
	return obj
}

// RegisterPrefab builds node as a detached template and registers it under
// name. An empty name falls back to the template's Name.
func (b *Builder) RegisterPrefab(name string, node document.Node) (*Prefab, error) {
	template := b.Create(node, nil)
	if name == "" {
		name = template.Name()
	}
	p := NewPrefab(name, template)
	if err := b.Prefabs.Register(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *Builder) resolveClass(node document.Node, override *Class) *Class {
	if override != nil {
		return override
	}
	v, ok := node.Get(KeyClass)
	if !ok {
		return nil
	}
	name, err := v.String()
	if err != nil {
		b.warn(nil, v, "class name is not a scalar", log.Error(err))
		return nil
	}
	class, err := b.Classes.Resolve(name)
	if err != nil {
		b.warn(nil, v, "falling back to base object", log.String("class", name), log.Error(err))
		return nil
	}
	return class
}

func (b *Builder) instantiate(node document.Node, class *Class) (*GameObject, bool) {
	v, ok := node.Get(KeyPrefab)
	if !ok {
		return NewObjectOf("", class), false
	}
	name, _ := v.String()
	p, found := b.Prefabs.Lookup(name)
	if !found {
		b.warn(nil, v, "prefab not found", log.String("prefab", name),
			log.Error(fmt.Errorf("%w: %s", ErrUnknownPrefab, name)))
		return NewObjectOf("", class), false
	}
	return p.instance(class, !b.suppliesInit(node, class)), true
}

// suppliesInit reports whether applyFields will try to run Init on the object
// built from node, so a prefab instance must not replay the template's args
// first. If the Fields fail to deserialize the instance gets no Init at all.
func (b *Builder) suppliesInit(node document.Node, class *Class) bool {
	if class == nil || class.Fields == nil {
		return false
	}
	_, ok := node.Get(KeyFields)
	return ok
}

func (b *Builder) applyName(node document.Node, obj *GameObject, fromPrefab bool) {
	v, ok := node.Get(KeyName)
	var name string
	if ok {
		name, _ = v.String()
	}
	if name == "" {
		if !fromPrefab {
			obj.name = fmt.Sprintf("GameObject#%d", obj.id)
		}
		b.warn(obj, node, "object has no name")
		return
	}
	obj.name = name
}

func (b *Builder) applyTransform(node document.Node, obj *GameObject) {
	tr, ok := node.Get(KeyTransform)
	if !ok {
		return
	}
	if !tr.IsMapping() {
		b.warn(obj, tr, "transform block ignored", log.Error(ErrMalformed))
		return
	}
	t := obj.transform
	if v, ok := b.vec3(obj, tr, "Scale"); ok {
		t.Scale = v
	}
	if v, ok := b.vec3(obj, tr, "Position"); ok {
		t.Position = v
	}
	if v, ok := b.vec3(obj, tr, "Rotation"); ok {
		t.SetEuler(v[0], v[1], v[2])
	}
}

func (b *Builder) vec3(obj *GameObject, block document.Node, key string) (mgl64.Vec3, bool) {
	v, ok := block.Get(key)
	if !ok {
		return mgl64.Vec3{}, false
	}
	f, err := document.Floats(v, 3)
	if err != nil {
		b.warn(obj, v, "transform value ignored", log.String("key", key), log.Error(err))
		return mgl64.Vec3{}, false
	}
	return mgl64.Vec3{f[0], f[1], f[2]}, true
}

func (b *Builder) applyFlags(node document.Node, obj *GameObject) {
	v, ok := node.Get(KeyFlags)
	if !ok {
		return
	}
	var raw struct {
		Update         *bool `yaml:"Update"`
		UpdateChildren *bool `yaml:"UpdateChildren"`
		DrawMesh       *bool `yaml:"DrawMesh"`
		DrawLight      *bool `yaml:"DrawLight"`
	}
	if err := v.Decode(&raw); err != nil {
		b.warn(obj, v, "flags block ignored", log.Error(err))
		return
	}
	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&obj.Flags.Update, raw.Update)
	set(&obj.Flags.UpdateChildren, raw.UpdateChildren)
	set(&obj.Flags.DrawMesh, raw.DrawMesh)
	set(&obj.Flags.DrawLight, raw.DrawLight)
}

func (b *Builder) applyFields(node document.Node, obj *GameObject, class *Class) {
	v, ok := node.Get(KeyFields)
	if !ok {
		return
	}
	if class == nil {
		b.warn(obj, v, "fields ignored on object without class")
		return
	}
	if class.Fields == nil {
		b.warn(obj, v, "class has no field deserializer", log.String("class", class.Name))
		return
	}
	args, err := class.Fields(v)
	if err != nil {
		b.warn(obj, v, "fields deserialization failed", log.String("class", class.Name), log.Error(err))
		return
	}
	obj.Init(args)
}

func (b *Builder) applyChildren(node document.Node, obj *GameObject) {
	v, ok := node.Get(KeyChildren)
	if !ok || v.Kind() == document.KindNull {
		return
	}
	if !v.IsSequence() {
		b.warn(obj, v, "children block is not a sequence", log.Error(ErrMalformed))
		return
	}
	for _, elem := range v.Elements() {
		switch elem.Kind() {
		case document.KindMapping:
			child := b.Create(elem, nil)
			if err := obj.AddChild(child); err != nil {
				b.warn(obj, elem, "child not attached", log.Error(err))
			}
		case document.KindScalar:
			ref, _ := elem.String()
			b.warn(obj, elem, "child name reference ignored, nest the child inline instead",
				log.String("child", ref), log.Bool("deprecated", true))
		default:
			b.warn(obj, elem, "unsupported child entry", log.String("kind", elem.Kind().String()), log.Error(ErrMalformed))
		}
	}
}

func (b *Builder) applyComponents(node document.Node, obj *GameObject) {
	for _, pair := range node.Pairs() {
		if IsReserved(pair.Key) {
			continue
		}
		c, err := b.Components.Build(pair.Key, pair.Value, obj)
		if err != nil {
			b.warn(obj, pair.Value, "component skipped", log.String("key", pair.Key), log.Error(err))
			continue
		}
		obj.AddComponent(c)
	}
}

func (b *Builder) warn(obj *GameObject, at document.Node, msg string, fields ...log.Field) {
	if obj != nil {
		fields = append(fields, log.String("object", obj.name), log.Uint64("id", uint64(obj.id)))
	}
	if at != nil {
		fields = append(fields, log.Int("line", at.Line()))
	}
	b.log.Warn(msg, fields...)
}
