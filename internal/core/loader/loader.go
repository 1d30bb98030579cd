// Package loader reads prefab and scene documents from disk and feeds them
// to a scene.Builder.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zeusync/scenecore/internal/core/document"
	"github.com/zeusync/scenecore/internal/core/observability/log"
	"github.com/zeusync/scenecore/internal/core/scene"
	"github.com/zeusync/scenecore/pkg/concurrent"
)

// KeyObjects holds the root objects of a scene document.
const KeyObjects = "Objects"

var ErrNoObjects = errors.New("scene document has no Objects sequence")

var documentExts = map[string]struct{}{".yaml": {}, ".yml": {}, ".json": {}}

// Loader reads documents concurrently and builds them sequentially: the
// builder and the object graph are single-threaded.
type Loader struct {
	builder *scene.Builder
	log     log.Log
	workers int
}

// New creates a loader. workers bounds concurrent file reads (<= 0 means unbounded).
func New(builder *scene.Builder, logger log.Log, workers int) *Loader {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Loader{builder: builder, log: logger.Named("loader"), workers: workers}
}

type parsed struct {
	path string
	node document.Node
}

// ReadFile parses one document file.
func ReadFile(path string) (document.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	n, err := document.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return n, nil
}

func (l *Loader) readAll(ctx context.Context, paths []string) ([]parsed, error) {
	return concurrent.Map(ctx, paths, l.workers, func(_ context.Context, path string) (parsed, error) {
		n, err := ReadFile(path)
		if err != nil {
			return parsed{}, err
		}
		return parsed{path: path, node: n}, nil
	})
}

// DocumentFiles lists the document files of dir, sorted by name.
func DocumentFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := documentExts[strings.ToLower(filepath.Ext(e.Name()))]; ok {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadPrefabs registers every document of dir as a prefab named by its Name
// key. Files are read concurrently and registered in file name order, so a
// prefab may instantiate prefabs from files sorting before its own.
// A missing directory registers nothing.
func (l *Loader) LoadPrefabs(ctx context.Context, dir string) ([]string, error) {
	paths, err := DocumentFiles(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	docs, err := l.readAll(ctx, paths)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(docs))
	for _, d := range docs {
		name := document.StringOf(d.node, scene.KeyName)
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(d.path), filepath.Ext(d.path))
		}
		p, err := l.builder.RegisterPrefab(name, d.node)
		if err != nil {
			return names, fmt.Errorf("prefab %s: %w", d.path, err)
		}
		names = append(names, p.Name())
		l.log.Debug("prefab registered", log.String("prefab", p.Name()), log.String("file", d.path))
	}
	return names, nil
}

// LoadScene builds a scene from the document at path. The scene is named
// by the document's Name key, or the file name without extension.
func (l *Loader) LoadScene(ctx context.Context, path string, opts ...scene.SceneOption) (*scene.Scene, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	node, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := document.StringOf(node, scene.KeyName)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return l.BuildScene(name, node, opts...)
}

// BuildScene creates a scene and attaches every entry of node's Objects
// sequence under its root.
func (l *Loader) BuildScene(name string, node document.Node, opts ...scene.SceneOption) (*scene.Scene, error) {
	objects, ok := node.Get(KeyObjects)
	if !ok || !objects.IsSequence() {
		return nil, fmt.Errorf("%s: %w", name, ErrNoObjects)
	}
	sc := scene.NewScene(name, opts...)
	for _, elem := range objects.Elements() {
		if !elem.IsMapping() {
			l.log.Warn("scene entry ignored",
				log.String("scene", name), log.Int("line", elem.Line()), log.Error(scene.ErrMalformed))
			continue
		}
		obj := l.builder.Create(elem, nil)
		if err := sc.Add(obj); err != nil {
			l.log.Warn("object not attached", log.String("scene", name), log.String("object", obj.Name()), log.Error(err))
		}
	}
	l.log.Info("scene loaded", log.String("scene", name), log.Int("objects", sc.Len()))
	return sc, nil
}
