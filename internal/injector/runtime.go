package injector

import (
	"context"
	"fmt"

	"github.com/zeusync/scenecore/internal/config"
	"github.com/zeusync/scenecore/internal/core/components"
	"github.com/zeusync/scenecore/internal/core/events/bus"
	"github.com/zeusync/scenecore/internal/core/loader"
	"github.com/zeusync/scenecore/internal/core/observability/log"
	"github.com/zeusync/scenecore/internal/core/scene"
	"github.com/zeusync/scenecore/internal/core/scripting"
)

// Runtime is the wired object graph of one process.
type Runtime struct {
	Config  *config.Config
	Log     *log.Logger
	Session SessionID
	Bus     bus.EventBus
	Library *components.Library
	Builder *scene.Builder
	Scripts *scripting.Engine
	Loader  *loader.Loader
}

// Boot runs the startup phase: scripts register their classes, prefabs are
// registered, then the configured scene is built. Registries are not
// modified after Boot returns.
func (r *Runtime) Boot(ctx context.Context) (*scene.Scene, error) {
	cfg := r.Config.Scene
	if err := r.Scripts.LoadDir(cfg.ScriptsDir); err != nil {
		return nil, fmt.Errorf("scripts: %w", err)
	}
	prefabs, err := r.Loader.LoadPrefabs(ctx, cfg.PrefabsDir)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %w", err)
	}
	sc, err := r.Loader.LoadScene(ctx, cfg.File, scene.WithBus(r.Bus), scene.WithLogger(r.Log))
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	r.Log.Info("runtime booted",
		log.String("session", string(r.Session)),
		log.Strings("classes", r.Builder.Classes.Names()),
		log.Strings("prefabs", prefabs),
		log.Strings("components", r.Builder.Components.Keys()),
	)
	return sc, nil
}
