package injector

import (
	"github.com/google/uuid"
	"github.com/google/wire"

	"github.com/zeusync/scenecore/internal/config"
	"github.com/zeusync/scenecore/internal/core/components"
	"github.com/zeusync/scenecore/internal/core/events/bus"
	"github.com/zeusync/scenecore/internal/core/loader"
	"github.com/zeusync/scenecore/internal/core/observability/log"
	"github.com/zeusync/scenecore/internal/core/scene"
	"github.com/zeusync/scenecore/internal/core/scripting"
)

// SessionID identifies one process run in logs.
type SessionID string

var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideSessionID,
	bus.New,
	ProvideLibrary,
	ProvideComponentRegistry,
	scene.NewClassRegistry,
	scene.NewPrefabTable,
	scene.NewBuilder,
	ProvideScripts,
	ProvideLoader,
)

func ProvideLogger(cfg *config.Config) (*log.Logger, error) {
	return log.New(log.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
}

func ProvideSessionID() SessionID {
	return SessionID(uuid.NewString())
}

func ProvideLibrary(cfg *config.Config) *components.Library {
	return components.NewLibrary(cfg.Assets.Shards)
}

// ProvideComponentRegistry returns a registry holding every built-in kind.
func ProvideComponentRegistry(lib *components.Library) (*scene.ComponentRegistry, error) {
	reg := scene.NewComponentRegistry()
	if err := components.Register(reg, lib); err != nil {
		return nil, err
	}
	return reg, nil
}

func ProvideScripts(classes *scene.ClassRegistry, logger log.Log) (*scripting.Engine, func()) {
	e := scripting.NewEngine(classes, logger)
	return e, e.Close
}

func ProvideLoader(b *scene.Builder, logger log.Log, cfg *config.Config) *loader.Loader {
	return loader.New(b, logger, cfg.Scene.LoadWorkers)
}
