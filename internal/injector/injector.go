//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/scenecore/internal/config"
)

func InitializeRuntime(cfg *config.Config) (*Runtime, func(), error) {
	wire.Build(ProviderSet, wire.Struct(new(Runtime), "*"))
	return nil, nil, nil
}
