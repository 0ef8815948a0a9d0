//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/bowling/internal/app"
	"github.com/zeusync/bowling/internal/config"
	"github.com/zeusync/bowling/internal/core/observability/log"
)

func InitializeApp(cfg config.Config) (*app.App, error) {
	wire.Build(
		app.ProvideLogger,
		wire.Bind(new(log.Log), new(*log.Logger)),
		app.ProvideEventBus,
		app.ProvideInput,
		app.ProvideScenes,
		app.ProvideLane,
		app.ProvideRecorder,
		app.ProvideLoop,
		app.New,
	)
	return nil, nil
}
