package app

import (
	"github.com/zeusync/bowling/internal/config"
	"github.com/zeusync/bowling/internal/core/engine"
	"github.com/zeusync/bowling/internal/core/events/bus"
	"github.com/zeusync/bowling/internal/core/input"
	"github.com/zeusync/bowling/internal/core/observability/log"
	"github.com/zeusync/bowling/internal/core/scene"
	"github.com/zeusync/bowling/internal/game/lane"
	"github.com/zeusync/bowling/internal/replay"
)

func ProvideLogger(cfg config.Config) *log.Logger {
	return log.New(cfg.Level())
}

func ProvideEventBus() bus.EventBus {
	return bus.New()
}

func ProvideInput(cfg config.Config) (*input.Scripted, error) {
	script, err := cfg.Script()
	if err != nil {
		return nil, err
	}
	return input.NewScripted(script), nil
}

func ProvideScenes(events bus.EventBus, logger log.Log) *scene.Manager {
	return scene.NewManager(events, logger.With(log.String("component", "scene")))
}

func ProvideLane(cfg config.Config, in *input.Scripted, events bus.EventBus, logger log.Log) *lane.Lane {
	return lane.New(cfg.Lane, in, events, logger.With(log.String("component", "ball")))
}

func ProvideRecorder(cfg config.Config, l *lane.Lane, scenes *scene.Manager, events bus.EventBus) (*replay.Recorder, error) {
	rec := replay.NewRecorder(l, scenes, cfg.Replay.Keep)
	if err := rec.Attach(events); err != nil {
		return nil, err
	}
	return rec, nil
}

func ProvideLoop(cfg config.Config, scenes *scene.Manager, logger log.Log, in *input.Scripted, rec *replay.Recorder) *engine.Loop {
	return engine.NewLoop(cfg.Loop, scenes, logger, in, rec)
}
