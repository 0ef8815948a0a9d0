// Package app wires the lane scene, the frame loop and the run recorder into
// a runnable simulation.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/zeusync/bowling/internal/config"
	"github.com/zeusync/bowling/internal/core/engine"
	"github.com/zeusync/bowling/internal/core/events/bus"
	"github.com/zeusync/bowling/internal/core/observability/log"
	"github.com/zeusync/bowling/internal/core/scene"
	"github.com/zeusync/bowling/internal/game/ball"
	"github.com/zeusync/bowling/internal/game/lane"
	"github.com/zeusync/bowling/internal/replay"
)

type App struct {
	cfg      config.Config
	logger   log.Log
	events   bus.EventBus
	scenes   *scene.Manager
	lane     *lane.Lane
	recorder *replay.Recorder
	loop     *engine.Loop

	settled int
}

func New(
	cfg config.Config,
	logger log.Log,
	events bus.EventBus,
	scenes *scene.Manager,
	l *lane.Lane,
	recorder *replay.Recorder,
	loop *engine.Loop,
) *App {
	a := &App{
		cfg:      cfg,
		logger:   logger,
		events:   events,
		scenes:   scenes,
		lane:     l,
		recorder: recorder,
		loop:     loop,
	}
	scenes.Register(cfg.Scene.Initial, l.Build)
	if next := cfg.Lane.Ball.NextScene; next != "" && next != cfg.Scene.Initial {
		scenes.Register(next, l.Build)
	}
	return a
}

func (a *App) Loop() *engine.Loop { return a.loop }

func (a *App) Lane() *lane.Lane { return a.lane }

func (a *App) Recorder() *replay.Recorder { return a.recorder }

// Run boots the initial scene and ticks until the configured number of throws
// have settled, the frame budget is spent, or ctx is done.
func (a *App) Run(ctx context.Context) error {
	sub, err := a.events.Subscribe(ball.EventSettled, func(bus.Event) error {
		a.settled++
		if a.cfg.Runs > 0 && a.settled >= a.cfg.Runs {
			a.loop.Stop()
		}
		return nil
	})
	if err != nil {
		return err
	}
	defer func() { _ = sub.Cancel() }()

	if err = a.loop.Boot(a.cfg.Scene.Initial); err != nil {
		return fmt.Errorf("boot scene: %w", err)
	}

	runErr := a.loop.Run(ctx)

	a.logger.Info("run summary",
		log.String("run_id", a.recorder.RunID()),
		log.String("digest", fmt.Sprintf("%016x", a.recorder.Digest())),
		log.Uint64("steps", a.recorder.Steps()),
		log.Int("settled", a.settled),
	)

	if out := a.cfg.Replay.Output; out != "" {
		if err = a.writeReplay(out); err != nil {
			a.logger.Error("write replay failed", log.String("path", out), log.Error(err))
			if runErr == nil {
				runErr = err
			}
		}
	}
	return runErr
}

func (a *App) writeReplay(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = a.recorder.WriteYAML(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
