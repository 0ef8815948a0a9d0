package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zeusync/bowling/internal/core/observability/log"
	"github.com/zeusync/bowling/internal/core/scene"
	"github.com/zeusync/bowling/internal/core/systems"
)

const stepEpsilon = 1e-9

// Config controls frame pacing.
type Config struct {
	FrameDelta time.Duration `yaml:"frame_delta"`
	FixedDelta time.Duration `yaml:"fixed_delta"`
	// MaxFrames ends Run after that many frames. Zero runs until stopped.
	MaxFrames int64 `yaml:"max_frames"`
	// MaxStepsPerFrame caps catch-up fixed steps in a single frame.
	MaxStepsPerFrame int `yaml:"max_steps_per_frame"`
	// Realtime paces frames with a wall clock ticker instead of running flat out.
	Realtime bool `yaml:"realtime"`
}

func DefaultConfig() Config {
	return Config{
		FrameDelta:       time.Second / 60,
		FixedDelta:       20 * time.Millisecond,
		MaxFrames:        0,
		MaxStepsPerFrame: 8,
	}
}

// Loop drives systems: Update once per frame, then as many FixedUpdate passes as
// the accumulated frame time allows, then any pending scene change.
type Loop struct {
	cfg    Config
	scenes *scene.Manager
	logger log.Log

	persistent []systems.System
	current    []systems.System
	ordered    []systems.System

	accumulator float64
	frames      int64
	fixedSteps  uint64
	stopped     bool
}

func NewLoop(cfg Config, scenes *scene.Manager, logger log.Log, persistent ...systems.System) *Loop {
	l := &Loop{
		cfg:        cfg,
		scenes:     scenes,
		logger:     logger.With(log.String("component", "loop")),
		persistent: persistent,
	}
	l.reorder()
	return l
}

// AddSystem registers a system that survives scene changes.
func (l *Loop) AddSystem(s systems.System) {
	l.persistent = append(l.persistent, s)
	l.reorder()
}

// Systems returns the execution order for the next frame.
func (l *Loop) Systems() []systems.System {
	out := make([]systems.System, len(l.ordered))
	copy(out, l.ordered)
	return out
}

func (l *Loop) Frames() int64 { return l.frames }

func (l *Loop) FixedSteps() uint64 { return l.fixedSteps }

// Stop makes Run return after the current frame.
func (l *Loop) Stop() { l.stopped = true }

// Boot loads and activates the first scene synchronously.
func (l *Loop) Boot(name string) error {
	if err := l.scenes.LoadScene(name); err != nil {
		return err
	}
	return l.activate()
}

// Tick advances one frame of dt seconds.
func (l *Loop) Tick(dt float64) error {
	l.frames++

	for _, s := range l.ordered {
		if err := s.Update(dt); err != nil {
			return fmt.Errorf("%s update: %w", s.Name(), err)
		}
	}

	fixed := l.cfg.FixedDelta.Seconds()
	if fixed > 0 {
		l.accumulator += dt
		steps := 0
		for l.accumulator+stepEpsilon >= fixed {
			if l.cfg.MaxStepsPerFrame > 0 && steps >= l.cfg.MaxStepsPerFrame {
				l.logger.Warn("dropping fixed steps", log.Float64("backlog", l.accumulator))
				l.accumulator = 0
				break
			}
			for _, s := range l.ordered {
				if err := s.FixedUpdate(fixed); err != nil {
					return fmt.Errorf("%s fixed update: %w", s.Name(), err)
				}
			}
			l.accumulator -= fixed
			l.fixedSteps++
			steps++
		}
	}

	if _, pending := l.scenes.Pending(); pending {
		return l.activate()
	}
	return nil
}

// Run ticks FrameDelta frames until MaxFrames, Stop, an error or ctx cancellation.
func (l *Loop) Run(ctx context.Context) error {
	dt := l.cfg.FrameDelta.Seconds()
	if dt <= 0 {
		return errors.New("engine: frame delta must be positive")
	}

	var tick <-chan time.Time
	if l.cfg.Realtime {
		ticker := time.NewTicker(l.cfg.FrameDelta)
		defer ticker.Stop()
		tick = ticker.C
	}

	start := time.Now()
	for !l.stopped && (l.cfg.MaxFrames == 0 || l.frames < l.cfg.MaxFrames) {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if err := l.Tick(dt); err != nil {
			return err
		}
	}

	l.logger.Info("loop finished",
		log.Int64("frames", l.frames),
		log.Uint64("fixed_steps", l.fixedSteps),
		log.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func (l *Loop) activate() error {
	list, err := l.scenes.Activate()
	if list != nil || err == nil {
		l.current = list
		l.reorder()
	}
	return err
}

func (l *Loop) reorder() {
	ordered := make([]systems.System, 0, len(l.persistent)+len(l.current))
	ordered = append(ordered, l.persistent...)
	ordered = append(ordered, l.current...)
	systems.Sort(ordered)
	l.ordered = ordered
}
