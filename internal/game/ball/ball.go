// Package ball implements the launchable bowling ball: lateral aiming while
// idle, a one-shot launch along the lane, and a level reload once the ball
// has come to rest.
package ball

import (
	"errors"
	"fmt"

	"github.com/zeusync/bowling/internal/core/events/bus"
	"github.com/zeusync/bowling/internal/core/input"
	"github.com/zeusync/bowling/internal/core/observability/log"
	"github.com/zeusync/bowling/internal/core/physics"
	"github.com/zeusync/bowling/internal/core/systems"
)

const (
	EventLaunched = "ball.launched"
	EventSettled  = "ball.settled"
)

// State is the ball's lifecycle state.
type State uint8

const (
	StateIdle State = iota
	StateThrown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateThrown:
		return "thrown"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Config values are applied as given.
type Config struct {
	// Speed is the launch velocity along Z.
	Speed float64 `yaml:"speed"`
	// HorizontalSpeed scales the lateral axis into a per-frame X offset.
	HorizontalSpeed float64 `yaml:"horizontal_speed"`
	// NextScene is loaded once the thrown ball comes to rest.
	NextScene string `yaml:"next_scene"`
}

type InputSource interface {
	Axis(name string) float64
	KeyDown(key string) bool
}

type Body interface {
	Position() physics.Vec3
	SetPosition(physics.Vec3)
	SetKinematic(bool)
	SetVelocity(physics.Vec3)
	IsSleeping() bool
}

type SceneLoader interface {
	LoadScene(name string) error
}

// Launch is the payload of EventLaunched.
type Launch struct {
	Position physics.Vec3
	Velocity physics.Vec3
}

type Option func(*Ball)

func WithEvents(events bus.EventBus) Option {
	return func(b *Ball) { b.events = events }
}

func WithLogger(logger log.Log) Option {
	return func(b *Ball) { b.logger = logger }
}

var _ systems.System = (*Ball)(nil)

type Ball struct {
	cfg    Config
	input  InputSource
	body   Body
	loader SceneLoader
	events bus.EventBus
	logger log.Log

	state     State
	velocity  physics.Vec3
	requested bool
}

func New(cfg Config, body Body, in InputSource, loader SceneLoader, opts ...Option) *Ball {
	b := &Ball{
		cfg:    cfg,
		input:  in,
		body:   body,
		loader: loader,
		logger: log.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Ball) Name() string { return "ball" }

func (b *Ball) Priority() systems.Priority { return systems.PriorityNormal }

func (b *Ball) State() State { return b.state }

// Velocity is the launch velocity. It is zero while idle; after launch the
// body's own velocity is owned by physics.
func (b *Ball) Velocity() physics.Vec3 { return b.velocity }

// Settled reports whether the scene reload has been requested.
func (b *Ball) Settled() bool { return b.requested }

func (b *Ball) Update(float64) error {
	if b.state != StateIdle {
		return nil
	}

	pos := b.body.Position()
	pos.X += b.input.Axis(input.AxisHorizontal) * b.cfg.HorizontalSpeed
	b.body.SetPosition(pos)

	if !b.input.KeyDown(input.KeyLaunch) {
		return nil
	}

	b.state = StateThrown
	b.velocity = physics.Vec3{Z: b.cfg.Speed}
	b.body.SetKinematic(false)
	b.body.SetVelocity(b.velocity)

	b.logger.Info("ball launched", log.Float64("x", pos.X), log.Float64("speed", b.cfg.Speed))
	return b.publish(EventLaunched, Launch{Position: pos, Velocity: b.velocity})
}

// FixedUpdate runs after physics integration and requests the next scene the
// first time the thrown ball is found at rest.
func (b *Ball) FixedUpdate(float64) error {
	if b.state != StateThrown || b.requested || !b.body.IsSleeping() {
		return nil
	}
	b.requested = true

	pos := b.body.Position()
	b.logger.Info("ball settled",
		log.Float64("x", pos.X),
		log.Float64("z", pos.Z),
		log.String("next_scene", b.cfg.NextScene),
	)
	var loadErr error
	if err := b.loader.LoadScene(b.cfg.NextScene); err != nil {
		b.logger.Error("scene load failed", log.String("scene", b.cfg.NextScene), log.Error(err))
		loadErr = fmt.Errorf("load %q: %w", b.cfg.NextScene, err)
	}
	return errors.Join(loadErr, b.publish(EventSettled, pos))
}

func (b *Ball) publish(eventType string, data any) error {
	if b.events == nil {
		return nil
	}
	return b.events.Publish(bus.NewEvent(eventType, b.Name(), data))
}
