// Package lane assembles the bowling scene: a ball on a rigid body, the
// physics world stepping it, and a camera trailing the ball.
package lane

import (
	"github.com/zeusync/bowling/internal/core/events/bus"
	"github.com/zeusync/bowling/internal/core/observability/log"
	"github.com/zeusync/bowling/internal/core/physics"
	"github.com/zeusync/bowling/internal/core/scene"
	"github.com/zeusync/bowling/internal/core/systems"
	"github.com/zeusync/bowling/internal/game/ball"
	"github.com/zeusync/bowling/internal/game/camera"
)

type Config struct {
	Ball   ball.Config        `yaml:"ball"`
	Camera camera.Config      `yaml:"camera"`
	Body   physics.BodyConfig `yaml:"body"`
	// BallStart and CameraStart are the spawn positions for every load.
	BallStart   physics.Vec3 `yaml:"ball_start"`
	CameraStart physics.Vec3 `yaml:"camera_start"`
	// Follow disables camera tracking when false.
	Follow bool `yaml:"follow"`
}

// Lane builds fresh scene instances and exposes the live one.
type Lane struct {
	cfg    Config
	input  ball.InputSource
	events bus.EventBus
	logger log.Log

	ball   *ball.Ball
	body   *physics.RigidBody
	camera *physics.Transform
}

func New(cfg Config, in ball.InputSource, events bus.EventBus, logger log.Log) *Lane {
	return &Lane{cfg: cfg, input: in, events: events, logger: logger}
}

// Build is a scene.Builder. Every call replaces the live entities, so a reload
// always starts from an idle ball at BallStart.
func (l *Lane) Build(ctx scene.BuildContext) ([]systems.System, error) {
	body := physics.NewRigidBody(physics.NewTransform(l.cfg.BallStart), l.cfg.Body)
	world := physics.NewWorld(body)

	logger := l.logger.With(log.String("scene", ctx.Name), log.Uint64("sequence", ctx.Sequence))
	b := ball.New(l.cfg.Ball, body, l.input, ctx.Loader,
		ball.WithEvents(l.events),
		ball.WithLogger(logger),
	)

	camTransform := physics.NewTransform(l.cfg.CameraStart)
	var target camera.Target
	if l.cfg.Follow {
		target = body.Transform()
	}
	cam := camera.New(l.cfg.Camera, camTransform, target)

	l.ball, l.body, l.camera = b, body, camTransform
	return []systems.System{world, b, cam}, nil
}

func (l *Lane) Ball() *ball.Ball { return l.ball }

func (l *Lane) Body() *physics.RigidBody { return l.body }

func (l *Lane) Camera() *physics.Transform { return l.camera }
