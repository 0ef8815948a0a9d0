package replay

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/bowling/internal/core/events/bus"
	"github.com/zeusync/bowling/internal/core/input"
	"github.com/zeusync/bowling/internal/core/observability/log"
	"github.com/zeusync/bowling/internal/core/physics"
	"github.com/zeusync/bowling/internal/core/scene"
	"github.com/zeusync/bowling/internal/game/ball"
)

type stubSubject struct {
	ball   *ball.Ball
	body   *physics.RigidBody
	camera *physics.Transform
}

func (s *stubSubject) Ball() *ball.Ball           { return s.ball }
func (s *stubSubject) Body() *physics.RigidBody   { return s.body }
func (s *stubSubject) Camera() *physics.Transform { return s.camera }

type stubScenes struct{ seq uint64 }

func (s stubScenes) Current() (string, uint64) { return "Scene 1", s.seq }

func newSubject(x float64) *stubSubject {
	body := physics.NewRigidBody(physics.NewTransform(physics.Vec3{X: x}), physics.BodyConfig{})
	b := ball.New(ball.Config{Speed: 1}, body, input.NewScripted(nil), scene.NewManager(nil, log.NewNop()))
	return &stubSubject{ball: b, body: body, camera: physics.NewTransform(physics.Vec3{Y: 2})}
}

func TestRecorderWithoutSceneIsNoop(t *testing.T) {
	r := NewRecorder(&stubSubject{}, stubScenes{}, 3)
	require.NoError(t, r.FixedUpdate(0.02))
	assert.Zero(t, r.Steps())
}

func TestDigestIsDeterministic(t *testing.T) {
	a := NewRecorder(newSubject(0), stubScenes{seq: 1}, 0)
	b := NewRecorder(newSubject(0), stubScenes{seq: 1}, 0)
	c := NewRecorder(newSubject(0.5), stubScenes{seq: 1}, 0)
	for i := 0; i < 10; i++ {
		require.NoError(t, a.FixedUpdate(0.02))
		require.NoError(t, b.FixedUpdate(0.02))
		require.NoError(t, c.FixedUpdate(0.02))
	}
	assert.Equal(t, a.Digest(), b.Digest())
	assert.NotEqual(t, a.Digest(), c.Digest())
	assert.NotEqual(t, a.RunID(), b.RunID())
}

func TestTailKeepsLastSnapshots(t *testing.T) {
	subject := newSubject(0)
	r := NewRecorder(subject, stubScenes{seq: 1}, 2)
	for i := 0; i < 5; i++ {
		subject.body.SetPosition(physics.Vec3{Z: float64(i)})
		require.NoError(t, r.FixedUpdate(0.02))
	}
	tail := r.Tail()
	require.Len(t, tail, 2)
	assert.Equal(t, uint64(3), tail[0].Step)
	assert.Equal(t, 4.0, tail[1].Ball.Z)
	assert.Equal(t, "idle", tail[1].State)
}

func TestSummaryCountsSettlesAndEncodes(t *testing.T) {
	events := bus.New()
	r := NewRecorder(newSubject(0), stubScenes{seq: 1}, 1)
	require.NoError(t, r.Attach(events))
	require.NoError(t, r.FixedUpdate(0.02))

	require.NoError(t, events.Publish(bus.NewEvent(ball.EventSettled, "ball", nil)))
	assert.Equal(t, 1, r.Settled())
	require.NoError(t, r.Detach())
	require.NoError(t, events.Publish(bus.NewEvent(ball.EventSettled, "ball", nil)))
	assert.Equal(t, 1, r.Settled())

	var buf bytes.Buffer
	require.NoError(t, r.WriteYAML(&buf))

	var got Summary
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, r.RunID(), got.RunID)
	assert.Equal(t, uint64(1), got.Steps)
	assert.Equal(t, 1, got.Settled)
	require.NotNil(t, got.Final)
	assert.Equal(t, physics.Vec3{Y: 2}, got.Final.Camera)
	assert.Len(t, got.Digest, 16)
}
