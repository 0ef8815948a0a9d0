package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/bowling/internal/config"
	"github.com/zeusync/bowling/internal/core/input"
	"github.com/zeusync/bowling/internal/core/observability/log"
	"github.com/zeusync/bowling/internal/game/ball"
)

func newTestApp(t *testing.T, cfg config.Config) *App {
	t.Helper()
	logger := log.NewNop()
	events := ProvideEventBus()
	in, err := ProvideInput(cfg)
	require.NoError(t, err)
	scenes := ProvideScenes(events, logger)
	l := ProvideLane(cfg, in, events, logger)
	rec, err := ProvideRecorder(cfg, l, scenes, events)
	require.NoError(t, err)
	return New(cfg, logger, events, scenes, l, rec, ProvideLoop(cfg, scenes, logger, in, rec))
}

func TestThrowSettlesAndReloads(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Steps = []input.Step{
		{Frame: 0, Axis: 1},
		{Frame: 1, Axis: 1},
		{Frame: 2, Launch: true},
	}
	cfg.Replay.Output = filepath.Join(t.TempDir(), "replay.yaml")

	a := newTestApp(t, cfg)
	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, 1, a.Recorder().Settled())
	assert.Less(t, a.Loop().Frames(), cfg.Loop.MaxFrames)

	// the reload rebuilt an idle ball at the spawn point
	assert.Equal(t, ball.StateIdle, a.Lane().Ball().State())
	assert.Equal(t, cfg.Lane.BallStart, a.Lane().Body().Position())

	data, err := os.ReadFile(cfg.Replay.Output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digest:")
}

func TestRunsAreReproducible(t *testing.T) {
	cfg := config.Default()
	cfg.Loop.MaxFrames = 400

	first := newTestApp(t, cfg)
	require.NoError(t, first.Run(context.Background()))
	second := newTestApp(t, cfg)
	require.NoError(t, second.Run(context.Background()))

	assert.Equal(t, first.Recorder().Digest(), second.Recorder().Digest())
	assert.Equal(t, first.Recorder().Steps(), second.Recorder().Steps())
}

func TestUnknownInitialSceneFailsBoot(t *testing.T) {
	cfg := config.Default()
	a := newTestApp(t, cfg)
	a.cfg.Scene.Initial = "Scene 7"
	assert.Error(t, a.Run(context.Background()))
}
