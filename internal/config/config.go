package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/bowling/internal/core/engine"
	"github.com/zeusync/bowling/internal/core/input"
	"github.com/zeusync/bowling/internal/core/observability/log"
	"github.com/zeusync/bowling/internal/core/physics"
	"github.com/zeusync/bowling/internal/game/ball"
	"github.com/zeusync/bowling/internal/game/camera"
	"github.com/zeusync/bowling/internal/game/lane"
)

// Config is the whole simulator configuration as read from YAML.
type Config struct {
	LogLevel string        `yaml:"log_level"`
	Loop     engine.Config `yaml:"loop"`
	Scene    SceneConfig   `yaml:"scene"`
	Lane     lane.Config   `yaml:"lane"`
	Input    InputConfig   `yaml:"input"`
	Replay   ReplayConfig  `yaml:"replay"`
	// Runs stops the simulation after that many settled throws. Zero means no limit.
	Runs int `yaml:"runs"`
}

type SceneConfig struct {
	Initial string `yaml:"initial"`
}

type InputConfig struct {
	// Script points at a YAML input script. Inline Steps are used when empty.
	Script string       `yaml:"script"`
	Steps  []input.Step `yaml:"steps"`
}

type ReplayConfig struct {
	Keep   int    `yaml:"keep"`
	Output string `yaml:"output"`
}

// Default carries the values the lane was tuned with.
func Default() Config {
	loop := engine.DefaultConfig()
	loop.MaxFrames = 3000

	return Config{
		LogLevel: "info",
		Loop:     loop,
		Scene:    SceneConfig{Initial: "Scene 1"},
		Lane: lane.Config{
			Ball: ball.Config{
				Speed:           10,
				HorizontalSpeed: 0.1,
				NextScene:       "Scene 1",
			},
			Camera: camera.Config{
				Distance: 10,
				Height:   2,
			},
			Body: physics.BodyConfig{
				Drag:           0.05,
				Friction:       1.5,
				SleepThreshold: 0.05,
				SleepSteps:     10,
				LaneLength:     18.29,
			},
			BallStart:   physics.Vec3{Y: 0.11},
			CameraStart: physics.Vec3{Y: 2.11, Z: 10},
			Follow:      true,
		},
		Input: InputConfig{
			Steps: []input.Step{{Frame: 30, Launch: true}},
		},
		Replay: ReplayConfig{Keep: 5},
		Runs:   1,
	}
}

// Decode overlays YAML from r onto the defaults.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads path. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, err
	}
	cfg.Input.Script = resolve(filepath.Dir(path), cfg.Input.Script)
	return cfg, nil
}

// resolve makes a relative path from the config file relative to its directory.
func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Validate checks the host loop settings. Gameplay values are taken as given.
func (c Config) Validate() error {
	var errs []error
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Loop.FrameDelta <= 0 {
		errs = append(errs, fmt.Errorf("loop.frame_delta must be positive, got %s", c.Loop.FrameDelta))
	}
	if c.Loop.FixedDelta <= 0 {
		errs = append(errs, fmt.Errorf("loop.fixed_delta must be positive, got %s", c.Loop.FixedDelta))
	}
	if c.Loop.FrameDelta > time.Second {
		errs = append(errs, fmt.Errorf("loop.frame_delta too large: %s", c.Loop.FrameDelta))
	}
	if c.Loop.MaxFrames < 0 {
		errs = append(errs, errors.New("loop.max_frames must not be negative"))
	}
	if c.Scene.Initial == "" {
		errs = append(errs, errors.New("scene.initial is required"))
	}
	if c.Runs < 0 {
		errs = append(errs, errors.New("runs must not be negative"))
	}
	if c.Replay.Keep < 0 {
		errs = append(errs, errors.New("replay.keep must not be negative"))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level.
func (c Config) Level() log.Level {
	lvl, _ := log.ParseLevel(c.LogLevel)
	return lvl
}

// Script resolves the input script, preferring the file over inline steps.
func (c Config) Script() (*input.Script, error) {
	if c.Input.Script != "" {
		return input.LoadScriptFile(c.Input.Script)
	}
	return &input.Script{Steps: c.Input.Steps}, nil
}
