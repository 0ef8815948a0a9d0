package input

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/bowling/internal/core/systems"
)

const (
	AxisHorizontal = "Horizontal"
	KeyLaunch      = "Space"
)

// Step describes the input state for one frame. Frames not listed have a zero
// axis and no key press.
type Step struct {
	Frame  int64   `yaml:"frame"`
	Axis   float64 `yaml:"axis"`
	Launch bool    `yaml:"launch"`
}

// Script is a frame-indexed input recording.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// LoadScript reads a YAML script.
func LoadScript(r io.Reader) (*Script, error) {
	var s Script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("decode input script: %w", err)
	}
	return &s, nil
}

// LoadScriptFile reads a YAML script from path.
func LoadScriptFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadScript(f)
}

var _ systems.System = (*Scripted)(nil)

// Scripted replays a Script, one frame per Update. It must run before any
// system that polls it in the same frame.
type Scripted struct {
	frames map[int64]Step
	frame  int64
}

func NewScripted(script *Script) *Scripted {
	s := &Scripted{frames: make(map[int64]Step), frame: -1}
	if script != nil {
		for _, st := range script.Steps {
			s.frames[st.Frame] = st
		}
	}
	return s
}

func (s *Scripted) Name() string { return "input" }

func (s *Scripted) Priority() systems.Priority { return systems.PriorityHighest }

func (s *Scripted) Update(float64) error {
	s.frame++
	return nil
}

func (s *Scripted) FixedUpdate(float64) error { return nil }

// Frame returns the current frame index, -1 before the first Update.
func (s *Scripted) Frame() int64 { return s.frame }

// Axis returns the raw axis value for the current frame. Values are not clamped.
func (s *Scripted) Axis(name string) float64 {
	if name != AxisHorizontal {
		return 0
	}
	return s.frames[s.frame].Axis
}

// KeyDown reports the launch key's press edge for the current frame.
func (s *Scripted) KeyDown(key string) bool {
	if key != KeyLaunch {
		return false
	}
	return s.frames[s.frame].Launch
}
