package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zeusync/bowling/internal/core/events/bus"
	"github.com/zeusync/bowling/internal/core/observability/log"
	"github.com/zeusync/bowling/internal/core/systems"
)

const (
	EventLoadRequested = "scene.load_requested"
	EventLoaded        = "scene.loaded"
)

var (
	ErrUnknownScene = errors.New("scene: unknown scene")
	ErrNoPending    = errors.New("scene: no pending load")
)

// Loader requests a scene change. The change takes effect at the end of the
// current frame.
type Loader interface {
	LoadScene(name string) error
}

// BuildContext is handed to a Builder when its scene is activated.
type BuildContext struct {
	Name     string
	Sequence uint64
	Loader   Loader
}

// Builder creates the systems that make up a scene.
type Builder func(ctx BuildContext) ([]systems.System, error)

// Loaded is the payload of EventLoaded.
type Loaded struct {
	Name     string
	Sequence uint64
}

var _ Loader = (*Manager)(nil)

// Manager keeps the scene registry and the pending load.
type Manager struct {
	builders map[string]Builder
	events   bus.EventBus
	logger   log.Log

	pending  string
	hasLoad  bool
	current  string
	sequence uint64
}

func NewManager(events bus.EventBus, logger log.Log) *Manager {
	return &Manager{
		builders: make(map[string]Builder),
		events:   events,
		logger:   logger,
	}
}

// Register adds or replaces a scene builder.
func (m *Manager) Register(name string, b Builder) {
	m.builders[name] = b
}

// Scenes lists registered scene names.
func (m *Manager) Scenes() []string {
	out := make([]string, 0, len(m.builders))
	for name := range m.builders {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (m *Manager) LoadScene(name string) error {
	if _, ok := m.builders[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	m.pending = name
	m.hasLoad = true
	m.logger.Debug("scene load requested", log.String("scene", name))
	if m.events == nil {
		return nil
	}
	// the load stays committed when a subscriber fails
	if err := m.events.Publish(bus.NewEvent(EventLoadRequested, "scene", name)); err != nil {
		m.logger.Warn("scene load_requested handler failed", log.String("scene", name), log.Error(err))
	}
	return nil
}

// Pending reports whether a load waits for activation.
func (m *Manager) Pending() (string, bool) {
	return m.pending, m.hasLoad
}

// Current returns the active scene name and its load sequence (1 for the first load).
func (m *Manager) Current() (string, uint64) {
	return m.current, m.sequence
}

// Activate builds the pending scene and returns its systems.
func (m *Manager) Activate() ([]systems.System, error) {
	if !m.hasLoad {
		return nil, ErrNoPending
	}
	name := m.pending
	m.pending, m.hasLoad = "", false

	seq := m.sequence + 1
	list, err := m.builders[name](BuildContext{Name: name, Sequence: seq, Loader: m})
	if err != nil {
		return nil, fmt.Errorf("build scene %q: %w", name, err)
	}
	m.current = name
	m.sequence = seq

	m.logger.Info("scene loaded", log.String("scene", name), log.Uint64("sequence", seq))
	if m.events != nil {
		if err = m.events.Publish(bus.NewEvent(EventLoaded, "scene", Loaded{Name: name, Sequence: seq})); err != nil {
			return list, err
		}
	}
	return list, nil
}
