package camera

import (
	"github.com/zeusync/bowling/internal/core/physics"
	"github.com/zeusync/bowling/internal/core/systems"
)

type Config struct {
	// Distance is added to the target's Z.
	Distance float64 `yaml:"distance"`
	// Height is added to the target's Y.
	Height float64 `yaml:"height"`
}

// Target is anything with a position the camera can track.
type Target interface {
	Position() physics.Vec3
}

// Positioner receives the camera's computed position.
type Positioner interface {
	SetPosition(physics.Vec3)
}

var _ systems.System = (*Follow)(nil)

// Follow keeps a fixed offset from its target, centred on X = 0. Without a
// target it leaves its position alone.
type Follow struct {
	cfg    Config
	self   Positioner
	target Target
}

func New(cfg Config, self Positioner, target Target) *Follow {
	return &Follow{cfg: cfg, self: self, target: target}
}

func (f *Follow) Name() string { return "camera" }

// Priority places the camera after gameplay so it sees this step's target position.
func (f *Follow) Priority() systems.Priority { return systems.PriorityLow }

func (f *Follow) SetTarget(t Target) { f.target = t }

func (f *Follow) ClearTarget() { f.target = nil }

func (f *Follow) HasTarget() bool { return f.target != nil }

func (f *Follow) Update(float64) error {
	f.follow()
	return nil
}

func (f *Follow) FixedUpdate(float64) error {
	f.follow()
	return nil
}

// Destination returns where the camera goes for a target at p.
func (f *Follow) Destination(p physics.Vec3) physics.Vec3 {
	return physics.Vec3{
		X: 0,
		Y: p.Y + f.cfg.Height,
		Z: p.Z + f.cfg.Distance,
	}
}

func (f *Follow) follow() {
	if f.target == nil {
		return
	}
	f.self.SetPosition(f.Destination(f.target.Position()))
}
