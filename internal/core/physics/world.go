package physics

import "github.com/zeusync/bowling/internal/core/systems"

var _ systems.System = (*World)(nil)

// World integrates its bodies once per fixed step. It runs at the highest
// gameplay priority so that rest checks see post-integration state.
type World struct {
	bodies []*RigidBody
}

func NewWorld(bodies ...*RigidBody) *World {
	return &World{bodies: bodies}
}

func (w *World) Add(b *RigidBody) { w.bodies = append(w.bodies, b) }

func (w *World) Bodies() []*RigidBody { return w.bodies }

func (w *World) Name() string { return "physics" }

func (w *World) Priority() systems.Priority { return systems.PriorityHigh }

func (w *World) Update(float64) error { return nil }

func (w *World) FixedUpdate(dt float64) error {
	for _, b := range w.bodies {
		b.Step(dt)
	}
	return nil
}
