package systems

import "sort"

// System represents a game logic processor driven by the frame loop.
// Update runs once per rendered frame, FixedUpdate once per physics step.
type System interface {
	Name() string
	Priority() Priority

	Update(deltaTime float64) error
	FixedUpdate(fixedDeltaTime float64) error
}

// Priority defines execution order. Higher runs first.
type Priority uint16

const (
	PriorityLowest  Priority = 200
	PriorityLow     Priority = 500
	PriorityNormal  Priority = 600
	PriorityHigh    Priority = 1000
	PriorityHighest Priority = 1300
)

// Sort orders systems by descending priority, keeping registration order for ties.
func Sort(list []System) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Priority() > list[j].Priority()
	})
}
