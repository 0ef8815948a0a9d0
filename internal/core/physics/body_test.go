package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testBodyConfig() BodyConfig {
	return BodyConfig{
		Drag:           0.1,
		Friction:       2,
		SleepThreshold: 0.05,
		SleepSteps:     3,
	}
}

func TestKinematicBodyIsNotIntegrated(t *testing.T) {
	b := NewRigidBody(NewTransform(Vec3{1, 2, 3}), testBodyConfig())
	b.velocity = Vec3{Z: 5}

	for i := 0; i < 100; i++ {
		b.Step(0.02)
	}

	assert.Equal(t, Vec3{1, 2, 3}, b.Position())
	assert.False(t, b.IsSleeping())
	assert.Zero(t, b.Steps())
}

func TestDynamicBodyRollsAndSleeps(t *testing.T) {
	b := NewRigidBody(NewTransform(Vec3{}), testBodyConfig())
	b.SetKinematic(false)
	b.SetVelocity(Vec3{Z: 4})

	b.Step(0.02)
	assert.Greater(t, b.Position().Z, 0.0)
	assert.False(t, b.IsSleeping())

	for i := 0; i < 1000 && !b.IsSleeping(); i++ {
		b.Step(0.02)
	}
	assert.True(t, b.IsSleeping())
	assert.Equal(t, Vec3{}, b.Velocity())

	rest := b.Position()
	b.Step(0.02)
	assert.Equal(t, rest, b.Position())
}

func TestSetVelocityWakesBody(t *testing.T) {
	b := NewRigidBody(NewTransform(Vec3{}), testBodyConfig())
	b.SetKinematic(false)
	for i := 0; i < 5; i++ {
		b.Step(0.02)
	}
	assert.True(t, b.IsSleeping())

	b.SetVelocity(Vec3{Z: 1})
	assert.False(t, b.IsSleeping())
}

func TestLaneLengthStopsBody(t *testing.T) {
	cfg := testBodyConfig()
	cfg.Friction = 0
	cfg.Drag = 0
	cfg.LaneLength = 1
	b := NewRigidBody(NewTransform(Vec3{}), cfg)
	b.SetKinematic(false)
	b.SetVelocity(Vec3{Z: 10})

	for i := 0; i < 20; i++ {
		b.Step(0.02)
	}
	assert.Equal(t, 1.0, b.Position().Z)
	assert.True(t, b.IsSleeping())
}

func TestWorldStepsAllBodies(t *testing.T) {
	cfg := BodyConfig{SleepThreshold: 0, SleepSteps: 1}
	a := NewRigidBody(NewTransform(Vec3{}), cfg)
	c := NewRigidBody(NewTransform(Vec3{}), cfg)
	a.SetKinematic(false)
	c.SetKinematic(false)
	a.SetVelocity(Vec3{X: 1})
	c.SetVelocity(Vec3{Z: 2})

	w := NewWorld(a)
	w.Add(c)
	assert.NoError(t, w.FixedUpdate(0.5))

	assert.InDelta(t, 0.5, a.Position().X, 1e-12)
	assert.InDelta(t, 1.0, c.Position().Z, 1e-12)
	assert.Len(t, w.Bodies(), 2)
}

func TestVec3(t *testing.T) {
	v := Vec3{3, 4, 0}
	assert.Equal(t, 5.0, v.Len())
	assert.Equal(t, Vec3{4, 6, 2}, v.Add(Vec3{1, 2, 2}))
	assert.Equal(t, Vec3{2, 2, -2}, v.Sub(Vec3{1, 2, 2}))
	assert.Equal(t, Vec3{6, 8, 0}, v.Scale(2))
}
