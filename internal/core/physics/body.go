package physics

// BodyConfig tunes the integrator and the rest detection of a RigidBody.
type BodyConfig struct {
	// Drag is a linear damping coefficient per second.
	Drag float64 `yaml:"drag"`
	// Friction is a constant rolling deceleration in units/s².
	Friction float64 `yaml:"friction"`
	// SleepThreshold is the speed under which a body counts as resting.
	SleepThreshold float64 `yaml:"sleep_threshold"`
	// SleepSteps is how many consecutive resting steps put the body to sleep.
	SleepSteps int `yaml:"sleep_steps"`
	// LaneLength stops the body at this Z coordinate. Zero disables the bound.
	LaneLength float64 `yaml:"lane_length"`
}

// RigidBody is a minimal point-mass body. Kinematic bodies are positioned from
// outside and are never integrated.
type RigidBody struct {
	transform *Transform
	cfg       BodyConfig

	kinematic  bool
	velocity   Vec3
	restSteps  int
	sleeping   bool
	stepsTaken uint64
}

// NewRigidBody returns a kinematic body attached to transform.
func NewRigidBody(transform *Transform, cfg BodyConfig) *RigidBody {
	return &RigidBody{
		transform: transform,
		cfg:       cfg,
		kinematic: true,
	}
}

func (b *RigidBody) Transform() *Transform { return b.transform }

func (b *RigidBody) Position() Vec3 { return b.transform.Position() }

func (b *RigidBody) SetPosition(p Vec3) { b.transform.SetPosition(p) }

func (b *RigidBody) IsKinematic() bool { return b.kinematic }

func (b *RigidBody) SetKinematic(kinematic bool) {
	if b.kinematic && !kinematic {
		b.wake()
	}
	b.kinematic = kinematic
	if kinematic {
		b.velocity = Vec3{}
		b.sleeping = false
	}
}

func (b *RigidBody) Velocity() Vec3 { return b.velocity }

func (b *RigidBody) SetVelocity(v Vec3) {
	b.velocity = v
	b.wake()
}

// IsSleeping reports whether a dynamic body has come to rest.
func (b *RigidBody) IsSleeping() bool {
	return !b.kinematic && b.sleeping
}

// Steps returns how many integration steps the body has taken.
func (b *RigidBody) Steps() uint64 { return b.stepsTaken }

// Step integrates the body over dt seconds.
func (b *RigidBody) Step(dt float64) {
	if b.kinematic || b.sleeping || dt <= 0 {
		return
	}
	b.stepsTaken++

	v := b.velocity
	if b.cfg.Drag > 0 {
		damp := 1 - b.cfg.Drag*dt
		if damp < 0 {
			damp = 0
		}
		v = v.Scale(damp)
	}
	if b.cfg.Friction > 0 {
		speed := v.Len()
		loss := b.cfg.Friction * dt
		if speed <= loss {
			v = Vec3{}
		} else {
			v = v.Scale((speed - loss) / speed)
		}
	}

	pos := b.transform.Position().Add(v.Scale(dt))
	if b.cfg.LaneLength > 0 && pos.Z >= b.cfg.LaneLength {
		pos.Z = b.cfg.LaneLength
		v = Vec3{}
	}
	b.transform.SetPosition(pos)
	b.velocity = v

	if v.Len() <= b.cfg.SleepThreshold {
		b.restSteps++
		if b.restSteps >= max(b.cfg.SleepSteps, 1) {
			b.sleeping = true
			b.velocity = Vec3{}
		}
	} else {
		b.restSteps = 0
	}
}

func (b *RigidBody) wake() {
	b.sleeping = false
	b.restSteps = 0
}
