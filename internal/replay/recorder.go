// Package replay records a run one physics step at a time and fingerprints it,
// so two runs with the same config and input script can be compared.
package replay

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/bowling/internal/core/events/bus"
	"github.com/zeusync/bowling/internal/core/physics"
	"github.com/zeusync/bowling/internal/core/systems"
	"github.com/zeusync/bowling/internal/game/ball"
)

// Subject exposes the live scene entities.
type Subject interface {
	Ball() *ball.Ball
	Body() *physics.RigidBody
	Camera() *physics.Transform
}

// SceneSource reports the active scene and its load sequence.
type SceneSource interface {
	Current() (string, uint64)
}

type Snapshot struct {
	Step     uint64       `yaml:"step"`
	Sequence uint64       `yaml:"sequence"`
	State    string       `yaml:"state"`
	Ball     physics.Vec3 `yaml:"ball"`
	Camera   physics.Vec3 `yaml:"camera"`
}

type Summary struct {
	RunID   string     `yaml:"run_id"`
	Digest  string     `yaml:"digest"`
	Steps   uint64     `yaml:"steps"`
	Settled int        `yaml:"settled"`
	Final   *Snapshot  `yaml:"final,omitempty"`
	Tail    []Snapshot `yaml:"tail,omitempty"`
}

var _ systems.System = (*Recorder)(nil)

// Recorder runs last in every fixed step.
type Recorder struct {
	subject Subject
	scenes  SceneSource
	keep    int

	runID   uuid.UUID
	hash    *xxhash.Digest
	buf     [8]byte
	steps   uint64
	settled int
	tail    []Snapshot
	sub     bus.Subscription
}

// NewRecorder keeps the last keep snapshots in memory; the digest covers all of them.
func NewRecorder(subject Subject, scenes SceneSource, keep int) *Recorder {
	return &Recorder{
		subject: subject,
		scenes:  scenes,
		keep:    keep,
		runID:   uuid.New(),
		hash:    xxhash.New(),
	}
}

// Attach counts settle events from events.
func (r *Recorder) Attach(events bus.EventBus) error {
	sub, err := events.Subscribe(ball.EventSettled, func(bus.Event) error {
		r.settled++
		return nil
	})
	if err != nil {
		return err
	}
	r.sub = sub
	return nil
}

// Detach stops counting settle events.
func (r *Recorder) Detach() error {
	if r.sub == nil {
		return nil
	}
	return r.sub.Cancel()
}

func (r *Recorder) Name() string { return "recorder" }

func (r *Recorder) Priority() systems.Priority { return systems.PriorityLowest }

func (r *Recorder) Update(float64) error { return nil }

func (r *Recorder) FixedUpdate(float64) error {
	b := r.subject.Ball()
	if b == nil {
		return nil
	}
	_, seq := r.scenes.Current()
	s := Snapshot{
		Step:     r.steps,
		Sequence: seq,
		State:    b.State().String(),
		Ball:     r.subject.Body().Position(),
		Camera:   r.subject.Camera().Position(),
	}
	r.steps++
	r.write(s)

	if r.keep > 0 {
		if len(r.tail) == r.keep {
			copy(r.tail, r.tail[1:])
			r.tail = r.tail[:r.keep-1]
		}
		r.tail = append(r.tail, s)
	}
	return nil
}

func (r *Recorder) RunID() string { return r.runID.String() }

func (r *Recorder) Steps() uint64 { return r.steps }

func (r *Recorder) Settled() int { return r.settled }

func (r *Recorder) Digest() uint64 { return r.hash.Sum64() }

func (r *Recorder) Tail() []Snapshot {
	out := make([]Snapshot, len(r.tail))
	copy(out, r.tail)
	return out
}

func (r *Recorder) Summary() Summary {
	s := Summary{
		RunID:   r.RunID(),
		Digest:  fmt.Sprintf("%016x", r.Digest()),
		Steps:   r.steps,
		Settled: r.settled,
		Tail:    r.Tail(),
	}
	if n := len(r.tail); n > 0 {
		last := r.tail[n-1]
		s.Final = &last
	}
	return s
}

// WriteYAML dumps the summary.
func (r *Recorder) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.Summary()); err != nil {
		return fmt.Errorf("encode replay summary: %w", err)
	}
	return enc.Close()
}

func (r *Recorder) write(s Snapshot) {
	r.putUint(s.Sequence)
	r.putUint(uint64(len(s.State)))
	_, _ = r.hash.WriteString(s.State)
	for _, v := range []physics.Vec3{s.Ball, s.Camera} {
		r.putUint(math.Float64bits(v.X))
		r.putUint(math.Float64bits(v.Y))
		r.putUint(math.Float64bits(v.Z))
	}
}

func (r *Recorder) putUint(v uint64) {
	binary.LittleEndian.PutUint64(r.buf[:], v)
	_, _ = r.hash.Write(r.buf[:])
}
