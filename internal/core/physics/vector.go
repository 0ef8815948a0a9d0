package physics

import "math"

// Vec3 is a plain 3D vector. X is lateral, Y vertical, Z along the lane.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) LenSq() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

func (v Vec3) Len() float64 { return math.Sqrt(v.LenSq()) }

// Transform holds an entity's position. It has no rotation; nothing here needs one.
type Transform struct {
	pos Vec3
}

func NewTransform(pos Vec3) *Transform {
	return &Transform{pos: pos}
}

func (t *Transform) Position() Vec3 { return t.pos }

func (t *Transform) SetPosition(p Vec3) { t.pos = p }
