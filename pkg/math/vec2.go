// Package math provides the small amount of math the ray caster needs:
// revolution-based trigonometry, flooring helpers and a 2D vector.
package math

// Vec2 is a 2D vector in tile space.
type Vec2 struct {
	X, Y float64
}

// FromAngle returns the unit vector pointing at ang (revolutions).
func FromAngle(ang float64) Vec2 {
	return Vec2{Cost(ang), Sint(ang)}
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}
