// Package camera provides the first-person camera for the ray-cast view.
package camera

import (
	"github.com/Faultbox/dungeoncaster/pkg/math"
)

// DefaultAngle is the heading a new camera starts with: straight up the map.
const DefaultAngle = 0.25

// Camera is a position in tile space and a heading in revolutions.
type Camera struct {
	X, Y  float64
	Angle float64 // [0, 1) after Normalize
}

// New creates a camera at (x, y) facing DefaultAngle.
func New(x, y float64) *Camera {
	return &Camera{X: x, Y: y, Angle: DefaultAngle}
}

// Position returns the camera position.
func (c *Camera) Position() math.Vec2 {
	return math.Vec2{X: c.X, Y: c.Y}
}

// Direction returns the unit view vector.
func (c *Camera) Direction() math.Vec2 {
	return math.FromAngle(c.Angle)
}

// PlaceAt moves the camera without touching its heading.
func (c *Camera) PlaceAt(x, y float64) {
	c.X = x
	c.Y = y
}

// Rotate adds delta revolutions to the heading. Positive turns left.
func (c *Camera) Rotate(delta float64) {
	c.Angle += delta
}

// MouseLook turns by the pointer's horizontal offset from the screen center.
// A pointer left of center turns left.
func (c *Camera) MouseLook(mouseX float64, screenWidth int, divisor float64) {
	if screenWidth <= 0 || divisor == 0 {
		return
	}
	half := float64(screenWidth / 2)
	c.Angle += (half - mouseX) / float64(screenWidth) / divisor
}

// StepTowards returns the displacement of dist tiles along the heading
// offset by rel revolutions: 0 forward, 0.5 back, 0.25 left, -0.25 right.
func (c *Camera) StepTowards(rel, dist float64) math.Vec2 {
	return math.FromAngle(c.Angle + rel).Scale(dist)
}

// Move translates the camera. There is no collision.
func (c *Camera) Move(d math.Vec2) {
	c.X += d.X
	c.Y += d.Y
}

// Normalize wraps the heading onto [0, 1).
func (c *Camera) Normalize() {
	c.Angle = math.WrapRevolution(c.Angle)
}
