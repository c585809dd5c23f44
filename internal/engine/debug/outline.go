// Package debug provides debug visualization utilities: the tile map
// overlay drawn over the first-person view and screenshot capture.
package debug

import (
	gomath "math"

	"github.com/Faultbox/dungeoncaster/internal/engine/gfx"
)

// DrawOutline draws the four edges of r, each thickness pixels wide,
// inside the rectangle.
func DrawOutline(s gfx.Surface, r gfx.Rect, thickness float32, c gfx.Color) {
	if r.Empty() || thickness <= 0 {
		return
	}
	t := min(thickness, r.W/2, r.H/2)
	s.DrawFilledRect(gfx.Rect{X: r.X, Y: r.Y, W: r.W, H: t}, c)
	s.DrawFilledRect(gfx.Rect{X: r.X, Y: r.Y + r.H - t, W: r.W, H: t}, c)
	s.DrawFilledRect(gfx.Rect{X: r.X, Y: r.Y + t, W: t, H: r.H - 2*t}, c)
	s.DrawFilledRect(gfx.Rect{X: r.X + r.W - t, Y: r.Y + t, W: t, H: r.H - 2*t}, c)
}

// DrawLine draws a one-pixel line from (x0, y0) to (x1, y1) as a run of
// pixel-sized rectangles.
func DrawLine(s gfx.Surface, x0, y0, x1, y1 float64, c gfx.Color) {
	dx, dy := x1-x0, y1-y0
	steps := int(gomath.Ceil(gomath.Max(gomath.Abs(dx), gomath.Abs(dy))))
	if steps == 0 {
		s.DrawFilledRect(gfx.Rect{X: float32(gomath.Floor(x0)), Y: float32(gomath.Floor(y0)), W: 1, H: 1}, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		px := gomath.Floor(x0 + dx*t)
		py := gomath.Floor(y0 + dy*t)
		s.DrawFilledRect(gfx.Rect{X: float32(px), Y: float32(py), W: 1, H: 1}, c)
	}
}
