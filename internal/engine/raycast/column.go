package raycast

import (
	gomath "math"

	"github.com/Faultbox/dungeoncaster/internal/engine/gfx"
	"github.com/Faultbox/dungeoncaster/pkg/math"
)

const (
	// FadeDistance is where walls turn black.
	FadeDistance = 64.0

	// TextureSpan is the texel range a wall face maps onto.
	TextureSpan = 64

	// minDistance keeps the projection finite for rays starting on a wall face.
	minDistance = 1e-4

	// maxSliceFactor caps a slice's half height at this many screen heights.
	maxSliceFactor = 4
)

// ColumnAngle returns the view-relative angle, in revolutions, of screen
// column i. Columns are spread over a flat projection plane one unit from
// the eye, so the left edge is 1/8 revolution to the left.
func ColumnAngle(i, width int) float64 {
	half := float64(width / 2)
	if half == 0 {
		return 0
	}
	return math.Atan2t(1, (float64(i)-half)/half)
}

// Shade returns the wall tint at distance d: a gray of 255-4d that is black
// from FadeDistance on and halved on vertical faces.
func Shade(d float64, side Side) gfx.Color {
	var v uint8
	if d < FadeDistance {
		v = uint8(math.Clamp(255-4*d, 0, 255))
	}
	if side == SideVertical {
		v /= 2
	}
	return gfx.Gray(v)
}

// SliceHalfHeight returns the half height in pixels of a wall slice at
// distance d seen under column angle a, for wall height h.
func SliceHalfHeight(h int, d, a float64, screenHeight int) int {
	d = gomath.Max(d, minDistance)
	l := float64(h) / d / math.Cost(a)
	if limit := float64(maxSliceFactor * screenHeight); l > limit {
		l = limit
	}
	if l < 0 {
		l = 0
	}
	return int(l)
}

// TextureColumn returns the texel column hit on a wall face of the given
// width. Horizontal faces follow x along the wall, vertical faces follow y.
func TextureColumn(hit Hit, origin, dir math.Vec2, texWidth int) int {
	var along float64
	if hit.Side == SideHorizontal {
		along = origin.X + dir.X*hit.Distance
	} else {
		along = origin.Y + dir.Y*hit.Distance
	}
	offset := int(math.Frac(along) * TextureSpan)
	if texWidth > 0 && texWidth != TextureSpan {
		offset = offset * texWidth / TextureSpan
	}
	return offset
}
