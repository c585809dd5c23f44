// Package raycast renders the first-person view by marching one ray per
// screen column through the tile grid (DDA) and drawing a textured wall
// slice for the first wall it reaches.
package raycast

import (
	gomath "math"

	"github.com/Faultbox/dungeoncaster/pkg/math"
)

// Map is the tile grid as seen by the ray march.
type Map interface {
	// IsSolid reports whether tile (x, y) stops a ray.
	IsSolid(x, y int) bool
	InBounds(x, y int) bool
}

// Side tells which kind of grid line a ray crossed last.
type Side uint8

const (
	// SideVertical is a vertical grid line, reached by an x step.
	SideVertical Side = iota
	// SideHorizontal is a horizontal grid line, reached by a y step.
	SideHorizontal
)

func (s Side) String() string {
	if s == SideVertical {
		return "vertical"
	}
	return "horizontal"
}

// Hit is the result of one ray march.
type Hit struct {
	// Tile that stopped the ray.
	TileX, TileY int

	// March position when it stopped; one coordinate lies on a grid line
	// offset by the starting fraction of the other.
	X, Y float64

	// Distance along the ray, in tiles.
	Distance float64

	Side Side

	// Outside is set when the ray left the grid without reaching a wall.
	Outside bool
}

// Point returns where the ray met the grid line, origin + dir*Distance.
func (h Hit) Point(origin, dir math.Vec2) math.Vec2 {
	return origin.Add(dir.Scale(h.Distance))
}

// Cast marches from origin along dir until a solid tile or the grid edge.
// dir does not need to be normalized; distances are in units of |dir|.
//
// Each step advances whichever axis has the nearer grid line. Exact ties
// take the y step.
func Cast(m Map, origin, dir math.Vec2) Hit {
	x, y := origin.X, origin.Y

	ix, iy := -1, -1
	if dir.X > 0 {
		ix = 1
	}
	if dir.Y > 0 {
		iy = 1
	}

	dx, ox := axisSetup(x, dir.X)
	dy, oy := axisSetup(y, dir.Y)

	var hit Hit
	for {
		if ox < oy {
			x += float64(ix)
			hit.Distance = ox
			ox += dx
			hit.Side = SideVertical
		} else {
			y += float64(iy)
			hit.Distance = oy
			oy += dy
			hit.Side = SideHorizontal
		}

		tx, ty := math.Floor(x), math.Floor(y)
		if !m.InBounds(tx, ty) {
			hit.Outside = true
		}
		if hit.Outside || m.IsSolid(tx, ty) {
			hit.TileX, hit.TileY = tx, ty
			hit.X, hit.Y = x, y
			return hit
		}
	}
}

// axisSetup returns the ray length per grid cell along one axis and the
// length to the first grid line. A zero component never reaches a line.
func axisSetup(p, v float64) (step, first float64) {
	if v == 0 {
		return gomath.Inf(1), gomath.Inf(1)
	}
	step = gomath.Abs(1 / v)
	if v > 0 {
		first = (float64(math.Floor(p)) - p + 1) / v
	} else {
		first = gomath.Abs((p - float64(math.Floor(p))) / v)
	}
	return step, first
}
