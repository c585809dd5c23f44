package world

import (
	gomath "math"

	"github.com/Faultbox/dungeoncaster/internal/dungeon"
)

// Router caches the walkable route from the player's tile to the end room.
// The route is recomputed only when the player changes tile or the dungeon
// is regenerated.
type Router struct {
	world *World

	from       dungeon.Point
	generation int
	path       []dungeon.Point
}

// NewRouter creates a router over w.
func NewRouter(w *World) *Router {
	return &Router{world: w}
}

// RouteFrom returns the tiles from (x, y) to the end room center, or nil
// when the position is not on floor or the end room is unreachable.
func (r *Router) RouteFrom(x, y float64) []dungeon.Point {
	from := dungeon.Point{X: int(gomath.Floor(x)), Y: int(gomath.Floor(y))}
	if r.generation == r.world.Generation() && r.from == from {
		return r.path
	}

	ex, ey := r.world.EndPosition()
	goal := dungeon.Point{X: int(ex), Y: int(ey)}

	r.from = from
	r.generation = r.world.Generation()
	r.path = dungeon.NewPathFinder(r.world.Grid()).FindPath(from, goal)
	return r.path
}
