// Package dungeon builds the room dungeon: the tile grid the renderer walks,
// the 10x10 floor plan of connected rooms, and the generator that grows the
// plan and rasterizes it into the grid.
package dungeon

import (
	"github.com/Faultbox/dungeoncaster/pkg/math"
)

// Room cell and tile dimensions.
const (
	RoomCols   = 10 // room cells per plan row
	RoomRows   = 10 // room cells per plan column
	RoomWidth  = 18 // tiles per room, horizontally
	RoomHeight = 14 // tiles per room, vertically

	MapWidth  = RoomCols * RoomWidth  // 180
	MapHeight = RoomRows * RoomHeight // 140
)

// Tile is a grid cell code.
type Tile int

const (
	Floor Tile = 0
	Wall  Tile = 1
)

// Grid is the fixed-size tile map. Row-major: tiles[y][x].
type Grid struct {
	tiles [MapHeight][MapWidth]Tile
}

// NewGrid returns an all-floor grid.
func NewGrid() *Grid {
	return &Grid{}
}

// Width returns the number of tile columns.
func (g *Grid) Width() int { return MapWidth }

// Height returns the number of tile rows.
func (g *Grid) Height() int { return MapHeight }

// InBounds reports whether (x, y) is a tile of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < MapWidth && y >= 0 && y < MapHeight
}

// At returns the tile at (x, y). Anything outside the grid reads as Wall.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return Wall
	}
	return g.tiles[y][x]
}

// AtPoint returns the tile containing the tile-space point (x, y).
// Coordinates are floored, so (-0.5, 3) is tile (-1, 3), outside the grid.
func (g *Grid) AtPoint(x, y float64) Tile {
	return g.At(math.Floor(x), math.Floor(y))
}

// IsSolid reports whether (x, y) is a wall or lies outside the grid.
func (g *Grid) IsSolid(x, y int) bool {
	return g.At(x, y) == Wall
}

// Set writes a single tile. Writes outside the grid are dropped.
func (g *Grid) Set(x, y int, t Tile) {
	if g.InBounds(x, y) {
		g.tiles[y][x] = t
	}
}

// SetRect overwrites every tile of the rectangle with top-left (x, y).
// The rectangle is clipped to the grid.
func (g *Grid) SetRect(x, y, width, height int, t Tile) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+width, MapWidth), min(y+height, MapHeight)

	for row := y0; row < y1; row++ {
		for col := x0; col < x1; col++ {
			g.tiles[row][col] = t
		}
	}
}

// Clear resets every tile to Floor.
func (g *Grid) Clear() {
	g.tiles = [MapHeight][MapWidth]Tile{}
}

// Count returns how many tiles hold t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for y := range g.tiles {
		for x := range g.tiles[y] {
			if g.tiles[y][x] == t {
				n++
			}
		}
	}
	return n
}

// RoomOrigin returns the top-left tile of room cell index.
func RoomOrigin(index int) (x, y int) {
	return (index % RoomCols) * RoomWidth, (index / RoomCols) * RoomHeight
}

// RoomCenter returns the tile-space center of room cell index, where the
// camera is placed when that room is the start room.
func RoomCenter(index int) (x, y float64) {
	ox, oy := RoomOrigin(index)
	return float64(ox + RoomWidth/2), float64(oy + RoomHeight/2)
}

// RoomIndexAt returns the room cell index containing tile (x, y), or -1 when
// the tile is outside the grid.
func RoomIndexAt(x, y int) int {
	if x < 0 || x >= MapWidth || y < 0 || y >= MapHeight {
		return -1
	}
	return x/RoomWidth + RoomCols*(y/RoomHeight)
}
