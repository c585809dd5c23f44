package debug

import (
	gomath "math"

	"github.com/Faultbox/dungeoncaster/internal/dungeon"
	"github.com/Faultbox/dungeoncaster/internal/engine/camera"
	"github.com/Faultbox/dungeoncaster/internal/engine/gfx"
	"github.com/Faultbox/dungeoncaster/internal/engine/raycast"
)

// Overlay colors.
var (
	ColorMarker    = gfx.ColorPink  // tile code -1
	ColorWall      = gfx.ColorGreen // any other non-floor code
	ColorEndRoom   = gfx.ColorRed
	ColorPlayerBox = gfx.ColorBlack
	ColorPlayer    = gfx.ColorRed
	ColorHeading   = gfx.ColorYellow
	ColorViewRay   = gfx.ColorWhite
	ColorRoute     = gfx.ColorYellow.WithAlpha(0.5)
	ColorStartRoom = gfx.ColorWhite.WithAlpha(0.6)
)

// TileColor returns the overlay color for a tile code. Floor is not drawn.
func TileColor(t dungeon.Tile) (gfx.Color, bool) {
	switch t {
	case dungeon.Floor:
		return gfx.ColorTransparent, false
	case -1:
		return ColorMarker, true
	default:
		return ColorWall, true
	}
}

// TileGridState is what the overlay shows for one frame.
type TileGridState struct {
	Grid   *dungeon.Grid
	Plan   *dungeon.FloorPlan
	Camera *camera.Camera
	View   raycast.FrameInfo // edge rays; zero value draws none
	Route  []dungeon.Point   // optional path to the end room
}

// TileGridRenderer draws the tile map in the top-left corner of the view,
// one scale x scale square per tile.
type TileGridRenderer struct {
	scale float32
}

// NewTileGridRenderer creates an overlay with the given pixels per tile.
func NewTileGridRenderer(scale int) *TileGridRenderer {
	if scale < 1 {
		scale = 1
	}
	return &TileGridRenderer{scale: float32(scale)}
}

// Scale returns the pixels per tile.
func (t *TileGridRenderer) Scale() int {
	return int(t.scale)
}

// Draw renders the overlay.
func (t *TileGridRenderer) Draw(s gfx.Surface, st TileGridState) {
	if st.Grid == nil {
		return
	}
	t.drawTiles(s, st.Grid)

	if st.Plan != nil {
		t.drawRooms(s, st.Plan)
	}
	for _, p := range st.Route {
		s.DrawFilledRect(t.tileRect(float64(p.X), float64(p.Y), 1, 1), ColorRoute)
	}
	if st.Camera != nil {
		t.drawPlayer(s, st.Camera, st.View)
	}
}

// drawTiles merges horizontal runs of equal color into single rectangles.
func (t *TileGridRenderer) drawTiles(s gfx.Surface, grid *dungeon.Grid) {
	for y := 0; y < grid.Height(); y++ {
		runStart := 0
		runColor, runVisible := TileColor(grid.At(0, y))

		for x := 1; x <= grid.Width(); x++ {
			var c gfx.Color
			var visible bool
			if x < grid.Width() {
				c, visible = TileColor(grid.At(x, y))
				if visible == runVisible && c == runColor {
					continue
				}
			}
			if runVisible {
				s.DrawFilledRect(t.tileRect(float64(runStart), float64(y), x-runStart, 1), runColor)
			}
			runStart, runColor, runVisible = x, c, visible
		}
	}
}

// drawRooms marks the end room interior and outlines the start room.
func (t *TileGridRenderer) drawRooms(s gfx.Surface, plan *dungeon.FloorPlan) {
	ex, ey := dungeon.RoomOrigin(plan.EndRoom())
	s.DrawFilledRect(t.tileRect(float64(ex+1), float64(ey+1), dungeon.RoomWidth-2, dungeon.RoomHeight-2), ColorEndRoom)

	sx, sy := dungeon.RoomOrigin(plan.StartRoom())
	DrawOutline(s, t.tileRect(float64(sx), float64(sy), dungeon.RoomWidth, dungeon.RoomHeight), 1, ColorStartRoom)
}

func (t *TileGridRenderer) drawPlayer(s gfx.Surface, cam *camera.Camera, view raycast.FrameInfo) {
	sc := float64(t.scale)
	px, py := cam.X*sc, cam.Y*sc

	s.DrawFilledRect(t.tileRect(gomath.Floor(cam.X), gomath.Floor(cam.Y), 1, 1), ColorPlayerBox)

	half := sc / 2
	s.DrawFilledRect(gfx.Rect{X: float32(px - half/2), Y: float32(py - half/2), W: float32(half), H: float32(half)}, ColorPlayer)

	dir := cam.Direction()
	DrawLine(s, px, py, px+dir.X*sc, py+dir.Y*sc, ColorHeading)

	if view.Columns > 0 {
		DrawLine(s, px, py, view.First.X*sc, view.First.Y*sc, ColorViewRay)
		DrawLine(s, px, py, view.Last.X*sc, view.Last.Y*sc, ColorViewRay)
	}
}

func (t *TileGridRenderer) tileRect(x, y float64, w, h int) gfx.Rect {
	return gfx.Rect{
		X: float32(x) * t.scale,
		Y: float32(y) * t.scale,
		W: float32(w) * t.scale,
		H: float32(h) * t.scale,
	}
}
