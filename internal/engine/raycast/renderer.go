package raycast

import (
	"github.com/Faultbox/dungeoncaster/internal/engine/camera"
	"github.com/Faultbox/dungeoncaster/internal/engine/gfx"
	"github.com/Faultbox/dungeoncaster/pkg/math"
)

// DefaultWallDivisor makes walls as tall as they are wide: h = width/4.
const DefaultWallDivisor = 4

// Column is everything drawn for one screen column.
type Column struct {
	Index int
	Angle float64 // relative to the camera heading
	Dir   math.Vec2
	Hit   Hit
	Tint  gfx.Color
	Src   gfx.Rect
	Dst   gfx.Rect
}

// FrameInfo summarizes a rendered frame for overlays.
type FrameInfo struct {
	Columns int
	First   Hit // leftmost column
	Last    Hit // rightmost column
}

// Renderer draws the ray-cast view.
type Renderer struct {
	Wall        gfx.Texture
	WallDivisor int

	Ceiling gfx.Color
	Floor   gfx.Color
}

// NewRenderer creates a renderer texturing walls with wall.
func NewRenderer(wall gfx.Texture) *Renderer {
	return &Renderer{
		Wall:        wall,
		WallDivisor: DefaultWallDivisor,
		Ceiling:     gfx.ColorCeiling,
		Floor:       gfx.ColorFloor,
	}
}

// Column computes column i of a width x height view.
func (r *Renderer) Column(cam *camera.Camera, m Map, i, width, height int) Column {
	origin := cam.Position()
	a := ColumnAngle(i, width)
	dir := math.FromAngle(cam.Angle + a)

	hit := Cast(m, origin, dir)

	divisor := r.WallDivisor
	if divisor <= 0 {
		divisor = DefaultWallDivisor
	}
	l := SliceHalfHeight(width/divisor, hit.Distance, a, height)
	top := height/2 - l

	return Column{
		Index: i,
		Angle: a,
		Dir:   dir,
		Hit:   hit,
		Tint:  Shade(hit.Distance, hit.Side),
		Src: gfx.Rect{
			X: float32(TextureColumn(hit, origin, dir, r.Wall.Width)),
			W: 1,
			H: float32(r.Wall.Height),
		},
		Dst: gfx.Rect{X: float32(i), Y: float32(top), W: 1, H: float32(2 * l)},
	}
}

// Frame draws the ceiling, the floor and then one wall slice for every
// column from 0 to the surface width inclusive.
func (r *Renderer) Frame(s gfx.Surface, cam *camera.Camera, m Map) FrameInfo {
	width, height := s.Size()
	half := height / 2

	s.DrawFilledRect(gfx.Rect{X: 0, Y: 0, W: float32(width), H: float32(half)}, r.Ceiling)
	s.DrawFilledRect(gfx.Rect{X: 0, Y: float32(half), W: float32(width), H: float32(half)}, r.Floor)

	var info FrameInfo
	for i := 0; i <= width; i++ {
		col := r.Column(cam, m, i, width, height)
		s.DrawTexturedRect(r.Wall, col.Src, col.Dst, col.Tint)

		if i == 0 {
			info.First = col.Hit
		}
		info.Last = col.Hit
		info.Columns++
	}
	return info
}
