package gfx

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Raster is a software Surface drawing into an RGBA image. The terminal
// host draws through it and downsamples the result into character cells;
// tests use it to look at actual pixels.
type Raster struct {
	img      *image.RGBA
	textures map[uint32]*image.RGBA
	nextID   uint32
}

// NewRaster creates a black raster of the given size.
func NewRaster(width, height int) *Raster {
	r := &Raster{
		img:      image.NewRGBA(image.Rect(0, 0, width, height)),
		textures: make(map[uint32]*image.RGBA),
	}
	r.Clear(ColorBlack)
	return r
}

// Size returns the raster size in pixels.
func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the backing image. It is overwritten by later draws.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Resize replaces the backing image when the size changes.
func (r *Raster) Resize(width, height int) {
	if w, h := r.Size(); w == width && h == height {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Clear fills the whole raster with c.
func (r *Raster) Clear(c Color) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(toNRGBA(c)), image.Point{}, draw.Src)
}

// UploadTexture keeps a copy of img and returns its handle.
func (r *Raster) UploadTexture(img *image.RGBA) (Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return Texture{}, fmt.Errorf("empty texture image")
	}
	cp := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(cp, cp.Bounds(), img, b.Min, draw.Src)

	r.nextID++
	r.textures[r.nextID] = cp
	return Texture{ID: r.nextID, Width: b.Dx(), Height: b.Dy()}, nil
}

// DrawFilledRect fills dst with c, blending when c is translucent.
func (r *Raster) DrawFilledRect(dst Rect, c Color) {
	area := r.clip(dst)
	if area.Empty() {
		return
	}
	op := draw.Over
	if c.A >= 1 {
		op = draw.Src
	}
	draw.Draw(r.img, area, image.NewUniform(toNRGBA(c)), image.Point{}, op)
}

// DrawTexturedRect samples src with nearest-neighbor filtering.
func (r *Raster) DrawTexturedRect(tex Texture, src, dst Rect, tint Color) {
	texImg, ok := r.textures[tex.ID]
	if !ok || dst.Empty() {
		return
	}
	area := r.clip(dst)
	tb := texImg.Bounds()

	for py := area.Min.Y; py < area.Max.Y; py++ {
		v := (float32(py) + 0.5 - dst.Y) / dst.H
		ty := clampInt(int(math.Floor(float64(src.Y+v*src.H))), 0, tb.Dy()-1)
		for px := area.Min.X; px < area.Max.X; px++ {
			u := (float32(px) + 0.5 - dst.X) / dst.W
			tx := clampInt(int(math.Floor(float64(src.X+u*src.W))), 0, tb.Dx()-1)

			t := texImg.RGBAAt(tx, ty)
			texel := RGBA(t.R, t.G, t.B, t.A).Modulate(tint)
			r.img.Set(px, py, toNRGBA(texel))
		}
	}
}

// clip converts dst to covered pixel bounds inside the raster. A pixel is
// covered when its center lies inside dst.
func (r *Raster) clip(dst Rect) image.Rectangle {
	x0 := int(math.Ceil(float64(dst.X) - 0.5))
	y0 := int(math.Ceil(float64(dst.Y) - 0.5))
	x1 := int(math.Ceil(float64(dst.X+dst.W) - 0.5))
	y1 := int(math.Ceil(float64(dst.Y+dst.H) - 0.5))
	return image.Rect(x0, y0, x1, y1).Intersect(r.img.Bounds())
}

func toNRGBA(c Color) color.NRGBA {
	r, g, b, a := c.Bytes()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
