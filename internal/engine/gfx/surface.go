// Package gfx defines the drawing contract between the view code and the
// hosts that put pixels on screen: filled rectangles, textured rectangles
// and texture handles. Nothing here talks to a window or a device.
package gfx

import "image"

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X, Y, W, H float32
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Texture is a host-owned image handle.
type Texture struct {
	ID     uint32
	Width  int
	Height int
}

// Valid reports whether the handle refers to an uploaded image.
func (t Texture) Valid() bool {
	return t.ID != 0
}

// Surface receives draw commands for one frame.
type Surface interface {
	// Size returns the logical drawing area in pixels.
	Size() (width, height int)

	DrawFilledRect(r Rect, c Color)

	// DrawTexturedRect draws the src region of tex stretched over dst,
	// with each texel multiplied by tint.
	DrawTexturedRect(tex Texture, src, dst Rect, tint Color)
}

// TextureUploader turns decoded images into textures a Surface can draw.
type TextureUploader interface {
	UploadTexture(img *image.RGBA) (Texture, error)
}
