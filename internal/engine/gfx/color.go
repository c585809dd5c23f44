package gfx

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Palette used by the view and the overlay.
var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}

	ColorCeiling = RGB(80, 80, 80)   // dark gray
	ColorFloor   = RGB(130, 130, 130) // gray
	ColorPink    = RGB(255, 109, 194)
	ColorGreen   = RGB(0, 228, 48)
	ColorRed     = RGB(230, 41, 55)
	ColorYellow  = RGB(253, 249, 0)
)

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 255)
}

// Gray creates an opaque gray of intensity v.
func Gray(v uint8) Color {
	return RGB(v, v, v)
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Bytes returns the color as 8-bit components, rounded and clamped.
func (c Color) Bytes() (r, g, b, a uint8) {
	return toByte(c.R), toByte(c.G), toByte(c.B), toByte(c.A)
}

// Modulate multiplies two colors component-wise, as a texture tint does.
func (c Color) Modulate(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

func toByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
