package texture

import (
	"image"
	"image/color"
	gomath "math"

	"github.com/aquilax/go-perlin"
)

// DefaultSize is the edge length of generated textures. Wall faces map
// onto 64 texel columns.
const DefaultSize = 64

// Brick layout of the generated wall, in texels at DefaultSize.
const (
	brickWidth  = 32
	brickHeight = 16
	mortar      = 2
)

// Perlin parameters.
const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = 3
	noiseFreq   = 0.15
)

// StoneWall generates a size x size brick texture. Brick faces are mottled
// with Perlin noise, rows are offset by half a brick and the mortar lines
// are darker. The same seed always gives the same texture.
func StoneWall(size int, seed int64) *image.RGBA {
	if size <= 0 {
		size = DefaultSize
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, seed)

	// Keep the brick pattern proportional for other sizes.
	unit := float64(size) / DefaultSize

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			bx, by := float64(x)/unit, float64(y)/unit

			row := int(by) / brickHeight
			shift := 0.0
			if row%2 == 1 {
				shift = brickWidth / 2
			}
			inMortar := int(by)%brickHeight < mortar || int(gomath.Mod(bx+shift, brickWidth)) < mortar

			n := p.Noise2D(bx*noiseFreq, by*noiseFreq) // roughly [-1, 1]
			v := 170 + 60*n
			if inMortar {
				v = 90 + 20*n
			}
			g := uint8(gomath.Max(0, gomath.Min(255, v)))

			img.SetRGBA(x, y, color.RGBA{R: g, G: g, B: g, A: 255})
		}
	}
	return img
}
