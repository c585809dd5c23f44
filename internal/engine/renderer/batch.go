package renderer

import "github.com/Faultbox/dungeoncaster/internal/engine/gfx"

// floatsPerVertex is pos(2) + uv(2) + color(4).
const floatsPerVertex = 8

// drawRange is a run of consecutive vertices sharing one texture.
type drawRange struct {
	texture uint32
	first   int32
	count   int32
}

// batch collects quads in submission order. Consecutive quads with the same
// texture share a draw call, so painter's order is kept.
type batch struct {
	vertices []float32
	ranges   []drawRange
}

func (b *batch) reset() {
	b.vertices = b.vertices[:0]
	b.ranges = b.ranges[:0]
}

func (b *batch) vertexCount() int32 {
	return int32(len(b.vertices) / floatsPerVertex)
}

// quad appends dst as two triangles sampling [u0,u1]x[v0,v1] of texture.
func (b *batch) quad(texture uint32, dst gfx.Rect, u0, v0, u1, v1 float32, c gfx.Color) {
	x0, y0 := dst.X, dst.Y
	x1, y1 := dst.X+dst.W, dst.Y+dst.H

	b.vertices = append(b.vertices,
		x0, y0, u0, v0, c.R, c.G, c.B, c.A,
		x1, y0, u1, v0, c.R, c.G, c.B, c.A,
		x1, y1, u1, v1, c.R, c.G, c.B, c.A,

		x0, y0, u0, v0, c.R, c.G, c.B, c.A,
		x1, y1, u1, v1, c.R, c.G, c.B, c.A,
		x0, y1, u0, v1, c.R, c.G, c.B, c.A,
	)

	if n := len(b.ranges); n > 0 && b.ranges[n-1].texture == texture {
		b.ranges[n-1].count += 6
		return
	}
	b.ranges = append(b.ranges, drawRange{
		texture: texture,
		first:   b.vertexCount() - 6,
		count:   6,
	})
}

// texCoords converts a texel rectangle to normalized coordinates.
func texCoords(tex gfx.Texture, src gfx.Rect) (u0, v0, u1, v1 float32) {
	if tex.Width <= 0 || tex.Height <= 0 {
		return 0, 0, 1, 1
	}
	w, h := float32(tex.Width), float32(tex.Height)
	return src.X / w, src.Y / h, (src.X + src.W) / w, (src.Y + src.H) / h
}

// orthoMatrix creates an orthographic projection matrix.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
