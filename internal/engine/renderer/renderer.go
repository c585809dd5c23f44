// Package renderer draws gfx surfaces with OpenGL: quads are batched per
// frame and flushed in submission order.
package renderer

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/dungeoncaster/internal/engine/gfx"
	"github.com/Faultbox/dungeoncaster/internal/engine/shader"
	"github.com/Faultbox/dungeoncaster/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	// Logical size the draw calls are expressed in.
	Width  int
	Height int

	// Framebuffer size in pixels. Zero means the logical size.
	DrawableWidth  int
	DrawableHeight int
}

// Renderer is a gfx.Surface backed by the current OpenGL context.
type Renderer struct {
	config Config

	program    uint32
	projection int32
	sampler    int32

	vao uint32
	vbo uint32

	white    uint32
	textures map[uint32]gfx.Texture

	batch batch
	log   *zap.Logger
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		textures: make(map[uint32]gfx.Texture),
		log:      logger.Named("renderer"),
	}
	r.batch.vertices = make([]float32, 0, 8192)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0, 0, 0, 1)

	var err error
	r.program, err = shader.CompileProgram(shader.QuadVertex, shader.QuadFragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	if r.projection, err = shader.Uniform(r.program, "uProjection"); err != nil {
		r.Close()
		return nil, err
	}
	if r.sampler, err = shader.Uniform(r.program, "uTexture"); err != nil {
		r.Close()
		return nil, err
	}

	r.createBuffers()

	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(white.Pix, []byte{255, 255, 255, 255})
	r.white = r.uploadPixels(white)

	r.Resize(cfg.Width, cfg.Height, cfg.DrawableWidth, cfg.DrawableHeight)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, tex := range r.textures {
		r.DeleteTexture(tex)
	}
	if r.white != 0 {
		gl.DeleteTextures(1, &r.white)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize. A zero drawable size means the logical size.
func (r *Renderer) Resize(width, height, drawableWidth, drawableHeight int) {
	if drawableWidth <= 0 || drawableHeight <= 0 {
		drawableWidth, drawableHeight = width, height
	}
	r.config.Width = width
	r.config.Height = height
	r.config.DrawableWidth = drawableWidth
	r.config.DrawableHeight = drawableHeight

	gl.Viewport(0, 0, int32(drawableWidth), int32(drawableHeight))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("drawable_width", drawableWidth),
		zap.Int("drawable_height", drawableHeight),
	)
}

// Size returns the logical size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	r.batch.reset()
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// DrawFilledRect queues a solid rectangle.
func (r *Renderer) DrawFilledRect(rect gfx.Rect, c gfx.Color) {
	if rect.Empty() {
		return
	}
	r.batch.quad(r.white, rect, 0, 0, 1, 1, c)
}

// DrawTexturedRect queues the src texels of tex stretched over dst.
func (r *Renderer) DrawTexturedRect(tex gfx.Texture, src, dst gfx.Rect, tint gfx.Color) {
	if dst.Empty() || !tex.Valid() {
		return
	}
	u0, v0, u1, v1 := texCoords(tex, src)
	r.batch.quad(tex.ID, dst, u0, v0, u1, v1, tint)
}

// End flushes the queued quads.
func (r *Renderer) End() {
	if len(r.batch.vertices) == 0 {
		return
	}

	proj := orthoMatrix(0, float32(r.config.Width), float32(r.config.Height), 0, -1, 1)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.projection, 1, false, &proj[0])
	gl.Uniform1i(r.sampler, 0)
	gl.ActiveTexture(gl.TEXTURE0)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.batch.vertices)*4, unsafe.Pointer(&r.batch.vertices[0]), gl.STREAM_DRAW)

	for _, rg := range r.batch.ranges {
		gl.BindTexture(gl.TEXTURE_2D, rg.texture)
		gl.DrawArrays(gl.TRIANGLES, rg.first, rg.count)
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
}

// UploadTexture copies img to the GPU. Walls sample with nearest filtering
// and repeat wrapping.
func (r *Renderer) UploadTexture(img *image.RGBA) (gfx.Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return gfx.Texture{}, errors.New("empty texture image")
	}
	tex := gfx.Texture{ID: r.uploadPixels(img), Width: b.Dx(), Height: b.Dy()}
	r.textures[tex.ID] = tex

	r.log.Debug("texture uploaded",
		zap.Uint32("id", tex.ID),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height),
	)
	return tex, nil
}

// DeleteTexture releases a texture from UploadTexture.
func (r *Renderer) DeleteTexture(tex gfx.Texture) {
	if _, ok := r.textures[tex.ID]; !ok {
		return
	}
	delete(r.textures, tex.ID)
	gl.DeleteTextures(1, &tex.ID)
}

// ReadPixels returns the framebuffer as RGBA rows, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.DrawableWidth, r.config.DrawableHeight
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

func (r *Renderer) uploadPixels(img *image.RGBA) uint32 {
	if img.Stride != img.Rect.Dx()*4 || img.Rect.Min != (image.Point{}) {
		img = tightCopy(img)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(floatsPerVertex * 4)

	// Position attribute (location = 0): 2 floats
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// TexCoord attribute (location = 1): 2 floats
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(1)

	// Color attribute (location = 2): 4 floats
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 4*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// tightCopy repacks img so rows are contiguous, as TexImage2D expects.
func tightCopy(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(out.Pix[y*out.Stride:(y+1)*out.Stride], row[:b.Dx()*4])
	}
	return out
}
