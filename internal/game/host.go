package game

import (
	"fmt"
	"image"

	"github.com/Faultbox/dungeoncaster/internal/engine/debug"
	"github.com/Faultbox/dungeoncaster/internal/engine/gfx"
	"github.com/Faultbox/dungeoncaster/internal/engine/input"
	"github.com/Faultbox/dungeoncaster/internal/engine/renderer"
	"github.com/Faultbox/dungeoncaster/internal/engine/term"
	"github.com/Faultbox/dungeoncaster/internal/engine/window"
)

// Host is where input comes from and frames are shown.
type Host interface {
	gfx.TextureUploader

	// Poll returns this frame's input.
	Poll() input.Frame

	// BeginFrame returns the surface to draw the frame on.
	BeginFrame() gfx.Surface

	// EndFrame shows the frame drawn since BeginFrame.
	EndFrame()

	// Capture saves the last shown frame.
	Capture(sc *debug.ScreenshotCapture) (string, error)

	// SetStatus shows a one-line summary: the window title, or the top
	// row of a terminal.
	SetStatus(s string)

	Close()
}

// SDLHost draws with OpenGL into an SDL window.
type SDLHost struct {
	window   *window.Window
	renderer *renderer.Renderer
}

// NewSDLHost opens a window and creates its renderer.
func NewSDLHost(cfg window.Config, bindings *input.Bindings, mouseLook bool) (*SDLHost, error) {
	win, err := window.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come after the window, since the OpenGL context must exist.
	w, h := win.GetSize()
	dw, dh := win.DrawableSize()
	r, err := renderer.New(renderer.Config{
		Width:          w,
		Height:         h,
		DrawableWidth:  dw,
		DrawableHeight: dh,
	})
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	win.SetBindings(bindings)
	win.CaptureMouse(mouseLook)
	return &SDLHost{window: win, renderer: r}, nil
}

// Poll polls SDL events.
func (h *SDLHost) Poll() input.Frame {
	return h.window.Poll()
}

// BeginFrame follows window resizes and starts a batch.
func (h *SDLHost) BeginFrame() gfx.Surface {
	w, ht := h.window.GetSize()
	if rw, rh := h.renderer.Size(); rw != w || rh != ht {
		dw, dh := h.window.DrawableSize()
		h.renderer.Resize(w, ht, dw, dh)
	}
	h.renderer.Begin()
	return h.renderer
}

// EndFrame flushes the batch and swaps buffers.
func (h *SDLHost) EndFrame() {
	h.renderer.End()
	h.window.SwapBuffers()
}

// UploadTexture uploads img to the GPU.
func (h *SDLHost) UploadTexture(img *image.RGBA) (gfx.Texture, error) {
	return h.renderer.UploadTexture(img)
}

// Capture reads back the framebuffer.
func (h *SDLHost) Capture(sc *debug.ScreenshotCapture) (string, error) {
	pixels, w, ht := h.renderer.ReadPixels()
	return sc.CaptureFromPixels(pixels, w, ht)
}

// SetStatus sets the window title.
func (h *SDLHost) SetStatus(s string) {
	h.window.SetTitle(s)
}

// Close releases the renderer and the window.
func (h *SDLHost) Close() {
	h.renderer.Close()
	h.window.Close()
}

// TermHost draws into a terminal.
type TermHost struct {
	term *term.Terminal
}

// NewTermHost takes over the terminal.
func NewTermHost(cfg term.Config, bindings *input.Bindings) (*TermHost, error) {
	t, err := term.New(cfg)
	if err != nil {
		return nil, err
	}
	t.SetBindings(bindings)
	return &TermHost{term: t}, nil
}

// Poll drains terminal events.
func (h *TermHost) Poll() input.Frame {
	return h.term.Poll()
}

// BeginFrame clears the raster.
func (h *TermHost) BeginFrame() gfx.Surface {
	r := h.term.Surface()
	r.Clear(gfx.ColorBlack)
	return r
}

// EndFrame copies the raster to the terminal.
func (h *TermHost) EndFrame() {
	h.term.Present()
}

// UploadTexture keeps img for software sampling.
func (h *TermHost) UploadTexture(img *image.RGBA) (gfx.Texture, error) {
	return h.term.Surface().UploadTexture(img)
}

// Capture saves the raster.
func (h *TermHost) Capture(sc *debug.ScreenshotCapture) (string, error) {
	return sc.CaptureFromImage(h.term.Surface().Image())
}

// SetStatus sets the top row text.
func (h *TermHost) SetStatus(s string) {
	h.term.SetStatus(s)
}

// Close restores the terminal.
func (h *TermHost) Close() {
	h.term.Close()
}
