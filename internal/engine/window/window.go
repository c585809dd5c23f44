// Package window handles the SDL2 window, its OpenGL context and input
// polling.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/dungeoncaster/internal/engine/input"
	"github.com/Faultbox/dungeoncaster/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps SDL2 window and OpenGL context.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext

	bindings  *input.Bindings
	scancodes map[sdl.Scancode]string

	mouseCaptured bool
	log           *zap.Logger
}

// New creates a new window with OpenGL context.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
		log:    logger.Named("window"),
	}
	w.SetBindings(input.DefaultBindings())

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			w.log.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.mouseCaptured {
		sdl.ShowCursor(sdl.ENABLE)
	}
	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SetBindings replaces the key bindings used by Poll. Key names SDL does
// not know are logged and ignored.
func (w *Window) SetBindings(b *input.Bindings) {
	w.bindings = b
	w.scancodes = make(map[sdl.Scancode]string)
	for _, key := range b.Keys() {
		sc := sdl.GetScancodeFromName(key)
		if sc == sdl.SCANCODE_UNKNOWN {
			w.log.Warn("unknown key name in bindings", zap.String("key", key))
			continue
		}
		w.scancodes[sc] = key
	}
}

// CaptureMouse hides the cursor and keeps it centered so every frame reads
// a fresh offset for mouse look.
func (w *Window) CaptureMouse(on bool) {
	w.mouseCaptured = on
	if on {
		sdl.ShowCursor(sdl.DISABLE)
		w.centerMouse()
	} else {
		sdl.ShowCursor(sdl.ENABLE)
	}
}

// Poll drains pending SDL events into a frame of actions. Keys pressed
// this frame come from key-down events; held keys from the keyboard state.
func (w *Window) Poll() input.Frame {
	frame := input.NewFrame()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			frame.CloseRequested = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				w.log.Debug("window resized",
					zap.Int32("width", e.Data1),
					zap.Int32("height", e.Data2))
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			if a, ok := w.bindings.Lookup(sdl.GetKeyName(e.Keysym.Sym)); ok {
				frame.Press(a)
			}
		}
	}

	state := sdl.GetKeyboardState()
	for sc, key := range w.scancodes {
		if int(sc) < len(state) && state[sc] != 0 {
			if a, ok := w.bindings.Lookup(key); ok {
				frame.Hold(a)
			}
		}
	}

	frame.ViewWidth, frame.ViewHeight = w.GetSize()
	if w.mouseCaptured {
		x, y, _ := sdl.GetMouseState()
		frame.MouseX, frame.MouseY = float64(x), float64(y)
		frame.HasMouse = true
		w.centerMouse()
	}

	return frame
}

func (w *Window) centerMouse() {
	width, height := w.GetSize()
	w.sdlWindow.WarpMouseInWindow(int32(width/2), int32(height/2))
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// GetSize returns the current window size.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// DrawableSize returns the framebuffer size in pixels, which differs from
// the window size on high-DPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
