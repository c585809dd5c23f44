// Package term hosts the game in a terminal. Frames are drawn into a
// software raster two pixels per cell, using upper half blocks with the top
// pixel as foreground and the bottom pixel as background.
package term

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/Faultbox/dungeoncaster/internal/engine/gfx"
	"github.com/Faultbox/dungeoncaster/internal/engine/input"
	"github.com/Faultbox/dungeoncaster/internal/logger"
)

// DefaultHoldFor is how long a key counts as held after its last press or
// auto-repeat. Terminals report no key releases.
const DefaultHoldFor = 180 * time.Millisecond

// Config holds terminal host settings.
type Config struct {
	HoldFor time.Duration

	// Screen overrides the terminal screen, mainly for tests.
	Screen tcell.Screen
}

// Terminal is a tcell screen with a raster surface and input polling.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	done   chan struct{}
	once   sync.Once

	bindings *input.Bindings
	held     map[input.Action]time.Time
	holdFor  time.Duration
	now      func() time.Time

	raster *gfx.Raster
	status string

	log *zap.Logger
}

// New initializes the terminal and starts reading its events.
func New(cfg Config) (*Terminal, error) {
	screen := cfg.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("creating terminal screen: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	t := &Terminal{
		screen:   screen,
		events:   make(chan tcell.Event, 64),
		done:     make(chan struct{}),
		bindings: input.DefaultBindings(),
		held:     make(map[input.Action]time.Time),
		holdFor:  cfg.HoldFor,
		now:      time.Now,
		log:      logger.Named("term"),
	}
	if t.holdFor <= 0 {
		t.holdFor = DefaultHoldFor
	}

	cols, rows := screen.Size()
	t.raster = gfx.NewRaster(cols, rows*2)

	go t.readEvents()

	t.log.Info("terminal initialized", zap.Int("cols", cols), zap.Int("rows", rows))
	return t, nil
}

// readEvents forwards screen events until the screen is finalized.
func (t *Terminal) readEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

// SetBindings replaces the key bindings used by Poll.
func (t *Terminal) SetBindings(b *input.Bindings) {
	t.bindings = b
}

// Poll drains pending terminal events into a frame of actions.
func (t *Terminal) Poll() input.Frame {
	frame := input.NewFrame()
	now := t.now()

	for drained := false; !drained; {
		select {
		case ev := <-t.events:
			t.handle(ev, &frame, now)
		default:
			drained = true
		}
	}

	for a, last := range t.held {
		if now.Sub(last) > t.holdFor {
			delete(t.held, a)
			continue
		}
		frame.Hold(a)
	}

	frame.ViewWidth, frame.ViewHeight = t.raster.Size()
	return frame
}

func (t *Terminal) handle(ev tcell.Event, frame *input.Frame, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		t.raster.Resize(cols, rows*2)
		t.screen.Sync()
		t.log.Debug("terminal resized", zap.Int("cols", cols), zap.Int("rows", rows))

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			frame.CloseRequested = true
			return
		}
		a, ok := t.bindings.Lookup(KeyName(ev))
		if !ok {
			return
		}
		if _, down := t.held[a]; !down {
			frame.Press(a)
		}
		t.held[a] = now
	}
}

// KeyName returns the binding name of a key event: upper-case letters and
// digits for runes, and names like "Tab", "Escape" or "F12" otherwise.
func KeyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return "Space"
		}
		return string(unicode.ToUpper(r))
	case tcell.KeyTab:
		return "Tab"
	case tcell.KeyEscape:
		return "Escape"
	case tcell.KeyEnter:
		return "Return"
	case tcell.KeyUp:
		return "Up"
	case tcell.KeyDown:
		return "Down"
	case tcell.KeyLeft:
		return "Left"
	case tcell.KeyRight:
		return "Right"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "Backspace"
	}
	if name, ok := tcell.KeyNames[ev.Key()]; ok {
		return name
	}
	return ""
}

// Surface returns the raster frames are drawn into. It also uploads
// textures.
func (t *Terminal) Surface() *gfx.Raster {
	return t.raster
}

// SetStatus sets the text shown on the top row.
func (t *Terminal) SetStatus(s string) {
	t.status = s
}

// Present copies the raster to the terminal.
func (t *Terminal) Present() {
	img := t.raster.Image()
	w, h := t.raster.Size()

	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			top := img.RGBAAt(x, y)
			bottom := top
			if y+1 < h {
				bottom = img.RGBAAt(x, y+1)
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			t.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}

	if t.status != "" {
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
		x := 0
		for _, r := range statusLine(t.status, w) {
			t.screen.SetContent(x, 0, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
	}

	t.screen.Show()
}

// statusLine trims s and cuts it to at most width cells. A wide rune that
// would straddle the edge is dropped.
func statusLine(s string, width int) string {
	return runewidth.Truncate(strings.TrimSpace(s), width, "")
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.once.Do(func() {
		close(t.done)
		t.screen.Fini()
		t.log.Info("terminal closed")
	})
}
