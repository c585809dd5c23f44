package term

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/Faultbox/dungeoncaster/internal/engine/gfx"
	"github.com/Faultbox/dungeoncaster/internal/engine/input"
)

func newTestTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")

	term, err := New(Config{Screen: ss})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(term.Close)

	// Init sizes a simulation screen to 80x25; shrink it afterwards.
	ss.SetSize(20, 10)
	f := input.NewFrame()
	term.handle(tcell.NewEventResize(20, 10), &f, time.Now())
	if w, h := ss.Size(); w != 20 || h != 10 {
		t.Fatalf("screen size = %dx%d, want 20x10", w, h)
	}
	return term, ss
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{key(tcell.KeyRune, 'w'), "W"},
		{key(tcell.KeyRune, 'Q'), "Q"},
		{key(tcell.KeyRune, ' '), "Space"},
		{key(tcell.KeyTab, 0), "Tab"},
		{key(tcell.KeyEscape, 0), "Escape"},
		{key(tcell.KeyF12, 0), "F12"},
		{key(tcell.KeyUp, 0), "Up"},
	}
	for _, tt := range tests {
		if got := KeyName(tt.ev); got != tt.want {
			t.Errorf("KeyName(%v) = %q, want %q", tt.ev.Name(), got, tt.want)
		}
	}
}

func TestNew_RasterMatchesScreen(t *testing.T) {
	term, _ := newTestTerminal(t)
	if w, h := term.Surface().Size(); w != 20 || h != 20 {
		t.Errorf("raster size = %dx%d, want 20x20", w, h)
	}
}

func TestPoll_PressThenHold(t *testing.T) {
	term, _ := newTestTerminal(t)
	clock := time.Unix(100, 0)
	term.now = func() time.Time { return clock }

	f := input.NewFrame()
	term.handle(key(tcell.KeyRune, 'w'), &f, clock)
	if !f.Pressed(input.MoveForward) || !f.Down(input.MoveForward) {
		t.Fatal("first key event should press and hold")
	}

	// Auto-repeat keeps the key held without pressing it again.
	f = input.NewFrame()
	clock = clock.Add(50 * time.Millisecond)
	term.handle(key(tcell.KeyRune, 'w'), &f, clock)
	if f.Pressed(input.MoveForward) {
		t.Error("auto-repeat must not count as a new press")
	}

	clock = clock.Add(100 * time.Millisecond)
	if f := term.Poll(); !f.Down(input.MoveForward) {
		t.Error("key should still be held within the hold window")
	}

	clock = clock.Add(DefaultHoldFor + time.Millisecond)
	if f := term.Poll(); f.Down(input.MoveForward) {
		t.Error("key should be released after the hold window")
	}
}

func TestPoll_CtrlCAndUnbound(t *testing.T) {
	term, _ := newTestTerminal(t)

	f := input.NewFrame()
	term.handle(key(tcell.KeyRune, 'z'), &f, time.Now())
	if f.HeldCount() != 0 {
		t.Error("unbound key should not produce actions")
	}

	term.handle(key(tcell.KeyCtrlC, 0), &f, time.Now())
	if !f.CloseRequested {
		t.Error("Ctrl-C should request close")
	}
}

func TestPoll_Resize(t *testing.T) {
	term, ss := newTestTerminal(t)
	ss.SetSize(30, 12)

	f := input.NewFrame()
	term.handle(tcell.NewEventResize(30, 12), &f, time.Now())
	if w, h := term.Surface().Size(); w != 30 || h != 24 {
		t.Errorf("raster size after resize = %dx%d, want 30x24", w, h)
	}
}

func TestPresent(t *testing.T) {
	term, ss := newTestTerminal(t)

	r := term.Surface()
	r.DrawFilledRect(gfx.Rect{X: 0, Y: 0, W: 20, H: 1}, gfx.RGB(255, 0, 0))
	r.DrawFilledRect(gfx.Rect{X: 0, Y: 1, W: 20, H: 1}, gfx.RGB(0, 0, 255))
	term.Present()

	mainc, _, style, _ := ss.GetContent(5, 0)
	if mainc != '▀' {
		t.Fatalf("cell rune = %q, want upper half block", mainc)
	}
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) || bg != tcell.NewRGBColor(0, 0, 255) {
		t.Errorf("cell colors fg=%v bg=%v", fg, bg)
	}

	term.SetStatus("seed 16")
	term.Present()
	if mainc, _, _, _ := ss.GetContent(0, 0); mainc != 's' {
		t.Errorf("status not drawn, got %q", mainc)
	}
}

func TestPresent_StatusTruncated(t *testing.T) {
	term, ss := newTestTerminal(t)
	term.Surface().Clear(gfx.RGB(0, 0, 0))
	term.SetStatus("DungeonCaster | dungeon 1 (8 rooms) | px 99.00")
	term.Present()

	want := "DungeonCaster | dung"
	for x, r := range want {
		if mainc, _, _, _ := ss.GetContent(x, 0); mainc != r {
			t.Fatalf("status cell %d = %q, want %q", x, mainc, r)
		}
	}
	if mainc, _, _, _ := ss.GetContent(0, 1); mainc != '▀' {
		t.Errorf("status leaked into row 1: %q", mainc)
	}
}

func TestStatusLine(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "  seed 16 ", 20, "seed 16"},
		{"cut", "DungeonCaster | dungeon 1", 20, "DungeonCaster | dung"},
		{"wide rune at edge", "ab地下", 3, "ab"},
		{"wide runes fit", "ab地下", 6, "ab地下"},
		{"zero width", "abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statusLine(tt.in, tt.width)
			if got != tt.want {
				t.Errorf("statusLine(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
			if w := runewidth.StringWidth(got); w > tt.width {
				t.Errorf("width %d exceeds %d", w, tt.width)
			}
		})
	}
}
