package states

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/Faultbox/dungeoncaster/internal/dungeon"
	"github.com/Faultbox/dungeoncaster/internal/engine/debug"
	"github.com/Faultbox/dungeoncaster/internal/engine/gfx"
	"github.com/Faultbox/dungeoncaster/internal/engine/input"
	"github.com/Faultbox/dungeoncaster/internal/game/world"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

// traceState records lifecycle calls.
type traceState struct {
	calls []string
}

func (s *traceState) Enter() error { s.calls = append(s.calls, "enter"); return nil }
func (s *traceState) Exit() error  { s.calls = append(s.calls, "exit"); return nil }
func (s *traceState) Update(input.Frame, float64) error {
	s.calls = append(s.calls, "update")
	return nil
}
func (s *traceState) Render(gfx.Surface) error {
	s.calls = append(s.calls, "render")
	return nil
}

func TestManager(t *testing.T) {
	m := NewManager()
	if err := m.Update(input.NewFrame(), 0); err != nil {
		t.Fatalf("empty Update: %v", err)
	}

	a, b := &traceState{}, &traceState{}
	m.Change(a)
	if m.Current() != nil {
		t.Error("Change should wait for the next Update")
	}
	m.Update(input.NewFrame(), 0)
	m.Render(gfx.NewRecorder(1, 1))

	m.Change(b)
	m.Update(input.NewFrame(), 0)
	if m.Current() != b {
		t.Fatal("expected second state to be current")
	}

	want := []string{"enter", "update", "render", "exit"}
	if len(a.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", a.calls, want)
	}
	for i := range want {
		if a.calls[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, a.calls[i], want[i])
		}
	}
}

func loadingConfig(rec *gfx.Recorder) LoadingStateConfig {
	return LoadingStateConfig{
		World:       world.Config{Rooms: 8, Seed: 16},
		TextureSeed: 1,
		Uploader:    rec,
		Explore: ExploreStateConfig{
			Controls:     DefaultControls(),
			OverlayScale: 4,
		},
	}
}

func TestLoadingState_HandsOverToExplore(t *testing.T) {
	rec := gfx.NewRecorder(120, 72)
	m := NewManager()
	m.Change(NewLoadingState(loadingConfig(rec), m))

	m.Update(input.NewFrame(), 0)
	if _, ok := m.Current().(*LoadingState); !ok {
		t.Fatalf("current = %T, want *LoadingState", m.Current())
	}
	m.Update(input.NewFrame(), 0)

	explore, ok := m.Current().(*ExploreState)
	if !ok {
		t.Fatalf("current = %T, want *ExploreState", m.Current())
	}
	wall := explore.renderer.Wall
	if !wall.Valid() || wall.Width != 64 || wall.Height != 64 {
		t.Errorf("wall texture = %+v, want a 64x64 generated texture", wall)
	}

	x, y := explore.World().StartPosition()
	if c := explore.Camera(); c.X != x || c.Y != y {
		t.Errorf("camera at (%v, %v), want start room center (%v, %v)", c.X, c.Y, x, y)
	}
}

func TestLoadingState_MissingTextureFallsBack(t *testing.T) {
	rec := gfx.NewRecorder(120, 72)
	cfg := loadingConfig(rec)
	cfg.WallTexture = filepath.Join(t.TempDir(), "missing.png")

	s := NewLoadingState(cfg, NewManager())
	if err := s.Enter(); err != nil {
		t.Fatalf("Enter failed: %v", err)
	}
	if !s.IsComplete || s.wall.Width != 64 {
		t.Errorf("expected generated texture fallback, got %+v", s.wall)
	}
}

func TestLoadingState_GenerationError(t *testing.T) {
	rec := gfx.NewRecorder(120, 72)
	cfg := loadingConfig(rec)
	cfg.World.Rooms = dungeon.PlanSize + 1

	m := NewManager()
	m.Change(NewLoadingState(cfg, m))
	if err := m.Update(input.NewFrame(), 0); !errors.Is(err, dungeon.ErrTooManyRooms) {
		t.Fatalf("err = %v, want ErrTooManyRooms", err)
	}
}

func newExplore(t *testing.T, overlay bool) *ExploreState {
	t.Helper()
	w, err := world.New(world.Config{Rooms: 8, Seed: 16})
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	return NewExploreState(ExploreStateConfig{
		Controls:     DefaultControls(),
		ShowOverlay:  overlay,
		OverlayScale: 4,
		WallTexture:  gfx.Texture{ID: 1, Width: 64, Height: 64},
	}, w)
}

func held(actions ...input.Action) input.Frame {
	f := input.NewFrame()
	for _, a := range actions {
		f.Hold(a)
	}
	return f
}

func pressed(actions ...input.Action) input.Frame {
	f := input.NewFrame()
	for _, a := range actions {
		f.Press(a)
	}
	return f
}

func TestExploreState_Movement(t *testing.T) {
	tests := []struct {
		name   string
		keys   []input.Action
		dx, dy float64
	}{
		{"forward", []input.Action{input.MoveForward}, 0, -0.08},
		{"back", []input.Action{input.MoveBack}, 0, 0.08},
		{"strafe left", []input.Action{input.StrafeLeft}, -0.08, 0},
		{"strafe right", []input.Action{input.StrafeRight}, 0.08, 0},
		{"diagonal", []input.Action{input.MoveForward, input.StrafeLeft}, -0.08, -0.08},
		{"cancel", []input.Action{input.MoveForward, input.MoveBack}, 0, 0},
		{"idle", nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newExplore(t, false)
			x0, y0 := s.Camera().X, s.Camera().Y

			s.Update(held(tt.keys...), 1.0/60)

			if dx := s.Camera().X - x0; math.Abs(dx-tt.dx) > 1e-6 {
				t.Errorf("dx = %v, want %v", dx, tt.dx)
			}
			if dy := s.Camera().Y - y0; math.Abs(dy-tt.dy) > 1e-6 {
				t.Errorf("dy = %v, want %v", dy, tt.dy)
			}
		})
	}
}

func TestExploreState_Rotation(t *testing.T) {
	s := newExplore(t, false)

	s.Update(held(input.RotateLeft), 0.5)
	if !approx(s.Camera().Angle, 0.35) {
		t.Errorf("angle after rotating left = %v, want 0.35", s.Camera().Angle)
	}

	s.Update(held(input.RotateRight), 2)
	if !approx(s.Camera().Angle, 0.95) {
		t.Errorf("angle after wrapping = %v, want 0.95", s.Camera().Angle)
	}
	if a := s.Camera().Angle; a < 0 || a >= 1 {
		t.Errorf("angle %v outside [0, 1)", a)
	}
}

func TestExploreState_MouseLook(t *testing.T) {
	s := newExplore(t, false)

	f := input.NewFrame()
	f.MouseX, f.HasMouse, f.ViewWidth = 480, true, 1200
	s.Update(f, 1.0/60)
	if !approx(s.Camera().Angle, 0.27) {
		t.Errorf("angle = %v, want 0.27", s.Camera().Angle)
	}

	s.config.Controls.MouseLook = false
	s.Update(f, 1.0/60)
	if !approx(s.Camera().Angle, 0.27) {
		t.Errorf("mouse look disabled but angle = %v", s.Camera().Angle)
	}
}

func TestExploreState_ToggleOverlay(t *testing.T) {
	s := newExplore(t, true)
	s.Update(pressed(input.ToggleOverlay), 0)
	if s.ShowOverlay {
		t.Error("toggle should hide the overlay")
	}
	s.Update(held(input.ToggleOverlay), 0)
	if s.ShowOverlay {
		t.Error("a held toggle key must not toggle again")
	}
	s.Update(pressed(input.ToggleOverlay), 0)
	if !s.ShowOverlay {
		t.Error("toggle should show the overlay")
	}
}

func TestExploreState_Regenerate(t *testing.T) {
	s := newExplore(t, false)
	s.Update(held(input.MoveForward, input.RotateLeft), 0.5)
	angle := s.Camera().Angle

	s.Update(pressed(input.Regenerate), 0)

	if s.World().Generation() != 2 {
		t.Errorf("Generation = %d, want 2", s.World().Generation())
	}
	x, y := s.World().StartPosition()
	if s.Camera().X != x || s.Camera().Y != y {
		t.Errorf("camera at (%v, %v), want new start (%v, %v)", s.Camera().X, s.Camera().Y, x, y)
	}
	if s.Camera().Angle != angle {
		t.Errorf("heading changed to %v, want %v", s.Camera().Angle, angle)
	}
	if !s.ShowOverlay {
		t.Error("regenerating should show the overlay")
	}

	// Again with the overlay already shown: it stays shown.
	s.Update(pressed(input.Regenerate), 0)
	if !s.ShowOverlay {
		t.Error("overlay should stay shown after a second regeneration")
	}
}

func TestExploreState_RegenerateAndToggle(t *testing.T) {
	for _, initial := range []bool{false, true} {
		s := newExplore(t, initial)
		s.Update(pressed(input.Regenerate, input.ToggleOverlay), 0)
		if s.ShowOverlay {
			t.Errorf("initial %v: regenerate with toggle should leave the overlay hidden", initial)
		}
	}
}

func TestExploreState_Render(t *testing.T) {
	s := newExplore(t, false)

	rec := gfx.NewRecorder(120, 72)
	if err := s.Render(rec); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := rec.Count(gfx.CmdTexturedRect); got != 121 {
		t.Errorf("wall slices = %d, want 121", got)
	}
	if got := rec.Count(gfx.CmdFilledRect); got != 2 {
		t.Errorf("filled rects without overlay = %d, want 2", got)
	}

	st := s.Stats()
	if st.Distance <= 0 || st.Generation != 1 || st.Rooms != 8 {
		t.Errorf("unexpected stats %+v", st)
	}

	s.ShowOverlay = true
	s.ShowRoute = true
	rec.Reset()
	s.Render(rec)

	var endRoom, route bool
	for _, cmd := range rec.Commands {
		switch cmd.Color {
		case debug.ColorEndRoom:
			endRoom = true
		case debug.ColorRoute:
			route = true
		}
	}
	if !endRoom {
		t.Error("overlay should mark the end room")
	}
	if !route {
		t.Error("overlay should draw the route")
	}
}
