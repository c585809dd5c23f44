package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/dungeoncaster/internal/engine/camera"
	"github.com/Faultbox/dungeoncaster/internal/engine/debug"
	"github.com/Faultbox/dungeoncaster/internal/engine/gfx"
	"github.com/Faultbox/dungeoncaster/internal/engine/input"
	"github.com/Faultbox/dungeoncaster/internal/engine/raycast"
	"github.com/Faultbox/dungeoncaster/internal/game/world"
	"github.com/Faultbox/dungeoncaster/internal/logger"
	"github.com/Faultbox/dungeoncaster/pkg/math"
)

// Controls tunes the first-person controller.
type Controls struct {
	MoveSpeed    float64 // tiles per frame per held direction key
	RotSpeed     float64 // revolutions per second
	MouseDivisor float64
	MouseLook    bool
}

// DefaultControls returns the stock controller tuning.
func DefaultControls() Controls {
	return Controls{
		MoveSpeed:    0.08,
		RotSpeed:     0.2,
		MouseDivisor: 5,
		MouseLook:    true,
	}
}

// ExploreStateConfig contains configuration for the explore state.
type ExploreStateConfig struct {
	Controls     Controls
	ShowOverlay  bool
	OverlayScale int
	ShowRoute    bool
	WallTexture  gfx.Texture
}

// Stats is a snapshot of the player and the rightmost view ray, for
// on-screen readouts.
type Stats struct {
	X, Y, Angle  float64
	HitX, HitY   float64
	Distance     float64
	DirX         float64
	Generation   int
	Rooms        int
	OverlayShown bool
}

// ExploreState is the first-person dungeon view.
type ExploreState struct {
	config ExploreStateConfig
	world  *world.World
	router *world.Router

	camera   *camera.Camera
	renderer *raycast.Renderer
	overlay  *debug.TileGridRenderer
	view     raycast.FrameInfo

	ShowOverlay bool
	ShowRoute   bool

	log *zap.Logger
}

// NewExploreState creates an explore state over w with the camera in the
// start room.
func NewExploreState(cfg ExploreStateConfig, w *world.World) *ExploreState {
	if cfg.OverlayScale < 1 {
		cfg.OverlayScale = 4
	}
	s := &ExploreState{
		config:      cfg,
		world:       w,
		router:      world.NewRouter(w),
		camera:      camera.New(w.StartPosition()),
		renderer:    raycast.NewRenderer(cfg.WallTexture),
		overlay:     debug.NewTileGridRenderer(cfg.OverlayScale),
		ShowOverlay: cfg.ShowOverlay,
		ShowRoute:   cfg.ShowRoute,
		log:         logger.Named("explore"),
	}
	return s
}

// Enter is called when entering this state.
func (s *ExploreState) Enter() error {
	s.log.Info("entering explore state",
		zap.Float64("x", s.camera.X),
		zap.Float64("y", s.camera.Y),
		zap.Int("start_room", s.world.Plan().StartRoom()),
		zap.Int("end_room", s.world.Plan().EndRoom()),
	)
	return nil
}

// Exit is called when leaving this state.
func (s *ExploreState) Exit() error {
	return nil
}

// Update applies one frame of input: mouse look, regeneration, rotation,
// movement, then the overlay toggles. The heading is wrapped last.
func (s *ExploreState) Update(in input.Frame, dt float64) error {
	ctl := s.config.Controls

	if ctl.MouseLook && in.HasMouse {
		s.camera.MouseLook(in.MouseX, in.ViewWidth, ctl.MouseDivisor)
	}

	regen := in.Pressed(input.Regenerate)
	if regen {
		s.regenerate()
	}

	if in.Down(input.RotateLeft) {
		s.camera.Rotate(ctl.RotSpeed * dt)
	}
	if in.Down(input.RotateRight) {
		s.camera.Rotate(-ctl.RotSpeed * dt)
	}

	var step math.Vec2
	if in.Down(input.StrafeLeft) {
		step = step.Add(s.camera.StepTowards(0.25, ctl.MoveSpeed))
	}
	if in.Down(input.StrafeRight) {
		step = step.Add(s.camera.StepTowards(-0.25, ctl.MoveSpeed))
	}
	if in.Down(input.MoveForward) {
		step = step.Add(s.camera.StepTowards(0, ctl.MoveSpeed))
	}
	if in.Down(input.MoveBack) {
		step = step.Add(s.camera.StepTowards(0.5, ctl.MoveSpeed))
	}

	// Regenerating shows the overlay; pressing the toggle on that same
	// frame hides it again.
	if regen {
		s.ShowOverlay = false
	}
	if in.Pressed(input.ToggleOverlay) {
		s.ShowOverlay = !s.ShowOverlay
	}
	if regen {
		s.ShowOverlay = !s.ShowOverlay
	}

	s.camera.Move(step)
	s.camera.Normalize()
	return nil
}

// Render draws the ray-cast view and, when enabled, the tile overlay.
func (s *ExploreState) Render(surface gfx.Surface) error {
	s.view = s.renderer.Frame(surface, s.camera, s.world.Grid())

	if s.ShowOverlay {
		st := debug.TileGridState{
			Grid:   s.world.Grid(),
			Plan:   s.world.Plan(),
			Camera: s.camera,
			View:   s.view,
		}
		if s.ShowRoute {
			st.Route = s.router.RouteFrom(s.camera.X, s.camera.Y)
		}
		s.overlay.Draw(surface, st)
	}
	return nil
}

// Camera returns the player camera.
func (s *ExploreState) Camera() *camera.Camera {
	return s.camera
}

// World returns the dungeon being explored.
func (s *ExploreState) World() *world.World {
	return s.world
}

// Stats returns the readout for the last rendered frame.
func (s *ExploreState) Stats() Stats {
	st := Stats{
		X:            s.camera.X,
		Y:            s.camera.Y,
		Angle:        s.camera.Angle,
		DirX:         s.camera.Direction().X,
		Generation:   s.world.Generation(),
		Rooms:        s.world.Plan().Rooms(),
		OverlayShown: s.ShowOverlay,
	}
	if s.view.Columns > 0 {
		st.HitX = s.view.Last.X
		st.HitY = s.view.Last.Y
		st.Distance = s.view.Last.Distance
	}
	return st
}

// regenerate builds a new dungeon and moves the camera to its start room.
// A failed attempt keeps the current dungeon and position.
func (s *ExploreState) regenerate() {
	if err := s.world.Regenerate(); err != nil {
		s.log.Warn("keeping current dungeon", zap.Error(err))
		return
	}
	s.camera.PlaceAt(s.world.StartPosition())
}
