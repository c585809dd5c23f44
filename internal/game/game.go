// Package game implements the main game loop and state management.
package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/dungeoncaster/internal/engine/debug"
	"github.com/Faultbox/dungeoncaster/internal/engine/input"
	"github.com/Faultbox/dungeoncaster/internal/game/states"
	"github.com/Faultbox/dungeoncaster/internal/logger"
)

// Config holds game configuration.
type Config struct {
	Title string

	// FPSLimit caps the frame rate. Zero leaves pacing to the host.
	FPSLimit int

	// ShowFPS adds frame rate and ray readouts to the status line.
	ShowFPS bool

	ScreenshotDir string

	Loading states.LoadingStateConfig
}

// Game is the main game instance.
type Game struct {
	config  Config
	host    Host
	states  *states.Manager
	shots   *debug.ScreenshotCapture
	running bool

	fps int
	log *zap.Logger
}

// New creates a game on host. The first Update loads the wall texture and
// generates the first dungeon.
func New(cfg Config, host Host) *Game {
	g := &Game{
		config: cfg,
		host:   host,
		states: states.NewManager(),
		shots:  debug.NewScreenshotCapture(cfg.ScreenshotDir, "dungeon"),
		log:    logger.Named("game"),
	}

	loading := cfg.Loading
	loading.Uploader = host
	g.states.Change(states.NewLoadingState(loading, g.states))

	g.log.Info("game created",
		zap.String("title", cfg.Title),
		zap.Int("rooms", loading.World.Rooms),
		zap.Int64("seed", loading.World.Seed),
		zap.Int("fps_limit", cfg.FPSLimit),
	)
	return g
}

// Run runs the main loop until the player quits, the host is closed or ctx
// is done.
func (g *Game) Run(ctx context.Context) error {
	g.running = true

	var frameTime time.Duration
	if g.config.FPSLimit > 0 {
		frameTime = time.Second / time.Duration(g.config.FPSLimit)
	}

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	g.log.Info("starting game loop")

	for g.running {
		if err := ctx.Err(); err != nil {
			g.log.Info("game loop cancelled", zap.Error(err))
			break
		}

		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		frame := g.host.Poll()
		if frame.CloseRequested || frame.Pressed(input.Quit) {
			g.running = false
			break
		}

		if err := g.states.Update(frame, dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		surface := g.host.BeginFrame()
		if err := g.states.Render(surface); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		g.host.EndFrame()

		if frame.Pressed(input.Screenshot) {
			g.screenshot()
		}

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			g.fps = int(float64(frameCount) / elapsed.Seconds())
			g.log.Debug("fps", zap.Int("count", g.fps), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
		g.host.SetStatus(g.status())

		if frameTime > 0 {
			if rest := frameTime - time.Since(now); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	g.log.Info("game loop stopped")
	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")
	if g.host != nil {
		g.host.Close()
	}
}

// State returns the current game state.
func (g *Game) State() states.State {
	return g.states.Current()
}

func (g *Game) screenshot() {
	name, err := g.host.Capture(g.shots)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("file", name))
}

// status is the title line: position and heading, plus the rightmost ray
// and frame rate when ShowFPS is set.
func (g *Game) status() string {
	explore, ok := g.states.Current().(*states.ExploreState)
	if !ok {
		return g.config.Title
	}
	st := explore.Stats()
	s := fmt.Sprintf("%s | dungeon %d (%d rooms) | px %.2f py %.2f ANG %.3f",
		g.config.Title, st.Generation, st.Rooms, st.X, st.Y, st.Angle)
	if g.config.ShowFPS {
		s += fmt.Sprintf(" | X %.2f Y %.2f D %.2f VX %.2f | FPS %d",
			st.HitX, st.HitY, st.Distance, st.DirX, g.fps)
	}
	return s
}
