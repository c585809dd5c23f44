package states

import (
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/dungeoncaster/internal/engine/gfx"
	"github.com/Faultbox/dungeoncaster/internal/engine/input"
	"github.com/Faultbox/dungeoncaster/internal/engine/texture"
	"github.com/Faultbox/dungeoncaster/internal/game/world"
	"github.com/Faultbox/dungeoncaster/internal/logger"
)

// LoadingStateConfig contains configuration for the loading state.
type LoadingStateConfig struct {
	World world.Config

	// WallTexture is an image file for the walls. Empty, or a file that
	// fails to load, falls back to a generated stone texture.
	WallTexture string
	TextureSeed int64

	Uploader gfx.TextureUploader
	Explore  ExploreStateConfig
}

// LoadingState prepares the wall texture and the first dungeon, then hands
// over to the explore state.
type LoadingState struct {
	config  LoadingStateConfig
	manager *Manager

	StatusMsg  string
	IsComplete bool

	world *world.World
	wall  gfx.Texture
	log   *zap.Logger
}

// NewLoadingState creates a new loading state.
func NewLoadingState(cfg LoadingStateConfig, manager *Manager) *LoadingState {
	return &LoadingState{
		config:    cfg,
		manager:   manager,
		StatusMsg: "Loading...",
		log:       logger.Named("loading"),
	}
}

// Enter loads the wall texture and generates the first dungeon.
func (s *LoadingState) Enter() error {
	start := time.Now()
	s.IsComplete = false

	s.StatusMsg = "Loading wall texture..."
	img := s.wallImage()
	wall, err := s.config.Uploader.UploadTexture(img)
	if err != nil {
		return fmt.Errorf("uploading wall texture: %w", err)
	}
	s.wall = wall

	s.StatusMsg = "Generating dungeon..."
	wcfg := s.config.World
	if wcfg.Logger == nil {
		wcfg.Logger = logger.Named("world")
	}
	s.world, err = world.New(wcfg)
	if err != nil {
		return err
	}

	s.IsComplete = true
	s.log.Info("loading complete",
		zap.Int("texture_width", wall.Width),
		zap.Int("texture_height", wall.Height),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// Exit is called when leaving this state.
func (s *LoadingState) Exit() error {
	return nil
}

// Update hands over to the explore state once loading is complete.
func (s *LoadingState) Update(in input.Frame, dt float64) error {
	if s.IsComplete {
		cfg := s.config.Explore
		cfg.WallTexture = s.wall
		s.manager.Change(NewExploreState(cfg, s.world))
	}
	return nil
}

// Render clears the view.
func (s *LoadingState) Render(surface gfx.Surface) error {
	w, h := surface.Size()
	surface.DrawFilledRect(gfx.Rect{W: float32(w), H: float32(h)}, gfx.ColorBlack)
	return nil
}

func (s *LoadingState) wallImage() *image.RGBA {
	if path := s.config.WallTexture; path != "" {
		img, err := texture.Load(path)
		if err == nil {
			s.log.Info("wall texture loaded", zap.String("path", path))
			return img
		}
		s.log.Warn("using generated wall texture", zap.Error(err))
	}
	return texture.StoneWall(texture.DefaultSize, s.config.TextureSeed)
}
