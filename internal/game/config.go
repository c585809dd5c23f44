package game

import (
	"fmt"

	"github.com/Faultbox/dungeoncaster/internal/config"
	"github.com/Faultbox/dungeoncaster/internal/engine/input"
	"github.com/Faultbox/dungeoncaster/internal/game/states"
	"github.com/Faultbox/dungeoncaster/internal/game/world"
)

// Title is the window title and status line prefix.
const Title = "DungeonCaster"

// FromConfig builds the game configuration from loaded settings.
func FromConfig(c *config.Config) Config {
	return Config{
		Title:         Title,
		FPSLimit:      c.Graphics.FPSLimit,
		ShowFPS:       c.Game.ShowFPS,
		ScreenshotDir: c.Data.ScreenshotDir,
		Loading: states.LoadingStateConfig{
			World: world.Config{
				Rooms:     c.Dungeon.Rooms,
				MaxPasses: c.Dungeon.MaxPasses,
				Seed:      c.Dungeon.Seed,
			},
			WallTexture: c.Data.WallTexture,
			TextureSeed: c.Data.TextureSeed,
			Explore: states.ExploreStateConfig{
				Controls: states.Controls{
					MoveSpeed:    c.Controls.MoveSpeed,
					RotSpeed:     c.Controls.RotSpeed,
					MouseDivisor: c.Controls.MouseDivisor,
					MouseLook:    c.Controls.MouseLook,
				},
				ShowOverlay:  c.Game.ShowOverlay,
				OverlayScale: c.Game.OverlayScale,
				ShowRoute:    c.Game.ShowRoute,
			},
		},
	}
}

// BindingsFrom builds key bindings from the controls section.
func BindingsFrom(c *config.Config) (*input.Bindings, error) {
	b, err := input.NewBindings(c.Controls.Keys)
	if err != nil {
		return nil, fmt.Errorf("controls: %w", err)
	}
	return b, nil
}
