// Package config handles caster configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all caster settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Dungeon  DungeonConfig  `yaml:"dungeon"`
	Controls ControlsConfig `yaml:"controls"`
	Game     GameConfig     `yaml:"game"`
	Data     DataConfig     `yaml:"data"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// DungeonConfig holds generator settings.
type DungeonConfig struct {
	Seed      int64 `yaml:"seed"`
	Rooms     int   `yaml:"rooms"`
	MaxPasses int   `yaml:"max_passes"`
}

// ControlsConfig holds movement tuning and key bindings.
type ControlsConfig struct {
	MoveSpeed    float64 `yaml:"move_speed"`    // tiles per frame
	RotSpeed     float64 `yaml:"rot_speed"`     // revolutions per second
	MouseDivisor float64 `yaml:"mouse_divisor"` // larger is slower
	MouseLook    bool    `yaml:"mouse_look"`

	// Keys maps action names to key names, e.g. forward: W.
	Keys map[string]string `yaml:"keys"`
}

// GameConfig holds presentation settings.
type GameConfig struct {
	ShowOverlay  bool `yaml:"show_overlay"`
	OverlayScale int  `yaml:"overlay_scale"`
	ShowRoute    bool `yaml:"show_route"`
	ShowFPS      bool `yaml:"show_fps"`
}

// DataConfig holds asset and output paths.
type DataConfig struct {
	WallTexture   string `yaml:"wall_texture"` // empty: procedural texture
	TextureSeed   int64  `yaml:"texture_seed"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1200,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   60,
		},
		Dungeon: DungeonConfig{
			Seed:      16,
			Rooms:     8,
			MaxPasses: 100000,
		},
		Controls: ControlsConfig{
			MoveSpeed:    0.08,
			RotSpeed:     0.2,
			MouseDivisor: 5,
			MouseLook:    true,
			Keys: map[string]string{
				"forward":        "W",
				"back":           "S",
				"strafe_left":    "A",
				"strafe_right":   "D",
				"rotate_left":    "Q",
				"rotate_right":   "E",
				"regenerate":     "R",
				"toggle_overlay": "Tab",
				"screenshot":     "F12",
				"quit":           "Escape",
			},
		},
		Game: GameConfig{
			ShowOverlay:  true,
			OverlayScale: 4,
			ShowRoute:    false,
			ShowFPS:      false,
		},
		Data: DataConfig{
			WallTexture:   "",
			TextureSeed:   1,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// maxRooms is the number of room cells in a floor plan.
const maxRooms = 100

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("graphics: fps_limit %d is negative", c.Graphics.FPSLimit))
	}
	if c.Dungeon.Rooms < 1 || c.Dungeon.Rooms > maxRooms {
		errs = append(errs, fmt.Errorf("dungeon: rooms %d outside 1..%d", c.Dungeon.Rooms, maxRooms))
	}
	if c.Dungeon.MaxPasses < 0 {
		errs = append(errs, fmt.Errorf("dungeon: max_passes %d is negative", c.Dungeon.MaxPasses))
	}
	if c.Controls.MouseDivisor <= 0 {
		errs = append(errs, fmt.Errorf("controls: mouse_divisor %v must be positive", c.Controls.MouseDivisor))
	}
	if c.Game.OverlayScale <= 0 {
		errs = append(errs, fmt.Errorf("game: overlay_scale %d must be positive", c.Game.OverlayScale))
	}

	return errors.Join(errs...)
}
