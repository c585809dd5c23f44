package config

import (
	"flag"
	"strconv"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSaveConfig = flag.Bool("save-config", false, "Write the effective config to the user config file and exit")
	flagRooms      = flag.Int("rooms", 0, "Number of rooms to generate")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagTexture    = flag.String("texture", "", "Wall texture image (PNG, BMP or TGA)")
)

// flagSeed is only applied when given, so any seed including 0 can be chosen.
var flagSeed seedFlag

func init() {
	flag.Var(&flagSeed, "seed", "Dungeon random seed")
}

type seedFlag struct {
	value int64
	set   bool
}

func (s *seedFlag) String() string {
	if !s.set {
		return ""
	}
	return strconv.FormatInt(s.value, 10)
}

func (s *seedFlag) Set(v string) error {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return err
	}
	s.value, s.set = n, true
	return nil
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Game.ShowFPS = true
		cfg.Game.ShowRoute = true
	}
	if flagSeed.set {
		cfg.Dungeon.Seed = flagSeed.value
	}
	if *flagRooms > 0 {
		cfg.Dungeon.Rooms = *flagRooms
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagTexture != "" {
		cfg.Data.WallTexture = *flagTexture
	}
}
