package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "DungeonCaster")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "DungeonCaster")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "dungeoncaster")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "dungeoncaster")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
// Key bindings named in the file replace the defaults one action at a time.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	keys := cfg.Controls.Keys
	cfg.Controls.Keys = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg.Controls.Keys = keys
		return err
	}

	merged := make(map[string]string, len(keys)+len(cfg.Controls.Keys))
	for action, key := range keys {
		merged[action] = key
	}
	for action, key := range cfg.Controls.Keys {
		merged[action] = key
	}
	cfg.Controls.Keys = merged
	return nil
}
