// Package main is the entry point for the DungeonCaster window client.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/dungeoncaster/internal/config"
	"github.com/Faultbox/dungeoncaster/internal/engine/window"
	"github.com/Faultbox/dungeoncaster/internal/game"
	"github.com/Faultbox/dungeoncaster/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", path)
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== DungeonCaster ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	bindings, err := game.BindingsFrom(cfg)
	if err != nil {
		logger.Error("invalid key bindings", zap.Error(err))
		os.Exit(1)
	}

	host, err := game.NewSDLHost(window.Config{
		Title:      game.Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, bindings, cfg.Controls.MouseLook)
	if err != nil {
		logger.Error("failed to create window", zap.Error(err))
		os.Exit(1)
	}

	g := game.New(game.FromConfig(cfg), host)
	defer g.Close()

	if err := g.Run(context.Background()); err != nil {
		logger.Error("game error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("game closed normally")
}
