// Package main runs DungeonCaster inside a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/dungeoncaster/internal/config"
	"github.com/Faultbox/dungeoncaster/internal/engine/term"
	"github.com/Faultbox/dungeoncaster/internal/game"
	"github.com/Faultbox/dungeoncaster/internal/logger"
)

// Terminal frames are small and slow to redraw.
const (
	termOverlayScale = 1
	termFPSLimit     = 30
)

func main() {
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

	// The screen is the terminal, so logs only go to a file.
	logFile := cfg.Logging.LogFile
	if logFile == "" {
		logFile = filepath.Join(config.ConfigDir(), "caster-term.log")
	}
	if err := logger.InitWithOptions(logger.Options{
		Level: cfg.Logging.Level,
		File:  logger.DefaultFileConfig(logFile),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== DungeonCaster (terminal) ===")

	bindings, err := game.BindingsFrom(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	host, err := game.NewTermHost(term.Config{}, bindings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Terminal error: %v\n", err)
		os.Exit(1)
	}

	gcfg := game.FromConfig(cfg)
	gcfg.Loading.Explore.OverlayScale = termOverlayScale
	gcfg.Loading.Explore.Controls.MouseLook = false
	if gcfg.FPSLimit == 0 || gcfg.FPSLimit > termFPSLimit {
		gcfg.FPSLimit = termFPSLimit
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := game.New(gcfg, host)
	err = g.Run(ctx)
	g.Close()

	if err != nil {
		logger.Error("game error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Game error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("game closed normally")
}
