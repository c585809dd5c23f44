// Package world owns the current dungeon and its regeneration.
package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/dungeoncaster/internal/dungeon"
)

// Config holds world settings.
type Config struct {
	Rooms     int
	MaxPasses int

	// Random feeds floor growth. Nil uses a source seeded with Seed.
	Random dungeon.RandomSource
	Seed   int64

	Logger *zap.Logger
}

// World is the current tile grid and floor plan. Regeneration builds into a
// spare grid and plan and swaps them in only on success, so a failed attempt
// leaves the previous dungeon playable.
type World struct {
	grid *dungeon.Grid
	plan *dungeon.FloorPlan

	spareGrid *dungeon.Grid
	sparePlan *dungeon.FloorPlan

	gen        *dungeon.Generator
	rooms      int
	generation int
	log        *zap.Logger
}

// New creates a world and generates its first dungeon.
func New(cfg Config) (*World, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	rng := cfg.Random
	if rng == nil {
		rng = dungeon.NewRandom(cfg.Seed)
	}

	w := &World{
		grid:      dungeon.NewGrid(),
		plan:      dungeon.NewFloorPlan(),
		spareGrid: dungeon.NewGrid(),
		sparePlan: dungeon.NewFloorPlan(),
		gen: dungeon.NewGenerator(rng, dungeon.GeneratorConfig{
			MaxPasses: cfg.MaxPasses,
			Logger:    log.Named("generator"),
		}),
		rooms: cfg.Rooms,
		log:   log,
	}
	if err := w.Regenerate(); err != nil {
		return nil, fmt.Errorf("generating first dungeon: %w", err)
	}
	return w, nil
}

// Regenerate replaces the dungeon with a freshly grown one. On error the
// current dungeon is kept.
func (w *World) Regenerate() error {
	if err := w.gen.Generate(w.spareGrid, w.sparePlan, w.rooms); err != nil {
		w.log.Warn("dungeon regeneration failed",
			zap.Int("rooms", w.rooms),
			zap.Error(err),
		)
		return err
	}

	w.grid, w.spareGrid = w.spareGrid, w.grid
	w.plan, w.sparePlan = w.sparePlan, w.plan
	w.generation++

	w.log.Info("dungeon generated",
		zap.Int("generation", w.generation),
		zap.Int("rooms", w.plan.Rooms()),
		zap.Int("start_room", w.plan.StartRoom()),
		zap.Int("end_room", w.plan.EndRoom()),
	)
	return nil
}

// Grid returns the current tile grid.
func (w *World) Grid() *dungeon.Grid {
	return w.grid
}

// Plan returns the current floor plan.
func (w *World) Plan() *dungeon.FloorPlan {
	return w.plan
}

// Generation counts successful generations, starting at 1.
func (w *World) Generation() int {
	return w.generation
}

// StartPosition returns the center of the start room.
func (w *World) StartPosition() (x, y float64) {
	return dungeon.RoomCenter(w.plan.StartRoom())
}

// EndPosition returns the center of the end room.
func (w *World) EndPosition() (x, y float64) {
	return dungeon.RoomCenter(w.plan.EndRoom())
}
