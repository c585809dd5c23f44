package dungeon

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// StartRoomAttempt is the growth attempt whose room becomes the start room.
const StartRoomAttempt = 16

// DefaultMaxPasses bounds the growth loop when no limit is configured.
const DefaultMaxPasses = 100000

var (
	// ErrTooManyRooms is returned when more rooms are requested than the plan holds.
	ErrTooManyRooms = errors.New("room count exceeds plan capacity")

	// ErrGenerationStalled is returned when growth makes no progress within the pass limit.
	ErrGenerationStalled = errors.New("floor generation stalled")
)

// GeneratorConfig holds generator settings.
type GeneratorConfig struct {
	// MaxPasses limits full passes over the tracked rooms. Zero means DefaultMaxPasses.
	MaxPasses int

	// Logger receives generation summaries. Nil disables logging.
	Logger *zap.Logger
}

// Generator grows floor plans and rasterizes them into a grid.
type Generator struct {
	rng       RandomSource
	maxPasses int
	log       *zap.Logger
}

// NewGenerator creates a generator drawing from rng.
func NewGenerator(rng RandomSource, cfg GeneratorConfig) *Generator {
	g := &Generator{
		rng:       rng,
		maxPasses: cfg.MaxPasses,
		log:       cfg.Logger,
	}
	if g.maxPasses <= 0 {
		g.maxPasses = DefaultMaxPasses
	}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	return g
}

// GenerateFloor resets plan and grows it to roomNum rooms around SeedCell.
//
// Every pass offers each tracked room, in creation order, one random
// direction. An offer is accepted when the neighbor is inside the plan,
// unused, has fewer than two used neighbors, and a coin flip passes. At most
// one room is added per pass. The room offered at the 16th attempt becomes
// the start room; the last room offered becomes the end room.
func (g *Generator) GenerateFloor(plan *FloorPlan, roomNum int) error {
	plan.Reset()
	if roomNum > PlanSize {
		return fmt.Errorf("%w: %d > %d", ErrTooManyRooms, roomNum, PlanSize)
	}

	plan.seed(SeedCell)
	current := SeedCell
	roomsBuilt := 1
	attempts := 0
	passes := 0

	for roomsBuilt < roomNum {
		if passes >= g.maxPasses {
			return fmt.Errorf("%w: %d of %d rooms after %d passes",
				ErrGenerationStalled, roomsBuilt, roomNum, passes)
		}
		passes++

		built := false
		for i := 0; i < roomsBuilt; i++ {
			current = plan.order[i]
			dir := g.randomDirection()

			attempts++
			if attempts == StartRoomAttempt {
				plan.start = current
			}

			if built || !g.canGrow(plan, current, dir) || !g.coinFlip() {
				continue
			}
			if _, err := plan.grow(current, dir); err != nil {
				return err
			}
			built = true
		}

		if built {
			roomsBuilt++
		}
	}
	plan.end = current

	g.log.Debug("floor generated",
		zap.Int("rooms", roomsBuilt),
		zap.Int("passes", passes),
		zap.Int("attempts", attempts),
		zap.Int("start_room", plan.start),
		zap.Int("end_room", plan.end),
	)
	g.log.Debug("floor plan\n" + plan.String())
	return nil
}

// Generate clears grid and plan, grows a new plan and rasterizes it.
func (g *Generator) Generate(grid *Grid, plan *FloorPlan, roomNum int) error {
	grid.Clear()
	if err := g.GenerateFloor(plan, roomNum); err != nil {
		return err
	}
	GenerateMap(grid, plan)
	return nil
}

// canGrow reports whether cell may open towards dir, ignoring the coin flip.
func (g *Generator) canGrow(plan *FloorPlan, cell int, dir Direction) bool {
	neighbor, ok := Neighbor(cell, dir)
	if !ok || plan.Occupied(neighbor) {
		return false
	}
	return plan.OccupiedNeighbors(neighbor) < 2
}

func (g *Generator) randomDirection() Direction {
	return Directions[g.rng.Range(0, len(Directions)-1)]
}

func (g *Generator) coinFlip() bool {
	return g.rng.Range(0, 1) == 0
}
