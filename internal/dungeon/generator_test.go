package dungeon

import (
	"errors"
	"testing"
)

// scriptedSource answers Range calls from a function so tests can pin
// every random decision.
type scriptedSource struct {
	next func(min, max int) int
}

func (s *scriptedSource) Range(min, max int) int {
	return s.next(min, max)
}

// reachableRooms flood-fills the plan from SeedCell through occupied cells.
func reachableRooms(plan *FloorPlan) int {
	visited := map[int]bool{SeedCell: true}
	queue := []int{SeedCell}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range Directions {
			n, ok := Neighbor(cur, d)
			if !ok || visited[n] || !plan.Occupied(n) {
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}
	return len(visited)
}

func TestGenerateFloor_RoomCountAndConnectivity(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		for n := 1; n <= 30; n++ {
			gen := NewGenerator(NewRandom(seed), GeneratorConfig{})
			plan := NewFloorPlan()
			if err := gen.GenerateFloor(plan, n); err != nil {
				t.Fatalf("seed=%d n=%d: unexpected error: %v", seed, n, err)
			}

			occupied := 0
			for i := 0; i < PlanSize; i++ {
				if plan.Occupied(i) {
					occupied++
					if n > 1 && plan.Mask(i) == 0 {
						t.Errorf("seed=%d n=%d: occupied cell %d has no openings", seed, n, i)
					}
				} else if plan.Mask(i) != 0 {
					t.Errorf("seed=%d n=%d: unused cell %d has mask %d", seed, n, i, plan.Mask(i))
				}
			}
			if occupied != n || plan.Rooms() != n {
				t.Errorf("seed=%d n=%d: %d occupied cells, Rooms()=%d", seed, n, occupied, plan.Rooms())
			}
			if got := reachableRooms(plan); got != n {
				t.Errorf("seed=%d n=%d: %d rooms reachable from seed, want %d", seed, n, got, n)
			}
		}
	}
}

func TestGenerateFloor_OpeningsAreMutual(t *testing.T) {
	gen := NewGenerator(NewRandom(3), GeneratorConfig{})
	plan := NewFloorPlan()
	if err := gen.GenerateFloor(plan, 25); err != nil {
		t.Fatalf("GenerateFloor: %v", err)
	}

	for i := 0; i < PlanSize; i++ {
		for _, d := range plan.Mask(i).Directions() {
			n, ok := Neighbor(i, d)
			if !ok {
				t.Fatalf("cell %d opens %s off the plan", i, d)
			}
			if !plan.Mask(n).Has(d.Opposite()) {
				t.Errorf("cell %d opens %s but cell %d does not open %s", i, d, n, d.Opposite())
			}
		}
	}
}

func TestGenerateFloor_NewRoomGetsSingleOppositeBit(t *testing.T) {
	gen := NewGenerator(NewRandom(7), GeneratorConfig{})
	plan := NewFloorPlan()
	if err := gen.GenerateFloor(plan, 20); err != nil {
		t.Fatalf("GenerateFloor: %v", err)
	}

	// Replay the growth log from an empty plan.
	var masks [PlanSize]DirSet
	created := map[int]bool{SeedCell: true}
	for step, g := range plan.Growth() {
		if created[g.To] {
			t.Fatalf("step %d: cell %d created twice", step, g.To)
		}
		if !created[g.From] {
			t.Fatalf("step %d: growth from unknown cell %d", step, g.From)
		}

		masks[g.From] = masks[g.From].With(g.Dir)
		masks[g.To] = g.Dir.Opposite().Bit()
		created[g.To] = true

		if masks[g.To].Count() != 1 || !masks[g.To].Has(g.Dir.Opposite()) {
			t.Errorf("step %d: new cell %d mask %v, want only %s", step, g.To, masks[g.To], g.Dir.Opposite())
		}
	}

	for i := 0; i < PlanSize; i++ {
		if masks[i] != plan.Mask(i) {
			t.Errorf("replayed mask of cell %d = %d, plan has %d", i, masks[i], plan.Mask(i))
		}
	}
}

func TestGenerateFloor_Seed16IsStable(t *testing.T) {
	run := func() *FloorPlan {
		gen := NewGenerator(NewRandom(16), GeneratorConfig{})
		plan := NewFloorPlan()
		if err := gen.GenerateFloor(plan, 8); err != nil {
			t.Fatalf("GenerateFloor: %v", err)
		}
		return plan
	}

	a, b := run(), run()

	if a.Rooms() != 8 {
		t.Errorf("expected 8 rooms, got %d", a.Rooms())
	}
	if !a.Occupied(SeedCell) || a.Mask(SeedCell) == 0 {
		t.Errorf("seed cell %d should always hold a room with an opening", SeedCell)
	}
	if a.StartRoom() != b.StartRoom() || a.EndRoom() != b.EndRoom() {
		t.Errorf("start/end not stable: (%d,%d) vs (%d,%d)", a.StartRoom(), a.EndRoom(), b.StartRoom(), b.EndRoom())
	}
	if !a.Occupied(a.StartRoom()) || !a.Occupied(a.EndRoom()) {
		t.Errorf("start %d and end %d must be rooms", a.StartRoom(), a.EndRoom())
	}
	if a.String() != b.String() {
		t.Errorf("plans differ:\n%s\nvs\n%s", a, b)
	}
}

func TestGenerateFloor_SingleRoom(t *testing.T) {
	for _, n := range []int{-3, 0, 1} {
		calls := 0
		src := &scriptedSource{next: func(min, max int) int { calls++; return min }}
		gen := NewGenerator(src, GeneratorConfig{})
		plan := NewFloorPlan()

		if err := gen.GenerateFloor(plan, n); err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if plan.Rooms() != 1 || !plan.Occupied(SeedCell) {
			t.Errorf("n=%d: expected only the seed cell, got %v", n, plan.Order())
		}
		if plan.Mask(SeedCell) != 0 {
			t.Errorf("n=%d: lone room should have no openings, got %v", n, plan.Mask(SeedCell))
		}
		if plan.StartRoom() != SeedCell || plan.EndRoom() != SeedCell {
			t.Errorf("n=%d: start/end = %d/%d, want %d", n, plan.StartRoom(), plan.EndRoom(), SeedCell)
		}
		if calls != 0 {
			t.Errorf("n=%d: no random draws expected, got %d", n, calls)
		}
	}
}

func TestGenerateFloor_ScriptedGrowth(t *testing.T) {
	// Directions: East, then West. Coins: fail, then pass.
	dirs := []int{0, 2}
	coins := []int{1, 0}
	src := &scriptedSource{next: func(min, max int) int {
		var v int
		if max == 3 {
			v, dirs = dirs[0], dirs[1:]
		} else {
			v, coins = coins[0], coins[1:]
		}
		return v
	}}

	gen := NewGenerator(src, GeneratorConfig{})
	plan := NewFloorPlan()
	if err := gen.GenerateFloor(plan, 2); err != nil {
		t.Fatalf("GenerateFloor: %v", err)
	}

	if plan.Mask(SeedCell) != West.Bit() {
		t.Errorf("seed mask = %v, want west", plan.Mask(SeedCell))
	}
	if plan.Mask(SeedCell-1) != East.Bit() {
		t.Errorf("new room mask = %v, want east", plan.Mask(SeedCell-1))
	}
	if plan.Occupied(SeedCell + 1) {
		t.Error("east neighbor should have been rejected by the coin flip")
	}
	if plan.EndRoom() != SeedCell {
		t.Errorf("end room = %d, want %d", plan.EndRoom(), SeedCell)
	}
}

func TestGenerateFloor_StartRoomIsSixteenthAttempt(t *testing.T) {
	// Always north; the very first coin fails so the 16th attempt lands on
	// the last room of the sixth pass instead of the seed cell.
	firstCoin := true
	src := &scriptedSource{next: func(min, max int) int {
		if max == 3 {
			return int(North)
		}
		if firstCoin {
			firstCoin = false
			return 1
		}
		return 0
	}}

	gen := NewGenerator(src, GeneratorConfig{})
	plan := NewFloorPlan()
	if err := gen.GenerateFloor(plan, 6); err != nil {
		t.Fatalf("GenerateFloor: %v", err)
	}

	want := []int{55, 45, 35, 25, 15, 5}
	got := plan.Order()
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if plan.StartRoom() != 15 {
		t.Errorf("start room = %d, want 15", plan.StartRoom())
	}
	if plan.EndRoom() != 15 {
		t.Errorf("end room = %d, want 15", plan.EndRoom())
	}
}

func TestGenerateFloor_TooManyRooms(t *testing.T) {
	gen := NewGenerator(NewRandom(1), GeneratorConfig{})
	err := gen.GenerateFloor(NewFloorPlan(), PlanSize+1)
	if !errors.Is(err, ErrTooManyRooms) {
		t.Errorf("expected ErrTooManyRooms, got %v", err)
	}
}

func TestGenerateFloor_StallIsReported(t *testing.T) {
	// One room per pass at most, so 50 passes can never reach 100 rooms.
	gen := NewGenerator(NewRandom(1), GeneratorConfig{MaxPasses: 50})
	err := gen.GenerateFloor(NewFloorPlan(), PlanSize)
	if !errors.Is(err, ErrGenerationStalled) {
		t.Errorf("expected ErrGenerationStalled, got %v", err)
	}
}

func TestGenerate_RegenerationClearsGrid(t *testing.T) {
	grid := NewGrid()
	plan := NewFloorPlan()
	gen := NewGenerator(NewRandom(16), GeneratorConfig{})

	if err := gen.Generate(grid, plan, 8); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Stale codes anywhere must not survive.
	grid.SetRect(0, 0, MapWidth, MapHeight, 7)

	if err := gen.Generate(grid, plan, 8); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n := grid.Count(7); n != 0 {
		t.Errorf("%d stale tiles survived regeneration", n)
	}

	for i := 0; i < PlanSize; i++ {
		x, y := RoomOrigin(i)
		want := Floor
		if plan.Occupied(i) {
			want = Wall
		}
		if got := grid.At(x, y); got != want {
			t.Errorf("room cell %d corner = %d, want %d", i, got, want)
		}
	}
}

func TestNeighbor(t *testing.T) {
	tests := []struct {
		cell int
		dir  Direction
		want int
		ok   bool
	}{
		{55, East, 56, true},
		{55, South, 65, true},
		{55, West, 54, true},
		{55, North, 45, true},
		{59, East, 0, false},  // would wrap to next row
		{50, West, 0, false},  // would wrap to previous row
		{0, West, 0, false},   // off the plan
		{5, North, 0, false},  // off the top
		{95, South, 0, false}, // off the bottom
		{90, South, 0, false}, // index 100
	}

	for _, tt := range tests {
		got, ok := Neighbor(tt.cell, tt.dir)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("Neighbor(%d, %s) = (%d, %v), want (%d, %v)", tt.cell, tt.dir, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDirectionBits(t *testing.T) {
	want := map[Direction]DirSet{East: 1, South: 2, West: 4, North: 8}
	for d, bit := range want {
		if d.Bit() != bit {
			t.Errorf("%s.Bit() = %d, want %d", d, d.Bit(), bit)
		}
		if d.Opposite().Opposite() != d {
			t.Errorf("%s opposite is not symmetric", d)
		}
	}
	if East.Opposite() != West || North.Opposite() != South {
		t.Error("unexpected opposite directions")
	}

	s := DirSet(0).With(East).With(North)
	if s != 9 || s.Count() != 2 || s.Has(South) {
		t.Errorf("DirSet east|north = %d (%v)", s, s)
	}
}

func TestFloorPlanString(t *testing.T) {
	plan := NewFloorPlan()
	plan.seed(SeedCell)
	if _, err := plan.grow(SeedCell, East); err != nil {
		t.Fatalf("grow: %v", err)
	}

	want := "" +
		". . . . . . . . . . \n" +
		". . . . . . . . . . \n" +
		". . . . . . . . . . \n" +
		". . . . . . . . . . \n" +
		". . . . . . . . . . \n" +
		". . . . . 1 4 . . . \n" +
		". . . . . . . . . . \n" +
		". . . . . . . . . . \n" +
		". . . . . . . . . . \n" +
		". . . . . . . . . . \n"
	if got := plan.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}
