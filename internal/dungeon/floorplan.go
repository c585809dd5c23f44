package dungeon

import (
	"fmt"
	"strings"
)

// Plan layout.
const (
	PlanSize = RoomCols * RoomRows // 100 room cells

	// SeedCell is the grid-center cell every plan grows from.
	SeedCell = 5*RoomCols + 5
)

// Growth records one accepted growth step: the room at From opened its To
// side in direction Dir and the room at To was created.
type Growth struct {
	From int
	To   int
	Dir  Direction
}

// FloorPlan is the 10x10 layout of rooms. Each occupied cell holds the
// corridor mask of its room. Index i is room cell (row i/10, col i%10).
type FloorPlan struct {
	masks    [PlanSize]DirSet
	occupied [PlanSize]bool

	// order lists occupied cells in the order they were created.
	order  []int
	growth []Growth

	start int
	end   int
}

// NewFloorPlan returns an empty plan.
func NewFloorPlan() *FloorPlan {
	p := &FloorPlan{}
	p.Reset()
	return p
}

// Reset empties the plan.
func (p *FloorPlan) Reset() {
	p.masks = [PlanSize]DirSet{}
	p.occupied = [PlanSize]bool{}
	if p.order == nil {
		p.order = make([]int, 0, PlanSize)
	}
	p.order = p.order[:0]
	p.growth = p.growth[:0]
	p.start = SeedCell
	p.end = SeedCell
}

// Mask returns the corridor mask of cell i; 0 for unused or invalid cells.
func (p *FloorPlan) Mask(i int) DirSet {
	if i < 0 || i >= PlanSize {
		return 0
	}
	return p.masks[i]
}

// Occupied reports whether a room was placed at cell i.
func (p *FloorPlan) Occupied(i int) bool {
	return i >= 0 && i < PlanSize && p.occupied[i]
}

// Rooms returns the number of occupied cells.
func (p *FloorPlan) Rooms() int {
	return len(p.order)
}

// Order returns the occupied cells in creation order.
func (p *FloorPlan) Order() []int {
	out := make([]int, len(p.order))
	copy(out, p.order)
	return out
}

// Growth returns every accepted growth step in order.
func (p *FloorPlan) Growth() []Growth {
	out := make([]Growth, len(p.growth))
	copy(out, p.growth)
	return out
}

// StartRoom returns the cell the player starts in.
func (p *FloorPlan) StartRoom() int { return p.start }

// EndRoom returns the cell that was last offered growth.
func (p *FloorPlan) EndRoom() int { return p.end }

// OccupiedNeighbors counts the occupied 4-neighbors of cell i.
func (p *FloorPlan) OccupiedNeighbors(i int) int {
	n := 0
	for _, d := range Directions {
		if j, ok := Neighbor(i, d); ok && p.occupied[j] {
			n++
		}
	}
	return n
}

// Neighbor returns the cell next to i in direction d. ok is false when that
// would leave the plan or wrap around a row.
func Neighbor(i int, d Direction) (int, bool) {
	if i < 0 || i >= PlanSize {
		return 0, false
	}
	j := i + d.Step()
	if j < 0 || j >= PlanSize {
		return 0, false
	}
	switch d {
	case East, West:
		if j/RoomCols != i/RoomCols {
			return 0, false
		}
	case North, South:
		if j%RoomCols != i%RoomCols {
			return 0, false
		}
	}
	return j, true
}

// seed marks cell i as the first room of the plan.
func (p *FloorPlan) seed(i int) {
	p.occupied[i] = true
	p.order = append(p.order, i)
}

// grow opens d on cell from and creates the room on the other side.
func (p *FloorPlan) grow(from int, d Direction) (int, error) {
	to, ok := Neighbor(from, d)
	if !ok {
		return 0, fmt.Errorf("cell %d has no %s neighbor", from, d)
	}
	if len(p.order) >= PlanSize {
		return 0, ErrTooManyRooms
	}

	p.masks[from] = p.masks[from].With(d)
	p.masks[to] = d.Opposite().Bit()
	p.occupied[to] = true
	p.order = append(p.order, to)
	p.growth = append(p.growth, Growth{From: from, To: to, Dir: d})
	return to, nil
}

// String renders the plan as a 10x10 block: '.' for unused cells and the
// decimal mask otherwise.
func (p *FloorPlan) String() string {
	var sb strings.Builder
	for i := 0; i < PlanSize; i++ {
		switch {
		case !p.occupied[i]:
			sb.WriteString(". ")
		default:
			fmt.Fprintf(&sb, "%d ", p.masks[i])
		}
		if (i+1)%RoomCols == 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
