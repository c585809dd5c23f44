package dungeon

// Corridor gap geometry, relative to the room's top-left tile.
const gapSize = 2

var gapOffsets = [4][2]int{
	East:  {16, 6},
	South: {8, 12},
	West:  {0, 6},
	North: {8, 0},
}

// MakeRoom rasterizes one room at tile (x, y): an 18x14 wall block with a
// 16x12 floor interior and a 2x2 gap in the wall ring for each side in mask.
func MakeRoom(grid *Grid, x, y int, mask DirSet) {
	grid.SetRect(x, y, RoomWidth, RoomHeight, Wall)
	grid.SetRect(x+1, y+1, RoomWidth-2, RoomHeight-2, Floor)

	for _, d := range mask.Directions() {
		off := gapOffsets[d]
		grid.SetRect(x+off[0], y+off[1], gapSize, gapSize, Floor)
	}
}

// GenerateMap rasterizes every room of plan into grid at (col*18, row*14).
// Tiles outside the rooms are left as they are.
func GenerateMap(grid *Grid, plan *FloorPlan) {
	for i := 0; i < PlanSize; i++ {
		if !plan.Occupied(i) {
			continue
		}
		x, y := RoomOrigin(i)
		MakeRoom(grid, x, y, plan.Mask(i))
	}
}
