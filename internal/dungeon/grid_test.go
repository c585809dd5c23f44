package dungeon

import (
	"testing"
)

func TestGrid_OutsideReadsAsWall(t *testing.T) {
	grid := NewGrid()

	tests := []struct {
		name string
		x, y int
	}{
		{"left", -1, 10},
		{"top", 10, -1},
		{"right", MapWidth, 10},
		{"bottom", 10, MapHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grid.At(tt.x, tt.y); got != Wall {
				t.Errorf("At(%d, %d) = %d, want Wall", tt.x, tt.y, got)
			}
			if !grid.IsSolid(tt.x, tt.y) {
				t.Errorf("IsSolid(%d, %d) = false", tt.x, tt.y)
			}
		})
	}

	if grid.At(0, 0) != Floor {
		t.Error("new grid should be all floor")
	}
}

func TestGrid_AtPointFloors(t *testing.T) {
	grid := NewGrid()
	grid.Set(3, 4, Wall)

	if grid.AtPoint(3.99, 4.01) != Wall {
		t.Error("(3.99, 4.01) should land in tile (3, 4)")
	}
	if grid.AtPoint(2.99, 4.5) != Floor {
		t.Error("(2.99, 4.5) should land in tile (2, 4)")
	}
	// -0.5 floors to -1, which is outside.
	if grid.AtPoint(-0.5, 4) != Wall {
		t.Error("negative coordinates should read outside the grid")
	}
}

func TestGrid_SetRectClips(t *testing.T) {
	grid := NewGrid()

	grid.SetRect(-5, -5, 10, 10, Wall)
	if n := grid.Count(Wall); n != 25 {
		t.Errorf("clipped top-left rect wrote %d tiles, want 25", n)
	}

	grid.Clear()
	grid.SetRect(MapWidth-2, MapHeight-3, 10, 10, Wall)
	if n := grid.Count(Wall); n != 6 {
		t.Errorf("clipped bottom-right rect wrote %d tiles, want 6", n)
	}

	grid.Clear()
	grid.SetRect(MapWidth+1, 0, 5, 5, Wall)
	grid.SetRect(0, 0, 0, 5, Wall)
	if n := grid.Count(Wall); n != 0 {
		t.Errorf("empty rects wrote %d tiles", n)
	}
}

func TestGrid_SetOutsideIsDropped(t *testing.T) {
	grid := NewGrid()
	grid.Set(-1, -1, Wall)
	grid.Set(MapWidth, MapHeight, Wall)
	if n := grid.Count(Wall); n != 0 {
		t.Errorf("out of range Set wrote %d tiles", n)
	}
}

func TestGrid_Clear(t *testing.T) {
	grid := NewGrid()
	grid.SetRect(0, 0, MapWidth, MapHeight, Wall)
	grid.Clear()
	if n := grid.Count(Floor); n != MapWidth*MapHeight {
		t.Errorf("after Clear %d floor tiles, want %d", n, MapWidth*MapHeight)
	}
}

func TestRoomCoordinates(t *testing.T) {
	x, y := RoomOrigin(SeedCell)
	if x != 90 || y != 70 {
		t.Errorf("RoomOrigin(55) = (%d, %d), want (90, 70)", x, y)
	}

	cx, cy := RoomCenter(SeedCell)
	if cx != 99 || cy != 77 {
		t.Errorf("RoomCenter(55) = (%v, %v), want (99, 77)", cx, cy)
	}

	if got := RoomIndexAt(int(cx), int(cy)); got != SeedCell {
		t.Errorf("RoomIndexAt(center of 55) = %d", got)
	}
	if got := RoomIndexAt(179, 139); got != 99 {
		t.Errorf("RoomIndexAt(179, 139) = %d, want 99", got)
	}
	if got := RoomIndexAt(-1, 0); got != -1 {
		t.Errorf("RoomIndexAt(-1, 0) = %d, want -1", got)
	}
}
