package dungeon

import "strings"

// Direction is one of the four sides of a room cell.
type Direction uint8

const (
	East Direction = iota
	South
	West
	North
)

// Directions lists every direction in bit order.
var Directions = [4]Direction{East, South, West, North}

// Bit returns the corridor bit of d: east=1, south=2, west=4, north=8.
func (d Direction) Bit() DirSet {
	return 1 << d
}

// Step returns the plan index offset that moves one room cell towards d.
func (d Direction) Step() int {
	switch d {
	case East:
		return 1
	case South:
		return RoomCols
	case West:
		return -1
	case North:
		return -RoomCols
	default:
		return 0
	}
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	case North:
		return "north"
	default:
		return "unknown"
	}
}

// DirSet is the corridor mask of a room: which sides have an opening.
type DirSet uint8

// Has reports whether the set contains d.
func (s DirSet) Has(d Direction) bool {
	return s&d.Bit() != 0
}

// With returns the set with d added.
func (s DirSet) With(d Direction) DirSet {
	return s | d.Bit()
}

// Count returns the number of openings.
func (s DirSet) Count() int {
	n := 0
	for _, d := range Directions {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// Directions returns the members of the set in bit order.
func (s DirSet) Directions() []Direction {
	var dirs []Direction
	for _, d := range Directions {
		if s.Has(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func (s DirSet) String() string {
	dirs := s.Directions()
	if len(dirs) == 0 {
		return "none"
	}
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.String()
	}
	return strings.Join(names, "|")
}
