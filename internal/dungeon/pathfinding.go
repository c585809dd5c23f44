package dungeon

import (
	"container/heap"
)

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// pathNode is a node of the A* search.
type pathNode struct {
	pos    Point
	g      float64 // cost from start
	f      float64 // g + heuristic
	parent *pathNode
	index  int // index in heap
}

// pathHeap is the A* open set ordered by f.
type pathHeap []*pathNode

func (h pathHeap) Len() int           { return len(h) }
func (h pathHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h pathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *pathHeap) Push(x any) {
	node := x.(*pathNode)
	node.index = len(*h)
	*h = append(*h, node)
}

func (h *pathHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[:n-1]
	return node
}

// Neighbor offsets: straight moves first, then diagonals.
var pathSteps = [8]Point{
	{1, 0}, {0, 1}, {-1, 0}, {0, -1},
	{1, 1}, {-1, 1}, {-1, -1}, {1, -1},
}

const (
	straightCost = 1.0
	diagonalCost = 1.414
)

// PathFinder finds walkable routes through a grid.
type PathFinder struct {
	grid *Grid
}

// NewPathFinder creates a path finder over grid.
func NewPathFinder(grid *Grid) *PathFinder {
	if grid == nil {
		return nil
	}
	return &PathFinder{grid: grid}
}

// IsWalkable reports whether (x, y) is floor inside the grid.
func (pf *PathFinder) IsWalkable(x, y int) bool {
	if pf == nil || pf.grid == nil {
		return false
	}
	return pf.grid.InBounds(x, y) && pf.grid.At(x, y) != Wall
}

// FindPath returns the tiles from start to goal, both included, using A*
// with 8-way movement that never cuts a wall corner. It returns nil when
// either end is blocked or no route exists.
func (pf *PathFinder) FindPath(start, goal Point) []Point {
	if !pf.IsWalkable(start.X, start.Y) || !pf.IsWalkable(goal.X, goal.Y) {
		return nil
	}

	open := &pathHeap{}
	heap.Init(open)

	closed := make(map[Point]bool)
	nodes := make(map[Point]*pathNode)

	first := &pathNode{pos: start, f: octile(start, goal)}
	heap.Push(open, first)
	nodes[start] = first

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if current.pos == goal {
			return reconstructPath(current)
		}
		closed[current.pos] = true

		for i, step := range pathSteps {
			next := Point{current.pos.X + step.X, current.pos.Y + step.Y}
			if !pf.IsWalkable(next.X, next.Y) || closed[next] {
				continue
			}

			cost := straightCost
			if i >= 4 {
				cost = diagonalCost
				if !pf.IsWalkable(current.pos.X+step.X, current.pos.Y) ||
					!pf.IsWalkable(current.pos.X, current.pos.Y+step.Y) {
					continue
				}
			}

			g := current.g + cost
			node, seen := nodes[next]
			switch {
			case !seen:
				node = &pathNode{pos: next, g: g, f: g + octile(next, goal), parent: current}
				nodes[next] = node
				heap.Push(open, node)
			case g < node.g:
				node.f += g - node.g
				node.g = g
				node.parent = current
				heap.Fix(open, node.index)
			}
		}
	}

	return nil
}

// octile is the 8-way distance heuristic.
func octile(a, b Point) float64 {
	dx := float64(abs(b.X - a.X))
	dy := float64(abs(b.Y - a.Y))
	if dx < dy {
		return dx*diagonalCost + (dy - dx)
	}
	return dy*diagonalCost + (dx - dy)
}

func reconstructPath(node *pathNode) []Point {
	var path []Point
	for ; node != nil; node = node.parent {
		path = append(path, node.pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
