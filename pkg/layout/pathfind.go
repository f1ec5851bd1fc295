package layout

import "container/heap"

// occupancyGrid marks which grid cells edges may not pass through.
type occupancyGrid struct {
	width, height int
	blocked       []bool
}

func newOccupancyGrid(width, height int) *occupancyGrid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &occupancyGrid{width: width, height: height, blocked: make([]bool, width*height)}
}

// blockRect marks a rectangle as impassable, clamped to the grid.
func (g *occupancyGrid) blockRect(x, y, w, h int) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, g.width), min(y+h, g.height)
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			g.blocked[cy*g.width+cx] = true
		}
	}
}

// free reports whether the cell is inside the grid and not blocked.
func (g *occupancyGrid) free(x, y int) bool {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return false
	}
	return !g.blocked[y*g.width+x]
}

// pqItem is one open-set entry. The seq counter breaks priority ties
// first-in first-out, which keeps expansion order, and therefore the
// chosen path, deterministic.
type pqItem struct {
	priority int
	seq      int
	p        Point
}

type pointQueue []pqItem

func (q pointQueue) Len() int { return len(q) }
func (q pointQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}
func (q pointQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *pointQueue) Push(x any)        { *q = append(*q, x.(pqItem)) }
func (q *pointQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// aStar finds a 4-directional path from start to goal on the grid. The
// heuristic is Manhattan distance plus a unit corner penalty when the
// remaining offset bends, which biases the search toward paths with few
// turns. The goal cell itself may be blocked (edge entries sit directly
// above node boxes); every other cell on the path must be free.
//
// Returns nil when no path exists.
func aStar(grid *occupancyGrid, start, goal Point) []Point {
	heuristic := func(p Point) int {
		dx, dy := goal.X-p.X, goal.Y-p.Y
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		cost := dx + dy
		if dx != 0 && dy != 0 {
			cost++
		}
		return cost
	}

	open := &pointQueue{{priority: heuristic(start), seq: 0, p: start}}
	heap.Init(open)
	seq := 1

	cameFrom := make(map[Point]Point)
	costSoFar := map[Point]int{start: 0}

	for open.Len() > 0 {
		current := heap.Pop(open).(pqItem).p
		if current == goal {
			break
		}
		for _, d := range [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
			next := Point{X: current.X + d.X, Y: current.Y + d.Y}
			if next != goal && !grid.free(next.X, next.Y) {
				continue
			}
			if next == goal && (next.X < 0 || next.Y < 0 || next.X >= grid.width || next.Y >= grid.height) {
				continue
			}
			newCost := costSoFar[current] + 1
			if prev, seen := costSoFar[next]; seen && newCost >= prev {
				continue
			}
			costSoFar[next] = newCost
			cameFrom[next] = current
			heap.Push(open, pqItem{priority: newCost + heuristic(next), seq: seq, p: next})
			seq++
		}
	}

	if _, found := cameFrom[goal]; !found && start != goal {
		return nil
	}

	path := []Point{goal}
	for at := goal; at != start; {
		at = cameFrom[at]
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// simplifyPath drops intermediate points on straight runs, keeping only
// the endpoints and the direction changes.
func simplifyPath(path []Point) []Point {
	if len(path) <= 2 {
		return path
	}
	out := []Point{path[0]}
	for i := 1; i < len(path)-1; i++ {
		prev, cur, next := path[i-1], path[i], path[i+1]
		dx1, dy1 := cur.X-prev.X, cur.Y-prev.Y
		dx2, dy2 := next.X-cur.X, next.Y-cur.Y
		if dx1 == dx2 && dy1 == dy2 {
			continue
		}
		out = append(out, cur)
	}
	return append(out, path[len(path)-1])
}
