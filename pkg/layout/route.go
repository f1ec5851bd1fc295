package layout

import "github.com/mlorenz/asciigram/pkg/graph"

// routeMargin is the extra grid space kept around the layout so paths
// can swing past the outermost boxes.
const routeMargin = 4

// routeEdges computes a waypoint path for every edge of the graph.
//
// Each edge leaves the visual source at the midpoint just below its box
// and enters the visual target at the midpoint one row above its box;
// for an edge reversed during cycle removal the visual endpoints are
// swapped, so the path still runs downward while the arrowhead ends up
// on the semantic source side. Self-loops are skipped.
//
// The path is found by A* on an occupancy grid with every box blocked.
// When no path exists the edge falls back to a direct three-segment
// orthogonal route through the vertical midpoint between the boxes.
func routeEdges(g *graph.Graph, boxes map[string]NodeBox, reversed map[int]bool) []RoutedEdge {
	maxX, maxY := 0, 0
	for _, b := range boxes {
		if r := b.X + b.Width; r > maxX {
			maxX = r
		}
		if btm := b.Y + b.Height; btm > maxY {
			maxY = btm
		}
	}
	grid := newOccupancyGrid(maxX+routeMargin, maxY+routeMargin)
	for _, b := range boxes {
		grid.blockRect(b.X, b.Y, b.Width, b.Height)
	}

	var routed []RoutedEdge
	for i, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		visFrom, visTo := e.From, e.To
		if reversed[i] {
			visFrom, visTo = visTo, visFrom
		}
		src, okSrc := boxes[visFrom]
		dst, okDst := boxes[visTo]
		if !okSrc || !okDst {
			continue
		}

		exit := Point{X: src.X + src.Width/2, Y: src.Y + src.Height}
		entry := Point{X: dst.X + dst.Width/2, Y: dst.Y - 1}

		path := aStar(grid, exit, entry)
		if path == nil {
			midY := (exit.Y + entry.Y) / 2
			path = []Point{exit, {X: exit.X, Y: midY}, {X: entry.X, Y: midY}, entry}
		}
		path = simplifyPath(path)
		path = verticalizeEndpoints(path)

		routed = append(routed, RoutedEdge{
			From:      e.From,
			To:        e.To,
			Type:      e.Type,
			Label:     e.Label,
			Waypoints: path,
		})
	}
	return routed
}

// verticalizeEndpoints bends the path so that it leaves the source box
// and reaches the target box vertically. Arrowheads point up or down at
// a box border, never sideways into it.
func verticalizeEndpoints(path []Point) []Point {
	if len(path) < 2 {
		return path
	}

	// Final approach must be vertical: shift the second-to-last point one
	// row up and route across at that height.
	last, prev := path[len(path)-1], path[len(path)-2]
	if last.Y == prev.Y && last.X != prev.X {
		newY := prev.Y
		if prev.Y > 0 {
			newY = prev.Y - 1
		}
		path[len(path)-2] = Point{X: prev.X, Y: newY}
		path = append(path[:len(path)-1], Point{X: last.X, Y: newY}, last)
	}

	// Departure must be vertical: drop one row below the exit before
	// heading sideways.
	first, second := path[0], path[1]
	if first.Y == second.Y && first.X != second.X {
		bendY := first.Y + 1
		rest := append([]Point{}, path[1:]...)
		path = append([]Point{first, {X: first.X, Y: bendY}, {X: second.X, Y: bendY}}, rest...)
	}
	return path
}
