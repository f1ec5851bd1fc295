package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// size is a box extent in grid cells.
type size struct{ w, h int }

// nodeSize computes the box dimensions for a label: the widest label
// line plus borders and horizontal padding, and one row per line plus
// the top and bottom border. Widths are display columns, not runes, so
// wide characters size correctly.
func nodeSize(label string, padding int) size {
	w, lines := 0, 1
	for i, line := range strings.Split(label, "\n") {
		if i > 0 {
			lines++
		}
		if lw := runewidth.StringWidth(line); lw > w {
			w = lw
		}
	}
	return size{w: w + 2 + 2*padding, h: lines + 2}
}

// assignCoords places every node of the ordered layers on the grid and
// returns the top-left corner per node ID.
//
// Layers are stacked top to bottom with vgap rows between them, each
// layer at least minNodeHeight tall. Within a layer, boxes sit side by
// side separated by hgap and the whole layer is centered under the
// widest one. Two alignment sweeps then nudge each layer toward the mean
// center of its non-dummy neighbors (parents top-down, then children
// bottom-up), skipping shifts larger than the horizontal gap. Finally
// everything is translated so the leftmost box starts at column 0.
func assignCoords(a *augmented, orders [][]string, dims map[string]size, hgap, vgap int) map[string]Point {
	pos := make(map[string]Point, len(a.ids))
	if len(orders) == 0 {
		return pos
	}

	layerHeight := make([]int, len(orders))
	layerWidth := make([]int, len(orders))
	maxWidth := 0
	for l, layer := range orders {
		h := minNodeHeight
		w := 0
		for i, id := range layer {
			if i > 0 {
				w += hgap
			}
			w += dims[id].w
			if dims[id].h > h {
				h = dims[id].h
			}
		}
		layerHeight[l] = h
		layerWidth[l] = w
		if w > maxWidth {
			maxWidth = w
		}
	}

	centerCol := maxWidth / 2
	y := 0
	for l, layer := range orders {
		x := centerCol - layerWidth[l]/2
		if x < 0 {
			x = 0
		}
		for _, id := range layer {
			pos[id] = Point{X: x, Y: y}
			x += dims[id].w + hgap
		}
		y += layerHeight[l] + vgap
	}

	parents := a.parentsOf()
	children := a.childrenOf()
	for l := 1; l < len(orders); l++ {
		alignLayer(orders[l], pos, dims, parents, hgap)
	}
	for l := len(orders) - 2; l >= 0; l-- {
		alignLayer(orders[l], pos, dims, children, hgap)
	}

	minX := 0
	first := true
	for _, id := range a.ids {
		if p := pos[id]; first || p.X < minX {
			minX = p.X
			first = false
		}
	}
	if minX != 0 {
		for id, p := range pos {
			p.X -= minX
			pos[id] = p
		}
	}
	return pos
}

// alignLayer shifts a whole layer horizontally toward the mean center of
// the non-dummy neighbors of its nodes. Shifts beyond the inter-node gap
// are skipped: a large shift means the neighborhood disagrees and moving
// would tear the layer away from its other neighbors.
func alignLayer(layer []string, pos map[string]Point, dims map[string]size, neighbors map[string][]string, hgap int) {
	center := func(id string) int { return pos[id].X + dims[id].w/2 }

	nbrSum, nbrN := 0, 0
	ownSum, ownN := 0, 0
	for _, id := range layer {
		ownSum += center(id)
		ownN++
		for _, nb := range neighbors[id] {
			if IsDummy(nb) {
				continue
			}
			nbrSum += center(nb)
			nbrN++
		}
	}
	if nbrN == 0 || ownN == 0 {
		return
	}

	shift := floorDiv(nbrSum, nbrN) - floorDiv(ownSum, ownN)
	if shift > hgap || shift < -hgap || shift == 0 {
		return
	}
	for _, id := range layer {
		p := pos[id]
		p.X += shift
		if p.X < 0 {
			p.X = 0
		}
		pos[id] = p
	}
}

// floorDiv divides rounding toward negative infinity, so means of mixed
// signs behave the same as the centering arithmetic above.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
