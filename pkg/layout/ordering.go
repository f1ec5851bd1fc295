package layout

import (
	"math"
	"slices"

	"github.com/mlorenz/asciigram/pkg/graph"
)

// maxOrderingPasses bounds the barycenter sweeps. Each pass is one
// downward plus one upward sweep over all layers.
const maxOrderingPasses = 24

// minimizeCrossings computes a left-to-right node order per layer using
// the barycenter heuristic. Starting from a lexicographic order, it
// alternates downward sweeps (order each layer by the mean position of
// its parents above) and upward sweeps (by the mean position of its
// children below), counting total crossings after each pass.
//
// The best ordering seen is kept, so the returned order never has more
// crossings than the initial one; the sweeps stop early once a pass no
// longer improves on the best.
func minimizeCrossings(a *augmented) [][]string {
	orders := a.byLayer()
	for _, layer := range orders {
		slices.Sort(layer)
	}
	if a.layerCount < 2 {
		return orders
	}

	parents := a.parentsOf()
	children := a.childrenOf()

	best := snapshotOrders(orders)
	bestCrossings := countCrossings(a, orders)

	for pass := 0; pass < maxOrderingPasses && bestCrossings > 0; pass++ {
		for l := 1; l < a.layerCount; l++ {
			sortByBarycenter(orders[l], parents, graph.PosMap(orders[l-1]))
		}
		for l := a.layerCount - 2; l >= 0; l-- {
			sortByBarycenter(orders[l], children, graph.PosMap(orders[l+1]))
		}

		crossings := countCrossings(a, orders)
		if crossings >= bestCrossings {
			break
		}
		best = snapshotOrders(orders)
		bestCrossings = crossings
	}
	return best
}

// sortByBarycenter stably reorders one layer by the mean position of
// each node's neighbors in the adjacent layer. Nodes without positioned
// neighbors sort to the end, keeping their relative order.
func sortByBarycenter(layer []string, neighbors map[string][]string, adjPos map[string]int) {
	bary := make(map[string]float64, len(layer))
	for _, id := range layer {
		sum, n := 0, 0
		for _, nb := range neighbors[id] {
			if p, ok := adjPos[nb]; ok {
				sum += p
				n++
			}
		}
		if n == 0 {
			bary[id] = math.Inf(1)
			continue
		}
		bary[id] = float64(sum) / float64(n)
	}
	slices.SortStableFunc(layer, func(x, y string) int {
		switch bx, by := bary[x], bary[y]; {
		case bx < by:
			return -1
		case bx > by:
			return 1
		}
		return 0
	})
}

func snapshotOrders(orders [][]string) [][]string {
	snap := make([][]string, len(orders))
	for i, layer := range orders {
		snap[i] = append([]string(nil), layer...)
	}
	return snap
}

// countCrossings sums the edge crossings between every pair of adjacent
// layers for the given per-layer orders.
func countCrossings(a *augmented, orders [][]string) int {
	children := a.childrenOf()
	total := 0
	for l := 0; l < len(orders)-1; l++ {
		total += countLayerCrossings(children, orders[l], orders[l+1])
	}
	return total
}

// countLayerCrossings counts edge crossings between two adjacent layers
// using a Fenwick tree for O(E log V) inversion counting. Two edges
// (u1,v1) and (u2,v2) cross iff pos(u1) < pos(u2) and pos(v1) > pos(v2),
// which is an inversion in the target positions once edges are sorted by
// source position.
func countLayerCrossings(children map[string][]string, upper, lower []string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := graph.PosMap(lower)

	type span struct{ upper, lower int }
	spans := make([]span, 0, len(upper)*2)
	for i, id := range upper {
		for _, child := range children[id] {
			if pos, ok := lowerPos[child]; ok {
				spans = append(spans, span{i, pos})
			}
		}
	}
	if len(spans) < 2 {
		return 0
	}

	slices.SortFunc(spans, func(a, b span) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, s := range spans {
		lessOrEqual := 0
		for q := s.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := s.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}
