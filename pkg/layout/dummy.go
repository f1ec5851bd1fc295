package layout

import "fmt"

// augmented is the layered graph the ordering and coordinate phases work
// on: the original nodes plus the dummy nodes subdividing long edges,
// with every edge connecting adjacent layers.
type augmented struct {
	ids        []string // original nodes first, dummies appended in creation order
	layers     map[string]int
	layerCount int
	edges      []layoutEdge
}

// insertDummies subdivides every edge spanning more than one layer into
// a chain of unit-span segments through invisible dummy nodes. Dummy IDs
// are derived from the edge's position in the edge list and the step
// along the chain, so they are unique and deterministic.
//
// Only the final segment of a chain carries the edge's label; the
// intermediate segments keep the type so crossing counts still see them.
func insertDummies(ids []string, layers map[string]int, layerCount int, edges []layoutEdge) *augmented {
	aug := &augmented{
		ids:        append([]string(nil), ids...),
		layers:     make(map[string]int, len(layers)),
		layerCount: layerCount,
	}
	for id, l := range layers {
		aug.layers[id] = l
	}

	for i, e := range edges {
		span := aug.layers[e.To] - aug.layers[e.From]
		if span < 1 {
			panic(fmt.Sprintf("layout: edge %s->%s spans %d layers after layering", e.From, e.To, span))
		}
		if span == 1 {
			aug.edges = append(aug.edges, e)
			continue
		}

		prev := e.From
		for step := 1; step < span; step++ {
			dummy := fmt.Sprintf("%s%d_%d", DummyPrefix, i, step)
			aug.ids = append(aug.ids, dummy)
			aug.layers[dummy] = aug.layers[e.From] + step

			seg := e.Edge
			seg.Label = ""
			seg.Attrs = nil
			aug.edges = append(aug.edges, layoutEdge{From: prev, To: dummy, Reversed: e.Reversed, Edge: seg})
			prev = dummy
		}
		aug.edges = append(aug.edges, layoutEdge{From: prev, To: e.To, Reversed: e.Reversed, Edge: e.Edge})
	}
	return aug
}

// byLayer buckets the augmented node IDs per layer, preserving the
// augmented insertion order inside each bucket.
func (a *augmented) byLayer() [][]string {
	buckets := make([][]string, a.layerCount)
	for _, id := range a.ids {
		l := a.layers[id]
		buckets[l] = append(buckets[l], id)
	}
	return buckets
}

// parentsOf returns, for every node, the layout sources of its incoming
// segments in edge order.
func (a *augmented) parentsOf() map[string][]string {
	m := make(map[string][]string)
	for _, e := range a.edges {
		m[e.To] = append(m[e.To], e.From)
	}
	return m
}

// childrenOf returns, for every node, the layout targets of its outgoing
// segments in edge order.
func (a *augmented) childrenOf() map[string][]string {
	m := make(map[string][]string)
	for _, e := range a.edges {
		m[e.From] = append(m[e.From], e.To)
	}
	return m
}
