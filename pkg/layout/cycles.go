package layout

import "github.com/mlorenz/asciigram/pkg/graph"

// layoutEdge is one edge as the layered phases see it. From and To point
// in layout direction (always acyclic); Edge keeps the semantic record,
// and Reversed marks edges that were flipped during cycle removal.
type layoutEdge struct {
	From     string
	To       string
	Reversed bool
	Edge     graph.Edge
}

// greedyOrder computes a vertex sequence with few edges pointing
// backwards, using the greedy feedback-arc-set heuristic of Eades, Lin
// and Smyth. Sinks are peeled to the tail, sources to the head, and when
// neither exists the node maximizing out-degree minus in-degree moves to
// the head. Self-loops are ignored for the degree bookkeeping.
//
// Ties are broken by graph insertion order: the first sink, source or
// maximum found in a scan wins, so the sequence is deterministic.
func greedyOrder(g *graph.Graph) []string {
	ids := g.NodeIDs()
	edges := g.Edges()
	remaining := make(map[string]bool, len(ids))
	out := make(map[string]int, len(ids))
	in := make(map[string]int, len(ids))
	for _, id := range ids {
		remaining[id] = true
	}
	for _, e := range edges {
		if e.From == e.To {
			continue
		}
		out[e.From]++
		in[e.To]++
	}

	remove := func(id string) {
		delete(remaining, id)
		// Degrees of the survivors shrink by the edges touching id.
		for _, e := range edges {
			if e.From == e.To {
				continue
			}
			if e.From == id && remaining[e.To] {
				in[e.To]--
			}
			if e.To == id && remaining[e.From] {
				out[e.From]--
			}
		}
	}

	var head, tail []string
	for len(remaining) > 0 {
		// Peel sinks.
		for {
			sink := ""
			for _, id := range ids {
				if remaining[id] && out[id] == 0 {
					sink = id
					break
				}
			}
			if sink == "" {
				break
			}
			tail = append(tail, sink)
			remove(sink)
		}
		// Peel sources.
		for {
			source := ""
			for _, id := range ids {
				if remaining[id] && out[id] > 0 && in[id] == 0 {
					source = id
					break
				}
			}
			if source == "" {
				break
			}
			head = append(head, source)
			remove(source)
		}
		if len(remaining) == 0 {
			break
		}
		// Neither: take the node with the largest out-in delta.
		best := ""
		bestDelta := 0
		for _, id := range ids {
			if !remaining[id] {
				continue
			}
			delta := out[id] - in[id]
			if best == "" || delta > bestDelta {
				best = id
				bestDelta = delta
			}
		}
		head = append(head, best)
		remove(best)
	}

	order := make([]string, 0, len(ids))
	order = append(order, head...)
	for i := len(tail) - 1; i >= 0; i-- {
		order = append(order, tail[i])
	}
	return order
}

// removeCycles converts the graph's edges into an acyclic layout edge
// list. Edges that point backwards against the greedy vertex order are
// reversed and marked; self-loops are dropped entirely (they are never
// layered or routed). The second return value maps the index of each
// reversed edge in g.Edges() to true, for the routing phase.
func removeCycles(g *graph.Graph) ([]layoutEdge, map[int]bool) {
	pos := graph.PosMap(greedyOrder(g))

	edges := make([]layoutEdge, 0, g.EdgeCount())
	reversed := make(map[int]bool)
	for i, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		if pos[e.From] > pos[e.To] {
			edges = append(edges, layoutEdge{From: e.To, To: e.From, Reversed: true, Edge: e})
			reversed[i] = true
			continue
		}
		edges = append(edges, layoutEdge{From: e.From, To: e.To, Edge: e})
	}
	return edges, reversed
}
