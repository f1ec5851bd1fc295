package layout

// assignLayers computes longest-path layers by relaxation: every node
// starts at layer 0 and each edge pushes its target at least one layer
// below its source until the assignment is stable. The edge list must be
// acyclic or the relaxation would never terminate.
//
// The second return value is the layer count: highest layer + 1, or 1
// for a graph with no nodes.
func assignLayers(ids []string, edges []layoutEdge) (map[string]int, int) {
	layers := make(map[string]int, len(ids))
	for _, id := range ids {
		layers[id] = 0
	}

	for changed := true; changed; {
		changed = false
		for _, e := range edges {
			if layers[e.To] <= layers[e.From] {
				layers[e.To] = layers[e.From] + 1
				changed = true
			}
		}
	}

	max := 0
	for _, l := range layers {
		if l > max {
			max = l
		}
	}
	return layers, max + 1
}
