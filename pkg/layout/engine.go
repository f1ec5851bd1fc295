package layout

import "github.com/mlorenz/asciigram/pkg/graph"

// Layout runs the full pipeline on a graph and returns the positioned
// result. The computation is pure and single threaded: it never fails,
// and the same graph and options always produce the same result.
//
// For LR and RL diagrams the phases run with width and height swapped;
// the result stays in that transposed frame and the renderer swaps the
// axes back, so Result coordinates are always layer-major top-down.
func Layout(g *graph.Graph, opts Options) Result {
	res := Result{Direction: g.Direction()}
	if g.NodeCount() == 0 {
		return res
	}

	padding := opts.padding()
	transposed := g.Direction().Transposed()

	work := g
	var metas []compoundMeta
	if g.HasGroups() {
		work, metas = collapseGroups(g, padding)
	}

	edges, reversed := removeCycles(work)
	layers, layerCount := assignLayers(work.NodeIDs(), edges)
	aug := insertDummies(work.NodeIDs(), layers, layerCount, edges)
	orders := minimizeCrossings(aug)

	compoundSizes := make(map[string]size, len(metas))
	for _, meta := range metas {
		compoundSizes[meta.id] = meta.display
	}

	dims := make(map[string]size, len(aug.ids))
	for _, id := range aug.ids {
		switch {
		case IsDummy(id):
			dims[id] = size{w: 1, h: 1}
			continue
		case IsCompound(id):
			dims[id] = compoundSizes[id]
		default:
			n, ok := work.Node(id)
			if !ok {
				dims[id] = size{w: 3 + 2*padding, h: minNodeHeight}
				break
			}
			dims[id] = nodeSize(n.Label, padding)
		}
		if transposed {
			d := dims[id]
			dims[id] = size{w: d.h, h: d.w}
		}
	}

	hg, vg := hGap, vGap
	if transposed {
		hg, vg = vGap, hGap
	}
	pos := assignCoords(aug, orders, dims, hg, vg)

	boxes := make(map[string]NodeBox, work.NodeCount())
	for _, n := range work.Nodes() {
		p, ok := pos[n.ID]
		if !ok {
			continue
		}
		d := dims[n.ID]
		boxes[n.ID] = NodeBox{
			ID:     n.ID,
			Label:  n.Label,
			Shape:  n.Shape,
			X:      p.X,
			Y:      p.Y,
			Width:  d.w,
			Height: d.h,
		}
	}

	for _, n := range work.Nodes() {
		if IsCompound(n.ID) {
			continue
		}
		res.Nodes = append(res.Nodes, boxes[n.ID])
	}
	if len(metas) > 0 {
		res.Nodes = append(res.Nodes, expandMembers(g, metas, pos, padding, transposed)...)
		for _, meta := range metas {
			b, ok := boxes[meta.id]
			if !ok {
				continue
			}
			res.Compounds = append(res.Compounds, CompoundBox{
				Name:        meta.name,
				Description: meta.desc,
				X:           b.X,
				Y:           b.Y,
				Width:       b.Width,
				Height:      b.Height,
			})
		}
	}

	res.Edges = routeEdges(work, boxes, reversed)
	return res
}
