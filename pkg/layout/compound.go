package layout

import (
	"github.com/mattn/go-runewidth"

	"github.com/mlorenz/asciigram/pkg/graph"
)

// groupGapX is the gap between member boxes inside a compound, and the
// horizontal padding between the compound border and its content.
const groupGapX = 1

// compoundMeta carries what the pipeline needs to know about one
// collapsed group: its synthetic node ID, the member IDs in declaration
// order, and the box size the members will need once expanded. The size
// is in display orientation; the engine swaps it for transposed
// directions like any other node box.
type compoundMeta struct {
	id      string
	name    string
	desc    string
	members []string
	display size
}

// edgeKey identifies a redirected edge for deduplication. graph.Edge
// itself carries an attribute slice and cannot be a map key.
type edgeKey struct {
	from, to string
	typ      graph.EdgeType
}

// collapseGroups replaces every group with a single compound node sized
// to hold its members, returning the collapsed graph and the metadata
// needed to expand it again.
//
// Edges touching a member are redirected to its compound; redirected
// duplicates are dropped, as are edges whose endpoints land on the same
// compound. A node claimed by several groups belongs to the first group
// declaring it.
func collapseGroups(g *graph.Graph, padding int) (*graph.Graph, []compoundMeta) {
	entries := g.GroupList()

	memberOf := make(map[string]string)
	metas := make([]compoundMeta, 0, len(entries))
	for _, entry := range entries {
		meta := compoundMeta{
			id:   CompoundPrefix + entry.Name,
			name: entry.Name,
			desc: entry.Description,
		}
		for _, m := range entry.Members {
			if _, taken := memberOf[m]; taken {
				continue
			}
			memberOf[m] = meta.id
			meta.members = append(meta.members, m)
		}
		meta.display = compoundSize(g, meta, padding)
		metas = append(metas, meta)
	}

	collapsed := graph.New(g.Direction())
	for _, meta := range metas {
		_ = collapsed.AddNode(graph.Node{ID: meta.id, Label: meta.name, Shape: graph.Rectangle})
	}
	for _, n := range g.Nodes() {
		if _, member := memberOf[n.ID]; member {
			continue
		}
		_ = collapsed.AddNode(*n)
	}

	seen := make(map[edgeKey]bool)
	for _, e := range g.Edges() {
		from, to := e.From, e.To
		redirected := false
		if c, ok := memberOf[from]; ok {
			from, redirected = c, true
		}
		if c, ok := memberOf[to]; ok {
			to, redirected = c, true
		}
		if from == to {
			continue
		}
		if redirected {
			key := edgeKey{from: from, to: to, typ: e.Type}
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		collapsed.AddEdge(graph.Edge{From: from, To: to, Type: e.Type, Label: e.Label, Attrs: e.Attrs})
	}
	return collapsed, metas
}

// compoundSize computes the display-orientation box of a compound: wide
// enough for the member row, the group name and the description, tall
// enough for the border rows, the title row, the tallest member and the
// optional description row.
func compoundSize(g *graph.Graph, meta compoundMeta, padding int) size {
	contentW, maxMemberH := 0, 0
	for i, m := range meta.members {
		if i > 0 {
			contentW += groupGapX
		}
		ms := memberSize(g, m, padding)
		contentW += ms.w
		if ms.h > maxMemberH {
			maxMemberH = ms.h
		}
	}

	inner := contentW
	if tw := runewidth.StringWidth(meta.name) + 4; tw > inner {
		inner = tw
	}
	descRows := 0
	if meta.desc != "" {
		descRows = 1
		if dw := runewidth.StringWidth(meta.desc) + 4; dw > inner {
			inner = dw
		}
	}

	w := inner + 2 + 2*groupGapX
	if len(meta.members) == 0 {
		return size{w: w, h: minNodeHeight + descRows}
	}
	return size{w: w, h: 2 + 1 + maxMemberH + descRows}
}

// memberSize is the display box of one member node, or a minimal box for
// an ID that was declared only inside the group block.
func memberSize(g *graph.Graph, id string, padding int) size {
	if n, ok := g.Node(id); ok {
		return nodeSize(n.Label, padding)
	}
	return size{w: 3 + 2*padding, h: minNodeHeight}
}

// expandMembers lays the members of each compound out in a row inside
// the compound interior, below the title row. Positions and dimensions
// are in layout orientation: for transposed directions the members
// advance along layout Y so they still form a row after the renderer
// transposes the result.
func expandMembers(g *graph.Graph, metas []compoundMeta, pos map[string]Point, padding int, transposed bool) []NodeBox {
	var boxes []NodeBox
	for _, meta := range metas {
		origin, ok := pos[meta.id]
		if !ok {
			continue
		}
		x := origin.X + 1 + groupGapX
		y := origin.Y + 2
		for _, m := range meta.members {
			ms := memberSize(g, m, padding)
			if transposed {
				ms = size{w: ms.h, h: ms.w}
			}
			box := NodeBox{ID: m, X: x, Y: y, Width: ms.w, Height: ms.h}
			if n, nok := g.Node(m); nok {
				box.Label = n.Label
				box.Shape = n.Shape
			} else {
				box.Label = m
			}
			boxes = append(boxes, box)

			if transposed {
				y += ms.h + groupGapX
				continue
			}
			x += ms.w + groupGapX
		}
	}
	return boxes
}
