package layout

import (
	"testing"

	"github.com/mlorenz/asciigram/pkg/graph"
)

func TestLayoutEmptyGraph(t *testing.T) {
	res := Layout(graph.New(graph.TD), Options{Padding: 1})
	if len(res.Nodes) != 0 || len(res.Edges) != 0 || len(res.Compounds) != 0 {
		t.Errorf("empty graph produced nodes/edges: %+v", res)
	}
}

func TestLayoutChain(t *testing.T) {
	g := graph.New(graph.TD)
	_ = g.AddNode(graph.Node{ID: "a", Label: "A"})
	_ = g.AddNode(graph.Node{ID: "b", Label: "B"})
	_ = g.AddNode(graph.Node{ID: "c", Label: "C"})
	g.AddEdge(graph.Edge{From: "a", To: "b"})
	g.AddEdge(graph.Edge{From: "b", To: "c"})

	res := Layout(g, Options{Padding: 1})
	if len(res.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(res.Nodes))
	}
	boxes := make(map[string]NodeBox)
	for _, b := range res.Nodes {
		boxes[b.ID] = b
	}
	if !(boxes["a"].Y < boxes["b"].Y && boxes["b"].Y < boxes["c"].Y) {
		t.Errorf("layers not stacked: a.Y=%d b.Y=%d c.Y=%d",
			boxes["a"].Y, boxes["b"].Y, boxes["c"].Y)
	}
	if len(res.Edges) != 2 {
		t.Fatalf("edges = %d, want 2", len(res.Edges))
	}
	for _, e := range res.Edges {
		if len(e.Waypoints) < 2 {
			t.Errorf("edge %s->%s has %d waypoints", e.From, e.To, len(e.Waypoints))
		}
	}
}

func TestLayoutDeterministic(t *testing.T) {
	build := func() *graph.Graph {
		g := graph.New(graph.TD)
		g.AddEdge(graph.Edge{From: "a", To: "b"})
		g.AddEdge(graph.Edge{From: "a", To: "c"})
		g.AddEdge(graph.Edge{From: "b", To: "d"})
		g.AddEdge(graph.Edge{From: "c", To: "d"})
		g.AddEdge(graph.Edge{From: "d", To: "a"})
		return g
	}

	first := Layout(build(), Options{Padding: 1})
	for run := 0; run < 5; run++ {
		again := Layout(build(), Options{Padding: 1})
		if len(again.Nodes) != len(first.Nodes) || len(again.Edges) != len(first.Edges) {
			t.Fatalf("run %d: shape differs", run)
		}
		for i := range first.Nodes {
			if again.Nodes[i] != first.Nodes[i] {
				t.Fatalf("run %d: node %d = %+v, want %+v", run, i, again.Nodes[i], first.Nodes[i])
			}
		}
		for i := range first.Edges {
			a, b := again.Edges[i], first.Edges[i]
			if a.From != b.From || a.To != b.To || len(a.Waypoints) != len(b.Waypoints) {
				t.Fatalf("run %d: edge %d differs", run, i)
			}
			for j := range b.Waypoints {
				if a.Waypoints[j] != b.Waypoints[j] {
					t.Fatalf("run %d: edge %d waypoint %d differs", run, i, j)
				}
			}
		}
	}
}

func TestLayoutDiamond(t *testing.T) {
	g := graph.New(graph.TD)
	g.AddEdge(graph.Edge{From: "a", To: "b"})
	g.AddEdge(graph.Edge{From: "a", To: "c"})
	g.AddEdge(graph.Edge{From: "b", To: "d"})
	g.AddEdge(graph.Edge{From: "c", To: "d"})

	res := Layout(g, Options{Padding: 1})
	boxes := make(map[string]NodeBox)
	for _, b := range res.Nodes {
		boxes[b.ID] = b
	}

	// Three layers: a on top, b and c side by side, d at the bottom.
	if !(boxes["a"].Y < boxes["b"].Y && boxes["b"].Y < boxes["d"].Y) {
		t.Errorf("layers not stacked: a.Y=%d b.Y=%d d.Y=%d",
			boxes["a"].Y, boxes["b"].Y, boxes["d"].Y)
	}
	if boxes["b"].Y != boxes["c"].Y {
		t.Errorf("b.Y=%d c.Y=%d, want same layer", boxes["b"].Y, boxes["c"].Y)
	}

	// Same-layer boxes never overlap horizontally.
	left, right := boxes["b"], boxes["c"]
	if left.X > right.X {
		left, right = right, left
	}
	if left.X+left.Width > right.X {
		t.Errorf("middle layer overlaps: %+v and %+v", boxes["b"], boxes["c"])
	}

	if len(res.Edges) != 4 {
		t.Fatalf("edges = %d, want 4", len(res.Edges))
	}
}

func TestLayoutCycleDoesNotHang(t *testing.T) {
	g := graph.New(graph.TD)
	g.AddEdge(graph.Edge{From: "a", To: "b"})
	g.AddEdge(graph.Edge{From: "b", To: "a"})

	res := Layout(g, Options{Padding: 1})
	if len(res.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(res.Nodes))
	}
	if len(res.Edges) != 2 {
		t.Fatalf("edges = %d, want both cycle edges routed", len(res.Edges))
	}
}

func TestLayoutGroups(t *testing.T) {
	g := groupedGraph(t)
	res := Layout(g, Options{Padding: 1})

	if len(res.Compounds) != 1 {
		t.Fatalf("compounds = %d, want 1", len(res.Compounds))
	}
	comp := res.Compounds[0]
	if comp.Name != "G" {
		t.Errorf("compound name = %q, want G", comp.Name)
	}

	boxes := make(map[string]NodeBox)
	for _, b := range res.Nodes {
		boxes[b.ID] = b
	}
	for _, id := range []string{"a", "b"} {
		b, ok := boxes[id]
		if !ok {
			t.Fatalf("member %s missing from result", id)
		}
		if b.X <= comp.X || b.Y <= comp.Y ||
			b.X+b.Width >= comp.X+comp.Width || b.Y+b.Height >= comp.Y+comp.Height {
			t.Errorf("member %s box %+v escapes compound %+v", id, b, comp)
		}
	}
}

func TestLayoutTransposedSwapsExtents(t *testing.T) {
	long := graph.New(graph.LR)
	_ = long.AddNode(graph.Node{ID: "a", Label: "a very wide label"})
	_ = long.AddNode(graph.Node{ID: "b", Label: "b"})
	long.AddEdge(graph.Edge{From: "a", To: "b"})

	res := Layout(long, Options{Padding: 1})
	boxes := make(map[string]NodeBox)
	for _, b := range res.Nodes {
		boxes[b.ID] = b
	}
	// In the transposed frame the wide label grows the box downward.
	if boxes["a"].Height <= boxes["a"].Width {
		t.Errorf("transposed box = %dx%d, want height > width",
			boxes["a"].Width, boxes["a"].Height)
	}
}
