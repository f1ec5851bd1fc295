package layout

import (
	"testing"

	"github.com/mlorenz/asciigram/pkg/graph"
)

func chainGraph(ids ...string) *graph.Graph {
	g := graph.New(graph.TD)
	for i := 0; i+1 < len(ids); i++ {
		g.AddEdge(graph.Edge{From: ids[i], To: ids[i+1], Type: graph.Arrow})
	}
	return g
}

func TestRemoveCyclesAcyclic(t *testing.T) {
	g := chainGraph("a", "b", "c")
	edges, reversed := removeCycles(g)

	if len(edges) != 2 {
		t.Fatalf("len(edges) = %d, want 2", len(edges))
	}
	for _, e := range edges {
		if e.Reversed {
			t.Errorf("edge %s->%s reversed in acyclic graph", e.From, e.To)
		}
	}
	if len(reversed) != 0 {
		t.Errorf("reversed = %v, want empty", reversed)
	}
}

func TestRemoveCyclesTwoNodeCycle(t *testing.T) {
	g := graph.New(graph.TD)
	g.AddEdge(graph.Edge{From: "a", To: "b"})
	g.AddEdge(graph.Edge{From: "b", To: "a"})

	edges, reversed := removeCycles(g)
	if len(edges) != 2 {
		t.Fatalf("len(edges) = %d, want 2", len(edges))
	}
	if edges[0].Reversed {
		t.Error("forward edge a->b marked reversed")
	}
	if !edges[1].Reversed {
		t.Error("back edge b->a not marked reversed")
	}
	if edges[1].From != "a" || edges[1].To != "b" {
		t.Errorf("reversed edge runs %s->%s, want a->b", edges[1].From, edges[1].To)
	}
	if !reversed[1] {
		t.Errorf("reversed index map = %v, want {1:true}", reversed)
	}
}

func TestRemoveCyclesDropsSelfLoops(t *testing.T) {
	g := graph.New(graph.TD)
	g.AddEdge(graph.Edge{From: "a", To: "a"})
	g.AddEdge(graph.Edge{From: "a", To: "b"})

	edges, _ := removeCycles(g)
	if len(edges) != 1 {
		t.Fatalf("len(edges) = %d, want 1", len(edges))
	}
	if edges[0].From != "a" || edges[0].To != "b" {
		t.Errorf("kept edge %s->%s, want a->b", edges[0].From, edges[0].To)
	}
}

func TestGreedyOrderRespectsFlow(t *testing.T) {
	// a -> b -> c with an extra a -> c shortcut: order must be a, b, c.
	g := chainGraph("a", "b", "c")
	g.AddEdge(graph.Edge{From: "a", To: "c"})

	order := greedyOrder(g)
	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("len(order) = %d, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestGreedyOrderIsDeterministic(t *testing.T) {
	g := graph.New(graph.TD)
	g.AddEdge(graph.Edge{From: "a", To: "b"})
	g.AddEdge(graph.Edge{From: "b", To: "c"})
	g.AddEdge(graph.Edge{From: "c", To: "a"})

	first := greedyOrder(g)
	for i := 0; i < 5; i++ {
		again := greedyOrder(g)
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d: order = %v, want %v", i, again, first)
			}
		}
	}
}
