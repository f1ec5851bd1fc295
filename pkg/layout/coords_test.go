package layout

import (
	"testing"

	"github.com/mlorenz/asciigram/pkg/graph"
)

func TestNodeSize(t *testing.T) {
	tests := []struct {
		label   string
		padding int
		want    size
	}{
		{"Hi", 1, size{w: 6, h: 3}},
		{"Hi", 0, size{w: 4, h: 3}},
		{"a\nlonger", 1, size{w: 10, h: 4}},
		{"", 1, size{w: 4, h: 3}},
	}
	for _, tt := range tests {
		if got := nodeSize(tt.label, tt.padding); got != tt.want {
			t.Errorf("nodeSize(%q, %d) = %+v, want %+v", tt.label, tt.padding, got, tt.want)
		}
	}
}

func TestNodeSizeWideRunes(t *testing.T) {
	// CJK runes occupy two display columns each.
	got := nodeSize("日本", 1)
	want := size{w: 8, h: 3}
	if got != want {
		t.Errorf("nodeSize = %+v, want %+v", got, want)
	}
}

func TestAssignCoordsStacksLayers(t *testing.T) {
	g := chainGraph("a", "b")
	aug := buildAugmented(t, g)
	orders := minimizeCrossings(aug)
	dims := map[string]size{
		"a": {w: 5, h: 3},
		"b": {w: 5, h: 3},
	}

	pos := assignCoords(aug, orders, dims, hGap, vGap)
	if pos["a"].Y != 0 {
		t.Errorf("a.Y = %d, want 0", pos["a"].Y)
	}
	if want := 3 + vGap; pos["b"].Y != want {
		t.Errorf("b.Y = %d, want %d", pos["b"].Y, want)
	}
	if pos["a"].X != pos["b"].X {
		t.Errorf("equal-width layers misaligned: a.X=%d b.X=%d", pos["a"].X, pos["b"].X)
	}
}

func TestAssignCoordsCentersNarrowLayer(t *testing.T) {
	// One wide parent over two children: the parent centers above them.
	g := graph.New(graph.TD)
	g.AddEdge(graph.Edge{From: "p", To: "l"})
	g.AddEdge(graph.Edge{From: "p", To: "r"})

	aug := buildAugmented(t, g)
	orders := minimizeCrossings(aug)
	dims := map[string]size{
		"p": {w: 6, h: 3},
		"l": {w: 6, h: 3},
		"r": {w: 6, h: 3},
	}

	pos := assignCoords(aug, orders, dims, hGap, vGap)
	childSpan := 6 + hGap + 6
	parentCenter := pos["p"].X + 3
	if parentCenter < childSpan/2-hGap || parentCenter > childSpan/2+hGap {
		t.Errorf("parent center %d not near child span center %d", parentCenter, childSpan/2)
	}
	if pos["l"].X >= pos["r"].X {
		t.Errorf("children overlap or swapped: l.X=%d r.X=%d", pos["l"].X, pos["r"].X)
	}
}

func TestAssignCoordsNonNegative(t *testing.T) {
	g := chainGraph("a", "b", "c")
	aug := buildAugmented(t, g)
	orders := minimizeCrossings(aug)
	dims := make(map[string]size)
	for _, id := range aug.ids {
		dims[id] = size{w: 4, h: 3}
	}

	pos := assignCoords(aug, orders, dims, hGap, vGap)
	minX := 1 << 30
	for id, p := range pos {
		if p.X < 0 || p.Y < 0 {
			t.Errorf("%s at negative position %+v", id, p)
		}
		if p.X < minX {
			minX = p.X
		}
	}
	if minX != 0 {
		t.Errorf("leftmost column = %d, want 0", minX)
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{7, 2, 3},
		{-7, 2, -4},
		{6, 3, 2},
		{-6, 3, -2},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
