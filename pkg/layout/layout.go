// Package layout positions the nodes and routes the edges of a diagram
// graph on an integer character grid.
//
// The pipeline follows the classic layered (Sugiyama) approach:
//
//  1. Cycle removal: a greedy feedback-arc-set heuristic picks a vertex
//     order, edges pointing against it are reversed for layout only.
//  2. Layering: longest-path layering assigns every node a layer index.
//  3. Dummy insertion: edges spanning more than one layer are subdivided
//     so every layout edge connects adjacent layers.
//  4. Ordering: barycenter sweeps reduce edge crossings between layers.
//  5. Coordinates: nodes get character-grid boxes, layers are stacked and
//     centered, then aligned toward their neighbors.
//  6. Routing: an A* pathfinder routes each edge orthogonally around the
//     node boxes, with a direct fallback when no path exists.
//
// Grouped nodes are collapsed into a single compound box before the
// pipeline runs and expanded back into the compound interior afterwards.
//
// All phases iterate nodes in graph insertion order, so the same input
// graph always produces the same layout.
package layout

import "github.com/mlorenz/asciigram/pkg/graph"

// Grid geometry. Distances are measured in character cells.
const (
	// DefaultPadding is the horizontal padding inside a node box,
	// between the border and the label.
	DefaultPadding = 1

	// hGap is the horizontal gap between neighboring boxes in a layer.
	hGap = 4
	// vGap is the vertical gap between consecutive layers.
	vGap = 3
	// minNodeHeight is the minimum height reserved for a layer.
	minNodeHeight = 3
)

// ID prefixes for synthetic nodes. Both are invalid DSL identifiers, so
// they can never collide with user-declared nodes.
const (
	// DummyPrefix marks the invisible nodes subdividing long edges.
	DummyPrefix = "__dummy_"
	// CompoundPrefix marks the single box a collapsed group becomes.
	CompoundPrefix = "__sg_"
)

// Point is a position on the character grid. X grows rightward, Y grows
// downward.
type Point struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// NodeBox is a positioned node: its top-left corner and box dimensions
// on the grid, plus everything the renderer needs to paint it.
type NodeBox struct {
	ID     string          `json:"id" bson:"id"`
	Label  string          `json:"label" bson:"label"`
	Shape  graph.NodeShape `json:"shape" bson:"shape"`
	X      int             `json:"x" bson:"x"`
	Y      int             `json:"y" bson:"y"`
	Width  int             `json:"width" bson:"width"`
	Height int             `json:"height" bson:"height"`
}

// CompoundBox is the rendered frame of a group: a border drawn around
// the member boxes with the group name on the top row and the optional
// description above the bottom border.
type CompoundBox struct {
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	X           int    `json:"x" bson:"x"`
	Y           int    `json:"y" bson:"y"`
	Width       int    `json:"width" bson:"width"`
	Height      int    `json:"height" bson:"height"`
}

// RoutedEdge is an edge with its visual path. Waypoints run from the
// visual source to the visual target; for an edge that was reversed
// during cycle removal the visual direction is opposite to the semantic
// From -> To direction.
type RoutedEdge struct {
	From      string         `json:"from" bson:"from"`
	To        string         `json:"to" bson:"to"`
	Type      graph.EdgeType `json:"type" bson:"type"`
	Label     string         `json:"label,omitempty" bson:"label,omitempty"`
	Waypoints []Point        `json:"waypoints" bson:"waypoints"`
}

// Result is a computed layout, ready to be painted by a renderer.
// Coordinates are in the top-down reference frame; renderers transpose
// or mirror them for the other flow directions.
type Result struct {
	Direction graph.Direction `json:"direction" bson:"direction"`
	Nodes     []NodeBox       `json:"nodes" bson:"nodes"`
	Compounds []CompoundBox   `json:"compounds,omitempty" bson:"compounds,omitempty"`
	Edges     []RoutedEdge    `json:"edges,omitempty" bson:"edges,omitempty"`
}

// Options tune the layout.
type Options struct {
	// Padding is the horizontal padding inside node boxes. Values below
	// zero are treated as DefaultPadding.
	Padding int
}

func (o Options) padding() int {
	if o.Padding < 0 {
		return DefaultPadding
	}
	return o.Padding
}

// IsDummy reports whether the node ID names a dummy node.
func IsDummy(id string) bool {
	return len(id) >= len(DummyPrefix) && id[:len(DummyPrefix)] == DummyPrefix
}

// IsCompound reports whether the node ID names a collapsed group.
func IsCompound(id string) bool {
	return len(id) >= len(CompoundPrefix) && id[:len(CompoundPrefix)] == CompoundPrefix
}
