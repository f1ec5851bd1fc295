package graph

import "errors"

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrInvalidGroupName is returned by [Graph.AddGroup] when the group
	// name is empty.
	ErrInvalidGroupName = errors.New("group name must not be empty")
)

// Direction is the flow direction of a diagram.
type Direction int

const (
	// TD lays the diagram out top-down (the default).
	TD Direction = iota
	// BT lays the diagram out bottom-to-top.
	BT
	// LR lays the diagram out left-to-right.
	LR
	// RL lays the diagram out right-to-left.
	RL
)

// Transposed reports whether the direction swaps the horizontal and
// vertical axes relative to the top-down baseline.
func (d Direction) Transposed() bool { return d == LR || d == RL }

// NodeShape selects the border glyphs used when a node is painted.
type NodeShape int

const (
	// Rectangle is the default box shape, written id[Label].
	Rectangle NodeShape = iota
	// Rounded uses rounded corners, written id(Label).
	Rounded
	// Diamond uses slash corners, written id{Label}.
	Diamond
	// Circle uses parenthesis sides, written id((Label)).
	Circle
)

// EdgeType is the connector variant of an edge.
type EdgeType int

const (
	// Arrow is a plain single-headed connector (-->).
	Arrow EdgeType = iota
	// Line is a plain connector without arrowheads (---).
	Line
	// DottedArrow is a dotted single-headed connector (-.->).
	DottedArrow
	// DottedLine is a dotted connector without arrowheads (-.-).
	DottedLine
	// ThickArrow is a thick single-headed connector (==>).
	ThickArrow
	// ThickLine is a thick connector without arrowheads (===).
	ThickLine
	// BidirArrow is a plain connector with arrowheads at both ends (<-->).
	BidirArrow
	// BidirDotted is a dotted connector with arrowheads at both ends (<-.->).
	BidirDotted
	// BidirThick is a thick connector with arrowheads at both ends (<==>).
	BidirThick
)

// HasArrow reports whether the edge type carries at least one arrowhead.
func (t EdgeType) HasArrow() bool { return t != Line && t != DottedLine && t != ThickLine }

// Bidirectional reports whether the edge type carries arrowheads at both ends.
func (t EdgeType) Bidirectional() bool {
	return t == BidirArrow || t == BidirDotted || t == BidirThick
}

// Attr is a free-form key/value attribute attached to a node or edge.
type Attr struct {
	Key   string `json:"key" bson:"key"`
	Value string `json:"value" bson:"value"`
}

// Node is a vertex of the diagram graph.
//
// Label may contain newlines; the layout sizes the node box from the widest
// line and the line count. A node that is only ever referenced as an edge
// endpoint gets a placeholder with Label == ID and Rectangle shape.
type Node struct {
	ID    string    `json:"id" bson:"id"`
	Label string    `json:"label" bson:"label"`
	Shape NodeShape `json:"shape,omitempty" bson:"shape,omitempty"`
	Group string    `json:"group,omitempty" bson:"group,omitempty"`
	Attrs []Attr    `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From  string   `json:"from" bson:"from"`
	To    string   `json:"to" bson:"to"`
	Type  EdgeType `json:"type,omitempty" bson:"type,omitempty"`
	Label string   `json:"label,omitempty" bson:"label,omitempty"`
	Attrs []Attr   `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// Group is a named subgraph: an ordered list of member node IDs, optionally
// nested groups and a one-line description rendered inside the group box.
type Group struct {
	Name        string   `json:"name" bson:"name"`
	Members     []string `json:"members" bson:"members"`
	Groups      []Group  `json:"groups,omitempty" bson:"groups,omitempty"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
}

// GroupEntry is one flattened group: its name, description and the member
// IDs declared directly in it.
type GroupEntry struct {
	Name        string
	Members     []string
	Description string
}

// Graph is the directed multigraph consumed by the layout pipeline.
//
// Node iteration order is the insertion order, which makes every downstream
// phase deterministic: the same input always produces the same output.
// Graph is not safe for concurrent mutation; renders only read it.
type Graph struct {
	direction Direction
	nodes     map[string]*Node
	order     []string // node IDs in insertion order
	edges     []Edge
	outgoing  map[string][]string
	incoming  map[string][]string
	groups    []Group
}

// New creates an empty graph with the given flow direction.
func New(direction Direction) *Graph {
	return &Graph{
		direction: direction,
		nodes:     make(map[string]*Node),
		outgoing:  make(map[string][]string),
		incoming:  make(map[string][]string),
	}
}

// Direction returns the diagram flow direction.
func (g *Graph) Direction() Direction { return g.direction }

// SetDirection overrides the diagram flow direction.
func (g *Graph) SetDirection(d Direction) { g.direction = d }

// AddNode declares a node. The first declaration of an ID wins: declaring
// the same ID again is a no-op, so a bare reference that arrived before the
// full declaration does not lose its label. Returns ErrInvalidNodeID for an
// empty ID.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return nil
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	return nil
}

// EnsureNode declares a placeholder for id if no node with that ID exists:
// label equal to the ID, rectangle shape. Used for edge endpoints that were
// never declared.
func (g *Graph) EnsureNode(id string) {
	if id == "" {
		return
	}
	if _, exists := g.nodes[id]; exists {
		return
	}
	_ = g.AddNode(Node{ID: id, Label: id, Shape: Rectangle})
}

// AddEdge adds a directed edge. Endpoints that were never declared get
// placeholder nodes. Multiple edges between the same pair are allowed.
func (g *Graph) AddEdge(e Edge) {
	g.EnsureNode(e.From)
	g.EnsureNode(e.To)
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
}

// AddGroup declares a top-level group. Returns ErrInvalidGroupName for an
// empty name.
func (g *Graph) AddGroup(grp Group) error {
	if grp.Name == "" {
		return ErrInvalidGroupName
	}
	g.groups = append(g.groups, grp)
	return nil
}

// Node returns the node with the given ID and true, or nil and false.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The returned slice contains
// pointers to the live node structs.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// NodeIDs returns all node IDs in insertion order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the targets of the node's outgoing edges, in edge
// insertion order. The returned slice is a read-only view.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the sources of the node's incoming edges, in edge
// insertion order. The returned slice is a read-only view.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Groups returns the declared top-level groups.
func (g *Graph) Groups() []Group { return g.groups }

// HasGroups reports whether any group was declared.
func (g *Graph) HasGroups() bool { return len(g.groups) > 0 }

// GroupList returns every group, nested ones included, flattened in
// declaration order (outer before inner).
func (g *Graph) GroupList() []GroupEntry {
	var entries []GroupEntry
	var walk func(groups []Group)
	walk = func(groups []Group) {
		for _, grp := range groups {
			entries = append(entries, GroupEntry{
				Name:        grp.Name,
				Members:     grp.Members,
				Description: grp.Description,
			})
			walk(grp.Groups)
		}
	}
	walk(g.groups)
	return entries
}

// PosMap creates a position lookup map from a slice of node IDs: each ID
// maps to its index in the slice.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}
