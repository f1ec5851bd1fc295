package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// wireGraph is the canonical serialization format for the graph IR.
// It is used by the HTTP server, the JSON output format and tests. The
// format is human-readable and round-trips: import → export → re-import
// produces an identical graph.
type wireGraph struct {
	Direction string     `json:"direction" bson:"direction"`
	Nodes     []wireNode `json:"nodes" bson:"nodes"`
	Edges     []wireEdge `json:"edges,omitempty" bson:"edges,omitempty"`
	Groups    []Group    `json:"groups,omitempty" bson:"groups,omitempty"`
}

type wireNode struct {
	ID    string `json:"id" bson:"id"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
	Shape string `json:"shape,omitempty" bson:"shape,omitempty"`
	Group string `json:"group,omitempty" bson:"group,omitempty"`
	Attrs []Attr `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

type wireEdge struct {
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Type  string `json:"type,omitempty" bson:"type,omitempty"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
	Attrs []Attr `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// Direction <-> string mapping.

var directionNames = map[Direction]string{TD: "TD", BT: "BT", LR: "LR", RL: "RL"}

// String returns the canonical name of the direction (TD, BT, LR, RL).
func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return "TD"
}

// ParseDirection parses a direction name. TB is accepted as an alias for
// TD, matching the diagram DSL. Unknown names return an error.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "TD", "TB", "td", "tb":
		return TD, nil
	case "BT", "bt":
		return BT, nil
	case "LR", "lr":
		return LR, nil
	case "RL", "rl":
		return RL, nil
	}
	return TD, fmt.Errorf("unknown direction %q (must be TD, BT, LR or RL)", s)
}

var shapeNames = map[NodeShape]string{
	Rectangle: "rectangle",
	Rounded:   "rounded",
	Diamond:   "diamond",
	Circle:    "circle",
}

var shapeValues = map[string]NodeShape{
	"rectangle": Rectangle,
	"rounded":   Rounded,
	"diamond":   Diamond,
	"circle":    Circle,
}

// String returns the canonical name of the shape.
func (s NodeShape) String() string {
	if n, ok := shapeNames[s]; ok {
		return n
	}
	return "rectangle"
}

var edgeTypeNames = map[EdgeType]string{
	Arrow:       "arrow",
	Line:        "line",
	DottedArrow: "dotted_arrow",
	DottedLine:  "dotted_line",
	ThickArrow:  "thick_arrow",
	ThickLine:   "thick_line",
	BidirArrow:  "bidir_arrow",
	BidirDotted: "bidir_dotted",
	BidirThick:  "bidir_thick",
}

var edgeTypeValues = func() map[string]EdgeType {
	m := make(map[string]EdgeType, len(edgeTypeNames))
	for t, n := range edgeTypeNames {
		m[n] = t
	}
	return m
}()

// String returns the canonical name of the edge type.
func (t EdgeType) String() string {
	if n, ok := edgeTypeNames[t]; ok {
		return n
	}
	return "arrow"
}

// Marshal serializes the graph to indented JSON.
func Marshal(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes the graph as indented JSON to w.
func Write(g *Graph, w io.Writer) error {
	out := wireGraph{
		Direction: g.Direction().String(),
		Nodes:     make([]wireNode, 0, g.NodeCount()),
		Groups:    g.Groups(),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, wireNode{
			ID:    n.ID,
			Label: n.Label,
			Shape: n.Shape.String(),
			Group: n.Group,
			Attrs: n.Attrs,
		})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, wireEdge{
			From:  e.From,
			To:    e.To,
			Type:  e.Type.String(),
			Label: e.Label,
			Attrs: e.Attrs,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// Unmarshal deserializes a graph from JSON bytes.
func Unmarshal(data []byte) (*Graph, error) {
	return Read(bytes.NewReader(data))
}

// Read deserializes a graph from JSON read from r. Unknown shape or edge
// type names fall back to the defaults rather than failing, so a newer
// producer does not break an older consumer.
func Read(r io.Reader) (*Graph, error) {
	var in wireGraph
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}

	dir := TD
	if in.Direction != "" {
		d, err := ParseDirection(in.Direction)
		if err != nil {
			return nil, err
		}
		dir = d
	}

	g := New(dir)
	for _, n := range in.Nodes {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		if err := g.AddNode(Node{
			ID:    n.ID,
			Label: label,
			Shape: shapeValues[n.Shape],
			Group: n.Group,
			Attrs: n.Attrs,
		}); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range in.Edges {
		g.AddEdge(Edge{
			From:  e.From,
			To:    e.To,
			Type:  edgeTypeValues[e.Type],
			Label: e.Label,
			Attrs: e.Attrs,
		})
	}
	for _, grp := range in.Groups {
		if err := g.AddGroup(grp); err != nil {
			return nil, fmt.Errorf("group %s: %w", grp.Name, err)
		}
	}
	return g, nil
}
