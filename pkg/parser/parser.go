// Package parser turns Mermaid-style flowchart source into a diagram
// graph.
//
// The parser is a hand-written recursive descent over a rune cursor. It
// is deliberately tolerant: anything it cannot make sense of is skipped
// one rune at a time, so a stray character never aborts the whole
// diagram. The accepted grammar covers:
//
//	flowchart LR                     header (graph is an alias)
//	a[Label] --> b(Rounded)          nodes with shapes and an edge
//	b --> c{Diamond} --> d((Circle)) edge chains
//	a -->|yes| b                     edge labels
//	a -.-> b, a ==> b, a <--> b      dotted, thick, bidirectional
//	subgraph name [Description]      groups, nestable, closed by end
//	%% comment                       comments to end of line
//
// Node IDs are identifiers ([a-zA-Z_][a-zA-Z0-9_-]*). Labels may be
// quoted, with \n, \" and \\ escapes. The first definition of a node
// wins; later redeclarations keep the original label and shape.
package parser

import (
	"strings"

	"github.com/mlorenz/asciigram/pkg/graph"
)

// connector maps edge syntax to edge types, longest pattern first so
// <--> is not consumed as <-- plus >.
var connectors = []struct {
	token string
	typ   graph.EdgeType
}{
	{"<-.->", graph.BidirDotted},
	{"<==>", graph.BidirThick},
	{"<-->", graph.BidirArrow},
	{"-.->", graph.DottedArrow},
	{"==>", graph.ThickArrow},
	{"-->", graph.Arrow},
	{"-.-", graph.DottedLine},
	{"===", graph.ThickLine},
	{"---", graph.Line},
}

// Parse parses flowchart source into a graph. Parsing is tolerant and
// never fails: unparseable input is skipped. An empty or all-comment
// source yields an empty graph.
func Parse(src string) *graph.Graph {
	p := &parser{
		cur: cursor{src: []rune(src)},
		g:   graph.New(graph.TD),
	}
	p.run()
	return p.g
}

type parser struct {
	cur cursor
	g   *graph.Graph
}

func (p *parser) run() {
	for !p.cur.eof() {
		p.cur.skipBlank()
		if p.cur.eof() {
			return
		}

		switch {
		case p.cur.matchKeyword("flowchart"), p.cur.matchKeyword("graph"):
			p.parseHeader()
		case p.cur.matchKeyword("subgraph"):
			if grp, ok := p.parseSubgraph(); ok {
				_ = p.g.AddGroup(grp)
			}
		case p.parseStatement("", nil):
		default:
			// Nothing matched at this position; skip one rune.
			p.cur.pos++
		}
	}
}

func (p *parser) parseHeader() {
	p.cur.skipSpaces()
	if word := p.cur.ident(); word != "" {
		if d, err := graph.ParseDirection(word); err == nil {
			p.g.SetDirection(d)
		}
	}
	p.cur.skipToLineEnd()
}

// parseStatement parses one node or edge chain. The group name is
// attached to every node the statement declares; when ids is non-nil
// every referenced node ID is appended to it. Reports whether any input
// was consumed.
func (p *parser) parseStatement(group string, ids *[]string) bool {
	from, ok := p.parseNode(group)
	if !ok {
		return false
	}
	if ids != nil {
		*ids = append(*ids, from)
	}

	for {
		p.cur.skipSpaces()
		typ, ok := p.parseConnector()
		if !ok {
			break
		}
		label := p.parseEdgeLabel()
		p.cur.skipSpaces()
		to, ok := p.parseNode(group)
		if !ok {
			break
		}
		if ids != nil {
			*ids = append(*ids, to)
		}
		p.g.AddEdge(graph.Edge{From: from, To: to, Type: typ, Label: label})
		from = to
	}
	return true
}

// parseNode parses an identifier with an optional shape declaration and
// upserts it into the graph. Returns the node ID.
func (p *parser) parseNode(group string) (string, bool) {
	id := p.cur.ident()
	if id == "" {
		return "", false
	}

	shape, label, declared := p.parseShape()
	if !declared {
		label = id
	}
	_ = p.g.AddNode(graph.Node{ID: id, Label: label, Shape: shape, Group: group})
	return id, true
}

// parseShape parses one of the shape declarations following a node ID:
// [label], (label), ((label)) or {label}. Reports whether a shape was
// present.
func (p *parser) parseShape() (graph.NodeShape, string, bool) {
	switch {
	case p.cur.match("(("):
		return graph.Circle, p.label("))"), true
	case p.cur.match("["):
		return graph.Rectangle, p.label("]"), true
	case p.cur.match("("):
		return graph.Rounded, p.label(")"), true
	case p.cur.match("{"):
		return graph.Diamond, p.label("}"), true
	}
	return graph.Rectangle, "", false
}

// label reads the label text up to the closing delimiter. Quoted labels
// support escapes; raw labels are trimmed. A missing delimiter closes
// the label at end of input.
func (p *parser) label(closing string) string {
	p.cur.skipSpaces()
	if p.cur.peek() == '"' {
		s := p.cur.quoted()
		p.cur.skipSpaces()
		p.cur.match(closing)
		return s
	}

	start := p.cur.pos
	for !p.cur.eof() && !p.cur.lookingAt(closing) && p.cur.peek() != '\n' {
		p.cur.pos++
	}
	s := strings.TrimSpace(string(p.cur.src[start:p.cur.pos]))
	p.cur.match(closing)
	return s
}

func (p *parser) parseConnector() (graph.EdgeType, bool) {
	for _, c := range connectors {
		if p.cur.match(c.token) {
			return c.typ, true
		}
	}
	return graph.Arrow, false
}

// parseEdgeLabel parses an optional |label| directly after a connector.
func (p *parser) parseEdgeLabel() string {
	if !p.cur.match("|") {
		return ""
	}
	p.cur.skipSpaces()
	if p.cur.peek() == '"' {
		s := p.cur.quoted()
		p.cur.skipSpaces()
		p.cur.match("|")
		return s
	}
	start := p.cur.pos
	for !p.cur.eof() && p.cur.peek() != '|' && p.cur.peek() != '\n' {
		p.cur.pos++
	}
	s := strings.TrimSpace(string(p.cur.src[start:p.cur.pos]))
	p.cur.match("|")
	return s
}

// parseSubgraph parses a subgraph block up to its matching end. Member
// IDs are collected from every statement inside the block, nested
// subgraphs become nested groups.
func (p *parser) parseSubgraph() (graph.Group, bool) {
	p.cur.skipSpaces()
	name := p.cur.ident()
	if name == "" {
		p.cur.skipToLineEnd()
		return graph.Group{}, false
	}

	grp := graph.Group{Name: name}
	p.cur.skipSpaces()
	if p.cur.match("[") {
		grp.Description = p.label("]")
	}
	p.cur.skipToLineEnd()

	seen := make(map[string]bool)
	for !p.cur.eof() {
		p.cur.skipBlank()
		if p.cur.eof() || p.cur.matchKeyword("end") {
			break
		}

		switch {
		case p.cur.matchKeyword("direction"):
			// Per-subgraph directions are accepted but not honored; the
			// whole diagram flows one way.
			p.cur.skipToLineEnd()
		case p.cur.matchKeyword("subgraph"):
			if nested, ok := p.parseSubgraph(); ok {
				grp.Groups = append(grp.Groups, nested)
			}
		default:
			var ids []string
			if !p.parseStatement(name, &ids) {
				p.cur.pos++
				continue
			}
			for _, id := range ids {
				if !seen[id] {
					seen[id] = true
					grp.Members = append(grp.Members, id)
				}
			}
		}
	}
	return grp, true
}
