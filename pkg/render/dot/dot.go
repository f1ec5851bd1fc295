// Package dot exports diagram graphs to Graphviz DOT and renders them
// to SVG in process.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mlorenz/asciigram/pkg/graph"
)

// dirRankdir maps flow directions to Graphviz rankdir values.
var dirRankdir = map[graph.Direction]string{
	graph.TD: "TB",
	graph.BT: "BT",
	graph.LR: "LR",
	graph.RL: "RL",
}

// shapeAttr maps node shapes to Graphviz node shapes.
var shapeAttr = map[graph.NodeShape]string{
	graph.Rectangle: "box",
	graph.Rounded:   "box",
	graph.Diamond:   "diamond",
	graph.Circle:    "circle",
}

// ToDOT converts a diagram graph to Graphviz DOT format. Groups become
// clusters, dotted and thick edge types map to the matching Graphviz
// edge styles, and lines without arrowheads get dir=none. The resulting
// DOT string can be rendered with [RenderSVG].
func ToDOT(g *graph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", dirRankdir[g.Direction()])
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	grouped := make(map[string]bool)
	for i, entry := range g.GroupList() {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", entry.Name)
		for _, m := range entry.Members {
			if grouped[m] {
				continue
			}
			grouped[m] = true
			if n, ok := g.Node(m); ok {
				fmt.Fprintf(&buf, "    %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
				continue
			}
			fmt.Fprintf(&buf, "    %q;\n", m)
		}
		buf.WriteString("  }\n")
	}

	for _, n := range g.Nodes() {
		if grouped[n.ID] {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *graph.Node) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", n.Label),
		fmt.Sprintf("shape=%s", shapeAttr[n.Shape]),
	}
	if n.Shape == graph.Rounded {
		attrs = append(attrs, "style=rounded")
	}
	return attrs
}

func edgeAttrs(e graph.Edge) []string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	switch e.Type {
	case graph.DottedArrow, graph.DottedLine, graph.BidirDotted:
		attrs = append(attrs, "style=dashed")
	case graph.ThickArrow, graph.ThickLine, graph.BidirThick:
		attrs = append(attrs, "style=bold")
	}
	switch {
	case e.Type.Bidirectional():
		attrs = append(attrs, "dir=both")
	case !e.Type.HasArrow():
		attrs = append(attrs, "dir=none")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg element so the view box starts at
// the origin and the pixel size matches it, which makes the output
// embed cleanly regardless of the Graphviz version.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
