package render

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mlorenz/asciigram/pkg/graph"
	"github.com/mlorenz/asciigram/pkg/layout"
)

// Minimum canvas extents and the margin kept around the painted area.
const (
	minCanvasWidth  = 40
	minCanvasHeight = 10
	canvasMarginX   = 2
	canvasMarginY   = 4
)

// Renderer paints layout results as text.
type Renderer struct {
	charset Charset
}

// NewRenderer creates a renderer using the given charset, typically
// [Unicode] or [ASCII].
func NewRenderer(cs Charset) *Renderer {
	return &Renderer{charset: cs}
}

// Render paints the layout and returns the diagram text. The result is
// deterministic: the same layout always renders to the same bytes. A
// layout without nodes renders to the empty string.
//
// The layout arrives in the top-down frame. LR and RL diagrams are
// transposed back to screen orientation before painting; RL output is
// then mirrored horizontally and BT output vertically, with directional
// glyphs remapped so corners and arrowheads still point the right way.
func (r *Renderer) Render(res layout.Result) string {
	if len(res.Nodes) == 0 {
		return ""
	}
	if res.Direction.Transposed() {
		res = transposeResult(res)
	}

	canvas := NewCanvas(r.canvasSize(res))
	for _, comp := range res.Compounds {
		r.paintCompound(canvas, comp)
	}
	for _, node := range res.Nodes {
		r.paintNode(canvas, node)
	}
	for _, edge := range res.Edges {
		r.paintEdge(canvas, edge)
	}

	out := canvas.String()
	switch res.Direction {
	case graph.BT:
		out = flipVertical(out)
	case graph.RL:
		out = flipHorizontal(out)
	}
	return out
}

func (r *Renderer) canvasSize(res layout.Result) (w, h int) {
	w, h = minCanvasWidth, minCanvasHeight
	grow := func(x, y int) {
		if x > w {
			w = x
		}
		if y > h {
			h = y
		}
	}
	for _, n := range res.Nodes {
		grow(n.X+n.Width+canvasMarginX, n.Y+n.Height+canvasMarginY)
	}
	for _, c := range res.Compounds {
		grow(c.X+c.Width+canvasMarginX, c.Y+c.Height+canvasMarginY)
	}
	for _, e := range res.Edges {
		for _, p := range e.Waypoints {
			grow(p.X+canvasMarginX, p.Y+canvasMarginY)
		}
	}
	return w, h
}

// boxGlyphs is the per-shape corner and side selection.
type boxGlyphs struct {
	tl, tr, bl, br rune
	h, v           rune
}

func (r *Renderer) glyphsFor(shape graph.NodeShape) boxGlyphs {
	cs := r.charset
	g := boxGlyphs{
		tl: cs.TopLeft, tr: cs.TopRight, bl: cs.BottomLeft, br: cs.BottomRight,
		h: cs.Horizontal, v: cs.Vertical,
	}
	switch shape {
	case graph.Rounded:
		if cs.RoundTopLeft != 0 {
			g.tl, g.tr = cs.RoundTopLeft, cs.RoundTopRight
			g.bl, g.br = cs.RoundBottomLeft, cs.RoundBottomRight
		}
	case graph.Diamond:
		g.tl, g.tr, g.bl, g.br = '/', '\\', '\\', '/'
	case graph.Circle:
		g.tl, g.tr, g.bl, g.br = '(', ')', '(', ')'
		g.v = ' '
	}
	return g
}

// drawBox paints a box outline with Set, overwriting whatever is under
// it. Boxes thinner than 2x2 are skipped.
func drawBox(c *Canvas, x, y, w, h int, g boxGlyphs) {
	if w < 2 || h < 2 {
		return
	}
	for cx := x + 1; cx < x+w-1; cx++ {
		c.Set(cx, y, g.h)
		c.Set(cx, y+h-1, g.h)
	}
	for cy := y + 1; cy < y+h-1; cy++ {
		c.Set(x, cy, g.v)
		c.Set(x+w-1, cy, g.v)
	}
	c.Set(x, y, g.tl)
	c.Set(x+w-1, y, g.tr)
	c.Set(x, y+h-1, g.bl)
	c.Set(x+w-1, y+h-1, g.br)
}

func (r *Renderer) paintNode(c *Canvas, n layout.NodeBox) {
	drawBox(c, n.X, n.Y, n.Width, n.Height, r.glyphsFor(n.Shape))

	inner := n.Width - 2
	for i, line := range strings.Split(n.Label, "\n") {
		pad := (inner - runewidth.StringWidth(line)) / 2
		if pad < 0 {
			pad = 0
		}
		c.WriteString(n.X+1+pad, n.Y+1+i, line)
	}
}

func (r *Renderer) paintCompound(c *Canvas, comp layout.CompoundBox) {
	drawBox(c, comp.X, comp.Y, comp.Width, comp.Height, r.glyphsFor(graph.Rectangle))

	inner := comp.Width - 2
	titlePad := (inner - runewidth.StringWidth(comp.Name)) / 2
	if titlePad < 0 {
		titlePad = 0
	}
	c.WriteString(comp.X+1+titlePad, comp.Y+1, comp.Name)

	if comp.Description != "" {
		descPad := (inner - runewidth.StringWidth(comp.Description)) / 2
		if descPad < 0 {
			descPad = 0
		}
		c.WriteString(comp.X+1+descPad, comp.Y+comp.Height-2, comp.Description)
	}
}

func (r *Renderer) paintEdge(c *Canvas, e layout.RoutedEdge) {
	if len(e.Waypoints) < 2 {
		return
	}
	cs := r.charset
	thick := e.Type == graph.ThickArrow || e.Type == graph.ThickLine || e.Type == graph.BidirThick
	dotted := e.Type == graph.DottedArrow || e.Type == graph.DottedLine || e.Type == graph.BidirDotted
	hRune, vRune := cs.lineRunes(thick, dotted)

	for i := 1; i < len(e.Waypoints); i++ {
		p, q := e.Waypoints[i-1], e.Waypoints[i]
		if p.Y == q.Y {
			c.HLine(p.X, q.X, p.Y, hRune, cs)
			continue
		}
		c.VLine(p.Y, q.Y, p.X, vRune, cs)
	}

	if e.Type.HasArrow() {
		last := e.Waypoints[len(e.Waypoints)-1]
		prev := e.Waypoints[len(e.Waypoints)-2]
		c.Set(last.X, last.Y, arrowhead(cs, prev, last))
	}
	if e.Type.Bidirectional() {
		first := e.Waypoints[0]
		second := e.Waypoints[1]
		c.Set(first.X, first.Y, arrowhead(cs, second, first))
	}

	if e.Label != "" {
		mid := e.Waypoints[len(e.Waypoints)/2]
		c.WriteString(mid.X, mid.Y-1, e.Label)
	}
}

// arrowhead picks the glyph for an arrow tip at `to`, approached from
// `from`.
func arrowhead(cs Charset, from, to layout.Point) rune {
	switch {
	case to.Y < from.Y:
		return cs.ArrowUp
	case to.Y > from.Y:
		return cs.ArrowDown
	case to.X > from.X:
		return cs.ArrowRight
	}
	return cs.ArrowLeft
}

// transposeResult swaps the axes of every coordinate, converting the
// layer-major frame of an LR or RL layout into screen orientation.
func transposeResult(res layout.Result) layout.Result {
	out := res
	out.Nodes = make([]layout.NodeBox, len(res.Nodes))
	for i, n := range res.Nodes {
		n.X, n.Y = n.Y, n.X
		n.Width, n.Height = n.Height, n.Width
		out.Nodes[i] = n
	}
	out.Compounds = make([]layout.CompoundBox, len(res.Compounds))
	for i, comp := range res.Compounds {
		comp.X, comp.Y = comp.Y, comp.X
		comp.Width, comp.Height = comp.Height, comp.Width
		out.Compounds[i] = comp
	}
	out.Edges = make([]layout.RoutedEdge, len(res.Edges))
	for i, e := range res.Edges {
		pts := make([]layout.Point, len(e.Waypoints))
		for j, p := range e.Waypoints {
			pts[j] = layout.Point{X: p.Y, Y: p.X}
		}
		e.Waypoints = pts
		out.Edges[i] = e
	}
	return out
}

