// Package render paints a computed layout onto a character canvas and
// serializes it to text, in a Unicode box-drawing or plain ASCII
// character set.
package render

// Charset is the glyph palette a canvas is painted with.
type Charset struct {
	// Box corners and lines.
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Horizontal, Vertical                       rune

	// Junctions, picked by the arms-mask merge.
	Cross                              rune
	TeeLeft, TeeRight, TeeUp, TeeDown rune

	// Rounded corner variants; zero when the charset has none.
	RoundTopLeft, RoundTopRight, RoundBottomLeft, RoundBottomRight rune

	// Edge line variants.
	ThickHorizontal, ThickVertical   rune
	DottedHorizontal, DottedVertical rune

	// Arrowheads.
	ArrowUp, ArrowDown, ArrowLeft, ArrowRight rune
}

// Unicode is the box-drawing palette.
var Unicode = Charset{
	TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
	Horizontal: '─', Vertical: '│',
	Cross:   '┼',
	TeeLeft: '┤', TeeRight: '├', TeeUp: '┴', TeeDown: '┬',
	RoundTopLeft: '╭', RoundTopRight: '╮', RoundBottomLeft: '╰', RoundBottomRight: '╯',
	ThickHorizontal: '═', ThickVertical: '║',
	DottedHorizontal: '╌', DottedVertical: '╎',
	ArrowUp: '▲', ArrowDown: '▼', ArrowLeft: '◄', ArrowRight: '►',
}

// ASCII is the seven-bit palette. Thick lines degrade to = and |, dotted
// lines to . and :, so ASCII output never contains multi-byte glyphs.
var ASCII = Charset{
	TopLeft: '+', TopRight: '+', BottomLeft: '+', BottomRight: '+',
	Horizontal: '-', Vertical: '|',
	Cross:   '+',
	TeeLeft: '+', TeeRight: '+', TeeUp: '+', TeeDown: '+',
	ThickHorizontal: '=', ThickVertical: '|',
	DottedHorizontal: '.', DottedVertical: ':',
	ArrowUp: '^', ArrowDown: 'v', ArrowLeft: '<', ArrowRight: '>',
}

// arms is the junction mask of a line glyph: which of the four
// directions it connects to.
type arms struct {
	up, down, left, right bool
}

// armsFor recognizes the plain line and junction glyphs of both
// charsets. The second return value is false for every other rune;
// unrecognized cells are overwritten rather than merged. ASCII '+' is
// ambiguous and treated as a full cross.
func armsFor(r rune) (arms, bool) {
	switch r {
	case '─', '-':
		return arms{left: true, right: true}, true
	case '│', '|':
		return arms{up: true, down: true}, true
	case '┌':
		return arms{down: true, right: true}, true
	case '┐':
		return arms{down: true, left: true}, true
	case '└':
		return arms{up: true, right: true}, true
	case '┘':
		return arms{up: true, left: true}, true
	case '├':
		return arms{up: true, down: true, right: true}, true
	case '┤':
		return arms{up: true, down: true, left: true}, true
	case '┬':
		return arms{down: true, left: true, right: true}, true
	case '┴':
		return arms{up: true, left: true, right: true}, true
	case '┼', '+':
		return arms{up: true, down: true, left: true, right: true}, true
	}
	return arms{}, false
}

// merge unions two masks.
func (a arms) merge(b arms) arms {
	return arms{
		up:    a.up || b.up,
		down:  a.down || b.down,
		left:  a.left || b.left,
		right: a.right || b.right,
	}
}

// glyph maps a mask back to a rune of the charset. The mapping is total
// over all 16 combinations: a lone vertical arm draws as a vertical
// line, a lone horizontal arm as a horizontal line, no arms as a space.
func (a arms) glyph(cs Charset) rune {
	switch {
	case a.up && a.down && a.left && a.right:
		return cs.Cross
	case a.up && a.down && a.left:
		return cs.TeeLeft
	case a.up && a.down && a.right:
		return cs.TeeRight
	case a.down && a.left && a.right:
		return cs.TeeDown
	case a.up && a.left && a.right:
		return cs.TeeUp
	case a.down && a.right:
		return cs.TopLeft
	case a.down && a.left:
		return cs.TopRight
	case a.up && a.right:
		return cs.BottomLeft
	case a.up && a.left:
		return cs.BottomRight
	case a.up || a.down:
		return cs.Vertical
	case a.left || a.right:
		return cs.Horizontal
	}
	return ' '
}

// lineRunes returns the horizontal and vertical line glyphs for an edge
// style.
func (cs Charset) lineRunes(thick, dotted bool) (h, v rune) {
	switch {
	case thick:
		return cs.ThickHorizontal, cs.ThickVertical
	case dotted:
		return cs.DottedHorizontal, cs.DottedVertical
	}
	return cs.Horizontal, cs.Vertical
}
