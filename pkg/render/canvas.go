package render

import "strings"

// Canvas is a fixed-size grid of character cells. Writes outside the
// bounds are silently dropped, so painting never panics on a path that
// swings past the edge.
type Canvas struct {
	width, height int
	cells         [][]rune
}

// NewCanvas creates a canvas filled with spaces.
func NewCanvas(width, height int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	cells := make([][]rune, height)
	for y := range cells {
		row := make([]rune, width)
		for x := range row {
			row[x] = ' '
		}
		cells[y] = row
	}
	return &Canvas{width: width, height: height, cells: cells}
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in cells.
func (c *Canvas) Height() int { return c.height }

// Get returns the rune at the cell, or a space outside the bounds.
func (c *Canvas) Get(x, y int) rune {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return ' '
	}
	return c.cells[y][x]
}

// Set overwrites the cell unconditionally.
func (c *Canvas) Set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y][x] = r
}

// SetMerge writes a line glyph into the cell. When both the existing
// cell and the new rune are recognized line glyphs their arm masks are
// unioned and the junction glyph is written instead, so crossing lines
// produce ┼ rather than one line erasing the other. Otherwise the new
// rune overwrites.
func (c *Canvas) SetMerge(x, y int, r rune, cs Charset) {
	existing, okOld := armsFor(c.Get(x, y))
	incoming, okNew := armsFor(r)
	if okOld && okNew {
		c.Set(x, y, existing.merge(incoming).glyph(cs))
		return
	}
	c.Set(x, y, r)
}

// HLine draws a horizontal line between two columns inclusive, merging
// with existing line glyphs.
func (c *Canvas) HLine(x1, x2, y int, r rune, cs Charset) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		c.SetMerge(x, y, r, cs)
	}
}

// VLine draws a vertical line between two rows inclusive, merging with
// existing line glyphs.
func (c *Canvas) VLine(y1, y2, x int, r rune, cs Charset) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		c.SetMerge(x, y, r, cs)
	}
}

// WriteString writes text starting at the cell, truncating at the right
// border.
func (c *Canvas) WriteString(x, y int, s string) {
	for i, r := range []rune(s) {
		if x+i >= c.width {
			break
		}
		c.Set(x+i, y, r)
	}
}

// String serializes the canvas: trailing spaces are stripped from every
// row, trailing blank rows are dropped, and the result ends with a
// single newline. An entirely blank canvas serializes to the empty
// string.
func (c *Canvas) String() string {
	lines := make([]string, c.height)
	for y, row := range c.cells {
		lines[y] = strings.TrimRight(string(row), " ")
	}
	out := strings.TrimRight(strings.Join(lines, "\n"), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}
