package render

import "strings"

// verticalRemap swaps the glyphs that change meaning when a diagram is
// mirrored top-to-bottom.
var verticalRemap = map[rune]rune{
	'┌': '└', '└': '┌',
	'┐': '┘', '┘': '┐',
	'┬': '┴', '┴': '┬',
	'╭': '╰', '╰': '╭',
	'╮': '╯', '╯': '╮',
	'▼': '▲', '▲': '▼',
	'v': '^', '^': 'v',
	'/': '\\', '\\': '/',
}

// horizontalRemap swaps the glyphs that change meaning when a diagram
// is mirrored left-to-right.
var horizontalRemap = map[rune]rune{
	'┌': '┐', '┐': '┌',
	'└': '┘', '┘': '└',
	'├': '┤', '┤': '├',
	'╭': '╮', '╮': '╭',
	'╰': '╯', '╯': '╰',
	'►': '◄', '◄': '►',
	'>': '<', '<': '>',
	'(': ')', ')': '(',
	'/': '\\', '\\': '/',
}

// flipVertical mirrors rendered text top-to-bottom, remapping the
// directional glyphs. Used for BT diagrams, which are laid out top-down
// and mirrored at the end.
func flipVertical(s string) string {
	if s == "" {
		return s
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		runes := []rune(line)
		for j, r := range runes {
			if m, ok := verticalRemap[r]; ok {
				runes[j] = m
			}
		}
		out[len(lines)-1-i] = strings.TrimRight(string(runes), " ")
	}
	return strings.Join(out, "\n") + "\n"
}

// flipHorizontal mirrors rendered text left-to-right, remapping the
// directional glyphs. Lines are padded to a common width first so the
// right margin becomes a straight left margin. Used for RL diagrams.
func flipHorizontal(s string) string {
	if s == "" {
		return s
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	width := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		runes := []rune(line)
		for len(runes) < width {
			runes = append(runes, ' ')
		}
		flipped := make([]rune, width)
		for j, r := range runes {
			if m, ok := horizontalRemap[r]; ok {
				r = m
			}
			flipped[width-1-j] = r
		}
		out[i] = strings.TrimRight(string(flipped), " ")
	}
	return strings.Join(out, "\n") + "\n"
}
