package parser

import "unicode"

// cursor is a position in the source rune slice with the low-level
// scanning primitives the parser is built from.
type cursor struct {
	src []rune
	pos int
}

func (c *cursor) eof() bool { return c.pos >= len(c.src) }

// peek returns the rune at the cursor, or zero at end of input.
func (c *cursor) peek() rune {
	if c.eof() {
		return 0
	}
	return c.src[c.pos]
}

// lookingAt reports whether the input at the cursor starts with s,
// without consuming it.
func (c *cursor) lookingAt(s string) bool {
	i := c.pos
	for _, r := range s {
		if i >= len(c.src) || c.src[i] != r {
			return false
		}
		i++
	}
	return true
}

// match consumes s if the input starts with it.
func (c *cursor) match(s string) bool {
	if !c.lookingAt(s) {
		return false
	}
	c.pos += len([]rune(s))
	return true
}

// matchKeyword consumes s only when it is a whole word: the next rune
// must not continue an identifier, so "ending" is not the keyword
// "end".
func (c *cursor) matchKeyword(s string) bool {
	if !c.lookingAt(s) {
		return false
	}
	next := c.pos + len([]rune(s))
	if next < len(c.src) && isIdentRune(c.src[next], false) {
		return false
	}
	c.pos = next
	return true
}

// skipSpaces consumes spaces and tabs, but not newlines.
func (c *cursor) skipSpaces() {
	for !c.eof() {
		r := c.src[c.pos]
		if r != ' ' && r != '\t' {
			return
		}
		c.pos++
	}
}

// skipBlank consumes whitespace of every kind, statement separators and
// %% comments.
func (c *cursor) skipBlank() {
	for !c.eof() {
		r := c.src[c.pos]
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ';':
			c.pos++
		case c.lookingAt("%%"):
			c.skipToLineEnd()
		default:
			return
		}
	}
}

// skipToLineEnd consumes everything up to and including the next
// newline.
func (c *cursor) skipToLineEnd() {
	for !c.eof() {
		if c.src[c.pos] == '\n' {
			c.pos++
			return
		}
		c.pos++
	}
}

// ident consumes an identifier: a letter or underscore followed by
// letters, digits, underscores or hyphens. Returns the empty string
// when the cursor is not at an identifier.
func (c *cursor) ident() string {
	if c.eof() || !isIdentRune(c.src[c.pos], true) {
		return ""
	}
	start := c.pos
	c.pos++
	for !c.eof() && isIdentRune(c.src[c.pos], false) {
		c.pos++
	}
	return string(c.src[start:c.pos])
}

func isIdentRune(r rune, first bool) bool {
	if unicode.IsLetter(r) || r == '_' {
		return true
	}
	if first {
		return false
	}
	return unicode.IsDigit(r) || r == '-'
}

// quoted consumes a double-quoted string, handling \n, \" and \\
// escapes. The cursor must be at the opening quote. An unterminated
// string closes at end of input.
func (c *cursor) quoted() string {
	if c.peek() != '"' {
		return ""
	}
	c.pos++

	var out []rune
	for !c.eof() {
		r := c.src[c.pos]
		c.pos++
		switch r {
		case '"':
			return string(out)
		case '\\':
			if c.eof() {
				return string(out)
			}
			esc := c.src[c.pos]
			c.pos++
			switch esc {
			case 'n':
				out = append(out, '\n')
			case '"', '\\':
				out = append(out, esc)
			default:
				out = append(out, '\\', esc)
			}
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
