package syntax

import "unicode/utf8"

// source is a character reader over the text being lexed.
// It tracks byte offsets only; lines and columns are derived later from a
// LineIndex.
type source struct {
	buf string // entire input

	// Current state
	ch   rune // current character, -1 for EOF
	offs int  // byte offset of ch in buf
	next int  // byte offset of the character after ch
}

// newSource creates a source positioned on the first character of buf.
func newSource(buf string) source {
	s := source{buf: buf, ch: -1}
	s.nextch()
	return s
}

// nextch advances to the next character.
// Sets s.ch to -1 at EOF.
func (s *source) nextch() {
	s.offs = s.next
	if s.next >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRuneInString(s.buf[s.next:])
	s.ch = r
	s.next += width
}

// peek returns the character after the current one without consuming it.
func (s *source) peek() rune {
	if s.next >= len(s.buf) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(s.buf[s.next:])
	return r
}

// Character classification helpers

// isLetter reports whether r can start an identifier (a-z, A-Z, or _).
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

// isDigit reports whether r is a decimal digit (0-9).
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isHexDigit reports whether r is a hexadecimal digit (0-9, a-f, A-F).
func isHexDigit(r rune) bool {
	return isDigit(r) || 'a' <= lower(r) && lower(r) <= 'f'
}

// isOctalDigit reports whether r is an octal digit (0-7).
func isOctalDigit(r rune) bool {
	return '0' <= r && r <= '7'
}

// isBinaryDigit reports whether r is a binary digit (0 or 1).
func isBinaryDigit(r rune) bool {
	return r == '0' || r == '1'
}

// lower returns the lowercase version of r if r is an ASCII letter,
// otherwise returns r unchanged.
func lower(r rune) rune {
	return ('a' - 'A') | r
}

// isWhitespace reports whether r is a whitespace character.
// Newlines are ordinary whitespace: the grammar has no automatic semicolons.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
