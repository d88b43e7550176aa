package syntax

import (
	"fmt"
	"sort"
)

// Pos represents a position in a source file.
// The zero value is an invalid position.
type Pos struct {
	filename string // source file name
	line     uint32 // 1-based line number
	col      uint32 // 1-based column number (byte offset in line)
}

// NewPos creates a new Pos with the given filename, line, and column.
// Line and column numbers are 1-based.
func NewPos(filename string, line, col uint32) Pos {
	return Pos{filename: filename, line: line, col: col}
}

// String returns a string representation of the position in the format
// "filename:line:col" or "line:col" if filename is empty.
func (p Pos) String() string {
	if p.filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
	}
	return fmt.Sprintf("%d:%d", p.line, p.col)
}

// IsValid reports whether the position is valid.
// A position is valid if line > 0.
func (p Pos) IsValid() bool {
	return p.line > 0
}

// Line returns the 1-based line number.
func (p Pos) Line() uint32 {
	return p.line
}

// Col returns the 1-based column number (byte offset in line).
func (p Pos) Col() uint32 {
	return p.col
}

// Filename returns the source file name.
func (p Pos) Filename() string {
	return p.filename
}

// LineIndex converts byte offsets into line/column positions.
type LineIndex struct {
	filename string
	starts   []TextSize // offset of the first byte of every line
}

// NewLineIndex indexes the line starts of text.
func NewLineIndex(filename, text string) *LineIndex {
	li := &LineIndex{filename: filename, starts: []TextSize{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			li.starts = append(li.starts, TextSize(i+1))
		}
	}
	return li
}

// Pos returns the position of offset.
// Offsets past the end of the text map onto the last line.
func (li *LineIndex) Pos(offset TextSize) Pos {
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	return NewPos(li.filename, uint32(line+1), uint32(offset-li.starts[line])+1)
}

// LineRange returns the range of the 1-based line, excluding its newline.
// The second result is false if the line does not exist.
func (li *LineIndex) LineRange(line uint32, text string) (TextRange, bool) {
	if line == 0 || int(line) > len(li.starts) {
		return TextRange{}, false
	}
	start := li.starts[line-1]
	end := TextSize(len(text))
	if int(line) < len(li.starts) {
		end = li.starts[line] - 1
	}
	return TextRangeFromTo(start, end), true
}

// Lines returns the number of lines.
func (li *LineIndex) Lines() int {
	return len(li.starts)
}
