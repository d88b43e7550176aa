package syntax

import "fmt"

// TextSize is a byte offset into, or a byte length of, source text.
type TextSize uint32

// TextRange is a half-open byte range [start, end) of source text.
// The zero value is the empty range at offset 0.
type TextRange struct {
	start TextSize
	end   TextSize
}

// TextRangeFromTo returns the range [start, end).
// It panics if end < start.
func TextRangeFromTo(start, end TextSize) TextRange {
	if end < start {
		panic(fmt.Sprintf("syntax: invalid text range [%d; %d)", start, end))
	}
	return TextRange{start: start, end: end}
}

// TextRangeOffsetLen returns the range [offset, offset+length).
func TextRangeOffsetLen(offset, length TextSize) TextRange {
	return TextRange{start: offset, end: offset + length}
}

// Start returns the first offset of the range.
func (r TextRange) Start() TextSize { return r.start }

// End returns the offset immediately after the range.
func (r TextRange) End() TextSize { return r.end }

// Len returns the length of the range.
func (r TextRange) Len() TextSize { return r.end - r.start }

// IsEmpty reports whether the range covers no text.
func (r TextRange) IsEmpty() bool { return r.start == r.end }

// Contains reports whether offset lies inside the range.
func (r TextRange) Contains(offset TextSize) bool {
	return r.start <= offset && offset < r.end
}

// ContainsRange reports whether other lies completely inside r.
func (r TextRange) ContainsRange(other TextRange) bool {
	return r.start <= other.start && other.end <= r.end
}

// Slice returns the part of text covered by the range.
func (r TextRange) Slice(text string) string {
	return text[r.start:r.end]
}

// String formats the range as "[start; end)".
func (r TextRange) String() string {
	return fmt.Sprintf("[%d; %d)", r.start, r.end)
}
