package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosString(t *testing.T) {
	tests := []struct {
		name    string
		pos     Pos
		wantStr string
	}{
		{
			name:    "with filename",
			pos:     NewPos("test.mun", 10, 5),
			wantStr: "test.mun:10:5",
		},
		{
			name:    "without filename",
			pos:     NewPos("", 10, 5),
			wantStr: "10:5",
		},
		{
			name:    "line 1 col 1",
			pos:     NewPos("main.mun", 1, 1),
			wantStr: "main.mun:1:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStr, tt.pos.String())
		})
	}
}

func TestPosIsValid(t *testing.T) {
	assert.True(t, NewPos("test.mun", 1, 1).IsValid())
	assert.True(t, NewPos("", 100, 50).IsValid())
	assert.False(t, NewPos("test.mun", 0, 1).IsValid())
	assert.False(t, Pos{}.IsValid())
}

func TestLineIndexPos(t *testing.T) {
	text := "fn a() {\n  1\n}\n"
	li := NewLineIndex("a.mun", text)

	tests := []struct {
		offset    TextSize
		line, col uint32
	}{
		{0, 1, 1},
		{3, 1, 4},
		{8, 1, 9}, // the newline itself
		{9, 2, 1},
		{11, 2, 3},
		{13, 3, 1},
		{15, 4, 1}, // end of text
	}

	for _, tt := range tests {
		pos := li.Pos(tt.offset)
		assert.Equal(t, tt.line, pos.Line(), "line of offset %d", tt.offset)
		assert.Equal(t, tt.col, pos.Col(), "col of offset %d", tt.offset)
		assert.Equal(t, "a.mun", pos.Filename())
	}
	assert.Equal(t, 4, li.Lines())
}

func TestLineIndexLineRange(t *testing.T) {
	text := "ab\ncde\nf"
	li := NewLineIndex("", text)

	r, ok := li.LineRange(2, text)
	assert.True(t, ok)
	assert.Equal(t, "cde", r.Slice(text))

	r, ok = li.LineRange(3, text)
	assert.True(t, ok)
	assert.Equal(t, "f", r.Slice(text))

	_, ok = li.LineRange(0, text)
	assert.False(t, ok)
	_, ok = li.LineRange(4, text)
	assert.False(t, ok)
}

func TestTextRange(t *testing.T) {
	r := TextRangeFromTo(2, 5)
	assert.Equal(t, TextSize(2), r.Start())
	assert.Equal(t, TextSize(5), r.End())
	assert.Equal(t, TextSize(3), r.Len())
	assert.False(t, r.IsEmpty())
	assert.True(t, r.Contains(2))
	assert.False(t, r.Contains(5))
	assert.True(t, r.ContainsRange(TextRangeFromTo(3, 5)))
	assert.False(t, r.ContainsRange(TextRangeFromTo(1, 3)))
	assert.Equal(t, "[2; 5)", r.String())
	assert.Equal(t, "cde", r.Slice("abcdefg"))
	assert.Equal(t, r, TextRangeOffsetLen(2, 3))

	assert.True(t, TextRangeFromTo(4, 4).IsEmpty())
	assert.Panics(t, func() { TextRangeFromTo(5, 4) })
}
