package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/foeb/mun/internal/syntax"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const sample = `fn main() {
    let a = -1;
    let b = a + 2;
    let c = p.x;
    let d = t.0;
    a %= 2;
    if a == b { 1 } else if c { 2 } else { 3 }
}
`

// factsOf returns the facts of the given production.
func factsOf(r Report, production string) []Fact {
	var out []Fact
	for _, f := range r.Facts {
		if f.Production == production {
			out = append(out, f)
		}
	}
	return out
}

// focus returns the source text under the focus of f.
func focus(r Report, f Fact) string {
	return r.Tree().Text()[f.FocusStart:f.FocusEnd]
}

func TestFile(t *testing.T) {
	tree := syntax.ParseFile("sample.mun", sample)
	require.Empty(t, tree.Errors())
	r := File(tree)

	assert.Equal(t, "sample.mun", r.File)
	assert.Equal(t, tree.NodeCount(), r.Nodes)
	assert.Equal(t, tree.TokenCount(), r.Tokens)
	assert.Empty(t, r.Errors)

	t.Run("prefix", func(t *testing.T) {
		fs := factsOf(r, ProdPrefix)
		require.Len(t, fs, 1)
		assert.Equal(t, "Neg", fs[0].Class)
		assert.Equal(t, "-1", fs[0].Text)
		assert.Equal(t, "-", focus(r, fs[0]))
		assert.Equal(t, "sample.mun:2:13", fs[0].Pos)
	})

	t.Run("binary", func(t *testing.T) {
		fs := factsOf(r, ProdBinary)
		require.Len(t, fs, 3)

		assert.Equal(t, "Add", fs[0].Class)
		assert.Equal(t, "+", focus(r, fs[0]))
		assert.Empty(t, fs[0].Note)

		assert.Equal(t, "", fs[1].Class, "reserved operators are not classified")
		assert.Equal(t, "%=", focus(r, fs[1]))
		assert.Equal(t, "operator RemainderAssign is not supported yet", fs[1].Note)

		assert.Equal(t, "Equals", fs[2].Class)
	})

	t.Run("field", func(t *testing.T) {
		fs := factsOf(r, ProdField)
		require.Len(t, fs, 2)
		assert.Equal(t, "Name", fs[0].Class)
		assert.Equal(t, "x", focus(r, fs[0]))
		assert.Equal(t, "Index", fs[1].Class)
		assert.Equal(t, "0", focus(r, fs[1]))
	})

	t.Run("literal", func(t *testing.T) {
		fs := factsOf(r, ProdLiteral)
		require.NotEmpty(t, fs)
		for _, f := range fs {
			assert.Equal(t, "IntNumber", f.Class)
			assert.Equal(t, f.Text, focus(r, f))
		}
	})

	t.Run("if", func(t *testing.T) {
		fs := factsOf(r, ProdIf)
		require.Len(t, fs, 2)
		assert.Equal(t, "ElseIf", fs[0].Class)
		assert.Equal(t, "chain of 2", fs[0].Note)
		assert.Equal(t, "if c { 2 } else { 3 }", focus(r, fs[0]))
		assert.Equal(t, "ElseBlock", fs[1].Class)
		assert.Equal(t, "{ 3 }", focus(r, fs[1]))
	})
}

func TestFileMalformed(t *testing.T) {
	tree := syntax.ParseFile("bad.mun", "fn f() { x . 0; a + ; if c }")
	r := File(tree)
	require.NotEmpty(t, r.Errors)
	assert.Equal(t, "bad.mun:1:14", r.Errors[0].Pos)
	assert.Equal(t, "unexpected whitespace before field index", r.Errors[0].Msg)

	field := factsOf(r, ProdField)
	require.Len(t, field, 1)
	assert.Equal(t, "", field[0].Class)
	assert.Equal(t, "incomplete field access", field[0].Note)
	assert.Equal(t, field[0].Start, field[0].FocusStart)
	assert.Equal(t, field[0].FocusStart, field[0].FocusEnd)

	bin := factsOf(r, ProdBinary)
	require.Len(t, bin, 1)
	assert.Equal(t, "Add", bin[0].Class)
	assert.Equal(t, "missing operand", bin[0].Note)

	ifs := factsOf(r, ProdIf)
	require.Len(t, ifs, 1)
	assert.Equal(t, "NoElse", ifs[0].Class)
	assert.Equal(t, "missing block", ifs[0].Note)
}
