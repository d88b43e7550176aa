package ast

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foeb/mun/internal/syntax"
)

func TestElseBranch(t *testing.T) {
	t.Run("block else", func(t *testing.T) {
		ifx, ok := tail(t, "if c { 1 } else { 2 }").(IfExpr)
		require.True(t, ok)

		cond, ok := ifx.Condition()
		require.True(t, ok)
		assert.Equal(t, "c", text(cond.Expr()))

		then, ok := ifx.ThenBranch()
		require.True(t, ok)
		assert.Equal(t, "{ 1 }", then.Syntax().Text())

		block, ok := ifx.ElseBranch().(BlockExpr)
		require.True(t, ok)
		assert.Equal(t, "{ 2 }", block.Syntax().Text())
	})

	t.Run("else if", func(t *testing.T) {
		ifx, ok := tail(t, "if c { 1 } else if d { 2 }").(IfExpr)
		require.True(t, ok)

		nested, ok := ifx.ElseBranch().(IfExpr)
		require.True(t, ok)
		assert.Equal(t, "if d { 2 }", nested.Syntax().Text())

		cond, ok := nested.Condition()
		require.True(t, ok)
		assert.Equal(t, "d", text(cond.Expr()))
		assert.Nil(t, nested.ElseBranch())
	})

	t.Run("no else", func(t *testing.T) {
		ifx, ok := tail(t, "if c { 1 }").(IfExpr)
		require.True(t, ok)
		_, ok = ifx.ThenBranch()
		assert.True(t, ok)
		assert.Nil(t, ifx.ElseBranch())
		assert.Empty(t, ifx.ElseChain())
	})

	t.Run("block in condition", func(t *testing.T) {
		ifx, ok := tail(t, "if { true } { 1 } else { 2 }").(IfExpr)
		require.True(t, ok)

		then, ok := ifx.ThenBranch()
		require.True(t, ok)
		assert.Equal(t, "{ 1 }", then.Syntax().Text())
		assert.Equal(t, "{ 2 }", text(ifx.ElseBranch()))
	})
}

func TestElseChain(t *testing.T) {
	ifx, ok := tail(t, "if a {1} else if b {2} else if c {3} else {4}").(IfExpr)
	require.True(t, ok)

	chain := ifx.ElseChain()
	require.Len(t, chain, 3)
	assert.IsType(t, IfExpr{}, chain[0])
	assert.IsType(t, IfExpr{}, chain[1])
	assert.IsType(t, BlockExpr{}, chain[2])
	assert.Equal(t, "if b {2} else if c {3} else {4}", text(chain[0]))
	assert.Equal(t, "if c {3} else {4}", text(chain[1]))
	assert.Equal(t, "{4}", text(chain[2]))

	open, ok := tail(t, "if a {1} else if b {2}").(IfExpr)
	require.True(t, ok)
	chain = open.ElseChain()
	require.Len(t, chain, 1)
	assert.IsType(t, IfExpr{}, chain[0])
}

func TestIfMalformed(t *testing.T) {
	tree := syntax.Parse("fn f() { if c }")
	require.NotEmpty(t, tree.Errors())
	ifx := first[IfExpr](t, tree.Root())

	_, ok := ifx.ThenBranch()
	assert.False(t, ok)
	assert.Nil(t, ifx.ElseBranch())

	tree = syntax.Parse("fn f() { if c { 1 } else }")
	require.NotEmpty(t, tree.Errors())
	ifx = first[IfExpr](t, tree.Root())
	_, ok = ifx.ThenBranch()
	assert.True(t, ok)
	assert.Nil(t, ifx.ElseBranch())
}

func TestConcurrentQueries(t *testing.T) {
	file := parse(t, "fn f() { if a { x.0 } else if b { -y } else { a + b } }")
	ifx := first[IfExpr](t, file.Syntax())
	field := first[FieldExpr](t, file.Syntax())
	bin := first[BinExpr](t, file.Syntax())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, ifx.ElseChain(), 2)
			assert.IsType(t, FieldIndex{}, field.FieldAccess())
			assert.Equal(t, "0", field.FieldRange().Slice(file.Syntax().Text()))

			op, ok := bin.OpKind()
			assert.True(t, ok)
			assert.Equal(t, Add, op)
		}()
	}
	wg.Wait()
}
