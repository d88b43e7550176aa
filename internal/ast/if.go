package ast

// ElseBranch is the continuation after 'else': a BlockExpr that ends the
// chain or an IfExpr that continues it.
type ElseBranch interface {
	Expr
	aElseBranch()
}

// IfExpr is a conditional: if Condition { ... } else ...
type IfExpr struct {
	expr
}

func (IfExpr) aElseBranch() {}

// Condition returns the condition.
func (i IfExpr) Condition() (Condition, bool) { return child[Condition](i.n) }

// ThenBranch returns the block executed when the condition holds.
func (i IfExpr) ThenBranch() (BlockExpr, bool) { return nthChild[BlockExpr](i.n, 0) }

// ElseBranch returns the else branch, or nil if there is none. A second
// block child is a terminal else; a nested IfExpr child is an else-if.
func (i IfExpr) ElseBranch() ElseBranch {
	if b, ok := nthChild[BlockExpr](i.n, 1); ok {
		return b
	}
	if nested, ok := child[IfExpr](i.n); ok {
		return nested
	}
	return nil
}

// ElseChain returns the else branches of the whole else-if ladder, in
// order. The chain ends at a BlockExpr or at an IfExpr without else.
func (i IfExpr) ElseChain() []ElseBranch {
	var chain []ElseBranch
	for e := i.ElseBranch(); e != nil; {
		chain = append(chain, e)
		nested, ok := e.(IfExpr)
		if !ok {
			break
		}
		e = nested.ElseBranch()
	}
	return chain
}
