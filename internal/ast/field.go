package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/foeb/mun/internal/syntax"
)

// FieldKind is the designator of a field access: a FieldName or a
// FieldIndex.
type FieldKind interface {
	aFieldKind()
}

// FieldName is access by name: x.y
type FieldName struct {
	NameRef NameRef
}

// FieldIndex is access by position: x.0
// Token is the INDEX token, which includes the leading '.'.
type FieldIndex struct {
	Token syntax.Token
}

func (FieldName) aFieldKind()  {}
func (FieldIndex) aFieldKind() {}

// Value returns the position the index designates.
func (f FieldIndex) Value() (int, error) {
	text := f.Token.Text()
	digits := strings.ReplaceAll(strings.TrimPrefix(text, "."), "_", "")
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("invalid field index %q: %w", text, err)
	}
	return v, nil
}

// FieldExpr is a field access: Expr.name or Expr.0
type FieldExpr struct {
	expr
}

// Expr returns the receiver, or nil.
func (f FieldExpr) Expr() Expr { e, _ := child[Expr](f.n); return e }

// NameRef returns the field name of a by-name access.
func (f FieldExpr) NameRef() (NameRef, bool) { return child[NameRef](f.n) }

// IndexToken returns the INDEX token of a positional access.
func (f FieldExpr) IndexToken() (syntax.Token, bool) { return tokenChild(f.n, syntax.INDEX) }

// FieldAccess returns the designator of the access, or nil if the node has
// neither a name nor an index (after error recovery, for example).
func (f FieldExpr) FieldAccess() FieldKind {
	if ref, ok := f.NameRef(); ok {
		return FieldName{NameRef: ref}
	}
	if tok, ok := f.IndexToken(); ok {
		return FieldIndex{Token: tok}
	}
	return nil
}

// FieldRange returns the range of the designator alone, without the
// receiver and the '.':
//
//   - the range of the name, for a by-name access;
//   - the range of the index token minus its leading '.', for a positional
//     access;
//   - an empty range at the start of the node otherwise.
func (f FieldExpr) FieldRange() syntax.TextRange {
	if ref, ok := f.NameRef(); ok {
		return ref.TextRange()
	}
	if tok, ok := f.IndexToken(); ok {
		r := tok.TextRange()
		return syntax.TextRangeFromTo(r.Start()+1, r.End())
	}
	start := f.TextRange().Start()
	return syntax.TextRangeFromTo(start, start)
}
