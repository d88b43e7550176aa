// Package inspect classifies the expressions of parsed Mun files with the
// typed views of package ast and renders the results.
//
// For every prefix, binary, field, literal and if expression it records a
// Fact: where the expression is, how ast classifies it and which part of
// the source the classification is about (the operator, the field
// designator, the literal token or the else branch).
package inspect

import (
	"fmt"
	"time"

	"github.com/foeb/mun/internal/ast"
	"github.com/foeb/mun/internal/syntax"
)

// Productions reported by File.
const (
	ProdPrefix  = "prefix"
	ProdBinary  = "binary"
	ProdField   = "field"
	ProdLiteral = "literal"
	ProdIf      = "if"
)

// Fact is the classification of one expression.
type Fact struct {
	Production string `json:"production" yaml:"production"`
	Pos        string `json:"pos" yaml:"pos"`
	Start      uint32 `json:"start" yaml:"start"`
	End        uint32 `json:"end" yaml:"end"`
	Text       string `json:"text" yaml:"text"`

	// Class is the classification, e.g. "Add", "Index" or "ElseIf".
	// It is empty if the expression could not be classified.
	Class string `json:"class" yaml:"class"`

	// Focus is the part of the expression the classification is about.
	FocusStart uint32 `json:"focus_start" yaml:"focus_start"`
	FocusEnd   uint32 `json:"focus_end" yaml:"focus_end"`

	Note string `json:"note,omitempty" yaml:"note,omitempty"`
}

// Diagnostic is a syntax error of a file.
type Diagnostic struct {
	Pos   string `json:"pos" yaml:"pos"`
	Start uint32 `json:"start" yaml:"start"`
	End   uint32 `json:"end" yaml:"end"`
	Msg   string `json:"msg" yaml:"msg"`
}

// Report holds the facts and errors of one file.
type Report struct {
	File   string       `json:"file" yaml:"file"`
	Tokens int          `json:"tokens" yaml:"tokens"`
	Nodes  int          `json:"nodes" yaml:"nodes"`
	Facts  []Fact       `json:"facts" yaml:"facts"`
	Errors []Diagnostic `json:"errors" yaml:"errors"`

	Duration time.Duration `json:"-" yaml:"-"`

	tree *syntax.Tree
}

// Tree returns the tree the report was made from.
func (r *Report) Tree() *syntax.Tree { return r.tree }

// File inspects a parsed file.
func File(tree *syntax.Tree) Report {
	r := Report{
		File:   tree.Filename(),
		Tokens: tree.TokenCount(),
		Nodes:  tree.NodeCount(),
		Facts:  []Fact{},
		Errors: []Diagnostic{},
		tree:   tree,
	}

	for _, e := range tree.Errors() {
		r.Errors = append(r.Errors, Diagnostic{
			Pos:   e.Pos.String(),
			Start: uint32(e.Range.Start()),
			End:   uint32(e.Range.End()),
			Msg:   e.Msg,
		})
	}

	syntax.Inspect(tree.Root(), func(n syntax.Node) bool {
		if f, ok := classify(n); ok {
			f.Pos = tree.Pos(n.TextRange().Start()).String()
			r.Facts = append(r.Facts, f)
		}
		return true
	})
	return r
}

// classify returns the fact for n, or false if n is not one of the
// reported productions.
func classify(n syntax.Node) (Fact, bool) {
	v, ok := ast.Cast(n)
	if !ok {
		return Fact{}, false
	}

	var f Fact
	switch v := v.(type) {
	case ast.PrefixExpr:
		f = prefixFact(v)
	case ast.BinExpr:
		f = binaryFact(v)
	case ast.FieldExpr:
		f = fieldFact(v)
	case ast.Literal:
		f = literalFact(v)
	case ast.IfExpr:
		f = ifFact(v)
	default:
		return Fact{}, false
	}

	r := n.TextRange()
	f.Start, f.End = uint32(r.Start()), uint32(r.End())
	f.Text = n.Text()
	return f, true
}

func (f *Fact) focus(r syntax.TextRange) {
	f.FocusStart, f.FocusEnd = uint32(r.Start()), uint32(r.End())
}

func prefixFact(p ast.PrefixExpr) Fact {
	f := Fact{Production: ProdPrefix}
	f.focus(p.TextRange())
	if tok, ok := p.OpToken(); ok {
		f.focus(tok.TextRange())
	}
	if op, ok := p.OpKind(); ok {
		f.Class = op.String()
	} else {
		f.Note = "unknown operator"
	}
	return f
}

func binaryFact(b ast.BinExpr) Fact {
	f := Fact{Production: ProdBinary}
	f.focus(b.TextRange())

	if tok, op, ok := b.OpDetails(); ok {
		f.Class = op.String()
		f.focus(tok.TextRange())
	} else if tok, name, ok := b.ReservedOp(); ok {
		f.focus(tok.TextRange())
		f.Note = fmt.Sprintf("operator %s is not supported yet", name)
	} else {
		f.Note = "missing operator"
	}

	if lhs, rhs := b.SubExprs(); lhs == nil || rhs == nil {
		f.Note = join(f.Note, "missing operand")
	}
	return f
}

func fieldFact(e ast.FieldExpr) Fact {
	f := Fact{Production: ProdField}
	f.focus(e.FieldRange())

	switch access := e.FieldAccess().(type) {
	case ast.FieldName:
		f.Class = "Name"
	case ast.FieldIndex:
		f.Class = "Index"
		if _, err := access.Value(); err != nil {
			f.Note = err.Error()
		}
	default:
		f.Note = "incomplete field access"
	}
	return f
}

func literalFact(l ast.Literal) Fact {
	f := Fact{Production: ProdLiteral, Class: l.Kind().String()}
	if tok, ok := l.Token(); ok {
		f.focus(tok.TextRange())
	}
	return f
}

func ifFact(i ast.IfExpr) Fact {
	f := Fact{Production: ProdIf}
	f.focus(i.TextRange())

	switch e := i.ElseBranch().(type) {
	case ast.BlockExpr:
		f.Class = "ElseBlock"
		f.focus(e.TextRange())
	case ast.IfExpr:
		f.Class = "ElseIf"
		f.focus(e.TextRange())
		f.Note = fmt.Sprintf("chain of %d", len(i.ElseChain()))
	default:
		f.Class = "NoElse"
	}

	if _, ok := i.ThenBranch(); !ok {
		f.Note = join(f.Note, "missing block")
	}
	return f
}

func join(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}
