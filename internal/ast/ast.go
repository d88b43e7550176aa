// Package ast provides typed views over the untyped syntax tree built by
// package syntax.
//
// Every view wraps exactly one syntax.Node whose kind matches the view's
// production. Views hold nothing but the node handle: they are built on
// demand by Cast, answer queries by walking the node's children, and never
// modify the tree. Accessors that may find nothing on error-recovered input
// return (T, false) for concrete views and nil for interface results.
package ast

import "github.com/foeb/mun/internal/syntax"

// ----------------------------------------------------------------------------
// Interfaces
//
// Views fall into four classes: module items, statements, expressions and
// types. All views implement Node; the class interfaces are sealed by
// unexported marker methods.

// Node is the interface implemented by all views.
type Node interface {
	Syntax() syntax.Node         // the wrapped node
	TextRange() syntax.TextRange // range of the wrapped node
	aNode()                      // marker method to restrict implementations to this package
}

// ModuleItem is the interface for top-level items.
type ModuleItem interface {
	Node
	aModuleItem()
}

// Stmt is the interface for statements inside a block.
type Stmt interface {
	Node
	aStmt()
}

// Expr is the interface for all expression views.
type Expr interface {
	Node
	aExpr()
}

// TypeRef is the interface for type references.
type TypeRef interface {
	Node
	aTypeRef()
}

// ----------------------------------------------------------------------------
// Base view types

// node is the base struct embedded in all views.
type node struct {
	n syntax.Node
}

func (v node) Syntax() syntax.Node         { return v.n }
func (v node) TextRange() syntax.TextRange { return v.n.TextRange() }
func (v node) aNode()                      {}

// Text returns the source text of the view, inner trivia included.
func (v node) Text() string { return v.n.Text() }

type item struct{ node }

func (item) aModuleItem() {}

type stmt struct{ node }

func (stmt) aStmt() {}

type expr struct{ node }

func (expr) aExpr() {}

type typeRef struct{ node }

func (typeRef) aTypeRef() {}

// ----------------------------------------------------------------------------
// Casting

// productions maps each node kind to the view for it. It is the only place
// that ties kinds to views.
var productions = map[syntax.SyntaxKind]func(syntax.Node) Node{
	syntax.SOURCE_FILE:           func(n syntax.Node) Node { return SourceFile{node{n}} },
	syntax.FUNCTION_DEF:          func(n syntax.Node) Node { return FunctionDef{item{node{n}}} },
	syntax.STRUCT_DEF:            func(n syntax.Node) Node { return StructDef{item{node{n}}} },
	syntax.RECORD_FIELD_DEF_LIST: func(n syntax.Node) Node { return RecordFieldDefList{node{n}} },
	syntax.RECORD_FIELD_DEF:      func(n syntax.Node) Node { return RecordFieldDef{node{n}} },
	syntax.TUPLE_FIELD_DEF_LIST:  func(n syntax.Node) Node { return TupleFieldDefList{node{n}} },
	syntax.TUPLE_FIELD_DEF:       func(n syntax.Node) Node { return TupleFieldDef{node{n}} },
	syntax.VISIBILITY:            func(n syntax.Node) Node { return Visibility{node{n}} },
	syntax.NAME:                  func(n syntax.Node) Node { return Name{node{n}} },
	syntax.NAME_REF:              func(n syntax.Node) Node { return NameRef{node{n}} },
	syntax.PARAM_LIST:            func(n syntax.Node) Node { return ParamList{node{n}} },
	syntax.PARAM:                 func(n syntax.Node) Node { return Param{node{n}} },
	syntax.RET_TYPE:              func(n syntax.Node) Node { return RetType{node{n}} },
	syntax.PATH_TYPE:             func(n syntax.Node) Node { return PathType{typeRef{node{n}}} },
	syntax.LET_STMT:              func(n syntax.Node) Node { return LetStmt{stmt{node{n}}} },
	syntax.EXPR_STMT:             func(n syntax.Node) Node { return ExprStmt{stmt{node{n}}} },
	syntax.BLOCK_EXPR:            func(n syntax.Node) Node { return BlockExpr{expr{node{n}}} },
	syntax.PAREN_EXPR:            func(n syntax.Node) Node { return ParenExpr{expr{node{n}}} },
	syntax.PATH_EXPR:             func(n syntax.Node) Node { return PathExpr{expr{node{n}}} },
	syntax.LITERAL:               func(n syntax.Node) Node { return Literal{expr{node{n}}} },
	syntax.PREFIX_EXPR:           func(n syntax.Node) Node { return PrefixExpr{expr{node{n}}} },
	syntax.BIN_EXPR:              func(n syntax.Node) Node { return BinExpr{expr{node{n}}} },
	syntax.CALL_EXPR:             func(n syntax.Node) Node { return CallExpr{expr{node{n}}} },
	syntax.ARG_LIST:              func(n syntax.Node) Node { return ArgList{node{n}} },
	syntax.FIELD_EXPR:            func(n syntax.Node) Node { return FieldExpr{expr{node{n}}} },
	syntax.IF_EXPR:               func(n syntax.Node) Node { return IfExpr{expr{node{n}}} },
	syntax.CONDITION:             func(n syntax.Node) Node { return Condition{node{n}} },
	syntax.LOOP_EXPR:             func(n syntax.Node) Node { return LoopExpr{expr{node{n}}} },
	syntax.WHILE_EXPR:            func(n syntax.Node) Node { return WhileExpr{expr{node{n}}} },
	syntax.RETURN_EXPR:           func(n syntax.Node) Node { return ReturnExpr{expr{node{n}}} },
	syntax.BREAK_EXPR:            func(n syntax.Node) Node { return BreakExpr{expr{node{n}}} },
}

// Cast returns the view for n, or false if n's kind has no view
// (ERROR nodes, for instance).
func Cast(n syntax.Node) (Node, bool) {
	if !n.IsValid() {
		return nil, false
	}
	mk, ok := productions[n.Kind()]
	if !ok {
		return nil, false
	}
	return mk(n), true
}

// As interprets n as the view T. T may be a concrete view such as BinExpr
// or a class interface such as Expr.
func As[T Node](n syntax.Node) (T, bool) {
	var zero T
	v, ok := Cast(n)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// CastExpr interprets n as an expression.
func CastExpr(n syntax.Node) (Expr, bool) { return As[Expr](n) }

// CastStmt interprets n as a statement.
func CastStmt(n syntax.Node) (Stmt, bool) { return As[Stmt](n) }

// CastModuleItem interprets n as a module item.
func CastModuleItem(n syntax.Node) (ModuleItem, bool) { return As[ModuleItem](n) }

// ----------------------------------------------------------------------------
// Child queries

// child returns the first child of n that is a T.
func child[T Node](n syntax.Node) (T, bool) {
	for c := range n.Children() {
		if v, ok := As[T](c); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// nthChild returns the i-th child of n that is a T.
func nthChild[T Node](n syntax.Node, i int) (T, bool) {
	for c := range n.Children() {
		if v, ok := As[T](c); ok {
			if i == 0 {
				return v, true
			}
			i--
		}
	}
	var zero T
	return zero, false
}

// children returns all children of n that are a T.
func children[T Node](n syntax.Node) []T {
	var vs []T
	for c := range n.Children() {
		if v, ok := As[T](c); ok {
			vs = append(vs, v)
		}
	}
	return vs
}

// tokenChild returns the first direct child token of n with the given kind.
func tokenChild(n syntax.Node, kind syntax.SyntaxKind) (syntax.Token, bool) {
	for e := range n.ChildrenWithTokens() {
		if tok, ok := e.AsToken(); ok && tok.Kind() == kind {
			return tok, true
		}
	}
	return syntax.Token{}, false
}
