package ast

import (
	"fmt"

	"github.com/foeb/mun/internal/syntax"
)

// LiteralKind is the category of a literal.
type LiteralKind int

const (
	String LiteralKind = iota
	IntNumber
	FloatNumber
	Bool
)

var literalKindNames = [...]string{
	String:      "String",
	IntNumber:   "IntNumber",
	FloatNumber: "FloatNumber",
	Bool:        "Bool",
}

func (k LiteralKind) String() string {
	if int(k) < len(literalKindNames) {
		return literalKindNames[k]
	}
	return fmt.Sprintf("LiteralKind(%d)", int(k))
}

var literalKinds = map[syntax.SyntaxKind]LiteralKind{
	syntax.STRING:       String,
	syntax.INT_NUMBER:   IntNumber,
	syntax.FLOAT_NUMBER: FloatNumber,
	syntax.TRUE_KW:      Bool,
	syntax.FALSE_KW:     Bool,
}

// Literal is a literal value.
type Literal struct {
	expr
}

// Token returns the token of the literal, skipping trivia.
func (l Literal) Token() (syntax.Token, bool) {
	for e := range l.n.ChildrenWithTokens() {
		if tok, ok := e.AsToken(); ok && !tok.Kind().IsTrivia() {
			return tok, true
		}
	}
	return syntax.Token{}, false
}

// Kind classifies the literal.
//
// The parser only builds LITERAL nodes around literal tokens, so Kind
// panics if it finds anything else: such a tree is a parser bug, not bad
// input.
func (l Literal) Kind() LiteralKind {
	tok, ok := l.Token()
	if !ok {
		panic(fmt.Sprintf("ast: literal %s has no token", l.n))
	}
	kind, ok := literalKinds[tok.Kind()]
	if !ok {
		panic(fmt.Sprintf("ast: literal %s has unexpected token %s", l.n, tok.Kind()))
	}
	return kind
}
