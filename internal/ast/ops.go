package ast

import (
	"fmt"

	"github.com/foeb/mun/internal/syntax"
)

// ----------------------------------------------------------------------------
// Prefix operators

// PrefixOp is a unary prefix operator.
type PrefixOp int

const (
	Not PrefixOp = iota // !
	Neg                 // -
)

var prefixOpNames = [...]string{
	Not: "Not",
	Neg: "Neg",
}

func (op PrefixOp) String() string {
	if int(op) < len(prefixOpNames) {
		return prefixOpNames[op]
	}
	return fmt.Sprintf("PrefixOp(%d)", int(op))
}

// prefixOps maps operator tokens to prefix operators.
var prefixOps = map[syntax.SyntaxKind]PrefixOp{
	syntax.BANG:  Not,
	syntax.MINUS: Neg,
}

// PrefixExpr is a unary prefix expression: !x or -x
type PrefixExpr struct {
	expr
}

// OpToken returns the operator token. The operator is always the leading
// child of a prefix expression; if the first child is a node, there is
// none.
func (p PrefixExpr) OpToken() (syntax.Token, bool) {
	first, ok := p.n.FirstChildOrToken()
	if !ok {
		return syntax.Token{}, false
	}
	return first.AsToken()
}

// OpKind classifies the operator token.
func (p PrefixExpr) OpKind() (PrefixOp, bool) {
	tok, ok := p.OpToken()
	if !ok {
		return 0, false
	}
	op, ok := prefixOps[tok.Kind()]
	return op, ok
}

// Expr returns the operand, or nil.
func (p PrefixExpr) Expr() Expr { e, _ := child[Expr](p.n); return e }

// ----------------------------------------------------------------------------
// Binary operators

// BinOp is a binary or assignment operator.
type BinOp int

const (
	Add            BinOp = iota // +
	Subtract                    // -
	Divide                      // /
	Multiply                    // *
	Assign                      // =
	AddAssign                   // +=
	SubtractAssign              // -=
	DivideAssign                // /=
	MultiplyAssign              // *=
	Equals                      // ==
	NotEquals                   // !=
	Less                        // <
	LessEqual                   // <=
	Greater                     // >
	GreatEqual                  // >=
)

var binOpNames = [...]string{
	Add:            "Add",
	Subtract:       "Subtract",
	Divide:         "Divide",
	Multiply:       "Multiply",
	Assign:         "Assign",
	AddAssign:      "AddAssign",
	SubtractAssign: "SubtractAssign",
	DivideAssign:   "DivideAssign",
	MultiplyAssign: "MultiplyAssign",
	Equals:         "Equals",
	NotEquals:      "NotEquals",
	Less:           "Less",
	LessEqual:      "LessEqual",
	Greater:        "Greater",
	GreatEqual:     "GreatEqual",
}

func (op BinOp) String() string {
	if int(op) < len(binOpNames) {
		return binOpNames[op]
	}
	return fmt.Sprintf("BinOp(%d)", int(op))
}

// IsAssignment reports whether op stores into its left operand.
func (op BinOp) IsAssignment() bool {
	return op >= Assign && op <= MultiplyAssign
}

// IsComparison reports whether op compares its operands.
func (op BinOp) IsComparison() bool {
	return op >= Equals && op <= GreatEqual
}

// IsArithmetic reports whether op computes a number from its operands.
func (op BinOp) IsArithmetic() bool {
	return op >= Add && op <= Multiply
}

// binOps maps operator tokens to binary operators.
var binOps = map[syntax.SyntaxKind]BinOp{
	syntax.PLUS:    Add,
	syntax.MINUS:   Subtract,
	syntax.SLASH:   Divide,
	syntax.STAR:    Multiply,
	syntax.EQ:      Assign,
	syntax.PLUSEQ:  AddAssign,
	syntax.MINUSEQ: SubtractAssign,
	syntax.SLASHEQ: DivideAssign,
	syntax.STAREQ:  MultiplyAssign,
	syntax.EQEQ:    Equals,
	syntax.NEQ:     NotEquals,
	syntax.LT:      Less,
	syntax.LTEQ:    LessEqual,
	syntax.GT:      Greater,
	syntax.GTEQ:    GreatEqual,
}

// reservedBinOps are operator tokens the parser accepts that have no BinOp
// yet. BinExpr.OpDetails ignores them.
var reservedBinOps = map[syntax.SyntaxKind]string{
	syntax.PERCENT:   "Remainder",
	syntax.PERCENTEQ: "RemainderAssign",
	syntax.CARET:     "Power",
	syntax.CARETEQ:   "PowerAssign",
}

// ReservedBinOp returns the name of the operator kind stands for if kind
// is a reserved, not yet supported binary operator.
func ReservedBinOp(kind syntax.SyntaxKind) (string, bool) {
	name, ok := reservedBinOps[kind]
	return name, ok
}

// BinExpr is a binary expression: Lhs op Rhs
type BinExpr struct {
	expr
}

// OpDetails returns the first child token that is a known binary operator,
// together with its classification. Operands may be nodes or tokens of any
// shape, so every child is scanned in source order.
func (b BinExpr) OpDetails() (syntax.Token, BinOp, bool) {
	for e := range b.n.ChildrenWithTokens() {
		tok, ok := e.AsToken()
		if !ok {
			continue
		}
		if op, ok := binOps[tok.Kind()]; ok {
			return tok, op, true
		}
	}
	return syntax.Token{}, 0, false
}

// OpKind returns the classified operator.
func (b BinExpr) OpKind() (BinOp, bool) {
	_, op, ok := b.OpDetails()
	return op, ok
}

// OpToken returns the operator token.
func (b BinExpr) OpToken() (syntax.Token, bool) {
	tok, _, ok := b.OpDetails()
	return tok, ok
}

// ReservedOp returns the operator token and its name if the operator is a
// reserved one (see ReservedBinOp).
func (b BinExpr) ReservedOp() (syntax.Token, string, bool) {
	for e := range b.n.ChildrenWithTokens() {
		tok, ok := e.AsToken()
		if !ok {
			continue
		}
		if name, ok := reservedBinOps[tok.Kind()]; ok {
			return tok, name, true
		}
	}
	return syntax.Token{}, "", false
}

// Lhs returns the first operand, or nil.
func (b BinExpr) Lhs() Expr { e, _ := nthChild[Expr](b.n, 0); return e }

// Rhs returns the second operand, or nil.
func (b BinExpr) Rhs() Expr { e, _ := nthChild[Expr](b.n, 1); return e }

// SubExprs returns both operands with a single scan of the children.
func (b BinExpr) SubExprs() (lhs, rhs Expr) {
	for c := range b.n.Children() {
		e, ok := CastExpr(c)
		if !ok {
			continue
		}
		if lhs == nil {
			lhs = e
			continue
		}
		rhs = e
		break
	}
	return lhs, rhs
}
