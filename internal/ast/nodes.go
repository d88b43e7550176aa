package ast

import "github.com/foeb/mun/internal/syntax"

// ----------------------------------------------------------------------------
// Files and items

// SourceFile is the root of a parsed file.
type SourceFile struct {
	node
}

// NewSourceFile returns the view of the root of t.
func NewSourceFile(t *syntax.Tree) SourceFile {
	return SourceFile{node{t.Root()}}
}

// Items returns the top-level items in source order.
func (f SourceFile) Items() []ModuleItem { return children[ModuleItem](f.n) }

// Functions returns the function definitions in source order.
func (f SourceFile) Functions() []FunctionDef { return children[FunctionDef](f.n) }

// Structs returns the struct definitions in source order.
func (f SourceFile) Structs() []StructDef { return children[StructDef](f.n) }

// FunctionDef is a function definition:
// pub fn Name(ParamList) -> RetType { Body }
type FunctionDef struct {
	item
}

func (f FunctionDef) Visibility() (Visibility, bool) { return child[Visibility](f.n) }
func (f FunctionDef) Name() (Name, bool)             { return child[Name](f.n) }
func (f FunctionDef) ParamList() (ParamList, bool)   { return child[ParamList](f.n) }
func (f FunctionDef) RetType() (RetType, bool)       { return child[RetType](f.n) }
func (f FunctionDef) Body() (BlockExpr, bool)        { return child[BlockExpr](f.n) }

// StructKind tells the three shapes of a struct definition apart.
type StructKind int

const (
	UnitStruct   StructKind = iota // struct S;
	RecordStruct                   // struct S { a: T }
	TupleStruct                    // struct S(T);
)

func (k StructKind) String() string {
	switch k {
	case RecordStruct:
		return "record"
	case TupleStruct:
		return "tuple"
	}
	return "unit"
}

// StructDef is a struct definition.
type StructDef struct {
	item
}

func (s StructDef) Visibility() (Visibility, bool) { return child[Visibility](s.n) }
func (s StructDef) Name() (Name, bool)             { return child[Name](s.n) }

func (s StructDef) RecordFields() (RecordFieldDefList, bool) {
	return child[RecordFieldDefList](s.n)
}

func (s StructDef) TupleFields() (TupleFieldDefList, bool) {
	return child[TupleFieldDefList](s.n)
}

// Kind returns the shape of the struct. A struct without a field list is a
// unit struct.
func (s StructDef) Kind() StructKind {
	if _, ok := s.RecordFields(); ok {
		return RecordStruct
	}
	if _, ok := s.TupleFields(); ok {
		return TupleStruct
	}
	return UnitStruct
}

type RecordFieldDefList struct {
	node
}

func (l RecordFieldDefList) Fields() []RecordFieldDef { return children[RecordFieldDef](l.n) }

// RecordFieldDef is a named field: pub name: Type
type RecordFieldDef struct {
	node
}

func (f RecordFieldDef) Visibility() (Visibility, bool) { return child[Visibility](f.n) }
func (f RecordFieldDef) Name() (Name, bool)             { return child[Name](f.n) }
func (f RecordFieldDef) TypeRef() TypeRef               { t, _ := child[TypeRef](f.n); return t }

type TupleFieldDefList struct {
	node
}

func (l TupleFieldDefList) Fields() []TupleFieldDef { return children[TupleFieldDef](l.n) }

// TupleFieldDef is a positional field: pub Type
type TupleFieldDef struct {
	node
}

func (f TupleFieldDef) Visibility() (Visibility, bool) { return child[Visibility](f.n) }
func (f TupleFieldDef) TypeRef() TypeRef               { t, _ := child[TypeRef](f.n); return t }

// Visibility is the 'pub' modifier.
type Visibility struct {
	node
}

// ----------------------------------------------------------------------------
// Names and types

// Name is an identifier that introduces a binding.
type Name struct {
	node
}

// Ident returns the identifier token.
func (n Name) Ident() (syntax.Token, bool) { return tokenChild(n.n, syntax.IDENT) }

// NameRef is an identifier that refers to a binding.
type NameRef struct {
	node
}

// Ident returns the identifier token.
func (n NameRef) Ident() (syntax.Token, bool) { return tokenChild(n.n, syntax.IDENT) }

type ParamList struct {
	node
}

func (l ParamList) Params() []Param { return children[Param](l.n) }

// Param is a function parameter: name: Type
type Param struct {
	node
}

func (p Param) Name() (Name, bool) { return child[Name](p.n) }
func (p Param) TypeRef() TypeRef   { t, _ := child[TypeRef](p.n); return t }

// RetType is the return type of a function: -> Type
type RetType struct {
	node
}

func (r RetType) TypeRef() TypeRef { t, _ := child[TypeRef](r.n); return t }

// PathType is a type named by a path.
type PathType struct {
	typeRef
}

func (p PathType) NameRef() (NameRef, bool) { return child[NameRef](p.n) }

// ----------------------------------------------------------------------------
// Statements

// LetStmt is a local binding: let name: Type = Initializer;
type LetStmt struct {
	stmt
}

func (s LetStmt) Name() (Name, bool) { return child[Name](s.n) }
func (s LetStmt) TypeRef() TypeRef   { t, _ := child[TypeRef](s.n); return t }
func (s LetStmt) Initializer() Expr  { e, _ := child[Expr](s.n); return e }

// ExprStmt is an expression in statement position.
type ExprStmt struct {
	stmt
}

func (s ExprStmt) Expr() Expr { e, _ := child[Expr](s.n); return e }

// ----------------------------------------------------------------------------
// Expressions

// BlockExpr is a block: { Statements TailExpr }
type BlockExpr struct {
	expr
}

func (BlockExpr) aElseBranch() {}

// Statements returns the statements of the block, without the tail
// expression.
func (b BlockExpr) Statements() []Stmt { return children[Stmt](b.n) }

// TailExpr returns the expression that produces the value of the block,
// or nil.
func (b BlockExpr) TailExpr() Expr { e, _ := child[Expr](b.n); return e }

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	expr
}

func (p ParenExpr) Expr() Expr { e, _ := child[Expr](p.n); return e }

// PathExpr is a reference to a named value.
type PathExpr struct {
	expr
}

func (p PathExpr) NameRef() (NameRef, bool) { return child[NameRef](p.n) }

// CallExpr is a function call: Callee(ArgList)
type CallExpr struct {
	expr
}

func (c CallExpr) Callee() Expr             { e, _ := child[Expr](c.n); return e }
func (c CallExpr) ArgList() (ArgList, bool) { return child[ArgList](c.n) }

type ArgList struct {
	node
}

func (l ArgList) Args() []Expr { return children[Expr](l.n) }

// Condition is the condition of an if or while expression.
type Condition struct {
	node
}

func (c Condition) Expr() Expr { e, _ := child[Expr](c.n); return e }

// LoopExpr is an infinite loop: loop { ... }
type LoopExpr struct {
	expr
}

func (l LoopExpr) LoopBody() (BlockExpr, bool) { return child[BlockExpr](l.n) }

// WhileExpr is a conditional loop: while Condition { ... }
type WhileExpr struct {
	expr
}

func (w WhileExpr) Condition() (Condition, bool) { return child[Condition](w.n) }
func (w WhileExpr) LoopBody() (BlockExpr, bool)  { return child[BlockExpr](w.n) }

// ReturnExpr is 'return' with an optional value.
type ReturnExpr struct {
	expr
}

func (r ReturnExpr) Expr() Expr { e, _ := child[Expr](r.n); return e }

// BreakExpr is 'break' with an optional value.
type BreakExpr struct {
	expr
}

func (b BreakExpr) Expr() Expr { e, _ := child[Expr](b.n); return e }
