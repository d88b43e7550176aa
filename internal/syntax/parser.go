package syntax

import (
	"fmt"
	"io"
)

// Parse parses Mun source text into a lossless syntax tree.
// Parsing never fails: malformed input is kept in ERROR nodes and reported
// through Tree.Errors.
func Parse(text string) *Tree {
	return ParseFile("", text)
}

// ParseFile is like Parse but records filename in the tree and in the
// positions of its errors.
func ParseFile(filename, text string) *Tree {
	lexemes, lexErrs := Tokenize(text)
	p := newParser(text, lexemes)
	for _, e := range lexErrs {
		p.b.Error(e.Msg, e.Range)
	}
	p.sourceFile()
	return p.b.Finish(filename)
}

// ParseReader reads src completely and parses it. The errh function, if
// not nil, is called for every error in source order. The returned error is
// only non-nil if src could not be read.
func ParseReader(filename string, src io.Reader, errh func(pos Pos, msg string)) (*Tree, error) {
	buf, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	t := ParseFile(filename, string(buf))
	if errh != nil {
		for _, e := range t.errors {
			errh(e.Pos, e.Msg)
		}
	}
	return t, nil
}

// parser is a recursive-descent parser that drives a Builder.
// It only looks at significant lexemes; trivia is forwarded to the builder
// lazily so that it ends up in the parent of the next node rather than in
// the node itself.
type parser struct {
	text    string
	lexemes []Lexeme
	offsets []TextSize // start offset of every lexeme
	sig     []int      // indices of the significant lexemes
	pos     int        // current index into sig
	raw     int        // next lexeme to hand to the builder
	b       *Builder
}

func newParser(text string, lexemes []Lexeme) *parser {
	p := &parser{
		text:    text,
		lexemes: lexemes,
		offsets: make([]TextSize, len(lexemes)+1),
		b:       NewBuilder(),
	}
	var off TextSize
	for i, l := range lexemes {
		p.offsets[i] = off
		off += l.Len
		if !l.Kind.IsTrivia() {
			p.sig = append(p.sig, i)
		}
	}
	p.offsets[len(lexemes)] = off
	return p
}

// ----------------------------------------------------------------------------
// Token navigation

// nth returns the kind of the n-th significant lexeme ahead, or EOF.
func (p *parser) nth(n int) SyntaxKind {
	if p.pos+n >= len(p.sig) {
		return EOF
	}
	return p.lexemes[p.sig[p.pos+n]].Kind
}

// current returns the kind of the current significant lexeme.
func (p *parser) current() SyntaxKind {
	return p.nth(0)
}

// at reports whether the current lexeme has the given kind.
func (p *parser) at(kind SyntaxKind) bool {
	return p.current() == kind
}

// atAny reports whether the current lexeme has one of the given kinds.
func (p *parser) atAny(kinds ...SyntaxKind) bool {
	cur := p.current()
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// currentRange returns the range of the current lexeme, or an empty range
// at the end of the input.
func (p *parser) currentRange() TextRange {
	if p.pos >= len(p.sig) {
		end := p.offsets[len(p.lexemes)]
		return TextRangeFromTo(end, end)
	}
	i := p.sig[p.pos]
	return TextRangeFromTo(p.offsets[i], p.offsets[i+1])
}

// flushTrivia hands the trivia before the current lexeme to the builder.
func (p *parser) flushTrivia() {
	limit := len(p.lexemes)
	if p.pos < len(p.sig) {
		limit = p.sig[p.pos]
	}
	p.emit(limit)
}

// emit adds lexemes up to (not including) limit to the open node.
func (p *parser) emit(limit int) {
	for ; p.raw < limit; p.raw++ {
		l := p.lexemes[p.raw]
		p.b.Token(l.Kind, p.text[p.offsets[p.raw]:p.offsets[p.raw+1]])
	}
}

// bump adds the current lexeme to the open node and advances.
func (p *parser) bump() {
	if p.pos >= len(p.sig) {
		return
	}
	p.flushTrivia()
	p.emit(p.sig[p.pos] + 1)
	p.pos++
}

// bumpFused adds the next n significant lexemes as one token of the given
// kind. The caller guarantees they are adjacent.
func (p *parser) bumpFused(kind SyntaxKind, n int) {
	p.flushTrivia()
	first := p.sig[p.pos]
	last := p.sig[p.pos+n-1]
	p.b.Token(kind, p.text[p.offsets[first]:p.offsets[last+1]])
	p.raw = last + 1
	p.pos += n
}

// adjacent reports whether the current and the next significant lexemes
// touch, with no trivia in between.
func (p *parser) adjacent() bool {
	return p.pos+1 < len(p.sig) && p.sig[p.pos+1] == p.sig[p.pos]+1
}

// got reports whether the current token is kind.
// If so, it consumes the token and returns true.
func (p *parser) got(kind SyntaxKind) bool {
	if p.at(kind) {
		p.bump()
		return true
	}
	return false
}

// want consumes the current token if it matches kind.
// Otherwise, it reports an error and consumes nothing.
func (p *parser) want(kind SyntaxKind) {
	if !p.got(kind) {
		p.syntaxError("expected " + describe(kind))
	}
}

// describe returns the user-facing name of a kind.
func describe(kind SyntaxKind) string {
	if text := kind.Text(); text != "" {
		return "'" + text + "'"
	}
	switch kind {
	case IDENT:
		return "identifier"
	case EOF:
		return "end of file"
	}
	return kind.String()
}

// ----------------------------------------------------------------------------
// Node construction

func (p *parser) start(kind SyntaxKind) {
	p.flushTrivia()
	p.b.StartNode(kind)
}

func (p *parser) finish() {
	p.b.FinishNode()
}

// checkpoint flushes pending trivia first, so that a node started at the
// checkpoint begins at the next significant token.
func (p *parser) checkpoint() Checkpoint {
	p.flushTrivia()
	return p.b.Checkpoint()
}

func (p *parser) startAt(cp Checkpoint, kind SyntaxKind) {
	p.b.StartNodeAt(cp, kind)
}

// ----------------------------------------------------------------------------
// Error handling

// syntaxError reports a syntax error at the current token.
func (p *parser) syntaxError(msg string) {
	p.b.Error(msg, p.currentRange())
}

// errorAndBump reports msg and wraps the current token in an ERROR node.
func (p *parser) errorAndBump(msg string) {
	p.syntaxError(msg)
	if p.at(EOF) {
		return
	}
	p.start(ERROR)
	p.bump()
	p.finish()
}

// errorRecover reports msg and, unless the current token is one of the
// recovery kinds, consumes it into an ERROR node.
func (p *parser) errorRecover(msg string, recovery ...SyntaxKind) {
	if p.atAny(recovery...) || p.at(EOF) {
		p.syntaxError(msg)
		return
	}
	p.errorAndBump(msg)
}

// itemRecovery are the tokens that start a new item.
var itemRecovery = []SyntaxKind{FN_KW, STRUCT_KW, PUB_KW}

// ----------------------------------------------------------------------------
// Items

// sourceFile parses a complete source file.
func (p *parser) sourceFile() {
	p.b.StartNode(SOURCE_FILE)
	for !p.at(EOF) {
		if p.atAny(itemRecovery...) {
			p.item()
			continue
		}
		p.errorAndBump("expected an item")
	}
	p.flushTrivia()
	p.finish()
}

// item parses: Visibility? (FunctionDef | StructDef)
func (p *parser) item() {
	cp := p.checkpoint()
	if p.at(PUB_KW) {
		p.start(VISIBILITY)
		p.bump()
		p.finish()
	}

	switch p.current() {
	case FN_KW:
		p.startAt(cp, FUNCTION_DEF)
		p.functionDef()
	case STRUCT_KW:
		p.startAt(cp, STRUCT_DEF)
		p.structDef()
	default:
		p.startAt(cp, ERROR)
		p.syntaxError("expected 'fn' or 'struct'")
	}
	p.finish()
}

// functionDef parses: 'fn' Name ParamList RetType? BlockExpr
func (p *parser) functionDef() {
	p.bump() // fn
	p.name(L_PAREN, L_CURLY)

	if p.at(L_PAREN) {
		p.paramList()
	} else {
		p.syntaxError("expected function arguments")
	}

	if p.at(THIN_ARROW) {
		p.retType()
	}

	if p.at(L_CURLY) {
		p.blockExpr()
	} else {
		p.syntaxError("expected a block")
	}
}

// structDef parses: 'struct' Name (RecordFieldDefList | TupleFieldDefList ';'? | ';')
func (p *parser) structDef() {
	p.bump() // struct
	p.name(L_CURLY, L_PAREN, SEMI)

	switch p.current() {
	case L_CURLY:
		p.recordFieldDefList()
	case L_PAREN:
		p.tupleFieldDefList()
		p.got(SEMI)
	case SEMI:
		p.bump()
	default:
		p.syntaxError("expected a ';', '{', or '('")
	}
}

// recordFieldDefList parses: '{' (Visibility? Name ':' PathType ','?)* '}'
func (p *parser) recordFieldDefList() {
	p.start(RECORD_FIELD_DEF_LIST)
	p.bump() // {
	for !p.atAny(R_CURLY, EOF) && !p.atAny(itemRecovery[:2]...) {
		if !p.atAny(IDENT, PUB_KW) {
			p.errorAndBump("expected a field")
			continue
		}
		p.start(RECORD_FIELD_DEF)
		p.visibility()
		p.name(COLON)
		p.want(COLON)
		p.typeRef()
		p.finish()
		if !p.at(R_CURLY) {
			p.want(COMMA)
		}
	}
	p.want(R_CURLY)
	p.finish()
}

// tupleFieldDefList parses: '(' (Visibility? PathType ','?)* ')'
func (p *parser) tupleFieldDefList() {
	p.start(TUPLE_FIELD_DEF_LIST)
	p.bump() // (
	for !p.atAny(R_PAREN, EOF, L_CURLY, SEMI) {
		if !p.atAny(IDENT, PUB_KW) {
			p.errorAndBump("expected a tuple field")
			continue
		}
		p.start(TUPLE_FIELD_DEF)
		p.visibility()
		p.typeRef()
		p.finish()
		if !p.at(R_PAREN) {
			p.want(COMMA)
		}
	}
	p.want(R_PAREN)
	p.finish()
}

// visibility parses an optional 'pub'.
func (p *parser) visibility() {
	if p.at(PUB_KW) {
		p.start(VISIBILITY)
		p.bump()
		p.finish()
	}
}

// name parses a NAME node, or reports an error and consumes the current
// token unless it is one of the recovery kinds.
func (p *parser) name(recovery ...SyntaxKind) {
	if p.at(IDENT) {
		p.start(NAME)
		p.bump()
		p.finish()
		return
	}
	p.errorRecover("expected a name", recovery...)
}

// nameRef parses a NAME_REF node at an identifier.
func (p *parser) nameRef() {
	p.start(NAME_REF)
	p.bump()
	p.finish()
}

// paramList parses: '(' (Param (',' Param)* ','?)? ')'
func (p *parser) paramList() {
	p.start(PARAM_LIST)
	p.bump() // (
	for !p.atAny(R_PAREN, EOF) {
		if !p.at(IDENT) {
			p.errorRecover("expected a parameter", L_CURLY, THIN_ARROW)
			if p.atAny(L_CURLY, THIN_ARROW) {
				break
			}
			continue
		}
		p.start(PARAM)
		p.name()
		p.want(COLON)
		p.typeRef()
		p.finish()
		if !p.at(R_PAREN) {
			p.want(COMMA)
		}
	}
	p.want(R_PAREN)
	p.finish()
}

// retType parses: '->' PathType
func (p *parser) retType() {
	p.start(RET_TYPE)
	p.bump() // ->
	p.typeRef()
	p.finish()
}

// typeRef parses a type. Only path types exist.
func (p *parser) typeRef() {
	if !p.at(IDENT) {
		p.syntaxError("expected a type")
		return
	}
	p.start(PATH_TYPE)
	p.nameRef()
	p.finish()
}

// ----------------------------------------------------------------------------
// Statements

// blockExpr parses: '{' Stmt* Expr? '}'
func (p *parser) blockExpr() {
	p.start(BLOCK_EXPR)
	p.bump() // {

	for !p.atAny(R_CURLY, EOF) {
		switch {
		case p.at(SEMI):
			p.bump()

		case p.at(LET_KW):
			p.letStmt()

		case p.atAny(itemRecovery...):
			// Most likely a missing '}': let the item loop take over.
			p.syntaxError("expected '}'")
			p.finish()
			return

		case atExprStart(p.current()):
			p.exprStmt()

		default:
			p.errorAndBump("expected an expression or statement")
		}
	}

	p.want(R_CURLY)
	p.finish()
}

// letStmt parses: 'let' Name (':' PathType)? ('=' Expr)? ';'
func (p *parser) letStmt() {
	p.start(LET_STMT)
	p.bump() // let
	p.name(COLON, EQ, SEMI)

	if p.got(COLON) {
		p.typeRef()
	}
	if p.got(EQ) {
		if !p.expr() {
			p.syntaxError("expected an expression")
		}
	}
	p.want(SEMI)
	p.finish()
}

// exprStmt parses an expression in statement position. The expression is
// wrapped in an EXPR_STMT unless it is the tail expression of the block.
// Block-like expressions end the statement without a ';'.
func (p *parser) exprStmt() {
	cp := p.checkpoint()

	blockLike := atBlockLike(p.current())
	if blockLike {
		p.atom()
		// `if c { s } else { t }.f;` keeps going as an ordinary expression.
		if p.at(DOT) {
			blockLike = false
			p.postfix(cp)
			p.binaryRHS(cp, 1)
		}
	} else {
		p.expr()
	}

	switch {
	case p.at(SEMI):
		p.startAt(cp, EXPR_STMT)
		p.bump()
		p.finish()
	case p.at(R_CURLY):
		// tail expression
	case blockLike:
		p.startAt(cp, EXPR_STMT)
		p.finish()
	default:
		p.startAt(cp, EXPR_STMT)
		p.syntaxError("expected ';'")
		p.finish()
	}
}

// ----------------------------------------------------------------------------
// Expressions

// binaryPrecedence returns the binding power of a binary operator and
// whether it associates to the right. A zero precedence means kind is not a
// binary operator.
//
//	1: = += -= *= /= %= ^=   (right)
//	2: == != < <= > >=
//	3: + -
//	4: * / %
//	5: ^                     (right)
func binaryPrecedence(kind SyntaxKind) (prec int, right bool) {
	switch kind {
	case EQ, PLUSEQ, MINUSEQ, STAREQ, SLASHEQ, PERCENTEQ, CARETEQ:
		return 1, true
	case EQEQ, NEQ, LT, LTEQ, GT, GTEQ:
		return 2, false
	case PLUS, MINUS:
		return 3, false
	case STAR, SLASH, PERCENT:
		return 4, false
	case CARET:
		return 5, true
	}
	return 0, false
}

// atExprStart reports whether kind can begin an expression.
func atExprStart(kind SyntaxKind) bool {
	switch kind {
	case INT_NUMBER, FLOAT_NUMBER, STRING, TRUE_KW, FALSE_KW,
		IDENT, L_PAREN, L_CURLY, IF_KW, LOOP_KW, WHILE_KW,
		RETURN_KW, BREAK_KW, BANG, MINUS:
		return true
	}
	return false
}

// atBlockLike reports whether kind begins an expression that ends with a
// block and therefore needs no ';' in statement position.
func atBlockLike(kind SyntaxKind) bool {
	switch kind {
	case L_CURLY, IF_KW, LOOP_KW, WHILE_KW:
		return true
	}
	return false
}

// expr parses an expression and reports whether one was found.
// Nothing is consumed if the current token cannot start an expression.
func (p *parser) expr() bool {
	cp := p.checkpoint()
	if !p.unary() {
		return false
	}
	p.binaryRHS(cp, 1)
	return true
}

// binaryRHS folds binary operators with precedence of at least minPrec
// into the operand that starts at cp. Implements precedence climbing.
func (p *parser) binaryRHS(cp Checkpoint, minPrec int) {
	for {
		prec, right := binaryPrecedence(p.current())
		if prec == 0 || prec < minPrec {
			return
		}

		p.startAt(cp, BIN_EXPR)
		p.bump() // operator

		next := prec + 1
		if right {
			next = prec
		}
		rhs := p.checkpoint()
		if p.unary() {
			p.binaryRHS(rhs, next)
		} else {
			p.syntaxError("expected an expression")
		}
		p.finish()
	}
}

// unary parses a prefix expression or a postfix expression.
func (p *parser) unary() bool {
	if p.atAny(BANG, MINUS) {
		p.start(PREFIX_EXPR)
		p.bump()
		if !p.unary() {
			p.syntaxError("expected an expression")
		}
		p.finish()
		return true
	}

	cp := p.checkpoint()
	if !p.atom() {
		return false
	}
	p.postfix(cp)
	return true
}

// postfix parses calls and field accesses applied to the operand at cp.
func (p *parser) postfix(cp Checkpoint) {
	for {
		switch p.current() {
		case L_PAREN:
			p.startAt(cp, CALL_EXPR)
			p.argList()
			p.finish()

		case DOT:
			p.startAt(cp, FIELD_EXPR)
			p.fieldSuffix()
			p.finish()

		default:
			return
		}
	}
}

// fieldSuffix parses the part of a field access after the receiver:
// '.' NameRef, or an INDEX token made of '.' and the digits glued to it.
func (p *parser) fieldSuffix() {
	if p.nth(1) == INT_NUMBER && p.adjacent() {
		p.bumpFused(INDEX, 2)
		return
	}

	p.bump() // .
	switch p.current() {
	case IDENT:
		p.nameRef()
	case INT_NUMBER:
		p.errorAndBump("unexpected whitespace before field index")
	default:
		p.syntaxError("expected a field name or index")
	}
}

// argList parses: '(' (Expr (',' Expr)* ','?)? ')'
func (p *parser) argList() {
	p.start(ARG_LIST)
	p.bump() // (
	for !p.atAny(R_PAREN, EOF) {
		if !p.expr() {
			p.errorRecover("expected an argument", SEMI, L_CURLY, R_CURLY)
			if p.atAny(SEMI, L_CURLY, R_CURLY) {
				break
			}
			continue
		}
		if !p.at(R_PAREN) {
			p.want(COMMA)
		}
	}
	p.want(R_PAREN)
	p.finish()
}

// atom parses a primary expression and reports whether one was found.
// Nothing is consumed if none was.
func (p *parser) atom() bool {
	switch p.current() {
	case INT_NUMBER, FLOAT_NUMBER, STRING, TRUE_KW, FALSE_KW:
		p.start(LITERAL)
		p.bump()
		p.finish()

	case IDENT:
		p.start(PATH_EXPR)
		p.nameRef()
		p.finish()

	case L_PAREN:
		p.start(PAREN_EXPR)
		p.bump()
		if !p.expr() {
			p.syntaxError("expected an expression")
		}
		p.want(R_PAREN)
		p.finish()

	case L_CURLY:
		p.blockExpr()

	case IF_KW:
		p.ifExpr()

	case LOOP_KW:
		p.start(LOOP_EXPR)
		p.bump()
		p.loopBody()
		p.finish()

	case WHILE_KW:
		p.start(WHILE_EXPR)
		p.bump()
		p.condition()
		p.loopBody()
		p.finish()

	case RETURN_KW:
		p.start(RETURN_EXPR)
		p.bump()
		if atExprStart(p.current()) {
			p.expr()
		}
		p.finish()

	case BREAK_KW:
		p.start(BREAK_EXPR)
		p.bump()
		if atExprStart(p.current()) {
			p.expr()
		}
		p.finish()

	default:
		// callers report the missing expression in their own words
		return false
	}
	return true
}

// ifExpr parses: 'if' Condition BlockExpr ('else' (BlockExpr | IfExpr))?
func (p *parser) ifExpr() {
	p.start(IF_EXPR)
	p.bump() // if
	p.condition()

	if p.at(L_CURLY) {
		p.blockExpr()
	} else {
		p.syntaxError("expected a block")
	}

	if p.got(ELSE_KW) {
		switch p.current() {
		case IF_KW:
			p.ifExpr()
		case L_CURLY:
			p.blockExpr()
		default:
			p.syntaxError("expected 'if' or a block")
		}
	}
	p.finish()
}

// condition parses the condition of an if or while expression.
func (p *parser) condition() {
	p.start(CONDITION)
	if !p.expr() {
		p.syntaxError("expected a condition")
	}
	p.finish()
}

// loopBody parses the block of a loop or while expression.
func (p *parser) loopBody() {
	if p.at(L_CURLY) {
		p.blockExpr()
	} else {
		p.syntaxError("expected a block")
	}
}
