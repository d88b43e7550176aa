// Package syntax implements the lossless concrete syntax tree for Mun source
// code: the lexer, the error-tolerant parser and the arena that stores the
// resulting tree.
package syntax

import "fmt"

// SyntaxKind tags every token and every node of the tree.
// Token kinds come first; node kinds start at SOURCE_FILE.
type SyntaxKind uint16

const (
	// Special kinds
	EOF   SyntaxKind = iota // end of input, never stored in a tree
	ERROR                   // lexical error token or error-recovery node

	// Trivia
	WHITESPACE
	COMMENT

	// Literals and names
	IDENT
	INT_NUMBER
	FLOAT_NUMBER
	STRING
	INDEX // positional field designator: '.' fused with digits, e.g. ".0"

	// Operators
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	CARET     // ^
	BANG      // !
	EQ        // =
	EQEQ      // ==
	NEQ       // !=
	LT        // <
	LTEQ      // <=
	GT        // >
	GTEQ      // >=
	PLUSEQ    // +=
	MINUSEQ   // -=
	STAREQ    // *=
	SLASHEQ   // /=
	PERCENTEQ // %=
	CARETEQ   // ^=

	// Delimiters
	L_PAREN    // (
	R_PAREN    // )
	L_CURLY    // {
	R_CURLY    // }
	COMMA      // ,
	SEMI       // ;
	COLON      // :
	DOT        // .
	THIN_ARROW // ->

	// Keywords
	BREAK_KW
	ELSE_KW
	FALSE_KW
	FN_KW
	IF_KW
	LET_KW
	LOOP_KW
	PUB_KW
	RETURN_KW
	STRUCT_KW
	TRUE_KW
	WHILE_KW

	// Nodes
	SOURCE_FILE
	FUNCTION_DEF
	STRUCT_DEF
	RECORD_FIELD_DEF_LIST
	RECORD_FIELD_DEF
	TUPLE_FIELD_DEF_LIST
	TUPLE_FIELD_DEF
	VISIBILITY
	NAME
	NAME_REF
	PARAM_LIST
	PARAM
	RET_TYPE
	PATH_TYPE
	LET_STMT
	EXPR_STMT
	BLOCK_EXPR
	PAREN_EXPR
	PATH_EXPR
	LITERAL
	PREFIX_EXPR
	BIN_EXPR
	CALL_EXPR
	ARG_LIST
	FIELD_EXPR
	IF_EXPR
	CONDITION
	LOOP_EXPR
	WHILE_EXPR
	RETURN_EXPR
	BREAK_EXPR

	kindCount
)

// kindNames maps kinds to their debug names.
var kindNames = [...]string{
	EOF:   "EOF",
	ERROR: "ERROR",

	WHITESPACE: "WHITESPACE",
	COMMENT:    "COMMENT",

	IDENT:        "IDENT",
	INT_NUMBER:   "INT_NUMBER",
	FLOAT_NUMBER: "FLOAT_NUMBER",
	STRING:       "STRING",
	INDEX:        "INDEX",

	PLUS:      "PLUS",
	MINUS:     "MINUS",
	STAR:      "STAR",
	SLASH:     "SLASH",
	PERCENT:   "PERCENT",
	CARET:     "CARET",
	BANG:      "BANG",
	EQ:        "EQ",
	EQEQ:      "EQEQ",
	NEQ:       "NEQ",
	LT:        "LT",
	LTEQ:      "LTEQ",
	GT:        "GT",
	GTEQ:      "GTEQ",
	PLUSEQ:    "PLUSEQ",
	MINUSEQ:   "MINUSEQ",
	STAREQ:    "STAREQ",
	SLASHEQ:   "SLASHEQ",
	PERCENTEQ: "PERCENTEQ",
	CARETEQ:   "CARETEQ",

	L_PAREN:    "L_PAREN",
	R_PAREN:    "R_PAREN",
	L_CURLY:    "L_CURLY",
	R_CURLY:    "R_CURLY",
	COMMA:      "COMMA",
	SEMI:       "SEMI",
	COLON:      "COLON",
	DOT:        "DOT",
	THIN_ARROW: "THIN_ARROW",

	BREAK_KW:  "BREAK_KW",
	ELSE_KW:   "ELSE_KW",
	FALSE_KW:  "FALSE_KW",
	FN_KW:     "FN_KW",
	IF_KW:     "IF_KW",
	LET_KW:    "LET_KW",
	LOOP_KW:   "LOOP_KW",
	PUB_KW:    "PUB_KW",
	RETURN_KW: "RETURN_KW",
	STRUCT_KW: "STRUCT_KW",
	TRUE_KW:   "TRUE_KW",
	WHILE_KW:  "WHILE_KW",

	SOURCE_FILE:           "SOURCE_FILE",
	FUNCTION_DEF:          "FUNCTION_DEF",
	STRUCT_DEF:            "STRUCT_DEF",
	RECORD_FIELD_DEF_LIST: "RECORD_FIELD_DEF_LIST",
	RECORD_FIELD_DEF:      "RECORD_FIELD_DEF",
	TUPLE_FIELD_DEF_LIST:  "TUPLE_FIELD_DEF_LIST",
	TUPLE_FIELD_DEF:       "TUPLE_FIELD_DEF",
	VISIBILITY:            "VISIBILITY",
	NAME:                  "NAME",
	NAME_REF:              "NAME_REF",
	PARAM_LIST:            "PARAM_LIST",
	PARAM:                 "PARAM",
	RET_TYPE:              "RET_TYPE",
	PATH_TYPE:             "PATH_TYPE",
	LET_STMT:              "LET_STMT",
	EXPR_STMT:             "EXPR_STMT",
	BLOCK_EXPR:            "BLOCK_EXPR",
	PAREN_EXPR:            "PAREN_EXPR",
	PATH_EXPR:             "PATH_EXPR",
	LITERAL:               "LITERAL",
	PREFIX_EXPR:           "PREFIX_EXPR",
	BIN_EXPR:              "BIN_EXPR",
	CALL_EXPR:             "CALL_EXPR",
	ARG_LIST:              "ARG_LIST",
	FIELD_EXPR:            "FIELD_EXPR",
	IF_EXPR:               "IF_EXPR",
	CONDITION:             "CONDITION",
	LOOP_EXPR:             "LOOP_EXPR",
	WHILE_EXPR:            "WHILE_EXPR",
	RETURN_EXPR:           "RETURN_EXPR",
	BREAK_EXPR:            "BREAK_EXPR",
}

// String returns the debug name of the kind.
func (k SyntaxKind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("SyntaxKind(%d)", k)
}

// IsTrivia reports whether k carries no meaning for the grammar
// (whitespace and comments).
func (k SyntaxKind) IsTrivia() bool {
	return k == WHITESPACE || k == COMMENT
}

// IsKeyword reports whether k is a keyword token.
func (k SyntaxKind) IsKeyword() bool {
	return k >= BREAK_KW && k <= WHILE_KW
}

// IsPunct reports whether k is an operator or delimiter token.
func (k SyntaxKind) IsPunct() bool {
	return k >= PLUS && k <= THIN_ARROW
}

// IsLiteral reports whether k is a token that can make up a literal
// expression on its own.
func (k SyntaxKind) IsLiteral() bool {
	switch k {
	case INT_NUMBER, FLOAT_NUMBER, STRING, TRUE_KW, FALSE_KW:
		return true
	}
	return false
}

// IsToken reports whether k tags a token (as opposed to a node).
func (k SyntaxKind) IsToken() bool {
	return k < SOURCE_FILE
}

// IsNode reports whether k tags a node.
func (k SyntaxKind) IsNode() bool {
	return k >= SOURCE_FILE && k < kindCount
}

// kindText holds the fixed spelling of punctuation and keyword kinds.
var kindText = map[SyntaxKind]string{
	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	SLASH:      "/",
	PERCENT:    "%",
	CARET:      "^",
	BANG:       "!",
	EQ:         "=",
	EQEQ:       "==",
	NEQ:        "!=",
	LT:         "<",
	LTEQ:       "<=",
	GT:         ">",
	GTEQ:       ">=",
	PLUSEQ:     "+=",
	MINUSEQ:    "-=",
	STAREQ:     "*=",
	SLASHEQ:    "/=",
	PERCENTEQ:  "%=",
	CARETEQ:    "^=",
	L_PAREN:    "(",
	R_PAREN:    ")",
	L_CURLY:    "{",
	R_CURLY:    "}",
	COMMA:      ",",
	SEMI:       ";",
	COLON:      ":",
	DOT:        ".",
	THIN_ARROW: "->",
	BREAK_KW:   "break",
	ELSE_KW:    "else",
	FALSE_KW:   "false",
	FN_KW:      "fn",
	IF_KW:      "if",
	LET_KW:     "let",
	LOOP_KW:    "loop",
	PUB_KW:     "pub",
	RETURN_KW:  "return",
	STRUCT_KW:  "struct",
	TRUE_KW:    "true",
	WHILE_KW:   "while",
}

// Text returns the fixed source spelling of a punctuation or keyword kind,
// or "" for kinds whose text varies.
func (k SyntaxKind) Text() string {
	return kindText[k]
}

// keywords maps keyword strings to their kind.
var keywords = map[string]SyntaxKind{
	"break":  BREAK_KW,
	"else":   ELSE_KW,
	"false":  FALSE_KW,
	"fn":     FN_KW,
	"if":     IF_KW,
	"let":    LET_KW,
	"loop":   LOOP_KW,
	"pub":    PUB_KW,
	"return": RETURN_KW,
	"struct": STRUCT_KW,
	"true":   TRUE_KW,
	"while":  WHILE_KW,
}

// LookupKeyword returns the keyword kind for ident, or IDENT if ident is not
// a keyword.
func LookupKeyword(ident string) SyntaxKind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return IDENT
}
