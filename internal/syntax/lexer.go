package syntax

import "fmt"

// Lexeme is a single token produced by Tokenize: its kind and its length in
// bytes. Lexemes are contiguous, so offsets follow from summing lengths.
type Lexeme struct {
	Kind SyntaxKind
	Len  TextSize
}

// LexError describes a malformed token.
type LexError struct {
	Msg   string
	Range TextRange
}

func (e LexError) Error() string {
	return e.Range.String() + ": " + e.Msg
}

// lexer splits source text into lexemes, trivia included.
type lexer struct {
	source // embedded character reader

	start  int        // byte offset of the token being scanned
	last   SyntaxKind // kind of the previous lexeme, trivia included
	tokens []Lexeme
	errs   []LexError
}

// Tokenize splits text into lexemes. The result is lossless: the lengths
// of all lexemes add up to len(text). Malformed input never stops the
// lexer; it produces ERROR lexemes or a best-effort kind plus a LexError.
func Tokenize(text string) ([]Lexeme, []LexError) {
	l := &lexer{source: newSource(text), last: EOF}
	for l.ch >= 0 {
		l.start = l.offs
		kind := l.scan()
		l.tokens = append(l.tokens, Lexeme{Kind: kind, Len: TextSize(l.offs - l.start)})
		l.last = kind
	}
	return l.tokens, l.errs
}

// error reports a lexical error covering the token scanned so far.
func (l *lexer) error(msg string) {
	end := l.offs
	if end == l.start {
		end = l.next
	}
	l.errs = append(l.errs, LexError{
		Msg:   msg,
		Range: TextRangeFromTo(TextSize(l.start), TextSize(end)),
	})
}

// scan consumes one token and returns its kind.
func (l *lexer) scan() SyntaxKind {
	switch {
	case isWhitespace(l.ch):
		for isWhitespace(l.ch) {
			l.nextch()
		}
		return WHITESPACE

	case l.ch == '/' && l.peek() == '/':
		l.skipLineComment()
		return COMMENT

	case l.ch == '/' && l.peek() == '*':
		l.skipBlockComment()
		return COMMENT

	case isLetter(l.ch):
		return l.scanIdent()

	case isDigit(l.ch):
		return l.scanNumber()

	case l.ch == '"':
		l.scanString()
		return STRING
	}

	if kind, ok := l.scanOperator(); ok {
		return kind
	}

	ch := l.ch
	l.nextch()
	l.error(fmt.Sprintf("unexpected character %q", ch))
	return ERROR
}

// scanIdent scans an identifier or keyword.
func (l *lexer) scanIdent() SyntaxKind {
	for isLetter(l.ch) || isDigit(l.ch) {
		l.nextch()
	}
	return LookupKeyword(l.buf[l.start:l.offs])
}

// scanNumber scans an integer or float literal.
// A number directly after '.' is a field index and never has a fraction,
// so "x.0.1" yields two indices instead of the float "0.1".
func (l *lexer) scanNumber() SyntaxKind {
	afterDot := l.last == DOT

	if l.ch == '0' {
		l.nextch()
		switch lower(l.ch) {
		case 'x':
			l.nextch()
			l.scanDigits(isHexDigit, "invalid hex digit")
			return INT_NUMBER
		case 'o':
			l.nextch()
			l.scanDigits(isOctalDigit, "invalid octal digit")
			return INT_NUMBER
		case 'b':
			l.nextch()
			l.scanDigits(isBinaryDigit, "invalid binary digit")
			if isDigit(l.ch) {
				l.error("invalid binary digit")
				l.scanDecimalDigits()
			}
			return INT_NUMBER
		}
	}
	l.scanDecimalDigits()

	if afterDot {
		return INT_NUMBER
	}

	kind := INT_NUMBER

	// Decimal point, unless it starts a range, a method or a field access.
	if l.ch == '.' {
		if p := l.peek(); p != '.' && !isLetter(p) {
			kind = FLOAT_NUMBER
			l.nextch()
			l.scanDecimalDigits()
		}
	}

	// Exponent
	if lower(l.ch) == 'e' {
		if p := l.peek(); isDigit(p) || p == '+' || p == '-' {
			kind = FLOAT_NUMBER
			l.nextch()
			if l.ch == '+' || l.ch == '-' {
				l.nextch()
			}
			if !isDigit(l.ch) {
				l.error("exponent has no digits")
				return kind
			}
			l.scanDecimalDigits()
		}
	}

	return kind
}

// scanDecimalDigits scans decimal digits and '_' separators.
func (l *lexer) scanDecimalDigits() {
	for isDigit(l.ch) || l.ch == '_' {
		l.nextch()
	}
}

// scanDigits scans digits accepted by valid, reporting msg if there is none.
func (l *lexer) scanDigits(valid func(rune) bool, msg string) {
	if !valid(l.ch) {
		l.error(msg)
		return
	}
	for valid(l.ch) || l.ch == '_' {
		l.nextch()
	}
}

// scanString scans a string literal including its quotes.
// The token text is kept verbatim; escapes are only validated.
func (l *lexer) scanString() {
	l.nextch() // skip opening "

	for {
		switch {
		case l.ch == '"':
			l.nextch()
			return

		case l.ch == '\\':
			l.scanEscape()

		case l.ch == '\n' || l.ch < 0:
			l.error("string not terminated")
			return

		default:
			l.nextch()
		}
	}
}

// scanEscape validates an escape sequence.
func (l *lexer) scanEscape() {
	l.nextch() // skip \

	switch l.ch {
	case 'n', 't', 'r', '\\', '"', '0':
		l.nextch()
	case 'x':
		l.nextch()
		for i := 0; i < 2; i++ {
			if !isHexDigit(l.ch) {
				l.error("invalid hex escape")
				return
			}
			l.nextch()
		}
	case -1, '\n':
		// reported as an unterminated string by the caller
	default:
		l.error(fmt.Sprintf("unknown escape sequence: \\%c", l.ch))
		l.nextch()
	}
}

// scanOperator scans an operator or delimiter.
func (l *lexer) scanOperator() (SyntaxKind, bool) {
	ch := l.ch
	kind := ERROR

	// withEq picks the compound form when the next character is '='.
	withEq := func(single, compound SyntaxKind) SyntaxKind {
		if l.ch == '=' {
			l.nextch()
			return compound
		}
		return single
	}

	switch ch {
	case '+', '-', '*', '/', '%', '^', '!', '=', '<', '>',
		'(', ')', '{', '}', ',', ';', ':', '.':
		l.nextch()
	default:
		return ERROR, false
	}

	switch ch {
	case '+':
		kind = withEq(PLUS, PLUSEQ)
	case '-':
		if l.ch == '>' {
			l.nextch()
			kind = THIN_ARROW
		} else {
			kind = withEq(MINUS, MINUSEQ)
		}
	case '*':
		kind = withEq(STAR, STAREQ)
	case '/':
		kind = withEq(SLASH, SLASHEQ)
	case '%':
		kind = withEq(PERCENT, PERCENTEQ)
	case '^':
		kind = withEq(CARET, CARETEQ)
	case '!':
		kind = withEq(BANG, NEQ)
	case '=':
		kind = withEq(EQ, EQEQ)
	case '<':
		kind = withEq(LT, LTEQ)
	case '>':
		kind = withEq(GT, GTEQ)
	case '(':
		kind = L_PAREN
	case ')':
		kind = R_PAREN
	case '{':
		kind = L_CURLY
	case '}':
		kind = R_CURLY
	case ',':
		kind = COMMA
	case ';':
		kind = SEMI
	case ':':
		kind = COLON
	case '.':
		kind = DOT
	}
	return kind, true
}

// skipLineComment skips a line comment (from // to end of line).
func (l *lexer) skipLineComment() {
	for l.ch != '\n' && l.ch >= 0 {
		l.nextch()
	}
}

// skipBlockComment skips a possibly nested /* */ comment.
func (l *lexer) skipBlockComment() {
	l.nextch() // '/'
	l.nextch() // '*'
	depth := 1
	for depth > 0 {
		switch {
		case l.ch < 0:
			l.error("comment not terminated")
			return
		case l.ch == '/' && l.peek() == '*':
			l.nextch()
			l.nextch()
			depth++
		case l.ch == '*' && l.peek() == '/':
			l.nextch()
			l.nextch()
			depth--
		default:
			l.nextch()
		}
	}
}
