// lexer.go: tokenizer for minirb source text.
//
// The scanner is byte-oriented and on-demand: the parser pulls one token at
// a time via Next, so a statement can be parsed without tokenizing the rest
// of the input. Whitespace (space, tab, CR, newline) is skipped silently.
// Classification is by leading character:
//
//   - digit                  → NUMBER (maximal digit run; integers only:
//     no sign, decimal point, or exponent at the lexical level)
//   - letter or underscore   → ID, or KEYWORD when the run matches a
//     reserved word ("def", "end", "if", "while")
//   - one of + - * / , ;     → OP (comma doubles as the argument separator;
//     semicolon is the optional statement separator inside function bodies)
//   - =                      → ASSIGN (no compound assignment; "==" lexes
//     as two ASSIGN tokens)
//   - ( )                    → LROUND / RROUND
//
// Any other character produces a *LexError. Exhausting the input yields EOF
// once and forever after: Next at end of stream keeps returning EOF.
package minirb

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	EOF TokenType = iota
	NUMBER
	ID
	OP
	ASSIGN
	LROUND
	RROUND
	KEYWORD
)

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case NUMBER:
		return "NUMBER"
	case ID:
		return "ID"
	case OP:
		return "OP"
	case ASSIGN:
		return "ASSIGN"
	case LROUND:
		return "LROUND"
	case RROUND:
		return "RROUND"
	case KEYWORD:
		return "KEYWORD"
	}
	return "UNKNOWN"
}

// Token is a lexical token: a kind plus the raw source text it covers.
// Tokens are immutable once produced.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int // 1-based
	Col    int // 0-based column of the first byte
}

// keywords map. "if" and "while" are recognized lexically but have no
// parser support yet; they are reserved for future grammar.
var keywords = map[string]bool{
	"def":   true,
	"end":   true,
	"if":    true,
	"while": true,
}

// Lexer scans a minirb source string into tokens.
type Lexer struct {
	src   string
	start int // start index of current token
	cur   int // current index
	line  int // 1-based
	col   int // 0-based column within line

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) addToken(tt TokenType) Token {
	tok := Token{
		Type:   tt,
		Lexeme: l.src[l.start:l.cur],
		Line:   l.tokStartLine,
		Col:    l.tokStartCol,
	}
	l.start = l.cur
	return tok
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
			l.start = l.cur
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_'
}

// ----- errors -----

// LexError reports an unrecognized character with its source position.
// Line is 1-based, Col 0-based.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

// ----- scanners -----

// scanNumber consumes a maximal run of digits.
func (l *Lexer) scanNumber() {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			return
		}
		l.advance()
	}
}

// scanIdentifier consumes [A-Za-z_][A-Za-z0-9_]*
func (l *Lexer) scanIdentifier() string {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	return l.src[l.start:l.cur]
}

// ----- main scanner -----

// Next scans and returns the next token. At end of input it returns EOF and
// keeps returning EOF on subsequent calls.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.start = l.cur

	if l.isAtEnd() {
		return l.addToken(EOF), nil
	}

	ch, _ := l.advance()

	switch ch {
	case '+', '-', '*', '/', ',', ';':
		return l.addToken(OP), nil
	case '=':
		return l.addToken(ASSIGN), nil
	case '(':
		return l.addToken(LROUND), nil
	case ')':
		return l.addToken(RROUND), nil
	}

	if isDigit(ch) {
		l.scanNumber()
		return l.addToken(NUMBER), nil
	}

	if isAlpha(ch) {
		lex := l.scanIdentifier()
		if keywords[lex] {
			return l.addToken(KEYWORD), nil
		}
		return l.addToken(ID), nil
	}

	return Token{}, l.err(fmt.Sprintf("unexpected character: %q", ch))
}

// Scan tokenizes the entire source and returns all tokens, EOF excluded.
func (l *Lexer) Scan() ([]Token, error) {
	var out []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return out, nil
		}
		out = append(out, tok)
	}
}
