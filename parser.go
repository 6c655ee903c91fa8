// parser.go: recursive-descent parser for minirb.
//
// OVERVIEW
// --------
// The parser consumes tokens one at a time from the lexer through a
// single-token lookahead buffer; there is no backtracking. Each call to
// ParseStatement is a fresh, all-or-nothing attempt to build one AST node:
// on failure a *ParseError is returned and no partial tree escapes.
//
// Grammar (no precedence tiers: all four binary operators bind at the same
// level and associate left to right, so `2 + 3 * 4` parses as `(2 + 3) * 4`;
// this flat precedence is a defining property of the language, not a bug):
//
//	statement   := "def" function | identifier "=" expression | expression
//	function    := identifier "(" [identifier {"," identifier}] ")" {statement [";"]} "end"
//	expression  := term {operator term}
//	term        := number | call | identifier | "(" expression ")"
//	call        := identifier "(" [expression {"," expression}] ")"
//
// A statement beginning with an identifier prefers assignment when the next
// token is "=", otherwise the identifier falls through to expression
// parsing, which detects a following "(" as a call. Parenthesized
// expressions return the inner node directly, with no wrapper.
//
// Function bodies are parsed with the statement rule (the semicolon
// separator is always optional, never required), so assignments and nested
// definitions are legal inside a body.
//
// Interactive callers interpret "parse failed while a def block is still
// open" as "need more input" by tracking def/end depth themselves (see
// BlockDepth); the parser has no resumability of its own.
package minirb

import (
	"fmt"
	"io"
)

// ParseErrKind enumerates the closed set of parse failures.
type ParseErrKind int

const (
	UnexpectedToken ParseErrKind = iota
	ExpectedClosingParen
	ExpectedFunctionName
)

func (k ParseErrKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case ExpectedClosingParen:
		return "ExpectedClosingParen"
	case ExpectedFunctionName:
		return "ExpectedFunctionName"
	}
	return "UnknownParseError"
}

// ParseError aborts the current statement parse. Line is 1-based, Col
// 0-based (token coordinates from the lexer).
type ParseError struct {
	Kind ParseErrKind
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Parser builds one AST node per ParseStatement call from a lexer-backed
// token stream.
type Parser struct {
	lex    *Lexer
	tok    Token // single-token lookahead
	primed bool
}

// NewParser creates a parser over the given lexer.
func NewParser(lex *Lexer) *Parser {
	return &Parser{lex: lex}
}

// ParseSource is a convenience wrapper: parse every statement in src.
func ParseSource(src string) ([]Node, error) {
	p := NewParser(NewLexer(src))
	var out []Node
	for {
		n, err := p.ParseStatement()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
}

// ParseStatement parses and returns the next statement, or io.EOF once the
// token stream is exhausted.
func (p *Parser) ParseStatement() (Node, error) {
	if err := p.prime(); err != nil {
		return nil, err
	}
	if p.tok.Type == EOF {
		return nil, io.EOF
	}
	return p.statement()
}

// ─────────────────────── token basics & helpers ───────────────────────

func (p *Parser) prime() error {
	if p.primed {
		return nil
	}
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	p.primed = true
	return nil
}

// advance consumes the lookahead and pulls the next token into it.
func (p *Parser) advance() (Token, error) {
	cur := p.tok
	tok, err := p.lex.Next()
	if err != nil {
		return Token{}, err
	}
	p.tok = tok
	return cur, nil
}

// match consumes the lookahead when it has the given type and lexeme
// (empty lexeme matches any).
func (p *Parser) match(tt TokenType, lexeme string) (bool, error) {
	if p.tok.Type != tt {
		return false, nil
	}
	if lexeme != "" && p.tok.Lexeme != lexeme {
		return false, nil
	}
	if _, err := p.advance(); err != nil {
		return false, err
	}
	return true, nil
}

// need consumes a token of the given type or fails with kind/msg.
func (p *Parser) need(tt TokenType, kind ParseErrKind, msg string) (Token, error) {
	if p.tok.Type == tt {
		return p.advance()
	}
	return Token{}, p.errAtTok(kind, msg)
}

func (p *Parser) errAtTok(kind ParseErrKind, msg string) error {
	return &ParseError{Kind: kind, Line: p.tok.Line, Col: p.tok.Col, Msg: msg}
}

func isBinaryOp(lexeme string) bool {
	switch lexeme {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

// ───────────────────────────── productions ─────────────────────────────

func (p *Parser) statement() (Node, error) {
	if p.tok.Type == KEYWORD && p.tok.Lexeme == "def" {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		return p.function()
	}

	if p.tok.Type == ID {
		name, err := p.advance()
		if err != nil {
			return nil, err
		}
		if p.tok.Type == ASSIGN {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			return &Assignment{Name: name.Lexeme, Value: value}, nil
		}
		left, err := p.identifierTerm(name)
		if err != nil {
			return nil, err
		}
		return p.expressionFrom(left)
	}

	return p.expression()
}

// function parses the remainder of a definition; "def" is already consumed.
func (p *Parser) function() (Node, error) {
	if p.tok.Type != ID {
		return nil, p.errAtTok(ExpectedFunctionName, "expected function name after 'def'")
	}
	name, err := p.advance()
	if err != nil {
		return nil, err
	}

	if _, err := p.need(LROUND, UnexpectedToken, "expected '(' after function name"); err != nil {
		return nil, err
	}

	var params []*Identifier
	if p.tok.Type == ID {
		for {
			param, err := p.advance()
			if err != nil {
				return nil, err
			}
			params = append(params, &Identifier{Name: param.Lexeme})
			ok, err := p.match(OP, ",")
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			if p.tok.Type != ID {
				return nil, p.errAtTok(UnexpectedToken, "expected parameter name after ','")
			}
		}
	}
	if _, err := p.need(RROUND, ExpectedClosingParen, "expected ')' after parameters"); err != nil {
		return nil, err
	}

	var body []Node
	for {
		if p.tok.Type == KEYWORD && p.tok.Lexeme == "end" {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
			break
		}
		if p.tok.Type == EOF {
			return nil, p.errAtTok(UnexpectedToken, "unexpected end of input in function body")
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		// optional separator
		if _, err := p.match(OP, ";"); err != nil {
			return nil, err
		}
	}

	return &FunctionDefinition{Name: name.Lexeme, Params: params, Body: body}, nil
}

func (p *Parser) expression() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	return p.expressionFrom(left)
}

// expressionFrom continues the flat left-associative operator chain after
// the first term has been parsed.
func (p *Parser) expressionFrom(left Node) (Node, error) {
	for p.tok.Type == OP && isBinaryOp(p.tok.Lexeme) {
		op, err := p.advance()
		if err != nil {
			return nil, err
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpression{Operator: op.Lexeme, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) term() (Node, error) {
	switch p.tok.Type {
	case NUMBER:
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		return &NumberLiteral{Text: tok.Lexeme}, nil
	case ID:
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		return p.identifierTerm(tok)
	case LROUND:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RROUND, ExpectedClosingParen, "expected ')' after expression"); err != nil {
			return nil, err
		}
		// parens strip themselves; no wrapper node
		return inner, nil
	}
	return nil, p.errAtTok(UnexpectedToken, fmt.Sprintf("unexpected token '%s'", describeToken(p.tok)))
}

// identifierTerm finishes a term that began with an identifier: a call when
// the very next token is '(', otherwise a plain reference.
func (p *Parser) identifierTerm(name Token) (Node, error) {
	if p.tok.Type != LROUND {
		return &Identifier{Name: name.Lexeme}, nil
	}
	if _, err := p.advance(); err != nil {
		return nil, err
	}

	var args []Node
	if p.tok.Type != RROUND {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			ok, err := p.match(OP, ",")
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
		}
	}
	if _, err := p.need(RROUND, ExpectedClosingParen, "expected ')' after arguments"); err != nil {
		return nil, err
	}
	return &CallExpression{Callee: &Identifier{Name: name.Lexeme}, Args: args}, nil
}

func describeToken(t Token) string {
	if t.Type == EOF {
		return "end of input"
	}
	return t.Lexeme
}

// ───────────────────────── REPL support ─────────────────────────

// BlockDepth reports how many "def" blocks remain open after lexing src,
// never below zero. Interactive callers use it to decide whether a parse
// failure means "wait for more input". A lex error simply ends the count at
// the failure point; the subsequent parse surfaces the real diagnostic.
func BlockDepth(src string) int {
	lex := NewLexer(src)
	depth := 0
	for {
		tok, err := lex.Next()
		if err != nil || tok.Type == EOF {
			return depth
		}
		if tok.Type != KEYWORD {
			continue
		}
		switch tok.Lexeme {
		case "def":
			depth++
		case "end":
			if depth > 0 {
				depth--
			}
		}
	}
}
