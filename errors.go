// errors.go: caret-snippet rendering for lex and parse errors.
//
// WrapErrorWithSource recognizes *LexError and *ParseError, both of which
// carry 1-based Line and 0-based Col coordinates, and returns a new error
// whose message is a multi-line snippet with the offending line, up to one
// line of context on each side, and a caret under the column:
//
//	PARSE ERROR at 2:13: expected ')' after arguments
//
//	   1 | def add(a, b) a + b end
//	   2 | add(1, 2
//	     |         ^
//
// Runtime errors carry no source position (evaluation happens on the AST)
// and every other error kind is returned unchanged. Output is plain text,
// suitable for logs and terminals; the REPL adds its own color.
package minirb

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source, or err unchanged when it carries no
// position.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *LexError:
		// Col is 0-based; render as 1-based.
		return fmt.Errorf("%s", caretSnippet(src, "LEXICAL ERROR", e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", caretSnippet(src, "PARSE ERROR", e.Line, e.Col+1, e.Msg))
	default:
		return err
	}
}

// caretSnippet builds the header plus a caret-annotated excerpt. Line and
// col are treated as 1-based and clamped to the source bounds so rendering
// never fails on short or empty input.
func caretSnippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
