package minirb

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_WrapErrorWithSource_ParseError(t *testing.T) {
	src := "def add(a, b) a + b end\nadd(1, 2"
	_, err := ParseSource(src)
	require.Error(t, err)

	wrapped := WrapErrorWithSource(err, src)
	msg := wrapped.Error()
	assert.Contains(t, msg, "PARSE ERROR at 2:9:")
	assert.Contains(t, msg, "   1 | def add(a, b) a + b end")
	assert.Contains(t, msg, "   2 | add(1, 2")
	assert.Contains(t, msg, "^")
}

func Test_WrapErrorWithSource_LexError(t *testing.T) {
	src := "x = 1 @ 2"
	_, err := ParseSource(src)
	require.Error(t, err)

	msg := WrapErrorWithSource(err, src).Error()
	assert.Contains(t, msg, "LEXICAL ERROR at 1:7:")
	assert.Contains(t, msg, "   1 | x = 1 @ 2")
	// caret under the '@' (column 7, 1-based)
	assert.Contains(t, msg, "     |       ^")
}

func Test_WrapErrorWithSource_OtherErrorsUntouched(t *testing.T) {
	plain := errors.New("something else")
	assert.Equal(t, plain, WrapErrorWithSource(plain, "src"))

	rt := &RuntimeError{Kind: DivisionByZero, Msg: "division by zero"}
	assert.Equal(t, error(rt), WrapErrorWithSource(rt, "1 / 0"))
}

func Test_CaretSnippet_ClampsOutOfRange(t *testing.T) {
	// out-of-range coordinates must not crash rendering
	out := caretSnippet("only line", "PARSE ERROR", 99, 99, "boom")
	assert.Contains(t, out, "only line")
	out = caretSnippet("", "LEXICAL ERROR", 0, 0, "boom")
	assert.True(t, strings.HasPrefix(out, "LEXICAL ERROR at 1:1: boom"))
}
