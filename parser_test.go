// parser_test.go
package minirb

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, src string) Node {
	t.Helper()
	p := NewParser(NewLexer(src))
	n, err := p.ParseStatement()
	require.NoError(t, err)
	return n
}

func parseErrKind(t *testing.T, src string) ParseErrKind {
	t.Helper()
	p := NewParser(NewLexer(src))
	_, err := p.ParseStatement()
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok, "expected *ParseError, got %T: %v", err, err)
	return perr.Kind
}

func Test_Parser_NumberLiteral(t *testing.T) {
	n := parseOne(t, "42")
	num, ok := n.(*NumberLiteral)
	require.True(t, ok)
	assert.Equal(t, "42", num.Text)
}

func Test_Parser_Identifier(t *testing.T) {
	n := parseOne(t, "foo")
	id, ok := n.(*Identifier)
	require.True(t, ok)
	assert.Equal(t, "foo", id.Name)
}

func Test_Parser_FlatPrecedence_LeftAssociative(t *testing.T) {
	// 2 + 3 * 4 parses as (2 + 3) * 4: no precedence tiers
	n := parseOne(t, "2 + 3 * 4")
	mul, ok := n.(*BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "*", mul.Operator)

	add, ok := mul.Left.(*BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "+", add.Operator)
	assert.Equal(t, "2", add.Left.(*NumberLiteral).Text)
	assert.Equal(t, "3", add.Right.(*NumberLiteral).Text)
	assert.Equal(t, "4", mul.Right.(*NumberLiteral).Text)
}

func Test_Parser_Parens_OverrideAssociation(t *testing.T) {
	// parens strip themselves: the inner node comes back with no wrapper
	n := parseOne(t, "2 + (3 * 4)")
	add, ok := n.(*BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "+", add.Operator)
	mul, ok := add.Right.(*BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "*", mul.Operator)
}

func Test_Parser_Assignment(t *testing.T) {
	n := parseOne(t, "x = 1 + 2")
	as, ok := n.(*Assignment)
	require.True(t, ok)
	assert.Equal(t, "x", as.Name)
	_, ok = as.Value.(*BinaryExpression)
	assert.True(t, ok)
}

func Test_Parser_IdentifierStatement_FallsThroughToExpression(t *testing.T) {
	// no '=' after the identifier: general expression parsing takes over
	n := parseOne(t, "x + 1")
	bin, ok := n.(*BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "x", bin.Left.(*Identifier).Name)
}

func Test_Parser_Call(t *testing.T) {
	n := parseOne(t, "f(1, 2 + 3, g(4))")
	call, ok := n.(*CallExpression)
	require.True(t, ok)
	assert.Equal(t, "f", call.Callee.Name)
	require.Len(t, call.Args, 3)
	assert.IsType(t, &NumberLiteral{}, call.Args[0])
	assert.IsType(t, &BinaryExpression{}, call.Args[1])
	assert.IsType(t, &CallExpression{}, call.Args[2])
}

func Test_Parser_NoArgCall(t *testing.T) {
	n := parseOne(t, "f()")
	call, ok := n.(*CallExpression)
	require.True(t, ok)
	assert.Empty(t, call.Args)
}

func Test_Parser_CallInExpression(t *testing.T) {
	n := parseOne(t, "f(1) + 2")
	bin, ok := n.(*BinaryExpression)
	require.True(t, ok)
	assert.IsType(t, &CallExpression{}, bin.Left)
}

func Test_Parser_FunctionDefinition(t *testing.T) {
	n := parseOne(t, "def add(a, b)\n  a + b\nend")
	def, ok := n.(*FunctionDefinition)
	require.True(t, ok)
	assert.Equal(t, "add", def.Name)
	require.Len(t, def.Params, 2)
	assert.Equal(t, "a", def.Params[0].Name)
	assert.Equal(t, "b", def.Params[1].Name)
	require.Len(t, def.Body, 1)
	assert.IsType(t, &BinaryExpression{}, def.Body[0])
}

func Test_Parser_FunctionDefinition_NoParams(t *testing.T) {
	def := parseOne(t, "def f() 1 end").(*FunctionDefinition)
	assert.Empty(t, def.Params)
	assert.Len(t, def.Body, 1)
}

func Test_Parser_FunctionDefinition_EmptyBody(t *testing.T) {
	def := parseOne(t, "def f() end").(*FunctionDefinition)
	assert.Empty(t, def.Body)
}

func Test_Parser_FunctionBody_OptionalSemicolons(t *testing.T) {
	with := parseOne(t, "def f() 1; 2; 3 end").(*FunctionDefinition)
	without := parseOne(t, "def f()\n1\n2\n3\nend").(*FunctionDefinition)
	assert.Len(t, with.Body, 3)
	assert.Len(t, without.Body, 3)
}

func Test_Parser_FunctionBody_AllowsAssignmentAndNestedDef(t *testing.T) {
	def := parseOne(t, "def f(x) y = x + 1\ny end").(*FunctionDefinition)
	require.Len(t, def.Body, 2)
	assert.IsType(t, &Assignment{}, def.Body[0])

	outer := parseOne(t, "def f()\ndef g() 1 end\ng()\nend").(*FunctionDefinition)
	require.Len(t, outer.Body, 2)
	assert.IsType(t, &FunctionDefinition{}, outer.Body[0])
}

func Test_Parser_Errors(t *testing.T) {
	cases := []struct {
		src  string
		kind ParseErrKind
	}{
		{"(1 + 2", ExpectedClosingParen},
		{"f(1, 2", ExpectedClosingParen},
		{"def f(a, b 1 end", ExpectedClosingParen},
		{"def (x) x end", ExpectedFunctionName},
		{"def 1(x) x end", ExpectedFunctionName},
		{"1 + ", UnexpectedToken},
		{"+ 1", UnexpectedToken},
		{")", UnexpectedToken},
		{"def f(x) x", UnexpectedToken}, // open body at EOF
		{"a == b", UnexpectedToken},     // second '=' of '=='
		{"if", UnexpectedToken},         // reserved, no grammar yet
		{"while", UnexpectedToken},
	}
	for _, c := range cases {
		assert.Equal(t, c.kind, parseErrKind(t, c.src), "source: %s", c.src)
	}
}

func Test_Parser_LexErrorPropagates(t *testing.T) {
	p := NewParser(NewLexer("a = $"))
	_, err := p.ParseStatement()
	require.Error(t, err)
	_, ok := err.(*LexError)
	assert.True(t, ok, "expected *LexError, got %T", err)
}

func Test_Parser_StatementSequence_ThenEOF(t *testing.T) {
	p := NewParser(NewLexer("a = 1\nb = 2"))

	n1, err := p.ParseStatement()
	require.NoError(t, err)
	assert.IsType(t, &Assignment{}, n1)

	n2, err := p.ParseStatement()
	require.NoError(t, err)
	assert.IsType(t, &Assignment{}, n2)

	_, err = p.ParseStatement()
	assert.Equal(t, io.EOF, err)
	_, err = p.ParseStatement()
	assert.Equal(t, io.EOF, err)
}

func Test_ParseSource(t *testing.T) {
	nodes, err := ParseSource("a = 1\nputs(a)\n")
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	nodes, err = ParseSource("")
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func Test_BlockDepth(t *testing.T) {
	assert.Equal(t, 0, BlockDepth("a = 1"))
	assert.Equal(t, 1, BlockDepth("def f(x)"))
	assert.Equal(t, 1, BlockDepth("def f(x) x + 1"))
	assert.Equal(t, 0, BlockDepth("def f(x) x end"))
	assert.Equal(t, 2, BlockDepth("def f()\ndef g()"))
	assert.Equal(t, 0, BlockDepth("end end")) // never negative
}
