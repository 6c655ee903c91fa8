// ast.go: syntax tree produced by the parser.
//
// The six syntactic forms are a closed sum: Node is sealed by an unexported
// marker method, so the evaluator's type switch is exhaustive by
// construction. Nodes are immutable once built and exclusively owned by
// their parent (body/argument slices or the top-level caller); nothing
// mutates or shares a node after the parser returns it.
package minirb

// Node is the marker interface implemented by every syntactic form.
type Node interface{ isNode() }

// NumberLiteral holds the raw numeral text. The text is parsed to a float
// at evaluation time, not at parse time.
type NumberLiteral struct {
	Text string
}

func (*NumberLiteral) isNode() {}

// Identifier is a variable reference by name.
type Identifier struct {
	Name string
}

func (*Identifier) isNode() {}

// BinaryExpression applies one of + - * / to two operands.
type BinaryExpression struct {
	Operator string
	Left     Node
	Right    Node
}

func (*BinaryExpression) isNode() {}

// Assignment binds Name to the value of Value in the current environment.
type Assignment struct {
	Name  string
	Value Node
}

func (*Assignment) isNode() {}

// FunctionDefinition is a named function with positional parameters and an
// ordered body. Function values reference this node directly.
type FunctionDefinition struct {
	Name   string
	Params []*Identifier
	Body   []Node
}

func (*FunctionDefinition) isNode() {}

// CallExpression invokes Callee with eagerly evaluated arguments.
type CallExpression struct {
	Callee *Identifier
	Args   []Node
}

func (*CallExpression) isNode() {}
