// interpreter.go: runtime value model, environments, and the evaluator.
//
// OVERVIEW
// --------
// Code evaluates in environments (*Env) that form a chain via parent.
// The Interpreter exposes two well-known frames:
//   - Core:   built-ins and registered natives.
//   - Global: user-visible program state (REPL/script globals).
//
// Evaluate walks the AST against an environment and returns a Value or a
// *RuntimeError; it never panics. Errors abort the current top-level
// statement with no rollback: bindings made before the failure point stay
// in the environment (fail fast, no transaction).
//
// SCOPING
// -------
// Lookup walks the chain outward to the root. Binding (assignment and
// function definition) always writes into the current frame, shadowing and
// never mutating a same-named binding in an outer scope. A function call
// creates one child frame whose parent is the CALLER's current environment
// rather than the environment where the function was defined. Free variables in
// a body therefore resolve dynamically. That is deliberate fidelity to the
// language as shipped; see the note on evalCall.
//
// Child frames are created and dropped within a single call evaluation, so
// a child never outlives the stack frame that made it. Everything here is
// single-threaded and synchronous; gets() blocks the calling goroutine.
package minirb

import (
	"fmt"
	"io"
	"strconv"
)

////////////////////////////////////////////////////////////////////////////////
//                                VALUES
////////////////////////////////////////////////////////////////////////////////

// ValueTag enumerates all runtime kinds a Value may hold.
type ValueTag int

const (
	VTNull ValueTag = iota // null (no payload)
	VTNum                  // float64
	VTStr                  // string
	VTBool                 // bool
	VTFun                  // *FunctionDefinition (user function)
	VTBuiltin              // *Builtin (native callback)
)

// Value is the universal runtime carrier. The tag determines which Go type
// Data holds. Values are copyable: they own no heap state beyond borrowed
// node/text references.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Null is the singleton null Value.
var Null = Value{Tag: VTNull}

// Primitive constructors.
func Num(f float64) Value { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value  { return Value{Tag: VTStr, Data: s} }
func Bool(b bool) Value   { return Value{Tag: VTBool, Data: b} }

// FunVal wraps a function definition node into a Value. The Value
// references the node only; no environment snapshot is captured.
func FunVal(def *FunctionDefinition) Value { return Value{Tag: VTFun, Data: def} }

// Builtin is a native callable registered under a reserved name.
type Builtin struct {
	Name string
	Impl BuiltinImpl
}

// BuiltinImpl is the implementation signature for native functions. Any
// error it returns is remapped to FunctionCallError at the call site, so
// the evaluator's error set stays closed however many builtins exist.
type BuiltinImpl func(ip *Interpreter, args []Value) (Value, error)

// BuiltinVal wraps a native callback into a Value.
func BuiltinVal(name string, impl BuiltinImpl) Value {
	return Value{Tag: VTBuiltin, Data: &Builtin{Name: name, Impl: impl}}
}

////////////////////////////////////////////////////////////////////////////////
//                              ENVIRONMENTS
////////////////////////////////////////////////////////////////////////////////

// Env is an environment frame with a parent link. Lookups walk parent-ward;
// Define always binds in the current frame. A child does not own its
// parent: the parent must outlive every child holding the reference, which
// call-stack nesting guarantees structurally.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env { return &Env{parent: parent, table: make(map[string]Value)} }

// Define binds name to v in the current frame, shadowing any outer binding.
// Last write wins within a frame.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Lookup retrieves the nearest visible binding for name, walking the chain
// outward to the root.
func (e *Env) Lookup(name string) (Value, bool) {
	if v, ok := e.table[name]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Lookup(name)
	}
	return Value{}, false
}

////////////////////////////////////////////////////////////////////////////////
//                              RUNTIME ERRORS
////////////////////////////////////////////////////////////////////////////////

// EvalErrKind enumerates the closed set of evaluation failures.
type EvalErrKind int

const (
	TypeMismatch EvalErrKind = iota
	DivisionByZero
	InvalidOperator
	UnsupportedOperator
	NotAFunction
	FunctionNotFound
	FunctionCallError
)

func (k EvalErrKind) String() string {
	switch k {
	case TypeMismatch:
		return "TypeMismatch"
	case DivisionByZero:
		return "DivisionByZero"
	case InvalidOperator:
		return "InvalidOperator"
	case UnsupportedOperator:
		return "UnsupportedOperator"
	case NotAFunction:
		return "NotAFunction"
	case FunctionNotFound:
		return "FunctionNotFound"
	case FunctionCallError:
		return "FunctionCallError"
	}
	return "UnknownEvalError"
}

// RuntimeError represents an execution-time failure. Evaluate returns it as
// a Go error; it wraps the builtin's own error (if any) for errors.Is/As.
type RuntimeError struct {
	Kind EvalErrKind
	Msg  string
	Err  error // underlying builtin failure, FunctionCallError only
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR (%s): %s", e.Kind, e.Msg)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

func evalErr(kind EvalErrKind, format string, args ...interface{}) error {
	return &RuntimeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

////////////////////////////////////////////////////////////////////////////////
//                               INTERPRETER
////////////////////////////////////////////////////////////////////////////////

// Interpreter is the entry point for evaluating minirb programs.
//
// Core holds builtins and is the parent of Global; Global holds user state
// and persists across Evaluate calls, so definitions from one statement
// resolve in the next. In and Out are the streams the I/O builtins use;
// NewRuntime wires them to the process's stdin/stdout and tests substitute
// buffers.
type Interpreter struct {
	Core   *Env
	Global *Env

	In  LineReader
	Out io.Writer
}

// LineReader is the input surface gets() consumes: one line per call,
// ok=false at end of input.
type LineReader interface {
	ReadLine() (string, bool)
}

// NewInterpreter constructs an engine with an empty Core and an empty
// Global chained to it. Builtins are installed by the caller (or use
// NewRuntime for a fully provisioned instance).
func NewInterpreter() *Interpreter {
	ip := &Interpreter{}
	ip.Core = NewEnv(nil)
	ip.Global = NewEnv(ip.Core)
	return ip
}

// RegisterBuiltin installs a native function into Core under name. The
// evaluator dispatches to it through the environment chain like any other
// callable; adding builtins never touches the dispatch logic.
func (ip *Interpreter) RegisterBuiltin(name string, impl BuiltinImpl) {
	ip.Core.Define(name, BuiltinVal(name, impl))
}

// EvalSource runs src against Global one statement at a time (parse one,
// evaluate it, repeat) and returns the value of the last statement, or Null
// for empty input. Statements already evaluated keep their effects even
// when a later statement fails to parse.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	p := NewParser(NewLexer(src))
	out := Null
	for {
		n, err := p.ParseStatement()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return Null, err
		}
		out, err = ip.Evaluate(n, ip.Global)
		if err != nil {
			return Null, err
		}
	}
}

// Evaluate walks node against env and produces a Value or a *RuntimeError.
func (ip *Interpreter) Evaluate(node Node, env *Env) (Value, error) {
	switch n := node.(type) {
	case *NumberLiteral:
		return evalNumber(n)
	case *Identifier:
		// Unbound identifiers evaluate to Null, not an error. Lenient by
		// contract; it also masks typos.
		if v, ok := env.Lookup(n.Name); ok {
			return v, nil
		}
		return Null, nil
	case *BinaryExpression:
		return ip.evalBinary(n, env)
	case *Assignment:
		v, err := ip.Evaluate(n.Value, env)
		if err != nil {
			return Null, err
		}
		env.Define(n.Name, v)
		return v, nil
	case *FunctionDefinition:
		// def statements are themselves expressions: the bound Function
		// value is the observable result.
		v := FunVal(n)
		env.Define(n.Name, v)
		return v, nil
	case *CallExpression:
		return ip.evalCall(n, env)
	}
	return Null, evalErr(TypeMismatch, "cannot evaluate node %T", node)
}

func evalNumber(n *NumberLiteral) (Value, error) {
	// The lexer only emits digit runs, but the evaluator must not assume it.
	f, err := strconv.ParseFloat(n.Text, 64)
	if err != nil {
		return Null, evalErr(TypeMismatch, "invalid numeral %q", n.Text)
	}
	return Num(f), nil
}

func (ip *Interpreter) evalBinary(n *BinaryExpression, env *Env) (Value, error) {
	switch n.Operator {
	case "+", "-", "*", "/":
	default:
		return Null, evalErr(InvalidOperator, "invalid operator %q", n.Operator)
	}

	// Left before right, both fully evaluated; nothing short-circuits.
	left, err := ip.Evaluate(n.Left, env)
	if err != nil {
		return Null, err
	}
	right, err := ip.Evaluate(n.Right, env)
	if err != nil {
		return Null, err
	}
	if left.Tag != VTNum || right.Tag != VTNum {
		return Null, evalErr(TypeMismatch, "operator %q requires numbers, got %s and %s",
			n.Operator, tagName(left.Tag), tagName(right.Tag))
	}
	a := left.Data.(float64)
	b := right.Data.(float64)

	switch n.Operator {
	case "+":
		return Num(a + b), nil
	case "-":
		return Num(a - b), nil
	case "*":
		return Num(a * b), nil
	case "/":
		if b == 0 {
			return Null, evalErr(DivisionByZero, "division by zero")
		}
		return Num(a / b), nil
	}
	// grammar restricts operators already; defensive
	return Null, evalErr(UnsupportedOperator, "unsupported operator %q", n.Operator)
}

// evalCall performs eager, fixed-order evaluation of the arguments in the
// caller's environment, then dispatches on what the callee name resolves to.
//
// The new call frame chains to the caller's CURRENT environment rather than
// the definition site, so free variables in the body resolve dynamically.
// Unusual for the language modeled, but it is the shipped behavior and is
// preserved exactly. Lexical closures would instead capture the defining
// environment inside the Function value and chain call frames to that.
func (ip *Interpreter) evalCall(n *CallExpression, env *Env) (Value, error) {
	args := make([]Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := ip.Evaluate(a, env)
		if err != nil {
			return Null, err
		}
		args = append(args, v)
	}

	callee, ok := env.Lookup(n.Callee.Name)
	if !ok {
		return Null, evalErr(FunctionNotFound, "function not found: %s", n.Callee.Name)
	}

	switch callee.Tag {
	case VTFun:
		def := callee.Data.(*FunctionDefinition)
		frame := NewEnv(env)
		// Positional binding: extra arguments are ignored, missing ones
		// leave the parameter unbound (referencing it yields Null).
		for i, p := range def.Params {
			if i >= len(args) {
				break
			}
			frame.Define(p.Name, args[i])
		}
		out := Null
		for _, stmt := range def.Body {
			var err error
			out, err = ip.Evaluate(stmt, frame)
			if err != nil {
				return Null, err
			}
		}
		return out, nil
	case VTBuiltin:
		b := callee.Data.(*Builtin)
		out, err := b.Impl(ip, args)
		if err != nil {
			return Null, &RuntimeError{
				Kind: FunctionCallError,
				Msg:  fmt.Sprintf("%s: %s", b.Name, err),
				Err:  err,
			}
		}
		return out, nil
	}
	return Null, evalErr(NotAFunction, "not a function: %s", n.Callee.Name)
}

func tagName(t ValueTag) string {
	switch t {
	case VTNull:
		return "null"
	case VTNum:
		return "number"
	case VTStr:
		return "string"
	case VTBool:
		return "boolean"
	case VTFun:
		return "function"
	case VTBuiltin:
		return "builtin"
	}
	return "unknown"
}
