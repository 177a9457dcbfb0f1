// Package ast defines the AST node shapes for the JSON-e expression
// language (spec §3): a tagged struct carrying only the fields relevant to
// its node kind, following the teacher's style of one flexible struct
// rather than a sealed interface hierarchy per variant.
package ast

// Kind identifies which AST node shape a Node represents.
type Kind uint8

const (
	Primitive    Kind = iota // number/string/bool/null literal
	UnaryOp                  // +x, -x, !x
	BinOp                    // left op right; also used for `.ident` (RHS is a Primitive holding the name)
	ContextValue             // identifier reference
	FunctionCall             // callee(args...)
	List                     // [a, b, c]
	Object                   // {k: v, ...}
	ValueAccess              // target[left] or target[left:right]
)

// Node is a single AST node. Fields are populated according to Kind; unused
// fields remain at their zero value.
type Node struct {
	Kind Kind
	Pos  int

	// Primitive
	Value interface{} // float64 | string | bool | nil, per literal kind

	// UnaryOp / BinOp
	Op    string // "+", "-", "!", "*", "/", "**", "==", "!=", "<", "<=", ">", ">=", "&&", "||", "in", "."
	Left  *Node
	Right *Node

	// ContextValue
	Name string

	// FunctionCall
	Callee *Node
	Args   []*Node

	// List
	Elements []*Node

	// Object
	Keys   []string
	Values []*Node

	// ValueAccess
	Target     *Node
	IsInterval bool
	RangeLeft  *Node // optional
	RangeRight *Node // optional
}

// NewPrimitive builds a Primitive node.
func NewPrimitive(pos int, value interface{}) *Node {
	return &Node{Kind: Primitive, Pos: pos, Value: value}
}

// NewUnary builds a UnaryOp node.
func NewUnary(pos int, op string, expr *Node) *Node {
	return &Node{Kind: UnaryOp, Pos: pos, Op: op, Left: expr}
}

// NewBinOp builds a BinOp node.
func NewBinOp(pos int, op string, left, right *Node) *Node {
	return &Node{Kind: BinOp, Pos: pos, Op: op, Left: left, Right: right}
}

// NewContextValue builds a ContextValue node.
func NewContextValue(pos int, name string) *Node {
	return &Node{Kind: ContextValue, Pos: pos, Name: name}
}

// NewFunctionCall builds a FunctionCall node.
func NewFunctionCall(pos int, callee *Node, args []*Node) *Node {
	return &Node{Kind: FunctionCall, Pos: pos, Callee: callee, Args: args}
}

// NewList builds a List node.
func NewList(pos int, elements []*Node) *Node {
	return &Node{Kind: List, Pos: pos, Elements: elements}
}

// NewObject builds an Object node.
func NewObject(pos int, keys []string, values []*Node) *Node {
	return &Node{Kind: Object, Pos: pos, Keys: keys, Values: values}
}

// NewValueAccess builds a ValueAccess node. For single-index access, set
// isInterval=false and right=nil; for a slice, isInterval=true with either
// bound optionally nil.
func NewValueAccess(pos int, target *Node, isInterval bool, left, right *Node) *Node {
	return &Node{Kind: ValueAccess, Pos: pos, Target: target, IsInterval: isInterval, RangeLeft: left, RangeRight: right}
}

// String returns the node's kind name, for debugging.
func (n *Node) String() string {
	switch n.Kind {
	case Primitive:
		return "Primitive"
	case UnaryOp:
		return "UnaryOp"
	case BinOp:
		return "BinOp"
	case ContextValue:
		return "ContextValue"
	case FunctionCall:
		return "FunctionCall"
	case List:
		return "List"
	case Object:
		return "Object"
	case ValueAccess:
		return "ValueAccess"
	default:
		return "?"
	}
}
