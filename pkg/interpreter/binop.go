package interpreter

import (
	"math"

	"github.com/sandrolain/jsone-go/pkg/ast"
	"github.com/sandrolain/jsone-go/pkg/errs"
	"github.com/sandrolain/jsone-go/pkg/value"
)

// evalBinOp dispatches the full binary-operator table, per spec §4.3.
// Grounded on jsone/newinterpreter.py's visit_BinOp, the authoritative
// original operand type-checking rules.
func evalBinOp(node *ast.Node, ctx *Context) (value.Value, error) {
	switch node.Op {
	case "&&":
		left, err := Eval(node.Left, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if !left.IsTruthy() {
			return value.Bool(false), nil
		}
		right, err := Eval(node.Right, ctx)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(right.IsTruthy()), nil
	case "||":
		left, err := Eval(node.Left, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if left.IsTruthy() {
			return value.Bool(true), nil
		}
		right, err := Eval(node.Right, ctx)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(right.IsTruthy()), nil
	case ".":
		return evalDot(node, ctx)
	}

	left, err := Eval(node.Left, ctx)
	if err != nil {
		return value.Value{}, err
	}
	right, err := Eval(node.Right, ctx)
	if err != nil {
		return value.Value{}, err
	}

	switch node.Op {
	case "+":
		return evalPlus(left, right)
	case "-":
		if err := requireNumbers("-", left, right); err != nil {
			return value.Value{}, err
		}
		return value.Number(left.Num() - right.Num()), nil
	case "*":
		if err := requireNumbers("*", left, right); err != nil {
			return value.Value{}, err
		}
		return value.Number(left.Num() * right.Num()), nil
	case "/":
		if err := requireNumbers("/", left, right); err != nil {
			return value.Value{}, err
		}
		if right.Num() == 0 {
			return value.Value{}, errs.Interpreterf("division by zero")
		}
		return value.Number(left.Num() / right.Num()), nil
	case "**":
		if err := requireNumbers("**", left, right); err != nil {
			return value.Value{}, err
		}
		return value.Number(math.Pow(left.Num(), right.Num())), nil
	case "==":
		return value.Bool(value.Equal(left, right)), nil
	case "!=":
		return value.Bool(!value.Equal(left, right)), nil
	case "<", "<=", ">", ">=":
		return evalComparison(node.Op, left, right)
	case "in":
		return evalIn(left, right)
	default:
		return value.Value{}, errs.Interpreterf("unknown binary operator %q", node.Op)
	}
}

func evalPlus(left, right value.Value) (value.Value, error) {
	leftOK := left.IsNumber() || left.IsString()
	rightOK := right.IsNumber() || right.IsString()
	if !leftOK || !rightOK {
		return value.Value{}, errs.Interpreterf("infix: + expects number/string + number/string")
	}
	if left.IsString() != right.IsString() {
		return value.Value{}, errs.Interpreterf("infix: + expects numbers/strings (mixed operand types)")
	}
	if left.IsString() {
		return value.String(left.Str() + right.Str()), nil
	}
	return value.Number(left.Num() + right.Num()), nil
}

func requireNumbers(op string, left, right value.Value) error {
	if !left.IsNumber() || !right.IsNumber() {
		return errs.Interpreterf("infix: %s expects number %s number", op, op)
	}
	return nil
}

// evalComparison implements spec §4.3: "operands must be of the same
// scalar type, either both numbers or both strings."
func evalComparison(op string, left, right value.Value) (value.Value, error) {
	if left.Kind() != right.Kind() || !(left.IsNumber() || left.IsString()) {
		return value.Value{}, errs.Interpreterf("infix: %s expects numbers/strings of the same type", op)
	}
	c := value.Compare(left, right)
	switch op {
	case "<":
		return value.Bool(c < 0), nil
	case "<=":
		return value.Bool(c <= 0), nil
	case ">":
		return value.Bool(c > 0), nil
	case ">=":
		return value.Bool(c >= 0), nil
	default:
		return value.Value{}, errs.Interpreterf("unknown comparison operator %q", op)
	}
}

// evalIn implements spec §4.3's `in` rules: string-in-object (key
// membership), string-in-string (substring), or any-value-in-array
// (structural equality against elements).
func evalIn(left, right value.Value) (value.Value, error) {
	switch {
	case right.IsObject():
		if !left.IsString() {
			return value.Value{}, errs.Interpreterf("infix: in-object expects string on left side")
		}
		_, ok := right.Obj().Get(left.Str())
		return value.Bool(ok), nil
	case right.IsString():
		if !left.IsString() {
			return value.Value{}, errs.Interpreterf("infix: in-string expects string on left side")
		}
		return value.Bool(containsSubstring(right.Str(), left.Str())), nil
	case right.IsArray():
		for _, e := range right.Arr() {
			if value.Equal(left, e) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	default:
		return value.Value{}, errs.Interpreterf("infix: in expects array, string, or object on right side")
	}
}

func containsSubstring(s, substr string) bool {
	if len(substr) == 0 {
		return true
	}
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

// evalDot implements spec §4.3's "Property access `.`": left must be an
// Object; right is the literal identifier (never evaluated — it arrives as
// a Primitive node holding the name string, per spec §4.2); a missing key
// raises, unlike `[...]` indexing on objects which yields null.
func evalDot(node *ast.Node, ctx *Context) (value.Value, error) {
	left, err := Eval(node.Left, ctx)
	if err != nil {
		return value.Value{}, err
	}
	name, _ := node.Right.Value.(string)
	if !left.IsObject() {
		return value.Value{}, errs.Interpreterf("infix: . expects object on left side")
	}
	v, ok := left.Obj().Get(name)
	if !ok {
		return value.Value{}, errs.Templatef("%q not found in %s", name, value.ToJSON(left))
	}
	return v, nil
}
