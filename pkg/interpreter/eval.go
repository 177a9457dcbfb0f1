package interpreter

import (
	"github.com/sandrolain/jsone-go/pkg/ast"
	"github.com/sandrolain/jsone-go/pkg/errs"
	"github.com/sandrolain/jsone-go/pkg/value"
)

// Eval evaluates node against ctx, implementing spec §4.3.
func Eval(node *ast.Node, ctx *Context) (value.Value, error) {
	switch node.Kind {
	case ast.Primitive:
		return evalPrimitive(node)
	case ast.UnaryOp:
		return evalUnary(node, ctx)
	case ast.BinOp:
		return evalBinOp(node, ctx)
	case ast.ContextValue:
		return evalContextValue(node, ctx)
	case ast.FunctionCall:
		return evalFunctionCall(node, ctx)
	case ast.List:
		return evalList(node, ctx)
	case ast.Object:
		return evalObject(node, ctx)
	case ast.ValueAccess:
		return evalValueAccess(node, ctx)
	default:
		return value.Value{}, errs.Interpreterf("unknown AST node kind")
	}
}

func evalPrimitive(node *ast.Node) (value.Value, error) {
	switch v := node.Value.(type) {
	case nil:
		return value.Null, nil
	case bool:
		return value.Bool(v), nil
	case float64:
		return value.Number(v), nil
	case string:
		return value.String(v), nil
	default:
		return value.Value{}, errs.Interpreterf("unrecognized literal value")
	}
}

func evalUnary(node *ast.Node, ctx *Context) (value.Value, error) {
	operand, err := Eval(node.Left, ctx)
	if err != nil {
		return value.Value{}, err
	}
	switch node.Op {
	case "!":
		return value.Bool(!operand.IsTruthy()), nil
	case "+":
		if !isNumber(operand) {
			return value.Value{}, errs.Interpreterf("unary + expects number")
		}
		return operand, nil
	case "-":
		if !isNumber(operand) {
			return value.Value{}, errs.Interpreterf("unary - expects number")
		}
		return value.Number(-operand.Num()), nil
	default:
		return value.Value{}, errs.Interpreterf("unknown unary operator %q", node.Op)
	}
}

func evalContextValue(node *ast.Node, ctx *Context) (value.Value, error) {
	if v, ok := ctx.Lookup(node.Name); ok {
		return v, nil
	}
	if _, ok := ctx.LookupCallable(node.Name); ok {
		return value.Value{}, errs.Interpreterf("%q is a function and must be called", node.Name)
	}
	return value.Value{}, errs.Interpreterf("unknown context value %s", node.Name)
}

func evalFunctionCall(node *ast.Node, ctx *Context) (value.Value, error) {
	if node.Callee.Kind != ast.ContextValue {
		return value.Value{}, errs.Interpreterf("callee must be an identifier")
	}
	fn, ok := ctx.LookupCallable(node.Callee.Name)
	if !ok {
		if _, isValue := ctx.Lookup(node.Callee.Name); isValue {
			return value.Value{}, errs.Interpreterf("%q is not callable", node.Callee.Name)
		}
		return value.Value{}, errs.Interpreterf("unknown context value %s", node.Callee.Name)
	}
	args := make([]value.Value, len(node.Args))
	for i, a := range node.Args {
		v, err := Eval(a, ctx)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}
	return fn(args)
}

func evalList(node *ast.Node, ctx *Context) (value.Value, error) {
	elems := make([]value.Value, len(node.Elements))
	for i, e := range node.Elements {
		v, err := Eval(e, ctx)
		if err != nil {
			return value.Value{}, err
		}
		elems[i] = v
	}
	return value.Array(elems), nil
}

func evalObject(node *ast.Node, ctx *Context) (value.Value, error) {
	obj := value.NewObject()
	for i, key := range node.Keys {
		v, err := Eval(node.Values[i], ctx)
		if err != nil {
			return value.Value{}, err
		}
		obj.Set(key, v)
	}
	return value.FromObject(obj), nil
}

func isNumber(v value.Value) bool {
	return v.IsNumber()
}
