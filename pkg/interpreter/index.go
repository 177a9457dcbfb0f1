package interpreter

import (
	"github.com/sandrolain/jsone-go/pkg/ast"
	"github.com/sandrolain/jsone-go/pkg/errs"
	"github.com/sandrolain/jsone-go/pkg/value"
)

// evalValueAccess implements spec §4.3 "Index / slice": target[left],
// target[left:right]. Grounded on jsone/newinterpreter.py's
// visit_ValueAccess, which -- unlike the `.` operator in visit_BinOp --
// returns null for a missing object key rather than raising.
func evalValueAccess(node *ast.Node, ctx *Context) (value.Value, error) {
	target, err := Eval(node.Target, ctx)
	if err != nil {
		return value.Value{}, err
	}

	if !node.IsInterval {
		idx, err := Eval(node.RangeLeft, ctx)
		if err != nil {
			return value.Value{}, err
		}
		return evalSingleIndex(target, idx)
	}

	var left, right *int
	if node.RangeLeft != nil {
		v, err := Eval(node.RangeLeft, ctx)
		if err != nil {
			return value.Value{}, err
		}
		i, err := requireInt("slice", v)
		if err != nil {
			return value.Value{}, err
		}
		left = &i
	}
	if node.RangeRight != nil {
		v, err := Eval(node.RangeRight, ctx)
		if err != nil {
			return value.Value{}, err
		}
		i, err := requireInt("slice", v)
		if err != nil {
			return value.Value{}, err
		}
		right = &i
	}
	return evalSlice(target, left, right)
}

func requireInt(what string, v value.Value) (int, error) {
	if !v.IsNumber() || !v.IsInt() {
		return 0, errs.Interpreterf("%s index must be an integer", what)
	}
	return int(v.Num()), nil
}

func evalSingleIndex(target, idx value.Value) (value.Value, error) {
	switch {
	case target.IsArray():
		arr := target.Arr()
		i, err := requireInt("array", idx)
		if err != nil {
			return value.Value{}, err
		}
		n := len(arr)
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return value.Value{}, errs.Templatef("index out of bounds")
		}
		return arr[i], nil
	case target.IsString():
		s := []rune(target.Str())
		i, err := requireInt("string", idx)
		if err != nil {
			return value.Value{}, err
		}
		n := len(s)
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return value.Value{}, errs.Templatef("index out of bounds")
		}
		return value.String(string(s[i])), nil
	case target.IsObject():
		if !idx.IsString() {
			return value.Value{}, errs.Interpreterf("object index must be a string")
		}
		v, ok := target.Obj().Get(idx.Str())
		if !ok {
			return value.Null, nil
		}
		return v, nil
	default:
		return value.Value{}, errs.Interpreterf("cannot index into %s", target.Kind())
	}
}

// evalSlice clamps both bounds into range and tolerates left > right by
// yielding an empty result, per spec §4.3.
func evalSlice(target value.Value, left, right *int) (value.Value, error) {
	switch {
	case target.IsArray():
		arr := target.Arr()
		lo, hi := clampSlice(len(arr), left, right)
		if lo >= hi {
			return value.Array(nil), nil
		}
		out := make([]value.Value, hi-lo)
		copy(out, arr[lo:hi])
		return value.Array(out), nil
	case target.IsString():
		s := []rune(target.Str())
		lo, hi := clampSlice(len(s), left, right)
		if lo >= hi {
			return value.String(""), nil
		}
		return value.String(string(s[lo:hi])), nil
	default:
		return value.Value{}, errs.Interpreterf("cannot slice %s", target.Kind())
	}
}

func clampSlice(n int, left, right *int) (int, int) {
	lo := 0
	if left != nil {
		lo = *left
		if lo < 0 {
			lo += n
		}
	}
	hi := n
	if right != nil {
		hi = *right
		if hi < 0 {
			hi += n
		}
	}
	if lo < 0 {
		lo = 0
	}
	if lo > n {
		lo = n
	}
	if hi < 0 {
		hi = 0
	}
	if hi > n {
		hi = n
	}
	return lo, hi
}
