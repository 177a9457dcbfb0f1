// Package builtins implements the built-in context values merged under the
// user's context (spec §6: "merged under user context, user wins"):
// numeric (min, max, sqrt, ceil, floor, abs), string (lowercase, uppercase,
// len, str), and time (fromNow, now).
//
// Grounded on the teacher's function-registration style (argument-count and
// type checks before dispatch), adapted to JSON-e's tiny fixed builtin set
// rather than JSONata's open function library.
package builtins

import (
	"math"
	"strings"

	"github.com/sandrolain/jsone-go/pkg/errs"
	"github.com/sandrolain/jsone-go/pkg/fromnow"
	"github.com/sandrolain/jsone-go/pkg/interpreter"
	"github.com/sandrolain/jsone-go/pkg/value"
)

// Install registers every built-in into ctx. Call this on a fresh root
// context before the user's own context values are set, so user bindings
// of the same name win (spec §6).
func Install(ctx *interpreter.Context, clock fromnow.Clock) {
	ctx.SetCallable("min", variadicNumeric("min", func(acc, x float64) float64 { return math.Min(acc, x) }))
	ctx.SetCallable("max", variadicNumeric("max", func(acc, x float64) float64 { return math.Max(acc, x) }))
	ctx.SetCallable("sqrt", unaryNumeric("sqrt", math.Sqrt))
	ctx.SetCallable("ceil", unaryNumeric("ceil", math.Ceil))
	ctx.SetCallable("floor", unaryNumeric("floor", math.Floor))
	ctx.SetCallable("abs", unaryNumeric("abs", math.Abs))

	ctx.SetCallable("lowercase", unaryString("lowercase", strings.ToLower))
	ctx.SetCallable("uppercase", unaryString("uppercase", strings.ToUpper))
	ctx.SetCallable("len", lenFn)
	ctx.SetCallable("str", strFn)

	ctx.SetCallable("fromNow", fromNowFn(clock))
	ctx.Set("now", value.String(fromnow.FormatUTC(clock.Now())))
}

func unaryNumeric(name string, fn func(float64) float64) interpreter.Callable {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.Value{}, errs.Interpreterf("%s takes exactly one argument", name)
		}
		if !args[0].IsNumber() {
			return value.Value{}, errs.Interpreterf("%s expects a numeric argument", name)
		}
		return value.Number(fn(args[0].Num())), nil
	}
}

func variadicNumeric(name string, fold func(acc, x float64) float64) interpreter.Callable {
	return func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Value{}, errs.Interpreterf("%s takes at least one argument", name)
		}
		for _, a := range args {
			if !a.IsNumber() {
				return value.Value{}, errs.Interpreterf("%s expects numeric arguments", name)
			}
		}
		acc := args[0].Num()
		for _, a := range args[1:] {
			acc = fold(acc, a.Num())
		}
		return value.Number(acc), nil
	}
}

func unaryString(name string, fn func(string) string) interpreter.Callable {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || !args[0].IsString() {
			return value.Value{}, errs.Interpreterf("%s expects exactly one string argument", name)
		}
		return value.String(fn(args[0].Str())), nil
	}
}

// lenFn implements spec §6's `len`: string length, or array element count.
func lenFn(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, errs.Interpreterf("len takes exactly one argument")
	}
	switch {
	case args[0].IsString():
		return value.Int(int64(len([]rune(args[0].Str())))), nil
	case args[0].IsArray():
		return value.Int(int64(len(args[0].Arr()))), nil
	default:
		return value.Value{}, errs.Interpreterf("len expects a string or array argument")
	}
}

// strFn implements spec §6's `str`: booleans -> "true"/"false", null ->
// "null", arrays -> comma-joined recursively, numbers -> JSON form,
// strings unchanged.
func strFn(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, errs.Interpreterf("str takes exactly one argument")
	}
	return value.String(stringify(args[0])), nil
}

func stringify(v value.Value) string {
	switch v.Kind() {
	case value.KindNull:
		return "null"
	case value.KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case value.KindNumber:
		return v.String()
	case value.KindString:
		return v.Str()
	case value.KindArray:
		parts := make([]string, len(v.Arr()))
		for i, e := range v.Arr() {
			parts[i] = stringify(e)
		}
		return strings.Join(parts, ",")
	case value.KindObject:
		return value.ToJSON(v)
	default:
		return ""
	}
}

// fromNowFn implements spec §6's `fromNow(offset)` and
// `fromNow(offset, reference)`.
func fromNowFn(clock fromnow.Clock) interpreter.Callable {
	return func(args []value.Value) (value.Value, error) {
		if len(args) < 1 || len(args) > 2 || !args[0].IsString() {
			return value.Value{}, errs.Interpreterf("fromNow expects (offset) or (offset, reference)")
		}
		ref := clock.Now()
		if len(args) == 2 {
			if !args[1].IsString() {
				return value.Value{}, errs.Interpreterf("fromNow's reference argument must be a string")
			}
			t, err := fromnow.ParseUTC(args[1].Str())
			if err != nil {
				return value.Value{}, err
			}
			ref = t
		}
		s, err := fromnow.Apply(args[0].Str(), ref)
		if err != nil {
			return value.Value{}, err
		}
		return value.String(s), nil
	}
}
