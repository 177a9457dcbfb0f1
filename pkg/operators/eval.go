// Package operators implements the twelve `$...` constructs (spec §4.6),
// registered into pkg/renderer's global registry from each file's init, so
// the renderer need not import this package directly (spec §9 Design
// Notes: "a static map from operator name to a function pointer/closure...
// constructed once at startup").
//
// Grounded throughout on jsone/render.py's @operator-decorated functions.
package operators

import (
	"github.com/sandrolain/jsone-go/pkg/errs"
	"github.com/sandrolain/jsone-go/pkg/interpreter"
	"github.com/sandrolain/jsone-go/pkg/parser"
	"github.com/sandrolain/jsone-go/pkg/renderer"
	"github.com/sandrolain/jsone-go/pkg/value"
)

func init() {
	renderer.Register("$eval", evalOp)
}

// evalOp implements spec §4.6's `$eval`: the payload must be a string,
// parsed and evaluated as an expression against the current context.
func evalOp(obj *value.Object, ctx *interpreter.Context, render renderer.Render) (renderer.Result, error) {
	payload, _ := obj.Get("$eval")
	if !payload.IsString() {
		return renderer.Result{}, errs.Templatef("$eval value must evaluate to a string")
	}
	node, err := parser.Parse(payload.Str())
	if err != nil {
		return renderer.Result{}, err
	}
	v, err := interpreter.Eval(node, ctx)
	if err != nil {
		return renderer.Result{}, err
	}
	return renderer.V(v), nil
}

// evalExprString parses and evaluates a raw expression-string sibling
// value (used by $if's condition and $sort's `by(...)` expression), never
// interpolated or pre-rendered as a template.
func evalExprString(s string, ctx *interpreter.Context) (value.Value, error) {
	node, err := parser.Parse(s)
	if err != nil {
		return value.Value{}, err
	}
	return interpreter.Eval(node, ctx)
}
