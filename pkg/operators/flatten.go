package operators

import (
	"github.com/samber/lo"

	"github.com/sandrolain/jsone-go/pkg/errs"
	"github.com/sandrolain/jsone-go/pkg/interpreter"
	"github.com/sandrolain/jsone-go/pkg/renderer"
	"github.com/sandrolain/jsone-go/pkg/value"
)

func init() {
	renderer.Register("$flatten", flattenOp)
	renderer.Register("$flattenDeep", flattenDeepOp)
}

// flattenOp implements spec §4.6's `$flatten`: one-level flatten, non-list
// elements passing through unchanged.
func flattenOp(obj *value.Object, ctx *interpreter.Context, render renderer.Render) (renderer.Result, error) {
	arr, err := renderToArray(obj, "$flatten", ctx, render)
	if err != nil {
		return renderer.Result{}, err
	}
	out := lo.FlatMap(arr, func(e value.Value, _ int) []value.Value {
		if e.IsArray() {
			return e.Arr()
		}
		return []value.Value{e}
	})
	return renderer.V(value.Array(out)), nil
}

// flattenDeepOp implements spec §4.6's `$flattenDeep`: a fully flattened
// sequence of non-array values, in order.
func flattenDeepOp(obj *value.Object, ctx *interpreter.Context, render renderer.Render) (renderer.Result, error) {
	arr, err := renderToArray(obj, "$flattenDeep", ctx, render)
	if err != nil {
		return renderer.Result{}, err
	}
	var out []value.Value
	var walk func(v value.Value)
	walk = func(v value.Value) {
		if v.IsArray() {
			for _, e := range v.Arr() {
				walk(e)
			}
			return
		}
		out = append(out, v)
	}
	for _, e := range arr {
		walk(e)
	}
	return renderer.V(value.Array(out)), nil
}

// renderToArray renders obj's payload under key and requires it to
// evaluate to an Array, used by every operator whose payload must be a
// sequence.
func renderToArray(obj *value.Object, key string, ctx *interpreter.Context, render renderer.Render) ([]value.Value, error) {
	payload, _ := obj.Get(key)
	res, err := render(payload, ctx)
	if err != nil {
		return nil, err
	}
	if res.Deleted || !res.Value.IsArray() {
		return nil, errs.Templatef("%s value must evaluate to an array", key)
	}
	return res.Value.Arr(), nil
}
