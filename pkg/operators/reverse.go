package operators

import (
	"github.com/samber/lo"

	"github.com/sandrolain/jsone-go/pkg/interpreter"
	"github.com/sandrolain/jsone-go/pkg/renderer"
	"github.com/sandrolain/jsone-go/pkg/value"
)

func init() {
	renderer.Register("$reverse", reverseOp)
}

// reverseOp implements spec §4.6's `$reverse`: payload renders to an
// Array; returns it reversed.
func reverseOp(obj *value.Object, ctx *interpreter.Context, render renderer.Render) (renderer.Result, error) {
	arr, err := renderToArray(obj, "$reverse", ctx, render)
	if err != nil {
		return renderer.Result{}, err
	}
	out := lo.Reverse(append([]value.Value{}, arr...))
	return renderer.V(value.Array(out)), nil
}
