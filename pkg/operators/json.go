package operators

import (
	"github.com/sandrolain/jsone-go/pkg/interpreter"
	"github.com/sandrolain/jsone-go/pkg/renderer"
	"github.com/sandrolain/jsone-go/pkg/value"
)

func init() {
	renderer.Register("$json", jsonOp)
}

// jsonOp implements spec §4.6's `$json`: render the payload normally, then
// serialize the result to canonical compact JSON text.
func jsonOp(obj *value.Object, ctx *interpreter.Context, render renderer.Render) (renderer.Result, error) {
	payload, _ := obj.Get("$json")
	res, err := render(payload, ctx)
	if err != nil {
		return renderer.Result{}, err
	}
	if res.Deleted {
		return renderer.V(value.String("null")), nil
	}
	return renderer.V(value.String(value.ToJSON(res.Value))), nil
}
