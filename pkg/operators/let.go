package operators

import (
	"github.com/sandrolain/jsone-go/pkg/errs"
	"github.com/sandrolain/jsone-go/pkg/interpreter"
	"github.com/sandrolain/jsone-go/pkg/renderer"
	"github.com/sandrolain/jsone-go/pkg/value"
)

func init() {
	renderer.Register("$let", letOp)
}

// letOp implements spec §4.6's `$let`: payload renders to an Object whose
// keys all match the identifier grammar; those bindings shadow a child
// context under which the required `in` sibling is rendered.
func letOp(obj *value.Object, ctx *interpreter.Context, render renderer.Render) (renderer.Result, error) {
	payload, _ := obj.Get("$let")
	res, err := render(payload, ctx)
	if err != nil {
		return renderer.Result{}, err
	}
	if res.Deleted || !res.Value.IsObject() {
		return renderer.Result{}, errs.Templatef("$let value must evaluate to an object")
	}
	for pair := res.Value.Obj().Oldest(); pair != nil; pair = pair.Next() {
		if !renderer.IsIdentifier(pair.Key) {
			return renderer.Result{}, errs.Templatef("top level keys of $let must follow /[a-zA-Z_][a-zA-Z0-9_]*/")
		}
	}
	inTemplate, ok := obj.Get("in")
	if !ok {
		return renderer.Result{}, errs.Templatef("$let operator requires an `in` clause")
	}
	child := ctx.Child()
	for pair := res.Value.Obj().Oldest(); pair != nil; pair = pair.Next() {
		child.Set(pair.Key, pair.Value)
	}
	return render(inTemplate, child)
}
