package operators

import (
	"github.com/sandrolain/jsone-go/pkg/errs"
	"github.com/sandrolain/jsone-go/pkg/interpreter"
	"github.com/sandrolain/jsone-go/pkg/renderer"
	"github.com/sandrolain/jsone-go/pkg/value"
)

func init() {
	renderer.Register("$if", ifOp)
}

// ifOp implements spec §4.6's `$if`: evaluate the condition expression; on
// true/false return the rendered "then"/"else" sibling, or DeleteMarker if
// the selected branch is absent.
func ifOp(obj *value.Object, ctx *interpreter.Context, render renderer.Render) (renderer.Result, error) {
	condPayload, _ := obj.Get("$if")
	if !condPayload.IsString() {
		return renderer.Result{}, errs.Templatef("$if value must evaluate to a string")
	}
	cond, err := evalExprString(condPayload.Str(), ctx)
	if err != nil {
		return renderer.Result{}, err
	}
	branchKey := "else"
	if cond.IsTruthy() {
		branchKey = "then"
	}
	branch, ok := obj.Get(branchKey)
	if !ok {
		return renderer.Deleted, nil
	}
	return render(branch, ctx)
}
