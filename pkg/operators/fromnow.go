package operators

import (
	"github.com/sandrolain/jsone-go/pkg/errs"
	"github.com/sandrolain/jsone-go/pkg/fromnow"
	"github.com/sandrolain/jsone-go/pkg/interpreter"
	"github.com/sandrolain/jsone-go/pkg/renderer"
	"github.com/sandrolain/jsone-go/pkg/value"
)

func init() {
	renderer.Register("$fromNow", fromNowOp)
}

// fromNowOp implements spec §4.6's `$fromNow`: payload renders to a string
// offset; the reference time is the rendered `from` sibling if present,
// else the context's `now` built-in.
func fromNowOp(obj *value.Object, ctx *interpreter.Context, render renderer.Render) (renderer.Result, error) {
	payload, _ := obj.Get("$fromNow")
	res, err := render(payload, ctx)
	if err != nil {
		return renderer.Result{}, err
	}
	if res.Deleted || !res.Value.IsString() {
		return renderer.Result{}, errs.Templatef("$fromNow expects a string")
	}

	var refStr string
	if fromTemplate, ok := obj.Get("from"); ok {
		fromRes, err := render(fromTemplate, ctx)
		if err != nil {
			return renderer.Result{}, err
		}
		if fromRes.Deleted || !fromRes.Value.IsString() {
			return renderer.Result{}, errs.Templatef("$fromNow's from value must evaluate to a string")
		}
		refStr = fromRes.Value.Str()
	} else {
		now, ok := ctx.Lookup("now")
		if !ok || !now.IsString() {
			return renderer.Result{}, errs.Interpreterf("context has no `now` value for $fromNow")
		}
		refStr = now.Str()
	}

	ref, err := fromnow.ParseUTC(refStr)
	if err != nil {
		return renderer.Result{}, err
	}
	s, err := fromnow.Apply(res.Value.Str(), ref)
	if err != nil {
		return renderer.Result{}, err
	}
	return renderer.V(value.String(s)), nil
}
