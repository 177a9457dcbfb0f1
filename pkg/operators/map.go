package operators

import (
	"regexp"

	"github.com/sandrolain/jsone-go/pkg/errs"
	"github.com/sandrolain/jsone-go/pkg/interpreter"
	"github.com/sandrolain/jsone-go/pkg/renderer"
	"github.com/sandrolain/jsone-go/pkg/value"
)

var eachKeyRE = regexp.MustCompile(`^each\((\w+)\)$`)

func init() {
	renderer.Register("$map", mapOp)
}

// mapOp implements spec §4.6's `$map`: payload renders to an Array or
// Object; exactly one sibling key must match `each(<var>)`. Objects are
// iterated as {key, val} pairs and the per-element object results merge
// left-to-right (later wins); Array input yields a sequence.
func mapOp(obj *value.Object, ctx *interpreter.Context, render renderer.Render) (renderer.Result, error) {
	payload, _ := obj.Get("$map")
	res, err := render(payload, ctx)
	if err != nil {
		return renderer.Result{}, err
	}
	if res.Deleted || (!res.Value.IsArray() && !res.Value.IsObject()) {
		return renderer.Result{}, errs.Templatef("$map value must evaluate to an array or object")
	}

	var eachVar string
	var eachTemplate value.Value
	found := 0
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if m := eachKeyRE.FindStringSubmatch(pair.Key); m != nil {
			found++
			eachVar = m[1]
			eachTemplate = pair.Value
		}
	}
	if found != 1 {
		return renderer.Result{}, errs.Templatef("$map requires exactly one other property, each(..)")
	}

	if res.Value.IsObject() {
		out := value.NewObject()
		for pair := res.Value.Obj().Oldest(); pair != nil; pair = pair.Next() {
			entry := value.NewObject()
			entry.Set("key", value.String(pair.Key))
			entry.Set("val", pair.Value)
			child := ctx.Child()
			child.Set(eachVar, value.FromObject(entry))
			elemRes, err := render(eachTemplate, child)
			if err != nil {
				return renderer.Result{}, err
			}
			if elemRes.Deleted {
				continue
			}
			if !elemRes.Value.IsObject() {
				return renderer.Result{}, errs.Templatef("$map over an object must produce objects")
			}
			for p := elemRes.Value.Obj().Oldest(); p != nil; p = p.Next() {
				out.Set(p.Key, p.Value)
			}
		}
		return renderer.V(value.FromObject(out)), nil
	}

	var out []value.Value
	for _, elem := range res.Value.Arr() {
		child := ctx.Child()
		child.Set(eachVar, elem)
		elemRes, err := render(eachTemplate, child)
		if err != nil {
			return renderer.Result{}, err
		}
		if elemRes.Deleted {
			continue
		}
		out = append(out, elemRes.Value)
	}
	return renderer.V(value.Array(out)), nil
}
