package operators

import (
	"github.com/sandrolain/jsone-go/pkg/errs"
	"github.com/sandrolain/jsone-go/pkg/interpreter"
	"github.com/sandrolain/jsone-go/pkg/renderer"
	"github.com/sandrolain/jsone-go/pkg/value"
)

func init() {
	renderer.Register("$merge", mergeOp)
	renderer.Register("$mergeDeep", mergeDeepOp)
}

// mergeOp implements spec §4.6's `$merge`: payload renders to an Array of
// Objects; keys merge left-to-right, later wins. No sibling keys besides
// $merge itself are permitted.
func mergeOp(obj *value.Object, ctx *interpreter.Context, render renderer.Render) (renderer.Result, error) {
	if obj.Len() > 1 {
		return renderer.Result{}, errs.Templatef("$merge with undefined properties")
	}
	objs, err := renderToObjectArray(obj, "$merge", ctx, render)
	if err != nil {
		return renderer.Result{}, err
	}
	out := value.NewObject()
	for _, o := range objs {
		for pair := o.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, pair.Value)
		}
	}
	return renderer.V(value.FromObject(out)), nil
}

// mergeDeepOp implements spec §4.6's `$mergeDeep`: like $merge but arrays
// concatenate and nested objects merge recursively; scalars right wins.
func mergeDeepOp(obj *value.Object, ctx *interpreter.Context, render renderer.Render) (renderer.Result, error) {
	objs, err := renderToObjectArray(obj, "$mergeDeep", ctx, render)
	if err != nil {
		return renderer.Result{}, err
	}
	if len(objs) == 0 {
		return renderer.V(value.FromObject(value.NewObject())), nil
	}
	acc := value.FromObject(objs[0])
	for _, o := range objs[1:] {
		acc = mergeDeep(acc, value.FromObject(o))
	}
	return renderer.V(acc), nil
}

func mergeDeep(l, r value.Value) value.Value {
	if l.IsArray() && r.IsArray() {
		return value.Array(append(append([]value.Value{}, l.Arr()...), r.Arr()...))
	}
	if l.IsObject() && r.IsObject() {
		out := value.NewObject()
		for pair := l.Obj().Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, pair.Value)
		}
		for pair := r.Obj().Oldest(); pair != nil; pair = pair.Next() {
			if existing, ok := out.Get(pair.Key); ok {
				out.Set(pair.Key, mergeDeep(existing, pair.Value))
			} else {
				out.Set(pair.Key, pair.Value)
			}
		}
		return value.FromObject(out)
	}
	return r
}

func renderToObjectArray(obj *value.Object, key string, ctx *interpreter.Context, render renderer.Render) ([]*value.Object, error) {
	arr, err := renderToArray(obj, key, ctx, render)
	if err != nil {
		return nil, err
	}
	out := make([]*value.Object, len(arr))
	for i, e := range arr {
		if !e.IsObject() {
			return nil, errs.Templatef("%s value must evaluate to an array of objects", key)
		}
		out[i] = e.Obj()
	}
	return out, nil
}
