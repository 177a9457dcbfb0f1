package operators

import (
	"regexp"
	"sort"

	"github.com/samber/lo"

	"github.com/sandrolain/jsone-go/pkg/errs"
	"github.com/sandrolain/jsone-go/pkg/interpreter"
	"github.com/sandrolain/jsone-go/pkg/renderer"
	"github.com/sandrolain/jsone-go/pkg/value"
)

var byKeyRE = regexp.MustCompile(`^by\((\w+)\)$`)

func init() {
	renderer.Register("$sort", sortOp)
}

type sortPair struct {
	key  value.Value
	elem value.Value
}

// sortOp implements spec §4.6's `$sort`: payload renders to an Array; an
// optional `by(<var>)` sibling supplies a per-element sort-key expression
// (Schwartzian transform), else each element sorts against itself. All
// sort keys must be mutually comparable scalars (number or string); the
// sort is stable ascending.
func sortOp(obj *value.Object, ctx *interpreter.Context, render renderer.Render) (renderer.Result, error) {
	arr, err := renderToArray(obj, "$sort", ctx, render)
	if err != nil {
		return renderer.Result{}, err
	}

	var byVar, byExpr string
	found := 0
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if m := byKeyRE.FindStringSubmatch(pair.Key); m != nil {
			found++
			byVar = m[1]
			if !pair.Value.IsString() {
				return renderer.Result{}, errs.Templatef("$sort's by(...) value must be a string expression")
			}
			byExpr = pair.Value.Str()
		}
	}
	if found > 1 {
		return renderer.Result{}, errs.Templatef("only one by(..) is allowed")
	}

	var keyErr error
	pairs := lo.Map(arr, func(e value.Value, _ int) sortPair {
		if found != 1 || keyErr != nil {
			return sortPair{key: e, elem: e}
		}
		child := ctx.Child()
		child.Set(byVar, e)
		k, err := evalExprString(byExpr, child)
		if err != nil {
			keyErr = err
			return sortPair{}
		}
		return sortPair{key: k, elem: e}
	})
	if keyErr != nil {
		return renderer.Result{}, keyErr
	}

	if len(pairs) == 0 {
		return renderer.V(value.Array(nil)), nil
	}
	kind := pairs[0].key.Kind()
	if !pairs[0].key.SortableKind() {
		return renderer.Result{}, errs.Templatef("$sort values must be sortable")
	}
	for _, p := range pairs {
		if p.key.Kind() != kind {
			return renderer.Result{}, errs.Templatef("$sort values must all have the same type")
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return value.Compare(pairs[i].key, pairs[j].key) < 0
	})

	out := lo.Map(pairs, func(p sortPair, _ int) value.Value { return p.elem })
	return renderer.V(value.Array(out)), nil
}
