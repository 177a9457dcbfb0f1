// Package renderer implements the template tree-walk (spec §4.5): the
// recursive function that, at each node, returns primitives unchanged,
// interpolates strings, dispatches to exactly one operator for a mapping
// that carries one, or otherwise walks a mapping/sequence's children.
//
// Grounded on jsone/render.py's renderValue(): the operator-key-uniqueness
// check, the `$$`-escape / reserved-key rule applied only to the
// non-operator mapping branch, and DeleteMarker pruning all follow that
// function's control flow.
package renderer

import (
	"regexp"
	"sort"

	"github.com/sandrolain/jsone-go/pkg/errs"
	"github.com/sandrolain/jsone-go/pkg/interpolate"
	"github.com/sandrolain/jsone-go/pkg/interpreter"
	"github.com/sandrolain/jsone-go/pkg/value"
)

var identifierRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdentifier reports whether s matches the context-key/unescaped-key
// identifier grammar `[A-Za-z_][A-Za-z0-9_]*`.
func IsIdentifier(s string) bool { return identifierRE.MatchString(s) }

// Result is a rendered Value, or the DeleteMarker sentinel (spec §3, §9
// Design Notes: "a distinct DeleteMarker sentinel that is not a Value
// variant but a renderer-internal result"). A Deleted Result's Value field
// is meaningless.
type Result struct {
	Value   value.Value
	Deleted bool
}

// V wraps a plain Value as a non-deleted Result.
func V(v value.Value) Result { return Result{Value: v} }

// Deleted is the DeleteMarker result: drop the slot that produced it.
var Deleted = Result{Deleted: true}

// Render recursively renders tmpl against ctx, per spec §4.5.
type Render func(tmpl value.Value, ctx *interpreter.Context) (Result, error)

// OperatorFunc implements one `$...` construct. obj is the raw (unrendered)
// template mapping that carried the operator key, so the operator can read
// its own sibling keys for parameters. render lets it recurse into
// sub-templates (e.g. $if's "then"/"else", $map's iteration body).
type OperatorFunc func(obj *value.Object, ctx *interpreter.Context, render Render) (Result, error)

var registry = map[string]OperatorFunc{}

// Register adds an operator to the global registry, called from each
// operator implementation's package init (spec §9 Design Notes: "a static
// map... constructed once at startup").
func Register(name string, fn OperatorFunc) {
	registry[name] = fn
}

// RenderTemplate is the tree-walk entry point (spec §4.5 steps 1-4).
func RenderTemplate(tmpl value.Value, ctx *interpreter.Context) (Result, error) {
	switch tmpl.Kind() {
	case value.KindNull, value.KindBool, value.KindNumber:
		return V(tmpl), nil
	case value.KindString:
		s, err := interpolate.Render(tmpl.Str(), ctx)
		if err != nil {
			return Result{}, err
		}
		return V(value.String(s)), nil
	case value.KindObject:
		return renderObject(tmpl.Obj(), ctx)
	case value.KindArray:
		return renderArray(tmpl.Arr(), ctx)
	default:
		return Result{}, errs.Interpreterf("cannot render value of unknown kind")
	}
}

func renderObject(obj *value.Object, ctx *interpreter.Context) (Result, error) {
	var opKeys []string
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if _, ok := registry[pair.Key]; ok {
			opKeys = append(opKeys, pair.Key)
		}
	}
	if len(opKeys) > 1 {
		sort.Strings(opKeys)
		return Result{}, errs.Templatef("only one operator allowed")
	}
	if len(opKeys) == 1 {
		fn := registry[opKeys[0]]
		res, err := fn(obj, ctx, RenderTemplate)
		if err != nil {
			return Result{}, err
		}
		return res, nil
	}

	out := value.NewObject()
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		origKey := pair.Key
		k := origKey
		switch {
		case len(k) >= 2 && k[:2] == "$$":
			k = k[1:]
		case len(k) >= 1 && k[0] == '$' && IsIdentifier(k[1:]):
			return Result{}, errs.Templatef("$%s is reserved; use $$%s", k[1:], k[1:])
		default:
			interpolated, err := interpolate.Render(k, ctx)
			if err != nil {
				return Result{}, prependKeyPath(err, origKey)
			}
			k = interpolated
		}
		res, err := RenderTemplate(pair.Value, ctx)
		if err != nil {
			return Result{}, prependKeyPath(err, origKey)
		}
		if res.Deleted {
			continue
		}
		out.Set(k, res.Value)
	}
	return V(value.FromObject(out)), nil
}

func prependKeyPath(err error, key string) error {
	if e, ok := errs.As(err); ok {
		return e.PrependPath(errs.KeyFragment(key, IsIdentifier))
	}
	return err
}

func renderArray(arr []value.Value, ctx *interpreter.Context) (Result, error) {
	out := make([]value.Value, 0, len(arr))
	for i, e := range arr {
		res, err := RenderTemplate(e, ctx)
		if err != nil {
			if er, ok := errs.As(err); ok {
				return Result{}, er.PrependPath(errs.IndexFragment(i))
			}
			return Result{}, err
		}
		if res.Deleted {
			continue
		}
		out = append(out, res.Value)
	}
	return V(value.Array(out)), nil
}
