// Package interpolate implements the `${expr}` substitution scanner (spec
// §4.4), grounded on jsone/render.py's interpolate() function: a
// Literal/InsideExpression two-state scan with a `$${` escape lookahead,
// delegating expression boundaries to the parser itself (ParseUntilBrace)
// rather than a separate brace-counting pre-pass.
package interpolate

import (
	"strconv"
	"strings"

	"github.com/sandrolain/jsone-go/pkg/errs"
	"github.com/sandrolain/jsone-go/pkg/interpreter"
	"github.com/sandrolain/jsone-go/pkg/parser"
	"github.com/sandrolain/jsone-go/pkg/value"
)

// Render replaces every `${expr}` occurrence in s with the stringified
// result of evaluating expr against ctx, honoring the `$${` literal escape.
func Render(s string, ctx *interpreter.Context) (string, error) {
	var out strings.Builder
	i := 0
	n := len(s)
	for i < n {
		if strings.HasPrefix(s[i:], "$${") {
			out.WriteString("${")
			i += 3
			continue
		}
		if strings.HasPrefix(s[i:], "${") {
			exprSrc := s[i+2:]
			node, end, err := parser.ParseUntilBrace(exprSrc)
			if err != nil {
				return "", err
			}
			v, err := interpreter.Eval(node, ctx)
			if err != nil {
				return "", err
			}
			str, err := Stringify(v)
			if err != nil {
				return "", err
			}
			out.WriteString(str)
			i += 2 + end + 1 // skip "${" + expr + "}"
			continue
		}
		out.WriteByte(s[i])
		i++
	}
	return out.String(), nil
}

// Stringify implements spec §4.4's value-to-string rules used when
// substituting an evaluated expression back into the enclosing string.
func Stringify(v value.Value) (string, error) {
	switch v.Kind() {
	case value.KindNull:
		return "", nil
	case value.KindBool:
		return strconv.FormatBool(v.Bool()), nil
	case value.KindNumber:
		return v.String(), nil
	case value.KindString:
		return v.Str(), nil
	case value.KindArray:
		parts := make([]string, len(v.Arr()))
		for i, e := range v.Arr() {
			s, err := Stringify(e)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return strings.Join(parts, ","), nil
	case value.KindObject:
		return "", errs.Templatef("interpolation produced an array or object")
	default:
		return "", errs.Templatef("interpolation produced an array or object")
	}
}
