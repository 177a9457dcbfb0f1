package operators_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/sandrolain/jsone-go/pkg/operators"
	"github.com/sandrolain/jsone-go/pkg/builtins"
	"github.com/sandrolain/jsone-go/pkg/fromnow"
	"github.com/sandrolain/jsone-go/pkg/interpreter"
	"github.com/sandrolain/jsone-go/pkg/renderer"
	"github.com/sandrolain/jsone-go/pkg/value"
)

func newCtx() *interpreter.Context {
	ctx := interpreter.NewContext()
	builtins.Install(ctx, fromnow.SystemClock{})
	return ctx
}

func render(t *testing.T, tmplGo interface{}, ctx *interpreter.Context) value.Value {
	t.Helper()
	tmpl, err := value.FromGo(tmplGo)
	require.NoError(t, err)
	res, err := renderer.RenderTemplate(tmpl, ctx)
	require.NoError(t, err)
	require.False(t, res.Deleted)
	return res.Value
}

func TestEvalOperator(t *testing.T) {
	v := render(t, map[string]interface{}{"$eval": "1 + 2 * 3"}, newCtx())
	assert.Equal(t, float64(7), v.Num())
}

func TestIfOperator(t *testing.T) {
	ctx := newCtx()
	ctx.Set("x", value.Number(-1))
	v := render(t, map[string]interface{}{"$if": "x > 0", "then": "pos", "else": "neg"}, ctx)
	assert.Equal(t, "neg", v.Str())
}

func TestIfOperatorMissingBranchDeletes(t *testing.T) {
	ctx := newCtx()
	ctx.Set("x", value.Bool(false))
	tmpl, err := value.FromGo(map[string]interface{}{"$if": "x", "then": 1.0})
	require.NoError(t, err)
	res, err := renderer.RenderTemplate(tmpl, ctx)
	require.NoError(t, err)
	assert.True(t, res.Deleted)
}

func TestMapOverArray(t *testing.T) {
	v := render(t, map[string]interface{}{
		"$map":      []interface{}{1.0, 2.0, 3.0},
		"each(n)":   map[string]interface{}{"$eval": "n*n"},
	}, newCtx())
	require.Len(t, v.Arr(), 3)
	assert.Equal(t, float64(1), v.Arr()[0].Num())
	assert.Equal(t, float64(4), v.Arr()[1].Num())
	assert.Equal(t, float64(9), v.Arr()[2].Num())
}

func TestMergeOperator(t *testing.T) {
	v := render(t, map[string]interface{}{
		"$merge": []interface{}{
			map[string]interface{}{"a": 1.0},
			map[string]interface{}{"b": 2.0},
			map[string]interface{}{"a": 3.0},
		},
	}, newCtx())
	a, _ := v.Obj().Get("a")
	b, _ := v.Obj().Get("b")
	assert.Equal(t, float64(3), a.Num())
	assert.Equal(t, float64(2), b.Num())
}

func TestMergeDeepConcatenatesArrays(t *testing.T) {
	v := render(t, map[string]interface{}{
		"$mergeDeep": []interface{}{
			map[string]interface{}{"a": []interface{}{1.0}},
			map[string]interface{}{"a": []interface{}{2.0}},
		},
	}, newCtx())
	a, _ := v.Obj().Get("a")
	require.Len(t, a.Arr(), 2)
}

func TestSortOperator(t *testing.T) {
	v := render(t, map[string]interface{}{"$sort": []interface{}{3.0, 1.0, 2.0}}, newCtx())
	require.Len(t, v.Arr(), 3)
	assert.Equal(t, []float64{1, 2, 3}, []float64{v.Arr()[0].Num(), v.Arr()[1].Num(), v.Arr()[2].Num()})
}

func TestSortMixedTypesRejected(t *testing.T) {
	tmpl, err := value.FromGo(map[string]interface{}{"$sort": []interface{}{1.0, "a"}})
	require.NoError(t, err)
	_, err = renderer.RenderTemplate(tmpl, newCtx())
	require.Error(t, err)
}

func TestReverseOperatorDoubleIsIdentity(t *testing.T) {
	ctx := newCtx()
	arr := []interface{}{1.0, 2.0, 3.0}
	single := render(t, map[string]interface{}{"$reverse": arr}, ctx)
	double := render(t, map[string]interface{}{"$reverse": map[string]interface{}{"$reverse": arr}}, ctx)
	assert.True(t, value.Equal(double, value.Array([]value.Value{value.Number(1), value.Number(2), value.Number(3)})))
	assert.Equal(t, float64(3), single.Arr()[0].Num())
}

func TestJSONOperatorRoundTrips(t *testing.T) {
	ctx := newCtx()
	v := render(t, map[string]interface{}{"$json": map[string]interface{}{"a": 1.0}}, ctx)
	assert.Equal(t, `{"a":1}`, v.Str())
}

func TestLetOperator(t *testing.T) {
	v := render(t, map[string]interface{}{
		"$let": map[string]interface{}{"x": 10.0},
		"in":   map[string]interface{}{"$eval": "x + 1"},
	}, newCtx())
	assert.Equal(t, float64(11), v.Num())
}

func TestFlattenOperator(t *testing.T) {
	v := render(t, map[string]interface{}{
		"$flatten": []interface{}{[]interface{}{1.0, 2.0}, 3.0},
	}, newCtx())
	require.Len(t, v.Arr(), 3)
}

func TestFlattenDeepOperator(t *testing.T) {
	v := render(t, map[string]interface{}{
		"$flattenDeep": []interface{}{[]interface{}{1.0, []interface{}{2.0, 3.0}}, 4.0},
	}, newCtx())
	require.Len(t, v.Arr(), 4)
}
