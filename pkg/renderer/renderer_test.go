package renderer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/sandrolain/jsone-go/pkg/operators"
	"github.com/sandrolain/jsone-go/pkg/interpreter"
	"github.com/sandrolain/jsone-go/pkg/renderer"
	"github.com/sandrolain/jsone-go/pkg/value"
)

func TestPassThroughForPlainTemplate(t *testing.T) {
	ctx := interpreter.NewContext()
	tmpl, err := value.FromGo(map[string]interface{}{"a": 1.0, "b": []interface{}{2.0, 3.0}})
	require.NoError(t, err)
	res, err := renderer.RenderTemplate(tmpl, ctx)
	require.NoError(t, err)
	assert.True(t, value.Equal(tmpl, res.Value))
}

func TestKeyEscape(t *testing.T) {
	ctx := interpreter.NewContext()
	tmpl, err := value.FromGo(map[string]interface{}{"$$foo": 1.0})
	require.NoError(t, err)
	res, err := renderer.RenderTemplate(tmpl, ctx)
	require.NoError(t, err)
	_, ok := res.Value.Obj().Get("foo")
	assert.True(t, ok)
}

func TestReservedKeyRejected(t *testing.T) {
	ctx := interpreter.NewContext()
	tmpl, err := value.FromGo(map[string]interface{}{"$foo": 1.0})
	require.NoError(t, err)
	_, err = renderer.RenderTemplate(tmpl, ctx)
	require.Error(t, err)
}

func TestMultipleOperatorKeysRejected(t *testing.T) {
	ctx := interpreter.NewContext()
	tmpl, err := value.FromGo(map[string]interface{}{"$eval": "1", "$json": "2"})
	require.NoError(t, err)
	_, err = renderer.RenderTemplate(tmpl, ctx)
	require.Error(t, err)
}

func TestKeyInterpolation(t *testing.T) {
	ctx := interpreter.NewContext()
	ctx.Set("x", value.String("foo"))
	tmpl, err := value.FromGo(map[string]interface{}{"${x}": 1.0})
	require.NoError(t, err)
	res, err := renderer.RenderTemplate(tmpl, ctx)
	require.NoError(t, err)
	v, ok := res.Value.Obj().Get("foo")
	require.True(t, ok)
	assert.Equal(t, float64(1), v.Num())
}

func TestNonIdentifierDollarKeyIsInterpolatedNotRejected(t *testing.T) {
	ctx := interpreter.NewContext()
	tmpl, err := value.FromGo(map[string]interface{}{"$5": 1.0, "$": 2.0})
	require.NoError(t, err)
	res, err := renderer.RenderTemplate(tmpl, ctx)
	require.NoError(t, err)
	v, ok := res.Value.Obj().Get("$5")
	require.True(t, ok)
	assert.Equal(t, float64(1), v.Num())
	v, ok = res.Value.Obj().Get("$")
	require.True(t, ok)
	assert.Equal(t, float64(2), v.Num())
}

func TestDeleteMarkerPrunesFromSequence(t *testing.T) {
	ctx := interpreter.NewContext()
	ctx.Set("x", value.Bool(false))
	tmpl, err := value.FromGo([]interface{}{
		1.0,
		map[string]interface{}{"$if": "x", "then": 2.0},
		3.0,
	})
	require.NoError(t, err)
	res, err := renderer.RenderTemplate(tmpl, ctx)
	require.NoError(t, err)
	require.Len(t, res.Value.Arr(), 2)
	assert.Equal(t, float64(1), res.Value.Arr()[0].Num())
	assert.Equal(t, float64(3), res.Value.Arr()[1].Num())
}
