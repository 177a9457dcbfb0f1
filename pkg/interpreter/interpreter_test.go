package interpreter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/jsone-go/pkg/errs"
	"github.com/sandrolain/jsone-go/pkg/interpreter"
	"github.com/sandrolain/jsone-go/pkg/parser"
	"github.com/sandrolain/jsone-go/pkg/value"
)

func evalExpr(t *testing.T, expr string, ctx *interpreter.Context) (value.Value, error) {
	t.Helper()
	node, err := parser.Parse(expr)
	require.NoError(t, err)
	return interpreter.Eval(node, ctx)
}

func TestDotAccessMissingKeyRaises(t *testing.T) {
	ctx := interpreter.NewContext()
	obj := value.NewObject()
	ctx.Set("o", value.FromObject(obj))
	_, err := evalExpr(t, "o.missing", ctx)
	require.Error(t, err)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.Template, e.Kind)
}

func TestIndexAccessMissingKeyReturnsNull(t *testing.T) {
	ctx := interpreter.NewContext()
	obj := value.NewObject()
	ctx.Set("o", value.FromObject(obj))
	v, err := evalExpr(t, `o["missing"]`, ctx)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestArrayIndexOutOfBounds(t *testing.T) {
	ctx := interpreter.NewContext()
	ctx.Set("a", value.Array([]value.Value{value.Number(1)}))
	_, err := evalExpr(t, "a[5]", ctx)
	require.Error(t, err)
}

func TestNegativeIndex(t *testing.T) {
	ctx := interpreter.NewContext()
	ctx.Set("a", value.Array([]value.Value{value.Number(1), value.Number(2), value.Number(3)}))
	v, err := evalExpr(t, "a[-1]", ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(3), v.Num())
}

func TestInOperatorVariants(t *testing.T) {
	ctx := interpreter.NewContext()
	obj := value.NewObject()
	obj.Set("k", value.Number(1))
	ctx.Set("o", value.FromObject(obj))
	ctx.Set("a", value.Array([]value.Value{value.String("x")}))

	v, err := evalExpr(t, `"k" in o`, ctx)
	require.NoError(t, err)
	assert.True(t, v.Bool())

	v, err = evalExpr(t, `"ell" in "hello"`, ctx)
	require.NoError(t, err)
	assert.True(t, v.Bool())

	v, err = evalExpr(t, `"x" in a`, ctx)
	require.NoError(t, err)
	assert.True(t, v.Bool())
}

func TestUnaryRejectsBoolean(t *testing.T) {
	ctx := interpreter.NewContext()
	ctx.Set("b", value.Bool(true))
	_, err := evalExpr(t, "-b", ctx)
	require.Error(t, err)
}

func TestDivisionByZero(t *testing.T) {
	ctx := interpreter.NewContext()
	_, err := evalExpr(t, "1 / 0", ctx)
	require.Error(t, err)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.Interpreter, e.Kind)
}

func TestEqualityAcrossTypes(t *testing.T) {
	ctx := interpreter.NewContext()
	v, err := evalExpr(t, `1 == "1"`, ctx)
	require.NoError(t, err)
	assert.False(t, v.Bool())
}
