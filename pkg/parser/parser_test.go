package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/jsone-go/pkg/interpreter"
	"github.com/sandrolain/jsone-go/pkg/parser"
	"github.com/sandrolain/jsone-go/pkg/value"
)

func eval(t *testing.T, expr string, bind func(*interpreter.Context)) value.Value {
	t.Helper()
	node, err := parser.Parse(expr)
	require.NoError(t, err)
	ctx := interpreter.NewContext()
	if bind != nil {
		bind(ctx)
	}
	v, err := interpreter.Eval(node, ctx)
	require.NoError(t, err)
	return v
}

func TestArithmeticPrecedence(t *testing.T) {
	v := eval(t, "1 + 2 * 3", nil)
	assert.Equal(t, float64(7), v.Num())
}

func TestPowRightAssociative(t *testing.T) {
	v := eval(t, "2 ** 3 ** 2", nil)
	assert.Equal(t, float64(512), v.Num())
}

func TestUnaryBindsLooserThanPow(t *testing.T) {
	v := eval(t, "-2 ** 2", nil)
	assert.Equal(t, float64(-4), v.Num())
}

func TestUnaryBindsTighterThanMul(t *testing.T) {
	v := eval(t, "-2 * 3", nil)
	assert.Equal(t, float64(-6), v.Num())
}

func TestNegativeExponent(t *testing.T) {
	v := eval(t, "2 ** -3", nil)
	assert.InDelta(t, 0.125, v.Num(), 1e-9)
}

func TestStringConcat(t *testing.T) {
	v := eval(t, "'he' + 'llo'", nil)
	assert.Equal(t, "hello", v.Str())
}

func TestSliceAccess(t *testing.T) {
	v := eval(t, "a[1:3]", func(ctx *interpreter.Context) {
		ctx.Set("a", value.Array([]value.Value{
			value.Number(10), value.Number(20), value.Number(30), value.Number(40),
		}))
	})
	require.True(t, v.IsArray())
	assert.Equal(t, float64(20), v.Arr()[0].Num())
	assert.Equal(t, float64(30), v.Arr()[1].Num())
}

func TestTrailingCommaRejected(t *testing.T) {
	_, err := parser.Parse("[1,2,]")
	assert.Error(t, err)
}

func TestUnexpectedEndOfInput(t *testing.T) {
	_, err := parser.Parse("1 +")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unexpected end of input")
}

func TestShortCircuitOr(t *testing.T) {
	v := eval(t, "true || x", nil)
	assert.True(t, v.Bool())
}

func TestShortCircuitAnd(t *testing.T) {
	v := eval(t, "false && x", nil)
	assert.False(t, v.Bool())
}
