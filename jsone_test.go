package jsone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/jsone-go"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

func TestRenderPassThrough(t *testing.T) {
	tmpl := map[string]interface{}{"a": 1.5, "b": "x"}
	got, err := jsone.Render(tmpl, nil)
	require.NoError(t, err)
	assert.Equal(t, tmpl, got)
}

func TestRenderEvalArithmetic(t *testing.T) {
	got, err := jsone.Render(map[string]interface{}{"$eval": "1 + 2 * 3"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got)
}

func TestRenderSliceAccess(t *testing.T) {
	got, err := jsone.Render(
		map[string]interface{}{"$eval": "a[1:3]"},
		map[string]interface{}{"a": []interface{}{10.0, 20.0, 30.0, 40.0}},
	)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(20), int64(30)}, got)
}

func TestRenderIfOperator(t *testing.T) {
	got, err := jsone.Render(
		map[string]interface{}{"$if": "x > 0", "then": "pos", "else": "neg"},
		map[string]interface{}{"x": -1.0},
	)
	require.NoError(t, err)
	assert.Equal(t, "neg", got)
}

func TestRenderInterpolation(t *testing.T) {
	got, err := jsone.Render("hi ${n}!", map[string]interface{}{"n": 5.0})
	require.NoError(t, err)
	assert.Equal(t, "hi 5!", got)

	got, err = jsone.Render("$${n}", nil)
	require.NoError(t, err)
	assert.Equal(t, "${n}", got)
}

func TestRenderPowRightAssociativeAndUnaryPrecedence(t *testing.T) {
	got, err := jsone.Render(map[string]interface{}{"$eval": "2 ** 3 ** 2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(512), got)

	got, err = jsone.Render(map[string]interface{}{"$eval": "-2 ** 2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(-4), got)
}

func TestRenderTopLevelDeleteMarkerSurfacesAsNil(t *testing.T) {
	got, err := jsone.Render(
		map[string]interface{}{"$if": "x", "then": 1.0},
		map[string]interface{}{"x": false},
	)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRenderInvalidContextKeyFails(t *testing.T) {
	_, err := jsone.Render("x", map[string]interface{}{"1bad": 1.0})
	require.Error(t, err)
}

func TestRenderWithClockFreezesFromNow(t *testing.T) {
	got, err := jsone.Render(
		map[string]interface{}{"$fromNow": "1 day"},
		nil,
		jsone.WithClock(fixedClock{time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}),
	)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-02T00:00:00.000Z", got)
}

func TestRenderOperatorExclusivity(t *testing.T) {
	_, err := jsone.Render(map[string]interface{}{"$eval": "1", "$json": "2"}, nil)
	require.Error(t, err)
}

func TestMustRenderPanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		jsone.MustRender(map[string]interface{}{"$eval": "1 +"}, nil)
	})
}

func TestRenderWithCustomFunction(t *testing.T) {
	ctx := map[string]interface{}{
		"greet": func(args []interface{}) (interface{}, error) {
			return "hello " + args[0].(string), nil
		},
	}
	got, err := jsone.Render(map[string]interface{}{"$eval": `greet('world')`}, ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
}
