package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/jsone-go/pkg/value"
)

func TestEqual(t *testing.T) {
	cases := []struct {
		name  string
		a, b  value.Value
		equal bool
	}{
		{"same numbers", value.Number(2), value.Number(2), true},
		{"number vs string", value.Number(2), value.String("2"), false},
		{"nested arrays", value.Array([]value.Value{value.Number(1)}), value.Array([]value.Value{value.Number(1)}), true},
		{"different array length", value.Array([]value.Value{value.Number(1)}), value.Array(nil), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.equal, value.Equal(c.a, c.b))
		})
	}
}

func TestIsTruthy(t *testing.T) {
	assert.False(t, value.Null.IsTruthy())
	assert.False(t, value.Bool(false).IsTruthy())
	assert.False(t, value.Number(0).IsTruthy())
	assert.False(t, value.String("").IsTruthy())
	assert.False(t, value.Array(nil).IsTruthy())
	assert.True(t, value.Number(1).IsTruthy())
	assert.True(t, value.String("x").IsTruthy())
}

func TestNumberIntegerFidelity(t *testing.T) {
	seven := value.Number(7)
	require.True(t, seven.IsInt())
	assert.Equal(t, "7", value.ToJSON(seven))

	half := value.Number(0.5)
	require.False(t, half.IsInt())
	assert.Equal(t, "0.5", value.ToJSON(half))
}

func TestToJSONCompact(t *testing.T) {
	obj := value.NewObject()
	obj.Set("a", value.Number(1))
	obj.Set("b", value.Array([]value.Value{value.String("x")}))
	got := value.ToJSON(value.FromObject(obj))
	assert.Equal(t, `{"a":1,"b":["x"]}`, got)
}

func TestFromGoCoercesUnenumeratedNumericTypes(t *testing.T) {
	v, err := value.FromGo(int32(5))
	require.NoError(t, err)
	assert.Equal(t, float64(5), v.Num())

	v, err = value.FromGo(uint(2))
	require.NoError(t, err)
	assert.Equal(t, float64(2), v.Num())

	_, err = value.FromGo(struct{}{})
	require.Error(t, err)
}

func TestFromGoToGoRoundTrip(t *testing.T) {
	in := map[string]interface{}{
		"n": float64(3),
		"s": "hi",
		"a": []interface{}{1.0, 2.0},
	}
	v, err := value.FromGo(in)
	require.NoError(t, err)
	out := value.ToGo(v)
	assert.Equal(t, in["s"], out.(map[string]interface{})["s"])
}
