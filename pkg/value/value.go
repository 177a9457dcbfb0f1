// Package value implements the tagged JSON value variant that flows through
// every stage of the template renderer: tokenizer input aside, every other
// component (parser, interpreter, interpolator, renderer, operators)
// produces or consumes Values exclusively.
package value

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Object is an insertion-ordered string-keyed mapping. Insertion order is
// significant for rendering (the renderer walks keys in the order they were
// produced) but irrelevant for equality.
type Object = orderedmap.OrderedMap[string, Value]

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return orderedmap.New[string, Value]()
}

// Value is a closed tagged-variant JSON value: Null, Bool, Number, String,
// Array, or Object. Numbers are stored as float64 for arithmetic but
// remember whether they were produced from an integer literal/computation so
// that JSON serialization can print "7" rather than "7.0".
type Value struct {
	kind   Kind
	b      bool
	n      float64
	isInt  bool
	s      string
	arr    []Value
	obj    *Object
}

// Null is the JSON null value.
var Null = Value{kind: KindNull}

// Bool constructs a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int constructs a Value from an integer, remembered as integral for display.
func Int(n int64) Value { return Value{kind: KindNumber, n: float64(n), isInt: true} }

// Float constructs a Value from a float64 that is not marked integral, so
// ToGo returns it as a float64. Display uses the shortest 'g' form, so an
// integral value such as Float(2) still prints as "2".
func Float(n float64) Value { return Value{kind: KindNumber, n: n, isInt: false} }

// Number constructs a numeric Value, inferring integer-ness from whether n
// has a fractional part. Used when a computed result's integer-ness should
// follow its mathematical value (e.g. 4/2 == 2, not 2.0).
func Number(n float64) Value {
	return Value{kind: KindNumber, n: n, isInt: n == math.Trunc(n) && !math.IsInf(n, 0)}
}

// String constructs a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array constructs an array Value from a slice of Values (copied).
func Array(elems []Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: KindArray, arr: cp}
}

// FromObject constructs an Object Value.
func FromObject(o *Object) Value { return Value{kind: KindObject, obj: o} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsArray() bool  { return v.kind == KindArray }
func (v Value) IsObject() bool { return v.kind == KindObject }

// IsInt reports whether a Number Value was produced from, or holds, an
// integral quantity. Meaningless for non-Number kinds.
func (v Value) IsInt() bool { return v.isInt }

func (v Value) Bool() bool       { return v.b }
func (v Value) Num() float64     { return v.n }
func (v Value) Str() string      { return v.s }
func (v Value) Arr() []Value     { return v.arr }
func (v Value) Obj() *Object     { return v.obj }

// IsTruthy implements JSON-e's truthiness rule, used by `!`, `&&`, `||`, and
// `$if`: null and false are falsy, zero is falsy, an empty string/array/
// object is falsy, everything else is truthy.
func (v Value) IsTruthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	case KindNumber:
		return v.n != 0
	case KindString:
		return v.s != ""
	case KindArray:
		return len(v.arr) != 0
	case KindObject:
		return v.obj != nil && v.obj.Len() != 0
	default:
		return false
	}
}

// Equal implements JSON-e's structural equality: types that differ compare
// unequal; Array/Object equality is deep and order-independent for Object.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.obj == nil || b.obj == nil {
			return a.obj == b.obj
		}
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for pair := a.obj.Oldest(); pair != nil; pair = pair.Next() {
			bv, ok := b.obj.Get(pair.Key)
			if !ok || !Equal(pair.Value, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare compares two scalar Values of the same kind (Number or String)
// lexicographically/numerically. The caller must ensure both are the same
// scalar kind: Compare panics if a is neither a Number nor a String, and
// does not check b's kind.
func Compare(a, b Value) int {
	switch a.kind {
	case KindNumber:
		switch {
		case a.n < b.n:
			return -1
		case a.n > b.n:
			return 1
		default:
			return 0
		}
	case KindString:
		switch {
		case a.s < b.s:
			return -1
		case a.s > b.s:
			return 1
		default:
			return 0
		}
	default:
		panic("value: Compare called on non-scalar kind")
	}
}

// SortableKind reports whether a Value's kind is a valid $sort key type
// (number or string; not bool, array, object, or null).
func (v Value) SortableKind() bool {
	return v.kind == KindNumber || v.kind == KindString
}

// String renders a debug/display form. pkg/interpolate and the `str`
// builtin use it only for Numbers; their own stringification rules cover
// the other kinds.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.n, v.isInt)
	case KindString:
		return v.s
	case KindArray:
		return fmt.Sprintf("%v", v.arr)
	case KindObject:
		return fmt.Sprintf("%v", v.obj)
	default:
		return ""
	}
}

func formatNumber(n float64, isInt bool) string {
	if isInt && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// FromGo converts a plain Go value (as produced by encoding/json.Unmarshal
// into interface{}, or constructed programmatically by a caller of Render)
// into a Value. Supported Go shapes: nil, bool, float64, int, int64,
// string, []interface{}, map[string]interface{}.
func FromGo(x interface{}) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null, nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case string:
		return String(t), nil
	case []interface{}:
		out := make([]Value, len(t))
		for i, e := range t {
			v, err := FromGo(e)
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return Array(out), nil
	case []Value:
		return Array(t), nil
	case map[string]interface{}:
		obj := NewObject()
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v, err := FromGo(t[k])
			if err != nil {
				return Value{}, err
			}
			obj.Set(k, v)
		}
		return FromObject(obj), nil
	default:
		// A caller building a context programmatically (rather than via
		// encoding/json.Unmarshal) may reasonably hand in int32, uint,
		// float32, etc.; coerce any such numeric type rather than reject it.
		if n, err := cast.ToFloat64E(x); err == nil {
			return Number(n), nil
		}
		return Value{}, fmt.Errorf("value: unsupported Go type %T", x)
	}
}

// ToGo converts a Value back into a plain Go value (nil, bool, float64 or
// int64, string, []interface{}, map[string]interface{}) suitable for
// encoding/json or for returning from the public Render entry point.
func ToGo(v Value) interface{} {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		if v.isInt {
			return int64(v.n)
		}
		return v.n
	case KindString:
		return v.s
	case KindArray:
		out := make([]interface{}, len(v.arr))
		for i, e := range v.arr {
			out[i] = ToGo(e)
		}
		return out
	case KindObject:
		out := make(map[string]interface{})
		if v.obj != nil {
			for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
				out[pair.Key] = ToGo(pair.Value)
			}
		}
		return out
	default:
		return nil
	}
}
