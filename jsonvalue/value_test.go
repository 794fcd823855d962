package jsonvalue_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsonunpack/jsonvalue"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		v    any
		want jsonvalue.Kind
	}{
		{nil, jsonvalue.Null},
		{true, jsonvalue.Bool},
		{json.Number("1"), jsonvalue.Number},
		{1.5, jsonvalue.Number},
		{uint8(3), jsonvalue.Number},
		{"s", jsonvalue.String},
		{[]any{}, jsonvalue.Array},
		{jsonvalue.NewObject(0), jsonvalue.ObjectKind},
		{map[string]any{}, jsonvalue.ObjectKind},
		{[]string{"a"}, jsonvalue.Invalid},
		{struct{}{}, jsonvalue.Invalid},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, jsonvalue.KindOf(tc.v), "%#v", tc.v)
	}
	assert.Equal(t, "boolean", jsonvalue.Bool.String())
	assert.Equal(t, "object", jsonvalue.ObjectKind.String())
}

func TestObject_SetGetOrder(t *testing.T) {
	o := jsonvalue.NewObject(0)
	assert.False(t, o.Set("b", 1))
	assert.False(t, o.Set("a", 2))
	assert.True(t, o.Set("b", 3))

	assert.Equal(t, []string{"b", "a"}, o.Keys())
	v, ok := o.Get("b")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	_, ok = o.Get("missing")
	assert.False(t, ok)

	var keys []string
	for k := range o.All() {
		keys = append(keys, k)
		break
	}
	assert.Equal(t, []string{"b"}, keys)
}

func TestObject_NilIsEmpty(t *testing.T) {
	var o *jsonvalue.Object
	assert.Equal(t, 0, o.Len())
	assert.Nil(t, o.Keys())
	_, ok := o.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, o.Clone().Len())
}

func TestObject_CloneIsShallow(t *testing.T) {
	child := []any{json.Number("1")}
	o := jsonvalue.NewObject(1)
	o.Set("k", child)

	c := o.Clone()
	c.Set("extra", true)
	assert.Equal(t, 1, o.Len())
	assert.Equal(t, 2, c.Len())

	got, _ := c.Get("k")
	assert.Equal(t, child, got)
}

func TestObjectFromMap_SortsKeys(t *testing.T) {
	o := jsonvalue.ObjectFromMap(map[string]any{"c": 1, "a": 2, "b": 3})
	assert.Equal(t, []string{"a", "b", "c"}, o.Keys())
	assert.Equal(t, map[string]any{"c": 1, "a": 2, "b": 3}, o.Map())
}

func TestEqual(t *testing.T) {
	a, err := jsonvalue.Decode([]byte(`{"a":[1,2.5,"x"],"b":{"c":null}}`))
	require.NoError(t, err)
	b, err := jsonvalue.Decode([]byte(`{"b":{"c":null},"a":[1,2.5,"x"]}`))
	require.NoError(t, err)
	assert.True(t, jsonvalue.Equal(a, b))

	assert.True(t, jsonvalue.Equal(json.Number("3"), float64(3)))
	assert.True(t, jsonvalue.Equal(json.Number("-0"), json.Number("0")))
	assert.True(t, jsonvalue.Equal(json.Number("1.50"), 1.5))
	assert.False(t, jsonvalue.Equal(json.Number("12345678901234567890"), json.Number("12345678901234567891")))
	assert.False(t, jsonvalue.Equal(true, json.Number("1")))
	assert.True(t, jsonvalue.Equal(map[string]any{"x": "y"}, jsonvalue.ObjectFromMap(map[string]any{"x": "y"})))
	assert.False(t, jsonvalue.Equal([]any{1}, []any{1, 2}))
}

func TestIsIntegerLiteral(t *testing.T) {
	for _, s := range []string{"0", "-0", "42", "-9223372036854775808"} {
		assert.True(t, jsonvalue.IsIntegerLiteral(s), s)
	}
	for _, s := range []string{"", "-", "4.0", "1e2", "+1", "0x10"} {
		assert.False(t, jsonvalue.IsIntegerLiteral(s), s)
	}
}

func TestIsNumberLiteral(t *testing.T) {
	for _, s := range []string{"0", "-0", "42", "4.0", "-1.5e3", "1E+2", "2e-7", "0.001"} {
		assert.True(t, jsonvalue.IsNumberLiteral(s), s)
	}
	for _, s := range []string{"", "-", "01", "-01", "1.", ".5", "1e", "1e+", "+1", "NaN", "Inf", "-Infinity", "0x10", "1_000", " 1"} {
		assert.False(t, jsonvalue.IsNumberLiteral(s), s)
	}
}
