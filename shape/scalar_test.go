package shape_test

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"testing"

	jsonunpack "github.com/reoring/jsonunpack"
	"github.com/reoring/jsonunpack/jsonvalue"
	"github.com/reoring/jsonunpack/shape"
)

func TestIntegerShapes_ExactBounds(t *testing.T) {
	kinds := []struct {
		kind   jsonunpack.Kind
		bits   int
		signed bool
	}{
		{jsonunpack.KindUint8, 8, false},
		{jsonunpack.KindUint16, 16, false},
		{jsonunpack.KindUint32, 32, false},
		{jsonunpack.KindUint64, 64, false},
		{jsonunpack.KindInt8, 8, true},
		{jsonunpack.KindInt16, 16, true},
		{jsonunpack.KindInt32, 32, true},
		{jsonunpack.KindInt64, 64, true},
		{jsonunpack.KindInt, strconv.IntSize, true},
	}
	one := big.NewInt(1)
	for _, k := range kinds {
		t.Run(k.kind.String(), func(t *testing.T) {
			lo, hi := new(big.Int), new(big.Int)
			if k.signed {
				lo.Neg(new(big.Int).Lsh(one, uint(k.bits-1)))
				hi.Sub(new(big.Int).Lsh(one, uint(k.bits-1)), one)
			} else {
				hi.Sub(new(big.Int).Lsh(one, uint(k.bits)), one)
			}
			below := new(big.Int).Sub(lo, one)
			above := new(big.Int).Add(hi, one)

			s := shape.MustCompile(jsonunpack.ScalarDesc(k.kind))
			for _, in := range []*big.Int{lo, hi, big.NewInt(0)} {
				out, err := s.Coerce(json.Number(in.String()), jsonunpack.Root())
				if err != nil {
					t.Fatalf("%s into %s: %v", in, k.kind, err)
				}
				if got := fmt.Sprint(out); got != in.String() {
					t.Fatalf("%s into %s: got %s", in, k.kind, got)
				}
				if got := reflect.TypeOf(out).Kind().String(); got != k.kind.String() {
					t.Fatalf("result type %s, want %s", got, k.kind)
				}
			}
			for _, in := range []*big.Int{below, above} {
				_, err := s.Coerce(json.Number(in.String()), jsonunpack.Root())
				wantCode(t, err, jsonunpack.CodeOutOfRange)
			}
		})
	}
}

func TestIntegerShapes_OutOfRangeError(t *testing.T) {
	_, err := jsonunpack.Coerce(decode(t, `300`), "Brightness", shape.Uint8())
	e := wantCode(t, err, jsonunpack.CodeOutOfRange)
	if e.Label != "Brightness" || e.Path != "/" || e.Expected != "uint8" || e.Actual != "number" {
		t.Fatalf("unexpected error fields: %+v", e)
	}
	if e.Message != "300 is out of range for uint8" {
		t.Fatalf("unexpected message %q", e.Message)
	}
	if e.Error() != `jsonunpack: "Brightness" out_of_range at /: 300 is out of range for uint8` {
		t.Fatalf("unexpected Error() %q", e.Error())
	}
}

func TestIntegerShapes_LiteralForm(t *testing.T) {
	for _, in := range []string{"4.0", "1e2", "1E2", "-0.0", "0.5", "01", "-007"} {
		_, err := shape.Int64().Coerce(json.Number(in), jsonunpack.Root())
		wantCode(t, err, jsonunpack.CodeTypeMismatch)
		_, err = shape.Uint8().Coerce(json.Number(in), jsonunpack.Root())
		wantCode(t, err, jsonunpack.CodeTypeMismatch)
	}

	// negative zero is zero
	if v, err := shape.Uint8().Coerce(json.Number("-0"), jsonunpack.Root()); err != nil || v != 0 {
		t.Fatalf("-0 into uint8: v=%v err=%v", v, err)
	}
	if v, err := shape.Int8().Coerce(json.Number("-0"), jsonunpack.Root()); err != nil || v != 0 {
		t.Fatalf("-0 into int8: v=%v err=%v", v, err)
	}
	_, err := shape.Uint64().Coerce(json.Number("-1"), jsonunpack.Root())
	wantCode(t, err, jsonunpack.CodeOutOfRange)
}

func TestIntegerShapes_GoNumbers(t *testing.T) {
	if v, err := shape.Int64().Coerce(float64(4), jsonunpack.Root()); err != nil || v != 4 {
		t.Fatalf("float64(4) into int64: v=%v err=%v", v, err)
	}
	_, err := shape.Int64().Coerce(4.5, jsonunpack.Root())
	wantCode(t, err, jsonunpack.CodeTypeMismatch)
	_, err = shape.Uint8().Coerce(float64(300), jsonunpack.Root())
	wantCode(t, err, jsonunpack.CodeOutOfRange)
	_, err = shape.Int64().Coerce(math.Ldexp(1, 63), jsonunpack.Root())
	wantCode(t, err, jsonunpack.CodeOutOfRange)
	_, err = shape.Int64().Coerce(math.Inf(1), jsonunpack.Root())
	wantCode(t, err, jsonunpack.CodeTypeMismatch)

	_, err = shape.Uint32().Coerce(-1, jsonunpack.Root())
	wantCode(t, err, jsonunpack.CodeOutOfRange)
	_, err = shape.Int64().Coerce(uint64(math.MaxUint64), jsonunpack.Root())
	wantCode(t, err, jsonunpack.CodeOutOfRange)
	_, err = shape.Int8().Coerce(uint8(200), jsonunpack.Root())
	wantCode(t, err, jsonunpack.CodeOutOfRange)
	if v, err := shape.Int8().Coerce(int64(-128), jsonunpack.Root()); err != nil || v != -128 {
		t.Fatalf("int64(-128) into int8: v=%v err=%v", v, err)
	}
	if v, err := shape.Uint64().Coerce(uint64(math.MaxUint64), jsonunpack.Root()); err != nil || v != math.MaxUint64 {
		t.Fatalf("max uint64: v=%v err=%v", v, err)
	}
}

func TestNoBoolNumberConflation(t *testing.T) {
	numeric := []jsonunpack.Kind{
		jsonunpack.KindUint8, jsonunpack.KindUint16, jsonunpack.KindUint32, jsonunpack.KindUint64,
		jsonunpack.KindInt8, jsonunpack.KindInt16, jsonunpack.KindInt32, jsonunpack.KindInt64,
		jsonunpack.KindInt, jsonunpack.KindFloat64,
	}
	for _, k := range numeric {
		s := shape.MustCompile(jsonunpack.ScalarDesc(k))
		for _, b := range []bool{true, false} {
			_, err := s.Coerce(b, jsonunpack.Root())
			e := wantCode(t, err, jsonunpack.CodeTypeMismatch)
			if e.Actual != "boolean" {
				t.Fatalf("%s: actual %q", k, e.Actual)
			}
		}
	}
	for _, n := range []string{"0", "1"} {
		_, err := shape.Bool().Coerce(json.Number(n), jsonunpack.Root())
		wantCode(t, err, jsonunpack.CodeTypeMismatch)
	}
	_, err := shape.Bool().Coerce(1, jsonunpack.Root())
	wantCode(t, err, jsonunpack.CodeTypeMismatch)
	if v, err := shape.Bool().Coerce(true, jsonunpack.Root()); err != nil || !v {
		t.Fatalf("true into bool: v=%v err=%v", v, err)
	}
}

func TestNullIntoScalar(t *testing.T) {
	for _, src := range []string{"uint8", "int64", "bool", "float64", "string", "object", "[]int"} {
		s, err := shape.Parse(src)
		if err != nil {
			t.Fatalf("parse %s: %v", src, err)
		}
		_, err = s.Coerce(nil, jsonunpack.Root())
		e := wantCode(t, err, jsonunpack.CodeTypeMismatch)
		if e.Actual != "null" {
			t.Fatalf("%s: actual %q", src, e.Actual)
		}
	}
}

func TestFloat64(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{json.Number("42.42"), 42.42},
		{json.Number("3"), 3},
		{json.Number("-1.5e3"), -1500},
		{json.Number("1e-400"), 0},
		{json.Number("18446744073709551615"), 18446744073709551615},
		{7, 7},
		{uint64(9), 9},
		{float32(0.5), 0.5},
	}
	for _, tc := range cases {
		got, err := shape.Float64().Coerce(tc.in, jsonunpack.Root())
		if err != nil || got != tc.want {
			t.Fatalf("%v into float64: got %v err %v", tc.in, got, err)
		}
	}
	for _, in := range []string{"1e400", "-1e400"} {
		_, err := shape.Float64().Coerce(json.Number(in), jsonunpack.Root())
		wantCode(t, err, jsonunpack.CodeOutOfRange)
	}
	_, err := shape.Float64().Coerce("1.5", jsonunpack.Root())
	wantCode(t, err, jsonunpack.CodeTypeMismatch)
}

func TestFloat64_RejectsNonJSONNumberText(t *testing.T) {
	for _, in := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "Infinity", "-Infinity", "0x1p-2", "+1", ".5", "1.", "01", "1_000"} {
		got, err := shape.Float64().Coerce(json.Number(in), jsonunpack.Root())
		if err == nil {
			t.Fatalf("%q into float64: got %v, want type_mismatch", in, got)
		}
		wantCode(t, err, jsonunpack.CodeTypeMismatch)
	}
}

func TestString(t *testing.T) {
	in := "hello \"world\"\né"
	got, err := shape.String().Coerce(in, jsonunpack.Root())
	if err != nil || got != in {
		t.Fatalf("string verbatim: got %q err %v", got, err)
	}
	_, err = shape.String().Coerce(json.Number("1"), jsonunpack.Root())
	wantCode(t, err, jsonunpack.CodeTypeMismatch)
}

func TestRawObject(t *testing.T) {
	in := decode(t, `{"key2":"value","key1":1}`).(*jsonvalue.Object)
	got, err := shape.RawObject().Coerce(in, jsonunpack.Root())
	if err != nil {
		t.Fatalf("raw object: %v", err)
	}
	if got == in {
		t.Fatalf("expected a copy of the input object")
	}
	if render(t, got) != `{"key2":"value","key1":1}` {
		t.Fatalf("unexpected object %s", render(t, got))
	}
	got.Set("extra", true)
	if in.Len() != 2 {
		t.Fatalf("input mutated through result")
	}

	fromMap, err := shape.RawObject().Coerce(map[string]any{"b": 1, "a": "x"}, jsonunpack.Root())
	if err != nil {
		t.Fatalf("raw object from map: %v", err)
	}
	if keys := fromMap.Keys(); len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("unexpected keys %v", keys)
	}

	for _, v := range []any{decode(t, `[1]`), "s", json.Number("1"), nil} {
		_, err := shape.RawObject().Coerce(v, jsonunpack.Root())
		wantCode(t, err, jsonunpack.CodeTypeMismatch)
	}
}

func TestRawValue_Identity(t *testing.T) {
	docs := []string{`null`, `true`, `42`, `"s"`, `[1,{"a":[]}]`, `{"key":42}`}
	for _, doc := range docs {
		in := decode(t, doc)
		out, err := shape.RawValue().Coerce(in, jsonunpack.Root())
		if err != nil {
			t.Fatalf("raw value %s: %v", doc, err)
		}
		if !reflect.DeepEqual(in, out) || !jsonvalue.Equal(in, out) {
			t.Fatalf("raw value %s changed: %#v", doc, out)
		}
		if render(t, out) != doc {
			t.Fatalf("raw value %s rendered as %s", doc, render(t, out))
		}
	}
	obj := decode(t, `{"a":1}`)
	out, _ := shape.RawValue().Coerce(obj, jsonunpack.Root())
	if out.(*jsonvalue.Object) != obj.(*jsonvalue.Object) {
		t.Fatalf("raw value must pass the input through")
	}
}

func TestNullShape(t *testing.T) {
	if _, err := shape.Null().Coerce(nil, jsonunpack.Root()); err != nil {
		t.Fatalf("null: %v", err)
	}
	for _, v := range []any{json.Number("0"), false, "", []any{}} {
		_, err := shape.Null().Coerce(v, jsonunpack.Root())
		wantCode(t, err, jsonunpack.CodeTypeMismatch)
	}
}

type Port uint16

type Level int8

type Name string

type Flag bool

func TestNamedScalarTypes(t *testing.T) {
	p, err := shape.UintOf[Port]().Coerce(json.Number("8080"), jsonunpack.Root())
	if err != nil || p != Port(8080) {
		t.Fatalf("port: %v %v", p, err)
	}
	_, err = shape.UintOf[Port]().Coerce(json.Number("65536"), jsonunpack.Root())
	wantCode(t, err, jsonunpack.CodeOutOfRange)
	if d := shape.UintOf[Port]().Desc(); d.Kind != jsonunpack.KindUint16 {
		t.Fatalf("port desc %s", d)
	}

	_, err = shape.IntOf[Level]().Coerce(json.Number("-129"), jsonunpack.Root())
	wantCode(t, err, jsonunpack.CodeOutOfRange)

	n, err := shape.StringOf[Name]().Coerce("x", jsonunpack.Root())
	if err != nil || n != Name("x") {
		t.Fatalf("name: %v %v", n, err)
	}
	f, err := shape.BoolOf[Flag]().Coerce(true, jsonunpack.Root())
	if err != nil || !bool(f) {
		t.Fatalf("flag: %v %v", f, err)
	}
}
