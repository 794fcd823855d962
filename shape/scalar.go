package shape

import (
	"reflect"
	"strconv"

	jsonunpack "github.com/reoring/jsonunpack"
	"github.com/reoring/jsonunpack/jsonvalue"
)

// Signed is the set of signed integer destinations, named types included.
type Signed interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// Unsigned is the set of unsigned integer destinations, named types included.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

func Uint8() jsonunpack.Shape[uint8]   { return UintOf[uint8]() }
func Uint16() jsonunpack.Shape[uint16] { return UintOf[uint16]() }
func Uint32() jsonunpack.Shape[uint32] { return UintOf[uint32]() }
func Uint64() jsonunpack.Shape[uint64] { return UintOf[uint64]() }
func Int8() jsonunpack.Shape[int8]     { return IntOf[int8]() }
func Int16() jsonunpack.Shape[int16]   { return IntOf[int16]() }
func Int32() jsonunpack.Shape[int32]   { return IntOf[int32]() }
func Int64() jsonunpack.Shape[int64]   { return IntOf[int64]() }

// Int targets Go's platform int.
func Int() jsonunpack.Shape[int] { return IntOf[int]() }

// IntOf returns the exact integer shape for a signed type T. The width comes
// from T's underlying type.
func IntOf[T Signed]() jsonunpack.Shape[T] {
	var kind jsonunpack.Kind
	var bits int
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Int8:
		kind, bits = jsonunpack.KindInt8, 8
	case reflect.Int16:
		kind, bits = jsonunpack.KindInt16, 16
	case reflect.Int32:
		kind, bits = jsonunpack.KindInt32, 32
	case reflect.Int64:
		kind, bits = jsonunpack.KindInt64, 64
	default:
		kind, bits = jsonunpack.KindInt, strconv.IntSize
	}
	return signedShape[T]{kind: kind, bits: bits}
}

// UintOf is the unsigned counterpart of IntOf.
func UintOf[T Unsigned]() jsonunpack.Shape[T] {
	var kind jsonunpack.Kind
	var bits int
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Uint8:
		kind, bits = jsonunpack.KindUint8, 8
	case reflect.Uint16:
		kind, bits = jsonunpack.KindUint16, 16
	case reflect.Uint32:
		kind, bits = jsonunpack.KindUint32, 32
	default:
		kind, bits = jsonunpack.KindUint64, 64
	}
	return unsignedShape[T]{kind: kind, bits: bits}
}

type signedShape[T Signed] struct {
	kind jsonunpack.Kind
	bits int
}

func (s signedShape[T]) Desc() jsonunpack.Desc { return jsonunpack.ScalarDesc(s.kind) }

func (s signedShape[T]) Coerce(v any, at jsonunpack.Path) (T, error) {
	i, vd := toInt64(v, s.bits)
	if vd != fits {
		return 0, fail(vd, at, s.Desc(), v)
	}
	return T(i), nil
}

type unsignedShape[T Unsigned] struct {
	kind jsonunpack.Kind
	bits int
}

func (s unsignedShape[T]) Desc() jsonunpack.Desc { return jsonunpack.ScalarDesc(s.kind) }

func (s unsignedShape[T]) Coerce(v any, at jsonunpack.Path) (T, error) {
	u, vd := toUint64(v, s.bits)
	if vd != fits {
		return 0, fail(vd, at, s.Desc(), v)
	}
	return T(u), nil
}

// Bool accepts JSON booleans only. Numbers are never booleans.
func Bool() jsonunpack.Shape[bool] { return BoolOf[bool]() }

// BoolOf projects Bool onto a named boolean type.
func BoolOf[T ~bool]() jsonunpack.Shape[T] { return boolShape[T]{} }

type boolShape[T ~bool] struct{}

func (boolShape[T]) Desc() jsonunpack.Desc { return jsonunpack.ScalarDesc(jsonunpack.KindBool) }

func (s boolShape[T]) Coerce(v any, at jsonunpack.Path) (T, error) {
	b, ok := v.(bool)
	if !ok {
		return false, jsonunpack.TypeMismatch(at, s.Desc(), v)
	}
	return T(b), nil
}

// Float64 accepts any JSON number.
func Float64() jsonunpack.Shape[float64] { return floatShape{} }

type floatShape struct{}

func (floatShape) Desc() jsonunpack.Desc { return jsonunpack.ScalarDesc(jsonunpack.KindFloat64) }

func (s floatShape) Coerce(v any, at jsonunpack.Path) (float64, error) {
	f, vd := toFloat64(v)
	if vd != fits {
		return 0, fail(vd, at, s.Desc(), v)
	}
	return f, nil
}

// String accepts JSON strings verbatim.
func String() jsonunpack.Shape[string] { return StringOf[string]() }

// StringOf projects String onto a named string type.
func StringOf[T ~string]() jsonunpack.Shape[T] { return stringShape[T]{} }

type stringShape[T ~string] struct{}

func (stringShape[T]) Desc() jsonunpack.Desc { return jsonunpack.ScalarDesc(jsonunpack.KindString) }

func (s stringShape[T]) Coerce(v any, at jsonunpack.Path) (T, error) {
	str, ok := v.(string)
	if !ok {
		return "", jsonunpack.TypeMismatch(at, s.Desc(), v)
	}
	return T(str), nil
}

// RawObject accepts any JSON object and returns its members unchanged, in
// order. The result is a shallow copy; map inputs are ordered by key.
func RawObject() jsonunpack.Shape[*jsonvalue.Object] { return rawObjectShape{} }

type rawObjectShape struct{}

func (rawObjectShape) Desc() jsonunpack.Desc { return jsonunpack.ScalarDesc(jsonunpack.KindRawObject) }

func (s rawObjectShape) Coerce(v any, at jsonunpack.Path) (*jsonvalue.Object, error) {
	switch t := v.(type) {
	case *jsonvalue.Object:
		return t.Clone(), nil
	case map[string]any:
		return jsonvalue.ObjectFromMap(t), nil
	}
	return nil, jsonunpack.TypeMismatch(at, s.Desc(), v)
}

// RawValue accepts every value and returns it as is.
func RawValue() jsonunpack.Shape[any] { return rawValueShape{} }

type rawValueShape struct{}

func (rawValueShape) Desc() jsonunpack.Desc { return jsonunpack.ScalarDesc(jsonunpack.KindRawValue) }

func (rawValueShape) Coerce(v any, _ jsonunpack.Path) (any, error) { return v, nil }

// Null matches JSON null only. It is meant as a oneof candidate.
func Null() jsonunpack.Shape[jsonunpack.Null] { return nullShape{} }

type nullShape struct{}

func (nullShape) Desc() jsonunpack.Desc { return jsonunpack.ScalarDesc(jsonunpack.KindNull) }

func (s nullShape) Coerce(v any, at jsonunpack.Path) (jsonunpack.Null, error) {
	if v != nil {
		return jsonunpack.Null{}, jsonunpack.TypeMismatch(at, s.Desc(), v)
	}
	return jsonunpack.Null{}, nil
}
