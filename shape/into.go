package shape

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	jsonunpack "github.com/reoring/jsonunpack"
	"github.com/reoring/jsonunpack/jsonvalue"
)

// ErrUnsupportedType is wrapped by For when no shape can be derived from a Go
// type.
var ErrUnsupportedType = errors.New("shape: unsupported destination type")

// derived shapes per reflect.Type
var cache sync.Map

var (
	typeObject  = reflect.TypeFor[*jsonvalue.Object]()
	typeMap     = reflect.TypeFor[map[string]any]()
	typeNull    = reflect.TypeFor[jsonunpack.Null]()
	typeVariant = reflect.TypeFor[jsonunpack.Variant]()
)

var scalarKinds = map[reflect.Kind]jsonunpack.Kind{
	reflect.Uint8:   jsonunpack.KindUint8,
	reflect.Uint16:  jsonunpack.KindUint16,
	reflect.Uint32:  jsonunpack.KindUint32,
	reflect.Uint64:  jsonunpack.KindUint64,
	reflect.Int8:    jsonunpack.KindInt8,
	reflect.Int16:   jsonunpack.KindInt16,
	reflect.Int32:   jsonunpack.KindInt32,
	reflect.Int64:   jsonunpack.KindInt64,
	reflect.Int:     jsonunpack.KindInt,
	reflect.Bool:    jsonunpack.KindBool,
	reflect.Float64: jsonunpack.KindFloat64,
	reflect.String:  jsonunpack.KindString,
}

// For derives the shape of T from its static type:
//
//	uint8..uint64, int8..int64, int, bool, float64, string  scalar (named types too)
//	*jsonvalue.Object, map[string]any                       raw object
//	any                                                     raw value
//	jsonunpack.Null                                         null
//	[]E                                                     sequence of E
//	*E                                                      optional E
//
// Alternatives have no Go type of their own and must be built with OneOf.
// Derivations are cached per type.
func For[T any]() (jsonunpack.Shape[T], error) {
	s, err := derive(reflect.TypeFor[T](), nil)
	if err != nil {
		return nil, err
	}
	return typed[T]{s: s}, nil
}

// MustFor is like For but panics when T is unsupported.
func MustFor[T any]() jsonunpack.Shape[T] {
	s, err := For[T]()
	if err != nil {
		panic(err)
	}
	return s
}

// Into unpacks value into *dst using the shape derived from T.
func Into[T any](value any, label string, dst *T) error {
	if dst == nil {
		return jsonunpack.ErrNilDestination
	}
	s, err := For[T]()
	if err != nil {
		return err
	}
	return jsonunpack.Unpack(value, label, dst, s)
}

type typed[T any] struct {
	s jsonunpack.Shape[any]
}

func (t typed[T]) Desc() jsonunpack.Desc { return t.s.Desc() }

func (t typed[T]) Coerce(v any, at jsonunpack.Path) (T, error) {
	x, err := t.s.Coerce(v, at)
	if err != nil {
		var zero T
		return zero, err
	}
	out, _ := x.(T)
	return out, nil
}

// derive returns an erased shape whose results have exactly type t. visiting
// guards against self-referential types.
func derive(t reflect.Type, visiting map[reflect.Type]bool) (jsonunpack.Shape[any], error) {
	if s, ok := cache.Load(t); ok {
		return s.(jsonunpack.Shape[any]), nil
	}
	if visiting[t] {
		return nil, fmt.Errorf("%w: %s is recursive", ErrUnsupportedType, t)
	}
	if visiting == nil {
		visiting = map[reflect.Type]bool{}
	}
	visiting[t] = true
	defer delete(visiting, t)

	s, err := build(t, visiting)
	if err != nil {
		return nil, err
	}
	actual, _ := cache.LoadOrStore(t, s)
	return actual.(jsonunpack.Shape[any]), nil
}

func build(t reflect.Type, visiting map[reflect.Type]bool) (jsonunpack.Shape[any], error) {
	switch t {
	case typeObject:
		return Alt(RawObject()), nil
	case typeMap:
		return rawMapShape{}, nil
	case typeNull:
		return Alt(Null()), nil
	case typeVariant:
		return nil, fmt.Errorf("%w: %s needs an explicit OneOf shape", ErrUnsupportedType, t)
	}
	if k, ok := scalarKinds[t.Kind()]; ok {
		base, err := compile(jsonunpack.ScalarDesc(k))
		if err != nil {
			return nil, err
		}
		if t.PkgPath() == "" {
			return base, nil
		}
		return converted{inner: base, t: t}, nil
	}
	switch t.Kind() {
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return RawValue(), nil
		}
	case reflect.Slice:
		elem, err := derive(t.Elem(), visiting)
		if err != nil {
			return nil, err
		}
		return reflectSequence{elem: elem, t: t}, nil
	case reflect.Pointer:
		elem, err := derive(t.Elem(), visiting)
		if err != nil {
			return nil, err
		}
		return reflectOptional{elem: elem, t: t}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

// valueOf is reflect.ValueOf with a typed zero for nil.
func valueOf(x any, t reflect.Type) reflect.Value {
	if x == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(x)
}

// converted projects a builtin scalar onto a named type.
type converted struct {
	inner jsonunpack.Shape[any]
	t     reflect.Type
}

func (c converted) Desc() jsonunpack.Desc { return c.inner.Desc() }

func (c converted) Coerce(v any, at jsonunpack.Path) (any, error) {
	x, err := c.inner.Coerce(v, at)
	if err != nil {
		return nil, err
	}
	return reflect.ValueOf(x).Convert(c.t).Interface(), nil
}

type reflectSequence struct {
	elem jsonunpack.Shape[any]
	t    reflect.Type
}

func (s reflectSequence) Desc() jsonunpack.Desc { return jsonunpack.SequenceDesc(s.elem.Desc()) }

func (s reflectSequence) Coerce(v any, at jsonunpack.Path) (any, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, jsonunpack.TypeMismatch(at, s.Desc(), v)
	}
	out := reflect.MakeSlice(s.t, 0, len(arr))
	for i, x := range arr {
		e, err := s.elem.Coerce(x, at.Index(i))
		if err != nil {
			return nil, err
		}
		out = reflect.Append(out, valueOf(e, s.t.Elem()))
	}
	return out.Interface(), nil
}

type reflectOptional struct {
	elem jsonunpack.Shape[any]
	t    reflect.Type
}

func (s reflectOptional) Desc() jsonunpack.Desc { return jsonunpack.OptionalDesc(s.elem.Desc()) }

func (s reflectOptional) Coerce(v any, at jsonunpack.Path) (any, error) {
	if v == nil {
		return reflect.Zero(s.t).Interface(), nil
	}
	e, err := s.elem.Coerce(v, at)
	if err != nil {
		return nil, err
	}
	p := reflect.New(s.t.Elem())
	p.Elem().Set(valueOf(e, s.t.Elem()))
	return p.Interface(), nil
}

// rawMapShape is the raw object shape for map[string]any destinations.
type rawMapShape struct{}

func (rawMapShape) Desc() jsonunpack.Desc { return jsonunpack.ScalarDesc(jsonunpack.KindRawObject) }

func (s rawMapShape) Coerce(v any, at jsonunpack.Path) (any, error) {
	switch t := v.(type) {
	case *jsonvalue.Object:
		return t.Map(), nil
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, x := range t {
			m[k] = x
		}
		return m, nil
	}
	return nil, jsonunpack.TypeMismatch(at, s.Desc(), v)
}
