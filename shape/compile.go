package shape

import (
	"fmt"

	jsonunpack "github.com/reoring/jsonunpack"
)

// Compile interprets a descriptor as an erased shape. Results are boxed:
// integer kinds produce their Go type (uint8, int64, ...), sequences produce
// []any, optionals produce nil or the inner value, and alternatives produce
// jsonunpack.Variant.
func Compile(d jsonunpack.Desc) (jsonunpack.Shape[any], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return compile(d)
}

// MustCompile is like Compile but panics on an invalid descriptor.
func MustCompile(d jsonunpack.Desc) jsonunpack.Shape[any] {
	s, err := Compile(d)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse parses a textual shape and compiles it.
func Parse(src string) (jsonunpack.Shape[any], error) {
	d, err := jsonunpack.ParseDesc(src)
	if err != nil {
		return nil, err
	}
	return compile(d)
}

func compile(d jsonunpack.Desc) (jsonunpack.Shape[any], error) {
	switch d.Kind {
	case jsonunpack.KindUint8:
		return Alt(Uint8()), nil
	case jsonunpack.KindUint16:
		return Alt(Uint16()), nil
	case jsonunpack.KindUint32:
		return Alt(Uint32()), nil
	case jsonunpack.KindUint64:
		return Alt(Uint64()), nil
	case jsonunpack.KindInt8:
		return Alt(Int8()), nil
	case jsonunpack.KindInt16:
		return Alt(Int16()), nil
	case jsonunpack.KindInt32:
		return Alt(Int32()), nil
	case jsonunpack.KindInt64:
		return Alt(Int64()), nil
	case jsonunpack.KindInt:
		return Alt(Int()), nil
	case jsonunpack.KindBool:
		return Alt(Bool()), nil
	case jsonunpack.KindFloat64:
		return Alt(Float64()), nil
	case jsonunpack.KindString:
		return Alt(String()), nil
	case jsonunpack.KindRawObject:
		return Alt(RawObject()), nil
	case jsonunpack.KindRawValue:
		return RawValue(), nil
	case jsonunpack.KindNull:
		return Alt(Null()), nil
	case jsonunpack.KindSequence:
		elem, err := compile(*d.Elem)
		if err != nil {
			return nil, err
		}
		return Alt(Sequence(elem)), nil
	case jsonunpack.KindOptional:
		inner, err := compile(*d.Elem)
		if err != nil {
			return nil, err
		}
		return boxedOptional{inner: inner}, nil
	case jsonunpack.KindAlternative:
		alts := make([]jsonunpack.Shape[any], len(d.Alts))
		for i, a := range d.Alts {
			s, err := compile(a)
			if err != nil {
				return nil, err
			}
			alts[i] = s
		}
		s, err := NewOneOf(alts...)
		if err != nil {
			return nil, err
		}
		return Alt(s), nil
	}
	return nil, fmt.Errorf("shape: cannot compile %s", d.Kind)
}

// boxedOptional is Optional without the pointer: null yields nil.
type boxedOptional struct {
	inner jsonunpack.Shape[any]
}

func (s boxedOptional) Desc() jsonunpack.Desc { return jsonunpack.OptionalDesc(s.inner.Desc()) }

func (s boxedOptional) Coerce(v any, at jsonunpack.Path) (any, error) {
	if v == nil {
		return nil, nil
	}
	return s.inner.Coerce(v, at)
}
