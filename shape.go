package jsonunpack

import (
	"github.com/reoring/jsonunpack/jsonvalue"
)

// Shape coerces a JSON value into T.
//
// Coerce must not mutate v and must not retain it beyond the call except
// where T itself is a passthrough of v (raw values). Failures are returned as
// *Error positioned relative to at. Implementations are immutable and safe for
// concurrent use.
type Shape[T any] interface {
	Coerce(v any, at Path) (T, error)
	Desc() Desc
}

// Null is the value produced by the null member of an alternative.
type Null struct{}

func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Variant is the result of an alternative: the zero-based position of the
// candidate that matched, its shape, and the coerced value.
type Variant struct {
	Index int
	Desc  Desc
	Value any
}

// VariantAs returns the variant's value as T when the matched candidate
// produced a T.
func VariantAs[T any](v Variant) (T, bool) {
	t, ok := v.Value.(T)
	return t, ok
}

// Holds reports whether the variant matched the candidate described by d.
func (v Variant) Holds(d Desc) bool { return v.Desc.Equal(d) }

// MarshalJSON renders the matched value only.
func (v Variant) MarshalJSON() ([]byte, error) { return jsonvalue.Marshal(v.Value) }
