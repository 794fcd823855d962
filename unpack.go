package jsonunpack

// Unpack coerces value into the shape s and, on success, stores the result in
// *dst. label identifies the value in failures and has no other effect.
//
// *dst is written only after the whole coercion (including every element and
// candidate) succeeded; on failure it keeps its previous content. The returned
// error is nil or an *Error, except for misuse (nil dst or s).
func Unpack[T any](value any, label string, dst *T, s Shape[T]) error {
	if dst == nil {
		return ErrNilDestination
	}
	if s == nil {
		return ErrNilShape
	}
	out, err := s.Coerce(value, Root())
	if err != nil {
		return withLabel(err, label)
	}
	*dst = out
	return nil
}

// Coerce is the value-returning form of Unpack.
func Coerce[T any](value any, label string, s Shape[T]) (T, error) {
	var out T
	err := Unpack(value, label, &out, s)
	return out, err
}
