package shape

import (
	jsonunpack "github.com/reoring/jsonunpack"
)

// Sequence coerces a JSON array element by element. Elements are processed in
// order and the first failing element fails the whole sequence. An empty
// array yields an empty, non-nil slice.
func Sequence[E any](elem jsonunpack.Shape[E]) jsonunpack.Shape[[]E] {
	if elem == nil {
		panic("shape: Sequence with nil element shape")
	}
	return sequenceShape[E]{elem: elem}
}

type sequenceShape[E any] struct {
	elem jsonunpack.Shape[E]
}

func (s sequenceShape[E]) Desc() jsonunpack.Desc { return jsonunpack.SequenceDesc(s.elem.Desc()) }

func (s sequenceShape[E]) Coerce(v any, at jsonunpack.Path) ([]E, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, jsonunpack.TypeMismatch(at, s.Desc(), v)
	}
	out := make([]E, 0, len(arr))
	for i, x := range arr {
		e, err := s.elem.Coerce(x, at.Index(i))
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
