package shape

import (
	jsonunpack "github.com/reoring/jsonunpack"
)

// Optional maps JSON null to nil and delegates everything else to inner. It
// never fails on its own. Null is absorbed before inner runs, so an optional
// oneof never reports its null candidate.
func Optional[E any](inner jsonunpack.Shape[E]) jsonunpack.Shape[*E] {
	if inner == nil {
		panic("shape: Optional with nil inner shape")
	}
	return optionalShape[E]{inner: inner}
}

type optionalShape[E any] struct {
	inner jsonunpack.Shape[E]
}

func (s optionalShape[E]) Desc() jsonunpack.Desc { return jsonunpack.OptionalDesc(s.inner.Desc()) }

func (s optionalShape[E]) Coerce(v any, at jsonunpack.Path) (*E, error) {
	if v == nil {
		return nil, nil
	}
	e, err := s.inner.Coerce(v, at)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
