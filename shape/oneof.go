package shape

import (
	"fmt"

	jsonunpack "github.com/reoring/jsonunpack"
	"github.com/reoring/jsonunpack/i18n"
)

// Alt erases a typed shape so it can be listed as a oneof candidate. The
// erased shape produces the same values boxed in any.
func Alt[T any](s jsonunpack.Shape[T]) jsonunpack.Shape[any] {
	if s == nil {
		return nil
	}
	if a, ok := any(s).(jsonunpack.Shape[any]); ok {
		return a
	}
	return erased[T]{s: s}
}

type erased[T any] struct {
	s jsonunpack.Shape[T]
}

func (e erased[T]) Desc() jsonunpack.Desc { return e.s.Desc() }

func (e erased[T]) Coerce(v any, at jsonunpack.Path) (any, error) {
	out, err := e.s.Coerce(v, at)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// NewOneOf builds an alternative over the candidates in declaration order.
// At least two candidates are required and no two may share a descriptor.
func NewOneOf(candidates ...jsonunpack.Shape[any]) (jsonunpack.Shape[jsonunpack.Variant], error) {
	descs := make([]jsonunpack.Desc, len(candidates))
	for i, c := range candidates {
		if c == nil {
			return nil, fmt.Errorf("shape: oneof candidate %d is nil", i)
		}
		descs[i] = c.Desc()
	}
	d := jsonunpack.OneOfDesc(descs...)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return oneOfShape{cands: append([]jsonunpack.Shape[any](nil), candidates...), desc: d}, nil
}

// OneOf is like NewOneOf but panics on an invalid declaration.
func OneOf(candidates ...jsonunpack.Shape[any]) jsonunpack.Shape[jsonunpack.Variant] {
	s, err := NewOneOf(candidates...)
	if err != nil {
		panic(err)
	}
	return s
}

type oneOfShape struct {
	cands []jsonunpack.Shape[any]
	desc  jsonunpack.Desc
}

func (s oneOfShape) Desc() jsonunpack.Desc { return s.desc }

// Coerce tries the candidates in order and commits to the first success.
func (s oneOfShape) Coerce(v any, at jsonunpack.Path) (jsonunpack.Variant, error) {
	failures := make([]*jsonunpack.Error, 0, len(s.cands))
	for i, c := range s.cands {
		out, err := c.Coerce(v, at)
		if err == nil {
			return jsonunpack.Variant{Index: i, Desc: c.Desc(), Value: out}, nil
		}
		failures = append(failures, candidateError(err, at, c.Desc()))
	}
	e := jsonunpack.TypeMismatch(at, s.desc, v)
	e.Candidates = failures
	return jsonunpack.Variant{}, e
}

// candidateError normalizes failures of foreign Shape implementations.
func candidateError(err error, at jsonunpack.Path, d jsonunpack.Desc) *jsonunpack.Error {
	if e, ok := jsonunpack.AsError(err); ok {
		return e
	}
	return &jsonunpack.Error{
		Path:     at.Pointer(),
		Code:     jsonunpack.CodeTypeMismatch,
		Expected: d.String(),
		Message:  i18n.T(jsonunpack.CodeTypeMismatch, map[string]string{"expected": d.String(), "actual": err.Error()}),
		Cause:    err,
	}
}
