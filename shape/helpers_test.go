package shape_test

import (
	"errors"
	"testing"

	jsonunpack "github.com/reoring/jsonunpack"
	"github.com/reoring/jsonunpack/jsonvalue"
)

func decode(t *testing.T, doc string) any {
	t.Helper()
	v, err := jsonvalue.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("decode %s: %v", doc, err)
	}
	return v
}

func render(t *testing.T, v any) string {
	t.Helper()
	b, err := jsonvalue.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %#v: %v", v, err)
	}
	return string(b)
}

func wantCode(t *testing.T, err error, code string) *jsonunpack.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got success", code)
	}
	e, ok := jsonunpack.AsError(err)
	if !ok {
		t.Fatalf("expected *jsonunpack.Error, got %T: %v", err, err)
	}
	if e.Code != code {
		t.Fatalf("expected %s, got %s (%v)", code, e.Code, err)
	}
	sentinel := jsonunpack.ErrTypeMismatch
	if code == jsonunpack.CodeOutOfRange {
		sentinel = jsonunpack.ErrOutOfRange
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("errors.Is(%v, %v) = false", err, sentinel)
	}
	return e
}
