package jsonunpack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/jsonunpack/i18n"
	"github.com/reoring/jsonunpack/jsonvalue"
)

// Failure codes.
const (
	CodeTypeMismatch = "type_mismatch"
	CodeOutOfRange   = "out_of_range"
)

var (
	// ErrTypeMismatch matches any *Error with CodeTypeMismatch under errors.Is.
	ErrTypeMismatch = &Error{Code: CodeTypeMismatch}
	// ErrOutOfRange matches any *Error with CodeOutOfRange under errors.Is.
	ErrOutOfRange = &Error{Code: CodeOutOfRange}

	ErrNilDestination = errors.New("jsonunpack: nil destination")
	ErrNilShape       = errors.New("jsonunpack: nil shape")
)

// Error is the failure outcome of a coercion.
type Error struct {
	Label    string `json:"label,omitempty"` // Caller-supplied field label.
	Path     string `json:"path"`            // JSON Pointer of the failing sub-value.
	Code     string `json:"code"`
	Expected string `json:"expected,omitempty"` // Shape text, e.g. "uint8".
	Actual   string `json:"actual,omitempty"`   // JSON kind encountered.
	Message  string `json:"message"`
	Hint     string `json:"hint,omitempty"`
	Cause    error  `json:"-"`
	// Candidates holds the per-alternative failures of a oneof shape, in
	// declaration order.
	Candidates []*Error `json:"candidates,omitempty"`
}

func (e *Error) Error() string {
	b := &strings.Builder{}
	b.WriteString("jsonunpack: ")
	if e.Label != "" {
		fmt.Fprintf(b, "%q ", e.Label)
	}
	path := e.Path
	if path == "" {
		path = "/"
	}
	fmt.Fprintf(b, "%s at %s", e.Code, path)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Unwrap returns the low-level cause (for example a strconv error). Candidate
// failures are not reachable through Unwrap.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// AsError extracts an *Error using errors.As.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the failure code of err, or "" when err is nil or not an
// *Error.
func CodeOf(err error) string {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return ""
}

// TypeMismatch reports that the value at p does not have the JSON kind
// required by want.
func TypeMismatch(p Path, want Desc, got any) *Error {
	return newError(p, CodeTypeMismatch, want, got)
}

// OutOfRange reports that the numeric value at p does not fit want.
func OutOfRange(p Path, want Desc, got any) *Error {
	return newError(p, CodeOutOfRange, want, got)
}

func newError(p Path, code string, want Desc, got any) *Error {
	expected := want.String()
	actual := jsonvalue.KindOf(got).String()
	data := map[string]string{"expected": expected, "actual": actual}
	if code == CodeOutOfRange {
		data["value"] = fmt.Sprint(got)
	}
	return &Error{
		Path:     p.Pointer(),
		Code:     code,
		Expected: expected,
		Actual:   actual,
		Message:  i18n.T(code, data),
	}
}

// WithCause attaches a low-level cause and returns e.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithHint attaches a remediation hint and returns e.
func (e *Error) WithHint(h string) *Error {
	e.Hint = h
	return e
}

// withLabel stamps the label on a copy of the failure produced below the
// dispatcher. Shapes may return shared values (the Err* sentinels, cached
// errors), so the original is never modified. Wrapping around the *Error is
// kept.
func withLabel(err error, label string) error {
	e, ok := AsError(err)
	if !ok {
		return err
	}
	c := *e
	c.Label = label
	if e == err {
		return &c
	}
	return &labeledError{err: err, e: &c}
}

// labeledError keeps a caller's wrapping chain while exposing the labeled copy
// of the inner *Error to errors.As.
type labeledError struct {
	err error
	e   *Error
}

func (l *labeledError) Error() string { return fmt.Sprintf("%s (label %q)", l.err.Error(), l.e.Label) }

func (l *labeledError) Unwrap() error { return l.err }

func (l *labeledError) As(target any) bool {
	if p, ok := target.(**Error); ok {
		*p = l.e
		return true
	}
	return false
}
