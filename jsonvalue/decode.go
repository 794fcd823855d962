package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reoring/jsonunpack/i18n"
)

// Decode failure codes.
const (
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeMaxDepth     = "max_depth"
	CodeTrailingData = "trailing_data"
)

// Severity expresses how a decoding finding is handled.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// DecodeOpt configures decoding. The zero value uses encoding/json, keeps the
// last of duplicate keys and does not limit depth. Decoding without options
// uses DefaultDecodeOpt instead, which rejects duplicate keys.
type DecodeOpt struct {
	Driver Driver
	// OnDuplicateKey controls duplicate object keys. With Ignore and Warn the
	// last value wins and the member keeps its first position; with Error
	// decoding fails.
	OnDuplicateKey Severity
	// MaxDepth limits container nesting (0 = unlimited).
	MaxDepth int
	// OnWarning receives findings reported with Warn severity.
	OnWarning func(*DecodeError)
}

// DefaultDecodeOpt returns the options used when none are given.
func DefaultDecodeOpt() DecodeOpt { return DecodeOpt{OnDuplicateKey: Error} }

// DecodeError describes a decoding failure or warning.
type DecodeError struct {
	Code    string `json:"code"`
	Path    string `json:"path"` // JSON Pointer of the offending member ("/" for the root).
	Message string `json:"message"`
	Offset  int64  `json:"offset"` // Byte offset in the input (-1 when unknown).
	Cause   error  `json:"-"`
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("jsonvalue: %s at %s: %s", e.Code, e.Path, e.Message)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// AsDecodeError extracts a *DecodeError using errors.As.
func AsDecodeError(err error) (*DecodeError, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Decode parses a single JSON document.
func Decode(data []byte, opts ...DecodeOpt) (any, error) {
	return DecodeReader(bytes.NewReader(data), opts...)
}

// DecodeReader parses a single JSON document from r.
func DecodeReader(r io.Reader, opts ...DecodeOpt) (any, error) {
	opt := DefaultDecodeOpt()
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	b := &builder{src: newSource(opt.Driver, r), opt: opt}
	tok, err := b.src.next()
	if err != nil {
		if err == io.EOF {
			return nil, b.fail(CodeParseError, "", "empty input", nil)
		}
		return nil, b.fail(CodeParseError, "", "", err)
	}
	v, err := b.value(tok, "", 0)
	if err != nil {
		return nil, err
	}
	if _, err := b.src.next(); err != io.EOF {
		if err != nil {
			return nil, b.fail(CodeParseError, "", "", err)
		}
		return nil, b.fail(CodeTrailingData, "", "", nil)
	}
	return v, nil
}

// builder assembles the value tree from tokens, enforcing the duplicate key
// policy and the depth limit as it goes.
type builder struct {
	src tokenSource
	opt DecodeOpt
}

func (b *builder) fail(code, path, msg string, cause error) *DecodeError {
	if msg == "" {
		if cause != nil {
			msg = cause.Error()
		} else {
			msg = i18n.T(code, nil)
		}
	}
	return &DecodeError{Code: code, Path: pointerOrRoot(path), Message: msg, Offset: b.src.offset(), Cause: cause}
}

func (b *builder) value(tok token, path string, depth int) (any, error) {
	switch tok.kind {
	case tokBeginObject:
		return b.object(path, depth+1)
	case tokBeginArray:
		return b.array(path, depth+1)
	case tokString:
		return tok.str, nil
	case tokNumber:
		return json.Number(tok.str), nil
	case tokBool:
		return tok.b, nil
	case tokNull:
		return nil, nil
	}
	return nil, b.fail(CodeParseError, path, "unexpected end of container", io.ErrUnexpectedEOF)
}

func (b *builder) enter(path string, depth int) error {
	if b.opt.MaxDepth > 0 && depth > b.opt.MaxDepth {
		return b.fail(CodeMaxDepth, path, "", nil)
	}
	return nil
}

func (b *builder) object(path string, depth int) (any, error) {
	if err := b.enter(path, depth); err != nil {
		return nil, err
	}
	obj := NewObject(4)
	for {
		tok, err := b.src.next()
		if err != nil {
			return nil, b.fail(CodeParseError, path, "", err)
		}
		if tok.kind == tokEndObject {
			return obj, nil
		}
		if tok.kind != tokString {
			return nil, b.fail(CodeParseError, path, "expected object key", nil)
		}
		key := tok.str
		child := joinPointer(path, key)
		vt, err := b.src.next()
		if err != nil {
			return nil, b.fail(CodeParseError, child, "", err)
		}
		v, err := b.value(vt, child, depth)
		if err != nil {
			return nil, err
		}
		if _, dup := obj.Get(key); dup {
			if err := b.duplicate(child, key); err != nil {
				return nil, err
			}
		}
		obj.Set(key, v)
	}
}

func (b *builder) duplicate(path, key string) error {
	switch b.opt.OnDuplicateKey {
	case Error:
		return b.fail(CodeDuplicateKey, path, i18n.T(CodeDuplicateKey, map[string]string{"key": key}), nil)
	case Warn:
		if b.opt.OnWarning != nil {
			b.opt.OnWarning(b.fail(CodeDuplicateKey, path, i18n.T(CodeDuplicateKey, map[string]string{"key": key}), nil))
		}
	}
	return nil
}

func (b *builder) array(path string, depth int) (any, error) {
	if err := b.enter(path, depth); err != nil {
		return nil, err
	}
	arr := []any{}
	for {
		tok, err := b.src.next()
		if err != nil {
			return nil, b.fail(CodeParseError, path, "", err)
		}
		if tok.kind == tokEndArray {
			return arr, nil
		}
		v, err := b.value(tok, joinPointer(path, strconv.Itoa(len(arr))), depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinPointer(base, tok string) string {
	return base + "/" + pointerEscaper.Replace(tok)
}

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
