package jsonvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frameState int

const (
	stateOpen       frameState = iota // just after '{' or '['
	stateAfterKey                     // object key read, ':' expected
	stateAfterValue                   // member or element read, ',' or close expected
)

type frame struct {
	kind  containerKind
	state frameState
}

// goJSONSource tokenizes with go-json. go-json's Token skips ',' and ':'
// without checking where they appear, so the source keeps its own frame stack
// and checks the separators between tokens against the buffered input.
type goJSONSource struct {
	dec   *j.Decoder
	data  []byte
	stack []frame
	err   error
}

func newGoJSONSource(r io.Reader) tokenSource {
	data, err := io.ReadAll(r)
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return &goJSONSource{dec: dec, data: data, err: err}
}

func (s *goJSONSource) next() (token, error) {
	if s.err != nil {
		return token{}, s.err
	}
	if err := s.separator(); err != nil {
		s.err = err
		return token{}, err
	}
	tok, err := s.dec.Token()
	if err != nil {
		return token{}, err
	}
	if s.offset() > int64(len(s.data)) {
		s.err = io.ErrUnexpectedEOF
		return token{}, s.err
	}
	t, err := s.convert(tok)
	if err != nil {
		s.err = err
		return token{}, err
	}
	s.advance(t)
	return t, nil
}

func (s *goJSONSource) convert(tok j.Token) (token, error) {
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return token{kind: tokBeginObject}, nil
		case '}':
			return token{kind: tokEndObject}, nil
		case '[':
			return token{kind: tokBeginArray}, nil
		default:
			return token{kind: tokEndArray}, nil
		}
	case string:
		return token{kind: tokString, str: v}, nil
	case j.Number:
		if !IsNumberLiteral(string(v)) {
			return token{}, fmt.Errorf("invalid number literal %q", string(v))
		}
		return token{kind: tokNumber, str: string(json.Number(v))}, nil
	case float64:
		return token{kind: tokNumber, str: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case bool:
		return token{kind: tokBool, b: v}, nil
	case nil:
		return token{kind: tokNull}, nil
	}
	return token{}, fmt.Errorf("unexpected token %T", tok)
}

// separator checks the bytes between the previous token and the next one.
// Exactly one ':' must follow an object key, exactly one ',' must come between
// members or elements, and none may appear anywhere else.
func (s *goJSONSource) separator() error {
	pos := s.offset()
	var seps []byte
	for ; pos < int64(len(s.data)); pos++ {
		c := s.data[pos]
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case ',', ':':
			seps = append(seps, c)
			continue
		}
		break
	}
	var next byte // zero at end of input
	if pos < int64(len(s.data)) {
		next = s.data[pos]
	}

	var want byte
	if n := len(s.stack); n > 0 {
		top := s.stack[n-1]
		switch {
		case top.state == stateAfterKey:
			want = ':'
		case top.state == stateAfterValue && !closes(top.kind, next):
			want = ','
		}
	}

	switch {
	case len(seps) == 0 && want == 0:
		return nil
	case len(seps) == 1 && seps[0] == want:
		return nil
	case want == 0:
		return fmt.Errorf("invalid character %q at offset %d", seps[0], pos)
	case len(seps) == 0 && next == 0:
		return io.ErrUnexpectedEOF
	case len(seps) == 0:
		return fmt.Errorf("invalid character %q at offset %d: expected %q", next, pos, want)
	}
	return fmt.Errorf("invalid separator %q at offset %d: expected %q", seps, pos, want)
}

func closes(k containerKind, c byte) bool {
	if k == kindObject {
		return c == '}'
	}
	return c == ']'
}

// advance updates the frame stack after a token has been handed out.
func (s *goJSONSource) advance(t token) {
	switch t.kind {
	case tokBeginObject:
		s.value()
		s.stack = append(s.stack, frame{kind: kindObject})
	case tokBeginArray:
		s.value()
		s.stack = append(s.stack, frame{kind: kindArray})
	case tokEndObject, tokEndArray:
		if n := len(s.stack); n > 0 {
			s.stack = s.stack[:n-1]
		}
	case tokString:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.state != stateAfterKey {
				top.state = stateAfterKey
				return
			}
		}
		s.value()
	default:
		s.value()
	}
}

// value marks the enclosing container as having received a value.
func (s *goJSONSource) value() {
	if n := len(s.stack); n > 0 {
		s.stack[n-1].state = stateAfterValue
	}
}

func (s *goJSONSource) offset() int64 { return s.dec.InputOffset() }
