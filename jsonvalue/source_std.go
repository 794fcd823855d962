package jsonvalue

import (
	"encoding/json"
	"fmt"
	"io"
)

type stdSource struct {
	dec *json.Decoder
}

func newStdSource(r io.Reader) tokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &stdSource{dec: dec}
}

func (s *stdSource) next() (token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return token{}, err
	}
	switch v := tok.(type) {
	case json.Delim:
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
	case json.Number:
		return token{kind: tokNumber, str: string(v)}, nil
	case bool:
		return token{kind: tokBool, b: v}, nil
	case nil:
		return token{kind: tokNull}, nil
	}
	return token{}, fmt.Errorf("unexpected token %T", tok)
}

func (s *stdSource) offset() int64 { return s.dec.InputOffset() }
