package jsonvalue

import "io"

type tokenKind int

const (
	tokBeginObject tokenKind = iota
	tokEndObject
	tokBeginArray
	tokEndArray
	tokString
	tokNumber
	tokBool
	tokNull
)

// token is a lexical JSON token. Object keys arrive as tokString; the tree
// builder knows from its position whether a string is a key.
type token struct {
	kind tokenKind
	str  string // string and number text
	b    bool
}

// tokenSource is implemented by each decoder driver.
type tokenSource interface {
	next() (token, error)
	// offset is the byte offset after the last token, or -1 when unknown.
	offset() int64
}

// Driver selects the tokenizer backing Decode.
type Driver int

const (
	// DriverStd uses encoding/json.
	DriverStd Driver = iota
	// DriverGoJSON uses github.com/goccy/go-json.
	DriverGoJSON
)

func (d Driver) String() string {
	if d == DriverGoJSON {
		return "go-json"
	}
	return "encoding/json"
}

func newSource(d Driver, r io.Reader) tokenSource {
	if d == DriverGoJSON {
		return newGoJSONSource(r)
	}
	return newStdSource(r)
}
