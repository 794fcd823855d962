// Package jsonvalue defines the in-memory JSON value model consumed by
// jsonunpack and decodes JSON and YAML documents into it.
//
// A JSON value is one of:
//
//	nil              null
//	bool             boolean
//	json.Number      number (decimal text as written)
//	string           string
//	[]any            array
//	*Object          object (insertion-ordered, unique keys)
//
// For callers holding trees produced elsewhere, float64/float32 and the Go
// integer kinds are also classified as numbers and map[string]any as an
// object.
package jsonvalue
