package jsonunpack

import (
	"encoding/json"
	"math"
	"strconv"

	js "github.com/reoring/jsonunpack/jsonschema"
)

// IntBounds returns the inclusive range of an integer kind as decimal text.
func IntBounds(k Kind) (min, max string, ok bool) {
	switch k {
	case KindUint8:
		return "0", strconv.FormatUint(math.MaxUint8, 10), true
	case KindUint16:
		return "0", strconv.FormatUint(math.MaxUint16, 10), true
	case KindUint32:
		return "0", strconv.FormatUint(math.MaxUint32, 10), true
	case KindUint64:
		return "0", strconv.FormatUint(math.MaxUint64, 10), true
	case KindInt8:
		return strconv.Itoa(math.MinInt8), strconv.Itoa(math.MaxInt8), true
	case KindInt16:
		return strconv.Itoa(math.MinInt16), strconv.Itoa(math.MaxInt16), true
	case KindInt32:
		return strconv.Itoa(math.MinInt32), strconv.Itoa(math.MaxInt32), true
	case KindInt64:
		return strconv.FormatInt(math.MinInt64, 10), strconv.FormatInt(math.MaxInt64, 10), true
	case KindInt:
		return strconv.Itoa(math.MinInt), strconv.Itoa(math.MaxInt), true
	}
	return "", "", false
}

// JSONSchema projects the shape into a JSON Schema document.
func (d Desc) JSONSchema() *js.Schema {
	s := d.jsonSchema()
	s.Schema = js.Draft
	return s
}

func (d Desc) jsonSchema() *js.Schema {
	if min, max, ok := IntBounds(d.Kind); ok {
		return &js.Schema{Type: "integer", Format: d.Kind.String(), Minimum: json.Number(min), Maximum: json.Number(max)}
	}
	switch d.Kind {
	case KindBool:
		return &js.Schema{Type: "boolean"}
	case KindFloat64:
		return &js.Schema{Type: "number", Format: "double"}
	case KindString:
		return &js.Schema{Type: "string"}
	case KindRawObject:
		return &js.Schema{Type: "object"}
	case KindNull:
		return &js.Schema{Type: "null"}
	case KindSequence:
		return &js.Schema{Type: "array", Items: d.elem().jsonSchema()}
	case KindOptional:
		return &js.Schema{AnyOf: []*js.Schema{d.elem().jsonSchema(), {Type: "null"}}}
	case KindAlternative:
		out := &js.Schema{Description: "candidates are tried in order; the first match wins"}
		out.AnyOf = make([]*js.Schema, 0, len(d.Alts))
		for _, a := range d.Alts {
			out.AnyOf = append(out.AnyOf, a.jsonSchema())
		}
		return out
	}
	// raw value: any JSON
	return &js.Schema{}
}
