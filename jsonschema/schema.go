package jsonschema

import "encoding/json"

// Schema is a minimal JSON Schema representation used for export of target
// shapes.
type Schema struct {
	Schema      string `json:"$schema,omitempty"`
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Description string `json:"description,omitempty"`

	// Numeric bounds are kept as decimal text so that 64-bit limits survive
	// the round trip exactly.
	Minimum json.Number `json:"minimum,omitempty"`
	Maximum json.Number `json:"maximum,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Union. Alternatives resolve to the first matching candidate, which is
	// anyOf rather than oneOf semantics.
	AnyOf []*Schema `json:"anyOf,omitempty"`
}

// Draft is the dialect URI stamped on root schemas.
const Draft = "https://json-schema.org/draft/2020-12/schema"
