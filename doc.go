// Package jsonunpack coerces loosely typed JSON values into statically known
// Go shapes without silent truncation or type confusion:
//
//   - Exact fixed-width integers: 300 never fits a uint8, true is never 1
//   - Sequences, optionals and ordered alternatives nested to any depth
//   - A single error model (*Error) with a code, a JSON Pointer and a label
//   - Shape descriptors (Desc) with a textual grammar and JSON Schema export
//
// Layout:
//
//   - The root package holds the contracts: Shape, Desc, Error, Unpack.
//   - Converters live in shape/, the JSON value model and decoders in
//     jsonvalue/, and the CLI under cmd/jsonunpack.
//
// Typical usage:
//
//	v, err := jsonvalue.Decode(body)
//	var ports []uint16
//	err = jsonunpack.Unpack(v, "Ports", &ports, shape.Sequence(shape.Uint16()))
//
//	var brightness *uint8 // optional
//	err = shape.Into(field, "Brightness", &brightness)
//
// Alternatives are tried in declaration order and the first candidate that
// succeeds is committed:
//
//	s := shape.OneOf(shape.Alt(shape.Int64()), shape.Alt(shape.Float64()))
//	got, err := jsonunpack.Coerce(v, "Value", s) // 3 -> int64, 3.5 -> float64
//
// A failed call never writes the destination.
package jsonunpack
