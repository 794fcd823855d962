// Package shape provides the converters of jsonunpack: exact scalar shapes,
// raw passthroughs, sequences, optionals and ordered alternatives, plus two
// ways to obtain a shape without spelling it out: Compile interprets a
// jsonunpack.Desc, and For/Into derive the shape from a Go type.
//
// Typed use:
//
//	ports := shape.Sequence(shape.Uint16())
//	var got []uint16
//	err := jsonunpack.Unpack(v, "ports", &got, ports)
//
// Alternatives are tried in declaration order and the first candidate that
// succeeds wins:
//
//	id := shape.OneOf(shape.Alt(shape.Int64()), shape.Alt(shape.String()))
//
// All shapes are immutable values and may be shared between goroutines.
package shape
