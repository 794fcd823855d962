package jsonunpack

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Kind enumerates target shape kinds.
type Kind int

const (
	KindInvalid Kind = iota
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt // platform int
	KindBool
	KindFloat64
	KindString
	KindRawObject
	KindRawValue
	KindNull
	KindSequence
	KindOptional
	KindAlternative
)

var kindNames = [...]string{
	KindInvalid:     "invalid",
	KindUint8:       "uint8",
	KindUint16:      "uint16",
	KindUint32:      "uint32",
	KindUint64:      "uint64",
	KindInt8:        "int8",
	KindInt16:       "int16",
	KindInt32:       "int32",
	KindInt64:       "int64",
	KindInt:         "int",
	KindBool:        "bool",
	KindFloat64:     "float64",
	KindString:      "string",
	KindRawObject:   "object",
	KindRawValue:    "any",
	KindNull:        "null",
	KindSequence:    "sequence",
	KindOptional:    "optional",
	KindAlternative: "oneof",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindInvalid]
	}
	return kindNames[k]
}

// IsScalar reports whether k is a leaf kind (scalar, passthrough or null).
func (k Kind) IsScalar() bool { return k >= KindUint8 && k <= KindNull }

// IsInteger reports whether k is one of the fixed-width integer kinds.
func (k Kind) IsInteger() bool { return k >= KindUint8 && k <= KindInt }

// Desc is a static description of a target shape. It is a closed recursive
// grammar: scalar kinds are leaves, Sequence and Optional carry Elem, and
// Alternative carries the ordered candidate list in Alts.
type Desc struct {
	Kind Kind
	Elem *Desc
	Alts []Desc
}

// ScalarDesc describes a leaf kind.
func ScalarDesc(k Kind) Desc { return Desc{Kind: k} }

// SequenceDesc describes an array of elem.
func SequenceDesc(elem Desc) Desc { return Desc{Kind: KindSequence, Elem: &elem} }

// OptionalDesc describes inner or no value.
func OptionalDesc(inner Desc) Desc { return Desc{Kind: KindOptional, Elem: &inner} }

// OneOfDesc describes an ordered alternative over alts.
func OneOfDesc(alts ...Desc) Desc {
	return Desc{Kind: KindAlternative, Alts: append([]Desc(nil), alts...)}
}

// String renders d in the grammar accepted by ParseDesc.
func (d Desc) String() string {
	b := &strings.Builder{}
	d.write(b)
	return b.String()
}

func (d Desc) write(b *strings.Builder) {
	switch d.Kind {
	case KindSequence:
		b.WriteString("[]")
		d.elem().write(b)
	case KindOptional:
		b.WriteString("optional<")
		d.elem().write(b)
		b.WriteByte('>')
	case KindAlternative:
		b.WriteString("oneof<")
		for i, a := range d.Alts {
			if i > 0 {
				b.WriteByte(',')
			}
			a.write(b)
		}
		b.WriteByte('>')
	default:
		b.WriteString(d.Kind.String())
	}
}

func (d Desc) elem() Desc {
	if d.Elem == nil {
		return Desc{}
	}
	return *d.Elem
}

// Equal reports structural equality.
func (d Desc) Equal(o Desc) bool { return d.String() == o.String() }

// Validate checks the structural invariants: containers carry an element,
// alternatives have at least two pairwise distinct candidates, and no
// invalid kinds appear.
func (d Desc) Validate() error {
	switch {
	case d.Kind == KindInvalid || d.Kind > KindAlternative:
		return fmt.Errorf("jsonunpack: invalid shape kind %d", int(d.Kind))
	case d.Kind.IsScalar():
		return nil
	case d.Kind == KindSequence || d.Kind == KindOptional:
		if d.Elem == nil {
			return fmt.Errorf("jsonunpack: %s without element shape", d.Kind)
		}
		return d.Elem.Validate()
	}
	if len(d.Alts) < 2 {
		return fmt.Errorf("jsonunpack: oneof needs at least two candidates, got %d", len(d.Alts))
	}
	seen := make(map[string]int, len(d.Alts))
	for i, a := range d.Alts {
		if err := a.Validate(); err != nil {
			return err
		}
		k := a.String()
		if j, dup := seen[k]; dup {
			return fmt.Errorf("jsonunpack: oneof candidates %d and %d are both %s", j, i, k)
		}
		seen[k] = i
	}
	return nil
}

// ErrDescSyntax is wrapped by every ParseDesc failure.
var ErrDescSyntax = errors.New("jsonunpack: shape syntax error")

var scalarKinds = map[string]Kind{
	"uint8":   KindUint8,
	"uint16":  KindUint16,
	"uint32":  KindUint32,
	"uint64":  KindUint64,
	"int8":    KindInt8,
	"int16":   KindInt16,
	"int32":   KindInt32,
	"int64":   KindInt64,
	"int":     KindInt,
	"bool":    KindBool,
	"float64": KindFloat64,
	"double":  KindFloat64,
	"string":  KindString,
	"object":  KindRawObject,
	"any":     KindRawValue,
	"json":    KindRawValue,
	"null":    KindNull,
}

// ParseDesc parses a textual shape:
//
//	shape    = scalar | "[]" shape | "sequence<" shape ">"
//	         | "optional<" shape ">" | "oneof<" shape { "," shape } ">"
//	scalar   = uint8 | uint16 | uint32 | uint64 | int8 | int16 | int32
//	         | int64 | int | bool | float64 | string | object | any | null
//
// "double" and "json" are accepted as aliases of float64 and any. The result
// is validated.
func ParseDesc(s string) (Desc, error) {
	p := &descParser{src: s}
	d, err := p.shape()
	if err != nil {
		return Desc{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return Desc{}, p.errorf("unexpected %q", p.src[p.pos:])
	}
	if err := d.Validate(); err != nil {
		return Desc{}, fmt.Errorf("%w: %v", ErrDescSyntax, err)
	}
	return d, nil
}

// MustParseDesc is like ParseDesc but panics on error.
func MustParseDesc(s string) Desc {
	d, err := ParseDesc(s)
	if err != nil {
		panic(err)
	}
	return d
}

type descParser struct {
	src string
	pos int
}

func (p *descParser) errorf(format string, a ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrDescSyntax, p.pos, fmt.Sprintf(format, a...))
}

func (p *descParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *descParser) consume(tok string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *descParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' {
			p.pos++
			continue
		}
		break
	}
	return strings.ToLower(p.src[start:p.pos])
}

func (p *descParser) shape() (Desc, error) {
	if p.consume("[]") {
		elem, err := p.shape()
		if err != nil {
			return Desc{}, err
		}
		return SequenceDesc(elem), nil
	}
	start := p.pos
	name := p.ident()
	if name == "" {
		if p.pos >= len(p.src) {
			return Desc{}, p.errorf("unexpected end of input")
		}
		return Desc{}, p.errorf("unexpected %q", p.src[p.pos:p.pos+1])
	}
	switch name {
	case "sequence", "optional":
		inner, err := p.generic(name, 1)
		if err != nil {
			return Desc{}, err
		}
		if name == "sequence" {
			return SequenceDesc(inner[0]), nil
		}
		return OptionalDesc(inner[0]), nil
	case "oneof":
		alts, err := p.generic(name, -1)
		if err != nil {
			return Desc{}, err
		}
		return OneOfDesc(alts...), nil
	}
	k, ok := scalarKinds[name]
	if !ok {
		p.pos = start
		p.skipSpace()
		return Desc{}, p.errorf("unknown shape %q", name)
	}
	return ScalarDesc(k), nil
}

// generic parses "<" shape {"," shape} ">" with an optional arity.
func (p *descParser) generic(name string, arity int) ([]Desc, error) {
	if !p.consume("<") {
		return nil, p.errorf("expected '<' after %s", name)
	}
	var out []Desc
	for {
		d, err := p.shape()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
		if p.consume(",") {
			continue
		}
		if p.consume(">") {
			break
		}
		return nil, p.errorf("expected ',' or '>' in %s", name)
	}
	if arity > 0 && len(out) != arity {
		return nil, p.errorf("%s takes %d shape, got %d", name, arity, len(out))
	}
	return out, nil
}
