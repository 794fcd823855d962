package jsonunpack

import (
	"strconv"
	"strings"
)

// Path is an immutable JSON Pointer (RFC 6901) used to locate failures inside
// the unpacked value. The zero value is the root.
type Path struct {
	parts []string
}

// Root returns the root path.
func Root() Path { return Path{} }

// Index returns the path of the i-th array element below p.
func (p Path) Index(i int) Path {
	return Path{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

// Pointer renders the path; the root renders as "/".
func (p Path) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p Path) String() string { return p.Pointer() }
