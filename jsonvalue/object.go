package jsonvalue

import (
	"bytes"
	"iter"
	"sort"

	j "github.com/goccy/go-json"
)

// Object is a JSON object that keeps its members in insertion order. Keys are
// unique; setting an existing key replaces its value in place. A nil *Object
// is an empty object for all read methods.
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject returns an empty object with room for n members.
func NewObject(n int) *Object {
	return &Object{keys: make([]string, 0, n), vals: make(map[string]any, n)}
}

// ObjectFromMap builds an Object from m with keys in ascending order. Values
// are not copied.
func ObjectFromMap(m map[string]any) *Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	o := NewObject(len(keys))
	for _, k := range keys {
		o.Set(k, m[k])
	}
	return o
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the member names in order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.vals[key]
	return v, ok
}

// Set stores v under key and reports whether an existing member was replaced.
func (o *Object) Set(key string, v any) bool {
	if o.vals == nil {
		o.vals = make(map[string]any)
	}
	_, replaced := o.vals[key]
	if !replaced {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
	return replaced
}

// All iterates members in order.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.vals[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy: member values are shared.
func (o *Object) Clone() *Object {
	c := NewObject(o.Len())
	for k, v := range o.All() {
		c.Set(k, v)
	}
	return c
}

// Map returns the members as a map (shallow).
func (o *Object) Map() map[string]any {
	m := make(map[string]any, o.Len())
	for k, v := range o.All() {
		m[k] = v
	}
	return m
}

// MarshalJSON encodes members in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for k, v := range o.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		kb, err := j.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
