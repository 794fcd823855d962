package jsonvalue

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses the first document of a YAML stream into the JSON value
// model. Mapping order is preserved, integers and floats become json.Number
// (floats always keep a fraction or exponent so they stay distinguishable
// from integers), and non-JSON scalars (timestamps, binary) become strings.
// Mapping keys must be scalars. DecodeOpt's duplicate key policy and depth
// limit apply; Driver is ignored.
func DecodeYAML(data []byte, opts ...DecodeOpt) (any, error) {
	opt := DefaultDecodeOpt()
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Code: CodeParseError, Path: "/", Message: err.Error(), Offset: -1, Cause: err}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, &DecodeError{Code: CodeParseError, Path: "/", Message: "empty input", Offset: -1}
	}
	y := &yamlBuilder{opt: opt}
	return y.node(doc.Content[0], "", 0)
}

type yamlBuilder struct {
	opt DecodeOpt
}

func (y *yamlBuilder) fail(code, path, msg string, n *yaml.Node) *DecodeError {
	if n != nil {
		msg = fmt.Sprintf("line %d: %s", n.Line, msg)
	}
	return &DecodeError{Code: code, Path: pointerOrRoot(path), Message: msg, Offset: -1}
}

func (y *yamlBuilder) node(n *yaml.Node, path string, depth int) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return y.node(n.Content[0], path, depth)
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, y.fail(CodeParseError, path, "dangling alias", n)
		}
		return y.node(n.Alias, path, depth)
	case yaml.MappingNode:
		return y.mapping(n, path, depth+1)
	case yaml.SequenceNode:
		return y.sequence(n, path, depth+1)
	case yaml.ScalarNode:
		return y.scalar(n, path)
	}
	return nil, y.fail(CodeParseError, path, "unsupported node", n)
}

func (y *yamlBuilder) enter(n *yaml.Node, path string, depth int) error {
	if y.opt.MaxDepth > 0 && depth > y.opt.MaxDepth {
		return y.fail(CodeMaxDepth, path, "maximum nesting depth exceeded", n)
	}
	return nil
}

func (y *yamlBuilder) mapping(n *yaml.Node, path string, depth int) (any, error) {
	if err := y.enter(n, path, depth); err != nil {
		return nil, err
	}
	obj := NewObject(len(n.Content) / 2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]
		if kn.Kind != yaml.ScalarNode {
			return nil, y.fail(CodeParseError, path, "mapping key is not a scalar", kn)
		}
		key := kn.Value
		child := joinPointer(path, key)
		v, err := y.node(vn, child, depth)
		if err != nil {
			return nil, err
		}
		if _, dup := obj.Get(key); dup {
			de := y.fail(CodeDuplicateKey, child, "duplicate key "+key, kn)
			switch y.opt.OnDuplicateKey {
			case Error:
				return nil, de
			case Warn:
				if y.opt.OnWarning != nil {
					y.opt.OnWarning(de)
				}
			}
		}
		obj.Set(key, v)
	}
	return obj, nil
}

func (y *yamlBuilder) sequence(n *yaml.Node, path string, depth int) (any, error) {
	if err := y.enter(n, path, depth); err != nil {
		return nil, err
	}
	arr := make([]any, 0, len(n.Content))
	for i, c := range n.Content {
		v, err := y.node(c, joinPointer(path, strconv.Itoa(i)), depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	return arr, nil
}

func (y *yamlBuilder) scalar(n *yaml.Node, path string) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, y.fail(CodeParseError, path, err.Error(), n)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return json.Number(strconv.FormatInt(i, 10)), nil
		}
		var u uint64
		if err := n.Decode(&u); err != nil {
			return nil, y.fail(CodeParseError, path, err.Error(), n)
		}
		return json.Number(strconv.FormatUint(u, 10)), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, y.fail(CodeParseError, path, err.Error(), n)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, y.fail(CodeParseError, path, "non-finite number "+n.Value, n)
		}
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return json.Number(s), nil
	}
	return n.Value, nil
}
