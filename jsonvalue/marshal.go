package jsonvalue

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"
)

// Marshal encodes a JSON value. Objects keep their member order.
func Marshal(v any) ([]byte, error) { return j.Marshal(v) }

// MarshalIndent is like Marshal with indentation.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return j.MarshalIndent(v, prefix, indent)
}

// Equal reports whether a and b are the same JSON value. Numbers compare by
// value, objects compare members regardless of order.
func Equal(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case Null:
		return true
	case Bool:
		return a.(bool) == b.(bool)
	case String:
		return a.(string) == b.(string)
	case Number:
		return numberEqual(a, b)
	case Array:
		xa, xb := a.([]any), b.([]any)
		if len(xa) != len(xb) {
			return false
		}
		for i := range xa {
			if !Equal(xa[i], xb[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		oa, ob := asObject(a), asObject(b)
		if oa.Len() != ob.Len() {
			return false
		}
		for k, va := range oa.All() {
			vb, ok := ob.Get(k)
			if !ok || !Equal(va, vb) {
				return false
			}
		}
		return true
	}
	return false
}

func asObject(v any) *Object {
	switch t := v.(type) {
	case *Object:
		return t
	case map[string]any:
		return ObjectFromMap(t)
	}
	return nil
}

// NumberText renders a number in decimal text, or "" when v is not a number.
func NumberText(v any) string {
	switch t := v.(type) {
	case json.Number:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case int:
		return strconv.FormatInt(int64(t), 10)
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint8:
		return strconv.FormatUint(uint64(t), 10)
	case uint16:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	}
	return ""
}

func numberEqual(a, b any) bool {
	ta, tb := NumberText(a), NumberText(b)
	if ta == tb {
		return true
	}
	if IsIntegerLiteral(ta) && IsIntegerLiteral(tb) {
		return canonicalInt(ta) == canonicalInt(tb)
	}
	fa, errA := strconv.ParseFloat(ta, 64)
	fb, errB := strconv.ParseFloat(tb, 64)
	if errA != nil || errB != nil || math.IsNaN(fa) {
		return false
	}
	return fa == fb
}

// IsIntegerLiteral reports whether s is an optional minus sign followed by
// decimal digits only.
func IsIntegerLiteral(s string) bool {
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsNumberLiteral reports whether s follows the JSON number grammar: an
// optional minus sign, an integer part without leading zeros, then an optional
// fraction and exponent. NaN and Inf spellings are rejected.
func IsNumberLiteral(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		i = skipDigits(s, i)
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		j := skipDigits(s, i+1)
		if j == i+1 {
			return false
		}
		i = j
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		j := skipDigits(s, i)
		if j == i {
			return false
		}
		i = j
	}
	return i == len(s)
}

func skipDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func canonicalInt(s string) string {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimLeft(strings.TrimPrefix(s, "-"), "0")
	if s == "" {
		return "0"
	}
	if neg {
		return "-" + s
	}
	return s
}
