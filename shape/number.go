package shape

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	jsonunpack "github.com/reoring/jsonunpack"
	"github.com/reoring/jsonunpack/jsonvalue"
)

// numeric outcome of an integer or float conversion attempt
type verdict int

const (
	fits verdict = iota
	wrongKind
	overflow
)

// toInt64 converts a JSON number into a signed integer of the given bit size.
// Number literals must be integer literals; Go floats must be integral.
func toInt64(v any, bits int) (int64, verdict) {
	switch t := v.(type) {
	case json.Number:
		s := string(t)
		if !jsonvalue.IsNumberLiteral(s) || !jsonvalue.IsIntegerLiteral(s) {
			return 0, wrongKind
		}
		i, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, overflow
			}
			return 0, wrongKind
		}
		return i, fits
	case int:
		return signedFits(int64(t), bits)
	case int8:
		return signedFits(int64(t), bits)
	case int16:
		return signedFits(int64(t), bits)
	case int32:
		return signedFits(int64(t), bits)
	case int64:
		return signedFits(t, bits)
	case uint, uint8, uint16, uint32, uint64:
		u := unsignedValue(t)
		if u > uint64(math.MaxInt64)>>(64-bits) {
			return 0, overflow
		}
		return int64(u), fits
	case float32:
		return floatToInt64(float64(t), bits)
	case float64:
		return floatToInt64(t, bits)
	}
	return 0, wrongKind
}

// toUint64 is the unsigned counterpart of toInt64. Negative values overflow,
// except for negative zero.
func toUint64(v any, bits int) (uint64, verdict) {
	switch t := v.(type) {
	case json.Number:
		s := string(t)
		if !jsonvalue.IsNumberLiteral(s) || !jsonvalue.IsIntegerLiteral(s) {
			return 0, wrongKind
		}
		if strings.HasPrefix(s, "-") {
			if strings.Trim(s[1:], "0") == "" {
				return 0, fits
			}
			return 0, overflow
		}
		u, err := strconv.ParseUint(s, 10, bits)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, overflow
			}
			return 0, wrongKind
		}
		return u, fits
	case int, int8, int16, int32, int64:
		i := signedValue(t)
		if i < 0 {
			return 0, overflow
		}
		return unsignedFits(uint64(i), bits)
	case uint, uint8, uint16, uint32, uint64:
		return unsignedFits(unsignedValue(t), bits)
	case float32:
		return floatToUint64(float64(t), bits)
	case float64:
		return floatToUint64(t, bits)
	}
	return 0, wrongKind
}

func signedFits(i int64, bits int) (int64, verdict) {
	if bits < 64 {
		lim := int64(1) << (bits - 1)
		if i < -lim || i >= lim {
			return 0, overflow
		}
	}
	return i, fits
}

func unsignedFits(u uint64, bits int) (uint64, verdict) {
	if bits < 64 && u >= uint64(1)<<bits {
		return 0, overflow
	}
	return u, fits
}

func floatToInt64(f float64, bits int) (int64, verdict) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, wrongKind
	}
	lim := math.Ldexp(1, bits-1)
	if f < -lim || f >= lim {
		return 0, overflow
	}
	return int64(f), fits
}

func floatToUint64(f float64, bits int) (uint64, verdict) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, wrongKind
	}
	if f < 0 || f >= math.Ldexp(1, bits) {
		return 0, overflow
	}
	return uint64(f), fits
}

func signedValue(v any) int64 {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	}
	return 0
}

func unsignedValue(v any) uint64 {
	switch t := v.(type) {
	case uint:
		return uint64(t)
	case uint8:
		return uint64(t)
	case uint16:
		return uint64(t)
	case uint32:
		return uint64(t)
	case uint64:
		return t
	}
	return 0
}

// toFloat64 converts any JSON number. Literals beyond double range overflow;
// text outside the JSON number grammar (NaN, Inf) is a mismatch.
func toFloat64(v any) (float64, verdict) {
	switch t := v.(type) {
	case json.Number:
		if !jsonvalue.IsNumberLiteral(string(t)) {
			return 0, wrongKind
		}
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0) {
				return 0, overflow
			}
			if errors.Is(err, strconv.ErrRange) {
				return f, fits
			}
			return 0, wrongKind
		}
		return f, fits
	case float64:
		if math.IsNaN(t) {
			return 0, wrongKind
		}
		if math.IsInf(t, 0) {
			return 0, overflow
		}
		return t, fits
	case float32:
		return toFloat64(float64(t))
	case int, int8, int16, int32, int64:
		return float64(signedValue(t)), fits
	case uint, uint8, uint16, uint32, uint64:
		return float64(unsignedValue(t)), fits
	}
	return 0, wrongKind
}

// fail maps a verdict onto the error model.
func fail(vd verdict, at jsonunpack.Path, d jsonunpack.Desc, v any) error {
	if vd == overflow {
		return jsonunpack.OutOfRange(at, d, v)
	}
	return jsonunpack.TypeMismatch(at, d, v)
}
