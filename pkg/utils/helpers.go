package utils

import (
	"reflect"
	"strconv"
	"strings"
)

// ParseValue converts a string to int or float where possible, otherwise
// returns the trimmed string. Used when reading configuration values from
// loosely typed descriptor payloads.
func ParseValue(s string) interface{} {
	s = strings.TrimSpace(s)

	// try int
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	// try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// Numeric converts supported types to float64, returning 0 for anything
// non-numeric.
func Numeric(v interface{}) float64 {
	n, _ := NumericOK(v)
	return n
}

// NumericOK converts supported types to float64 and reports whether the
// conversion succeeded. JSON decoding yields float64, YAML yields int, so
// both are handled along with numeric strings.
func NumericOK(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		rv := reflect.ValueOf(v)
		if rv.IsValid() && rv.Kind() >= reflect.Int && rv.Kind() <= reflect.Float64 {
			return rv.Convert(reflect.TypeOf(float64(0))).Float(), true
		}
		return 0, false
	}
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
