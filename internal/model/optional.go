package model

import (
	"math"
	"strconv"
	"strings"
)

// maxExactInt is the largest integer a JSON number can carry without loss
const maxExactInt = 1 << 53

// OptionalInt is an integer that may be absent (scores and kills).
// Decoding never fails: anything that is not an integral number, or a string
// holding one, decodes as absent.
type OptionalInt struct {
	value int
	valid bool
}

// Int returns a present OptionalInt
func Int(v int) OptionalInt {
	return OptionalInt{value: v, valid: true}
}

// NullInt returns an absent OptionalInt
func NullInt() OptionalInt {
	return OptionalInt{}
}

// ParseOptionalInt parses user or document input leniently.
// Blank and non-numeric input yields an absent value.
func ParseOptionalInt(raw string) OptionalInt {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return OptionalInt{}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return OptionalInt{}
	}
	if f != math.Trunc(f) || math.Abs(f) > maxExactInt {
		return OptionalInt{}
	}
	return Int(int(f))
}

// Valid reports whether a value is present
func (o OptionalInt) Valid() bool {
	return o.valid
}

// Value returns the value, or 0 when absent
func (o OptionalInt) Value() int {
	return o.value
}

// Or returns the value, or def when absent
func (o OptionalInt) Or(def int) int {
	if !o.valid {
		return def
	}
	return o.value
}

// String renders the value, or an empty string when absent
func (o OptionalInt) String() string {
	if !o.valid {
		return ""
	}
	return strconv.Itoa(o.value)
}

// MarshalJSON encodes absent values as null
func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(o.value)), nil
}

// UnmarshalJSON accepts numbers, numeric strings and null. Every other
// token decodes as absent rather than failing the whole document.
func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	*o = OptionalInt{}

	switch {
	case raw == "" || raw == "null" || raw == "true" || raw == "false":
		return nil
	case raw[0] == '"':
		s, err := strconv.Unquote(raw)
		if err != nil {
			return nil
		}
		*o = ParseOptionalInt(s)
	case raw[0] == '{' || raw[0] == '[':
		return nil
	default:
		*o = ParseOptionalInt(raw)
	}
	return nil
}
