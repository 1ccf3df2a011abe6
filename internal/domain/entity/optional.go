package entity

import (
	"strconv"
	"strings"
)

// OptionalInt is an int that knows whether it was actually reported, in the
// database/sql Null* style. Explorer feeds return decimals as nullable
// strings, and "absent" must stay distinguishable from a literal zero.
type OptionalInt struct {
	Value int
	Valid bool
}

// IntOf returns a set OptionalInt.
func IntOf(v int) OptionalInt {
	return OptionalInt{Value: v, Valid: true}
}

// ParseOptionalInt parses a decimal string into a set OptionalInt. Malformed
// input yields the unset zero value.
func ParseOptionalInt(s string) OptionalInt {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return OptionalInt{}
	}
	return IntOf(v)
}

// Or returns the value when set, otherwise def.
func (o OptionalInt) Or(def int) int {
	if o.Valid {
		return o.Value
	}
	return def
}

// IsSet reports whether a value was reported.
func (o OptionalInt) IsSet() bool {
	return o.Valid
}

// OptionalFloat is a float64 that knows whether it was actually reported.
type OptionalFloat struct {
	Value float64
	Valid bool
}

// FloatOf returns a set OptionalFloat.
func FloatOf(v float64) OptionalFloat {
	return OptionalFloat{Value: v, Valid: true}
}

// ParseOptionalFloat parses a decimal string into a set OptionalFloat.
// Malformed input yields the unset zero value.
func ParseOptionalFloat(s string) OptionalFloat {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return OptionalFloat{}
	}
	return FloatOf(v)
}

// Or returns the value when set, otherwise def.
func (o OptionalFloat) Or(def float64) float64 {
	if o.Valid {
		return o.Value
	}
	return def
}

// IsSet reports whether a value was reported.
func (o OptionalFloat) IsSet() bool {
	return o.Valid
}
