// Package value defines the typed scalar model the NKV format round-trips.
//
// The model is a closed set of four kinds (string, integer, float, boolean).
// Values carry their kind explicitly so that the on-disk representation never
// has to infer a type from payload text: the string "42" and the integer 42
// stay distinguishable end to end.
package value

import (
	"math"
	"strconv"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid is the zero value; it is never encodable.
	KindInvalid Kind = iota
	// KindString represents a string value.
	KindString
	// KindInt represents a 64-bit signed integer value.
	KindInt
	// KindFloat represents an IEEE-754 double value.
	KindFloat
	// KindBool represents a boolean value.
	KindBool
)

// Valid reports whether k is one of the four supported kinds.
func (k Kind) Valid() bool {
	return k >= KindString && k <= KindBool
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "invalid"
	}
}

// Value is a small tagged union over the four supported kinds.
//
// Construct values with String, Int, Float or Bool; the zero Value has
// KindInvalid and is rejected by the encoder and the store boundary.
type Value struct {
	Kind Kind
	I64  int64
	F64  float64
	S    string
	B    bool
}

// String returns a string Value.
func String(v string) Value { return Value{Kind: KindString, S: v} }

// Int returns an integer Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Float returns a float Value.
func Float(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.S, true
}

// AsInt64 returns the integer value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.I64, true
}

// AsFloat64 returns the float value if Kind is KindFloat.
func (v Value) AsFloat64() (float64, bool) {
	if v.Kind != KindFloat {
		return 0, false
	}
	return v.F64, true
}

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.B, true
}

// Equal reports whether two values have the same kind and content.
//
// Floats compare by bit pattern so NaN equals itself after a round trip and
// +0 and -0 stay distinct.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.S == o.S
	case KindInt:
		return v.I64 == o.I64
	case KindFloat:
		return math.Float64bits(v.F64) == math.Float64bits(o.F64)
	case KindBool:
		return v.B == o.B
	default:
		return true
	}
}

// GoString returns a debug representation such as int(42) or string("a").
func (v Value) GoString() string {
	switch v.Kind {
	case KindString:
		return "string(" + strconv.Quote(v.S) + ")"
	case KindInt:
		return "int(" + strconv.FormatInt(v.I64, 10) + ")"
	case KindFloat:
		return "float(" + strconv.FormatFloat(v.F64, 'g', -1, 64) + ")"
	case KindBool:
		return "bool(" + strconv.FormatBool(v.B) + ")"
	default:
		return "invalid"
	}
}
