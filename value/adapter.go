package value

import (
	"fmt"
	"math"
)

// FromAny converts a Go scalar into a typed Value.
//
// This is the boundary adapter for loosely typed caller input: anything that
// cannot be mapped to exactly one of the four kinds is rejected here, before
// it reaches the encoder.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		if !x.Kind.Valid() {
			return Value{}, fmt.Errorf("value: invalid kind %d", x.Kind)
		}
		return x, nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case float64:
		return Float(x), nil
	case float32:
		return Float(float64(x)), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return uintValue(uint64(x))
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return uintValue(x)
	case nil:
		return Value{}, fmt.Errorf("value: nil is not a supported kind")
	default:
		return Value{}, fmt.Errorf("value: unsupported type %T", v)
	}
}

func uintValue(x uint64) (Value, error) {
	if x > math.MaxInt64 {
		// Avoid silently wrapping large values.
		return Value{}, fmt.Errorf("value: uint64 out of int64 range: %d", x)
	}
	return Int(int64(x)), nil
}
