package binary

import (
	"strconv"

	"go.jacobcolvin.com/tlbx/value"
)

// coerceScalar best-effort converts v to the primitive declared type
// name ("int", "uint", "float", "bool", "string", "bytes", "timestamp").
// Numeric kinds coerce to each other; any other mismatch yields the
// target type's zero value. Encoding stays total: nothing here fails.
func coerceScalar(declared string, v value.Value) value.Value {
	switch declared {
	case "int":
		return value.NewInt(coerceToInt64(v))
	case "uint":
		return value.NewUInt(coerceToUint64(v))
	case "float":
		return value.NewFloat(coerceToFloat64(v))
	case "bool":
		if v.Kind() == value.KindBool {
			return v
		}

		return value.NewBool(false)
	case "string":
		if v.Kind() == value.KindString {
			return v
		}

		return value.NewString("")
	case "bytes":
		if v.Kind() == value.KindBytes {
			return v
		}

		return value.NewBytes(nil)
	case "timestamp":
		if v.Kind() == value.KindTimestamp {
			return v
		}

		return value.NewTimestamp(0, 0)
	default:
		return v
	}
}

func coerceToInt64(v value.Value) int64 {
	switch v.Kind() {
	case value.KindInt:
		return v.Int()
	case value.KindUInt:
		return int64(v.UInt())
	case value.KindFloat:
		return int64(v.Float())
	case value.KindJsonNumber:
		if i, err := strconv.ParseInt(v.JsonNumber(), 10, 64); err == nil {
			return i
		}

		if f, err := strconv.ParseFloat(v.JsonNumber(), 64); err == nil {
			return int64(f)
		}

		return 0
	default:
		return 0
	}
}

func coerceToUint64(v value.Value) uint64 {
	switch v.Kind() {
	case value.KindUInt:
		return v.UInt()
	case value.KindInt:
		return uint64(v.Int())
	case value.KindFloat:
		return uint64(v.Float())
	case value.KindJsonNumber:
		if u, err := strconv.ParseUint(v.JsonNumber(), 10, 64); err == nil {
			return u
		}

		return 0
	default:
		return 0
	}
}

func coerceToFloat64(v value.Value) float64 {
	switch v.Kind() {
	case value.KindFloat:
		return v.Float()
	case value.KindInt:
		return float64(v.Int())
	case value.KindUInt:
		return float64(v.UInt())
	case value.KindJsonNumber:
		if f, err := strconv.ParseFloat(v.JsonNumber(), 64); err == nil {
			return f
		}

		return 0
	default:
		return 0
	}
}
