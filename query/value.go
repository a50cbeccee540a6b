package query

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind identifies the variant held by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value is a storable scalar: one of int32, int64, float32, float64, string
// or null. Values travel in both directions — bound into statements as
// positional parameters, and carried back out of typed column reads. The
// variant set is closed; the binder never coerces between numeric kinds (the
// engine's own column coercion applies underneath).
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Int32 returns a Value holding v.
func Int32(v int32) Value { return Value{kind: KindInt32, i: int64(v)} }

// Int64 returns a Value holding v.
func Int64(v int64) Value { return Value{kind: KindInt64, i: v} }

// Float32 returns a Value holding v.
func Float32(v float32) Value { return Value{kind: KindFloat32, f: float64(v)} }

// Float64 returns a Value holding v.
func Float64(v float64) Value { return Value{kind: KindFloat64, f: v} }

// String returns a Value holding v.
func String(v string) Value { return Value{kind: KindString, s: v} }

// NewValue converts a Go value into a Value. Supported inputs: nil, string,
// int, int32, int64, float32, float64 and Value itself. Anything else is an
// error; in particular there is no bool case, since JSON booleans read back
// as integers from the engine.
func NewValue(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case string:
		return String(x), nil
	case int:
		return Int64(int64(x)), nil
	case int32:
		return Int32(x), nil
	case int64:
		return Int64(x), nil
	case float32:
		return Float32(x), nil
	case float64:
		return Float64(x), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", v)
	}
}

// Kind reports which variant v holds.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is the null Value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the integer payload. Zero unless Kind is KindInt32 or KindInt64.
func (v Value) Int() int64 { return v.i }

// Float returns the floating-point payload. Zero unless Kind is KindFloat32
// or KindFloat64.
func (v Value) Float() float64 { return v.f }

// Text returns the string payload. Empty unless Kind is KindString.
func (v Value) Text() string { return v.s }

// Arg returns the value in database/sql argument form: int64 for integer
// kinds, float64 for floating-point kinds, string for text and nil for null.
func (v Value) Arg() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindInt32, KindInt64:
		return v.i
	case KindFloat32, KindFloat64:
		return v.f
	default:
		return v.s
	}
}

// String renders v in SQL-literal shape, for messages and debugging.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindInt32, KindInt64:
		return strconv.FormatInt(v.i, 10)
	case KindFloat32, KindFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return "'" + strings.ReplaceAll(v.s, "'", "''") + "'"
	}
}
