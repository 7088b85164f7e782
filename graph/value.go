package graph

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind enumerates the variants of the canonical value model. The set is
// closed: every value produced by Convert is exactly one of these.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindList
	KindMap
)

// Value is a tagged union over the shapes a decoded graph response can take.
// Values are immutable after construction; accessors on the wrong variant
// return the zero value for that accessor.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	bl   bool
	list []Value
	obj  map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// String wraps a string as a canonical value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int wraps a 64-bit integer as a canonical value.
func Int(i int64) Value { return Value{kind: KindInt, num: i} }

// Float wraps a floating point number as a canonical value.
func Float(f float64) Value { return Value{kind: KindFloat, flt: f} }

// Bool wraps a boolean as a canonical value.
func Bool(b bool) Value { return Value{kind: KindBool, bl: b} }

// List wraps an ordered sequence of values.
func List(items []Value) Value { return Value{kind: KindList, list: items} }

// Map wraps a string-keyed object of values.
func Map(entries map[string]Value) Value { return Value{kind: KindMap, obj: entries} }

// Kind reports the variant held by the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// StringVal returns the string payload for KindString values.
func (v Value) StringVal() string { return v.str }

// IntVal returns the integer payload for KindInt values.
func (v Value) IntVal() int64 { return v.num }

// FloatVal returns the float payload for KindFloat values.
func (v Value) FloatVal() float64 { return v.flt }

// BoolVal returns the boolean payload for KindBool values.
func (v Value) BoolVal() bool { return v.bl }

// ListVal returns the element slice for KindList values.
func (v Value) ListVal() []Value { return v.list }

// MapVal returns the entry map for KindMap values.
func (v Value) MapVal() map[string]Value { return v.obj }

// Truthy reports whether the value renders a template section. Null, false,
// the empty string, and the empty list are falsy; everything else, including
// the empty map and numeric zero, is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.bl
	case KindString:
		return v.str != ""
	case KindList:
		return len(v.list) > 0
	default:
		return true
	}
}

// Text returns the literal substitution text for the value. Scalars render
// their natural representation, null renders empty, and structured values
// render empty rather than leaking internal formatting into output.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.flt, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.bl)
	default:
		return ""
	}
}

// Interface exports the value as plain Go data, the inverse of Convert.
// Null exports as nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindFloat:
		return v.flt
	case KindBool:
		return v.bl
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.obj))
		for key, item := range v.obj {
			out[key] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes the value as the JSON shape it was converted from.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// Convert maps a decoded JSON tree into the canonical value model. The
// mapping is total: no input shape fails, unknown shapes degrade to their
// textual representation. Numbers that fit a 64-bit integer stay integers.
// Applying Convert to a value that is already canonical returns it unchanged.
func Convert(raw any) Value {
	switch val := raw.(type) {
	case nil:
		return String("")
	case Value:
		return val
	case string:
		return String(val)
	case bool:
		return Bool(val)
	case int:
		return Int(int64(val))
	case int64:
		return Int(val)
	case float64:
		if isInt64(val) {
			return Int(int64(val))
		}
		return Float(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return Int(i)
		}
		if f, err := val.Float64(); err == nil {
			return Float(f)
		}
		return String(val.String())
	case []any:
		items := make([]Value, len(val))
		for i, item := range val {
			items[i] = Convert(item)
		}
		return List(items)
	case []Value:
		return List(val)
	case map[string]any:
		return Map(ConvertMap(val))
	case map[string]Value:
		return Map(val)
	default:
		return String(fmt.Sprintf("%v", raw))
	}
}

// ConvertMap converts a decoded JSON object into canonical map entries.
// Null entries become empty strings so templates never see an unprintable
// null.
func ConvertMap(raw map[string]any) map[string]Value {
	entries := make(map[string]Value, len(raw))
	for key, item := range raw {
		entries[key] = Convert(item)
	}
	return entries
}

// isInt64 reports whether f converts to int64 without truncation or
// overflow. The upper bound is strict: float64(math.MaxInt64) rounds up to
// 2^63, which does not fit.
func isInt64(f float64) bool {
	return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64
}
