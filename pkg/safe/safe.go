// Package safe provides tolerant accessors over loosely-typed exchange
// payloads. Exchanges return inconsistent types for the same logical field
// across endpoints (a price may arrive as a JSON number on one route and a
// quoted string on another), so every accessor coerces what it can and
// substitutes the caller's default for anything missing or wrong-shaped.
// Nothing in this package ever panics on malformed upstream data.
package safe

import (
	"math"
	"strconv"
	"strings"
)

// Value returns the raw value under key, or def when the key is absent or
// the map itself is nil.
func Value(m map[string]any, key string, def any) any {
	if m == nil {
		return def
	}
	if v, ok := m[key]; ok && v != nil {
		return v
	}
	return def
}

// Value2 tries two candidate keys in priority order.
func Value2(m map[string]any, key1, key2 string, def any) any {
	return Value(m, key1, Value(m, key2, def))
}

// ValueN tries the candidate keys in priority order.
func ValueN(m map[string]any, keys []string, def any) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return def
}

// String returns the value under key coerced to a string. Numbers are
// formatted in plain decimal notation; nested objects, arrays and booleans
// count as absent.
func String(m map[string]any, key, def string) string {
	if m == nil {
		return def
	}
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := coerceString(v); ok {
		return s
	}
	return def
}

// String2 tries two candidate keys in priority order.
func String2(m map[string]any, key1, key2, def string) string {
	return String(m, key1, String(m, key2, def))
}

// StringN tries the candidate keys in priority order and returns the first
// present, coercible value.
func StringN(m map[string]any, keys []string, def string) string {
	for _, k := range keys {
		if s := String(m, k, ""); s != "" {
			return s
		}
	}
	return def
}

// StringLower returns the value under key lowercased.
func StringLower(m map[string]any, key, def string) string {
	if s := String(m, key, ""); s != "" {
		return strings.ToLower(s)
	}
	return def
}

// StringUpper returns the value under key uppercased.
func StringUpper(m map[string]any, key, def string) string {
	if s := String(m, key, ""); s != "" {
		return strings.ToUpper(s)
	}
	return def
}

// Float returns the value under key coerced to a float64. Numeric strings
// are parsed; anything else counts as absent.
func Float(m map[string]any, key string, def float64) float64 {
	if m == nil {
		return def
	}
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	if f, ok := coerceFloat(v); ok {
		return f
	}
	return def
}

// Float2 tries two candidate keys in priority order.
func Float2(m map[string]any, key1, key2 string, def float64) float64 {
	return Float(m, key1, Float(m, key2, def))
}

// FloatN tries the candidate keys in priority order.
func FloatN(m map[string]any, keys []string, def float64) float64 {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			if f, ok := coerceFloat(v); ok {
				return f
			}
		}
	}
	return def
}

// Integer returns the value under key coerced to an int64, truncating any
// fractional part toward zero.
func Integer(m map[string]any, key string, def int64) int64 {
	if m == nil {
		return def
	}
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	if n, ok := coerceInteger(v); ok {
		return n
	}
	return def
}

// Integer2 tries two candidate keys in priority order.
func Integer2(m map[string]any, key1, key2 string, def int64) int64 {
	return Integer(m, key1, Integer(m, key2, def))
}

// IntegerN tries the candidate keys in priority order.
func IntegerN(m map[string]any, keys []string, def int64) int64 {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			if n, ok := coerceInteger(v); ok {
				return n
			}
		}
	}
	return def
}

// Bool returns the value under key coerced to a bool. The strings "true"
// and "false" count, in any letter case; everything else is absent.
func Bool(m map[string]any, key string, def bool) bool {
	if m == nil {
		return def
	}
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	if b, ok := coerceBool(v); ok {
		return b
	}
	return def
}

// Bool2 tries two candidate keys in priority order.
func Bool2(m map[string]any, key1, key2 string, def bool) bool {
	return Bool(m, key1, Bool(m, key2, def))
}

// BoolN tries the candidate keys in priority order.
func BoolN(m map[string]any, keys []string, def bool) bool {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			if b, ok := coerceBool(v); ok {
				return b
			}
		}
	}
	return def
}

// Timestamp reads a value expressed in seconds since epoch, integer or
// numeric string with optional fractional seconds, and returns milliseconds
// truncated toward zero. Use Integer for fields already in milliseconds.
func Timestamp(m map[string]any, key string, def int64) int64 {
	if m == nil {
		return def
	}
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	if f, ok := coerceFloat(v); ok {
		return int64(math.Trunc(f * 1000))
	}
	return def
}

// Timestamp2 tries two candidate keys in priority order.
func Timestamp2(m map[string]any, key1, key2 string, def int64) int64 {
	return Timestamp(m, key1, Timestamp(m, key2, def))
}

// TimestampN tries the candidate keys in priority order.
func TimestampN(m map[string]any, keys []string, def int64) int64 {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			if f, ok := coerceFloat(v); ok {
				return int64(math.Trunc(f * 1000))
			}
		}
	}
	return def
}

// Map returns the nested object under key, or nil when absent or not an
// object.
func Map(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return nil
}

// List returns the nested array under key, or nil when absent or not an
// array.
func List(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	if v, ok := m[key].([]any); ok {
		return v
	}
	return nil
}

// AsString coerces a single scalar the same way String does, for payloads
// that arrive as positional arrays instead of keyed objects. Uncoercible
// values yield the empty string.
func AsString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := coerceString(v); ok {
		return s
	}
	return ""
}

// AsInteger coerces a single scalar the same way Integer does.
func AsInteger(v any, def int64) int64 {
	if v == nil {
		return def
	}
	if n, ok := coerceInteger(v); ok {
		return n
	}
	return def
}

func coerceBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(b) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

func coerceString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	case int:
		return strconv.Itoa(s), true
	case int32:
		return strconv.FormatInt(int64(s), 10), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case uint64:
		return strconv.FormatUint(s, 10), true
	}
	return "", false
}

func coerceFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	case int:
		return float64(f), true
	case int32:
		return float64(f), true
	case int64:
		return float64(f), true
	case uint64:
		return float64(f), true
	case string:
		if f == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func coerceInteger(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case float64:
		return int64(math.Trunc(n)), true
	case float32:
		return int64(math.Trunc(float64(n))), true
	case string:
		if n == "" {
			return 0, false
		}
		if parsed, err := strconv.ParseInt(n, 10, 64); err == nil {
			return parsed, true
		}
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return int64(math.Trunc(f)), true
		}
	}
	return 0, false
}
