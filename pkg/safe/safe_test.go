package safe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func payload() map[string]any {
	return map[string]any{
		"str":      "hello",
		"numstr":   "123.45",
		"float":    float64(42.9),
		"int":      float64(7), // JSON numbers decode as float64
		"big":      "9223372036854775807",
		"boolT":    true,
		"boolStr":  "TRUE",
		"nil":      nil,
		"object":   map[string]any{"inner": "x"},
		"array":    []any{"a", "b"},
		"seconds":  float64(1700000000.5),
		"secondsS": "1700000000",
	}
}

func TestString_Present(t *testing.T) {
	assert.Equal(t, "hello", String(payload(), "str", "def"))
}

func TestString_NumberCoerced(t *testing.T) {
	assert.Equal(t, "42.9", String(payload(), "float", ""))
	assert.Equal(t, "7", String(payload(), "int", ""))
}

func TestString_MissingAndNil(t *testing.T) {
	m := payload()
	assert.Equal(t, "def", String(m, "absent", "def"))
	assert.Equal(t, "def", String(m, "nil", "def"))
	assert.Equal(t, "def", String(nil, "str", "def"))
}

func TestString_WrongShapeIsAbsent(t *testing.T) {
	m := payload()
	assert.Equal(t, "def", String(m, "object", "def"))
	assert.Equal(t, "def", String(m, "array", "def"))
	assert.Equal(t, "def", String(m, "boolT", "def"))
}

func TestString2_PriorityOrder(t *testing.T) {
	m := payload()
	assert.Equal(t, "hello", String2(m, "str", "numstr", ""))
	assert.Equal(t, "123.45", String2(m, "absent", "numstr", ""))
	assert.Equal(t, "def", String2(m, "absent", "gone", "def"))
}

func TestStringN_FirstCoercible(t *testing.T) {
	assert.Equal(t, "123.45", StringN(payload(), []string{"absent", "object", "numstr"}, "def"))
}

func TestStringCase(t *testing.T) {
	m := map[string]any{"v": "MiXeD"}
	assert.Equal(t, "mixed", StringLower(m, "v", ""))
	assert.Equal(t, "MIXED", StringUpper(m, "v", ""))
}

func TestFloat_StringParsed(t *testing.T) {
	assert.Equal(t, 123.45, Float(payload(), "numstr", 0))
	assert.Equal(t, 42.9, Float(payload(), "float", 0))
	assert.Equal(t, -1.0, Float(payload(), "str", -1.0))
}

func TestInteger_TruncatesTowardZero(t *testing.T) {
	assert.Equal(t, int64(42), Integer(payload(), "float", 0))
	assert.Equal(t, int64(9223372036854775807), Integer(payload(), "big", 0))
	assert.Equal(t, int64(-5), Integer(payload(), "absent", -5))
}

func TestBool_Coercions(t *testing.T) {
	m := payload()
	assert.True(t, Bool(m, "boolT", false))
	assert.True(t, Bool(m, "boolStr", false))
	assert.False(t, Bool(m, "str", false))
	assert.True(t, Bool(m, "absent", true))
}

func TestBool2AndN_PriorityOrder(t *testing.T) {
	m := payload()
	assert.True(t, Bool2(m, "absent", "boolStr", false))
	assert.True(t, Bool2(m, "boolT", "absent", false))
	assert.True(t, BoolN(m, []string{"absent", "str", "boolStr"}, false))
	assert.False(t, BoolN(m, []string{"absent", "gone"}, false))
}

func TestTimestamp_SecondsToMillis(t *testing.T) {
	assert.Equal(t, int64(1700000000500), Timestamp(payload(), "seconds", 0))
	assert.Equal(t, int64(1700000000000), Timestamp(payload(), "secondsS", 0))
	assert.Equal(t, int64(-1), Timestamp(payload(), "absent", -1))
}

func TestTimestampN_FirstCoercible(t *testing.T) {
	m := payload()
	assert.Equal(t, int64(1700000000500), TimestampN(m, []string{"absent", "str", "seconds"}, 0))
	assert.Equal(t, int64(-1), TimestampN(m, []string{"absent", "gone"}, -1))
}

func TestMapAndList(t *testing.T) {
	m := payload()
	assert.Equal(t, "x", String(Map(m, "object"), "inner", ""))
	assert.Nil(t, Map(m, "str"))
	assert.Len(t, List(m, "array"), 2)
	assert.Nil(t, List(m, "object"))
}

func TestAsString_Scalars(t *testing.T) {
	assert.Equal(t, "1.5", AsString("1.5"))
	assert.Equal(t, "3", AsString(float64(3)))
	assert.Equal(t, "", AsString(nil))
	assert.Equal(t, "", AsString([]any{}))
}

func TestAsInteger_Scalars(t *testing.T) {
	assert.Equal(t, int64(9), AsInteger(float64(9.7), 0))
	assert.Equal(t, int64(12), AsInteger("12", 0))
	assert.Equal(t, int64(-1), AsInteger(nil, -1))
}

func TestValue2_Fallback(t *testing.T) {
	m := payload()
	assert.Equal(t, "hello", Value2(m, "str", "numstr", nil))
	assert.Equal(t, "123.45", Value2(m, "absent", "numstr", nil))
	assert.Nil(t, Value2(m, "absent", "gone", nil))
	assert.Equal(t, "hello", ValueN(m, []string{"absent", "str"}, nil))
	assert.Nil(t, ValueN(m, []string{"absent", "gone"}, nil))
}
