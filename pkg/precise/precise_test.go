package precise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd_ExactBinaryUnrepresentable(t *testing.T) {
	assert.Equal(t, "0.3", Add("0.1", "0.2"))
}

func TestAdd_TrailingZerosReduced(t *testing.T) {
	assert.Equal(t, "1.5", Add("1.25", "0.25"))
}

func TestAdd_UnknownOperandPropagates(t *testing.T) {
	assert.Equal(t, "", Add("", "0.2"))
	assert.Equal(t, "", Add("0.1", ""))
}

func TestSub_NegativeResult(t *testing.T) {
	assert.Equal(t, "-0.1", Sub("0.2", "0.3"))
}

func TestMul_Exact(t *testing.T) {
	assert.Equal(t, "0.02", Mul("0.1", "0.2"))
	assert.Equal(t, "60000", Mul("30000", "2"))
}

func TestDiv_BoundedScale(t *testing.T) {
	assert.Equal(t, "0.333333", Div("1", "3", 6))
}

func TestDiv_ExactQuotientNotPadded(t *testing.T) {
	assert.Equal(t, "0.5", Div("1", "2", 6))
}

func TestDiv_ByZero(t *testing.T) {
	assert.Equal(t, "", Div("1", "0", 6))
}

func TestMod_Remainder(t *testing.T) {
	assert.Equal(t, "1", Mod("7", "3"))
	assert.Equal(t, "0.027", Mod("100.127", "0.05"))
}

func TestAbs_Negative(t *testing.T) {
	assert.Equal(t, "1.5", Abs("-1.5"))
}

func TestNeg_Zero(t *testing.T) {
	// Negative zero never escapes.
	assert.Equal(t, "0", Neg("0"))
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, "0.1", Min("0.1", "0.2"))
	assert.Equal(t, "0.2", Max("0.1", "0.2"))
}

func TestCmp_ScaleInsensitive(t *testing.T) {
	assert.Equal(t, 0, Cmp("1.0", "1"))
	assert.Equal(t, -1, Cmp("1", "2"))
	assert.Equal(t, 1, Cmp("2", "1"))
}

func TestEquals_DifferentRepresentations(t *testing.T) {
	assert.True(t, Equals("0.50", "0.5"))
	assert.False(t, Equals("0.5", "0.51"))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("123.456"))
	assert.True(t, Valid("-0.001"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("abc"))
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero("0"))
	assert.True(t, IsZero("0.000"))
	assert.False(t, IsZero("0.0001"))
}

func TestIsNegative(t *testing.T) {
	assert.True(t, IsNegative("-1"))
	assert.False(t, IsNegative("1"))
	assert.False(t, IsNegative("0"))
}
