// Package precise implements exact base-10 arithmetic over decimal strings.
// All monetary math in the repository (fees, costs, balance reconciliation)
// routes through here; touching float64 for money is a correctness bug. The
// arithmetic itself is backed by cockroachdb/apd so no binary floating-point
// representation is ever involved.
//
// Operands and results are plain decimal strings. An empty string stands for
// an unknown value: any operation with an unknown or unparseable operand
// yields an empty string rather than an error, matching the tolerance policy
// of the extraction layer that feeds it.
package precise

import (
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// 64 digits comfortably exceeds any exchange-reported magnitude, so the
// common operations stay exact in practice.
var ctx = func() *apd.Context {
	c := apd.BaseContext.WithPrecision(64)
	c.Rounding = apd.RoundHalfUp
	return c
}()

func parse(s string) (*apd.Decimal, bool) {
	if s == "" {
		return nil, false
	}
	d, _, err := apd.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, false
	}
	return d, true
}

// format renders d as a plain decimal string with trailing zeros removed.
// Zero and negative zero both normalize to "0".
func format(d *apd.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	d.Reduce(d)
	return d.Text('f')
}

func binary(a, b string, op func(dst, x, y *apd.Decimal) (apd.Condition, error)) string {
	x, ok := parse(a)
	if !ok {
		return ""
	}
	y, ok := parse(b)
	if !ok {
		return ""
	}
	var dst apd.Decimal
	if _, err := op(&dst, x, y); err != nil {
		return ""
	}
	return format(&dst)
}

// Add returns a + b.
func Add(a, b string) string { return binary(a, b, ctx.Add) }

// Sub returns a - b.
func Sub(a, b string) string { return binary(a, b, ctx.Sub) }

// Mul returns a * b.
func Mul(a, b string) string { return binary(a, b, ctx.Mul) }

// Mod returns the remainder of a / b.
func Mod(a, b string) string { return binary(a, b, ctx.Rem) }

// Div returns a / b rounded half-up to the given number of decimal places.
// An explicit output precision is required because the quotient may not
// terminate. Division by zero yields the unknown value.
func Div(a, b string, places int32) string {
	x, ok := parse(a)
	if !ok {
		return ""
	}
	y, ok := parse(b)
	if !ok || y.IsZero() {
		return ""
	}
	var q apd.Decimal
	if _, err := ctx.Quo(&q, x, y); err != nil {
		return ""
	}
	if _, err := ctx.Quantize(&q, &q, -places); err != nil {
		return ""
	}
	return format(&q)
}

// Abs returns the absolute value of a.
func Abs(a string) string {
	d, ok := parse(a)
	if !ok {
		return ""
	}
	d.Abs(d)
	return format(d)
}

// Neg returns a with its sign flipped.
func Neg(a string) string {
	d, ok := parse(a)
	if !ok {
		return ""
	}
	d.Neg(d)
	return format(d)
}

// Min returns the smaller of a and b.
func Min(a, b string) string {
	if c, ok := cmp(a, b); ok {
		if c <= 0 {
			return canonical(a)
		}
		return canonical(b)
	}
	return ""
}

// Max returns the larger of a and b.
func Max(a, b string) string {
	if c, ok := cmp(a, b); ok {
		if c >= 0 {
			return canonical(a)
		}
		return canonical(b)
	}
	return ""
}

// Cmp compares a and b numerically: -1, 0 or +1. Unparseable operands
// compare as zero against themselves, so callers that need to distinguish
// malformed input should check with Valid first.
func Cmp(a, b string) int {
	c, _ := cmp(a, b)
	return c
}

// Equals reports whether a and b are numerically equal. Either operand
// being unknown means not equal.
func Equals(a, b string) bool {
	c, ok := cmp(a, b)
	return ok && c == 0
}

// Valid reports whether s parses as a decimal number.
func Valid(s string) bool {
	_, ok := parse(s)
	return ok
}

// IsZero reports whether s parses as exactly zero.
func IsZero(s string) bool {
	d, ok := parse(s)
	return ok && d.IsZero()
}

// IsNegative reports whether s parses as a value below zero.
func IsNegative(s string) bool {
	d, ok := parse(s)
	return ok && d.Negative && !d.IsZero()
}

func cmp(a, b string) (int, bool) {
	x, ok := parse(a)
	if !ok {
		return 0, false
	}
	y, ok := parse(b)
	if !ok {
		return 0, false
	}
	return x.Cmp(y), true
}

func canonical(s string) string {
	d, ok := parse(s)
	if !ok {
		return ""
	}
	return format(d)
}
