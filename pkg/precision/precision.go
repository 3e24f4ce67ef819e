// Package precision converts numeric amounts to a market's declared
// precision. A market's "precision" number means different things on
// different venues: a count of decimal places, a count of significant
// digits, or the minimum tradeable increment (tick size). This package
// implements all three interpretations behind one conversion function so
// adapters can compose them, e.g. round to significant digits first and then
// truncate to a maximum decimal-place ceiling.
package precision

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// RoundingMode selects how a value off the precision grid is moved onto it.
type RoundingMode int

// Rounding mode constants.
const (
	// Round rounds half away from zero.
	Round RoundingMode = iota
	// Truncate drops excess digits, moving toward zero.
	Truncate
)

// Mode gives the semantic meaning of a market's precision number.
type Mode int

// Precision mode constants.
const (
	// DecimalPlaces counts digits after the decimal point.
	DecimalPlaces Mode = iota
	// SignificantDigits counts total significant digits ignoring magnitude.
	SignificantDigits
	// TickSize treats the precision value itself as the minimum increment;
	// results are multiples of it, ties resolved away from zero.
	TickSize
)

// PaddingMode controls trailing zeros in the output string.
type PaddingMode int

// Padding mode constants.
const (
	// NoPadding strips trailing zeros.
	NoPadding PaddingMode = iota
	// PadWithZero zero-pads the output to the nominal width.
	PadWithZero
)

// Convert renders value at the requested precision. The precision argument
// is a decimal string: an integer count under DecimalPlaces (which may be
// negative, rounding into the integer part) and SignificantDigits, or the
// tick increment itself under TickSize. Applying Convert twice with the same
// arguments is stable: the second pass is a no-op.
func Convert(value string, rounding RoundingMode, prec string, mode Mode, padding PaddingMode) (string, error) {
	d, _, err := apd.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("invalid value %q: %w", value, err)
	}

	switch mode {
	case DecimalPlaces:
		places, err := parseIntPrecision(prec)
		if err != nil {
			return "", err
		}
		return toDecimalPlaces(d, rounding, places, padding)
	case SignificantDigits:
		digits, err := parseIntPrecision(prec)
		if err != nil {
			return "", err
		}
		if digits <= 0 {
			return "", fmt.Errorf("significant digits must be positive, got %d", digits)
		}
		return toSignificantDigits(d, rounding, digits, padding)
	case TickSize:
		return toTickSize(d, rounding, prec, padding)
	default:
		return "", fmt.Errorf("unknown precision mode %d", mode)
	}
}

func parseIntPrecision(prec string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(prec))
	if err != nil {
		return 0, fmt.Errorf("invalid precision %q: %w", prec, err)
	}
	return n, nil
}

func rounder(rounding RoundingMode) apd.Rounder {
	if rounding == Truncate {
		return apd.RoundDown
	}
	return apd.RoundHalfUp
}

func workingContext(rounding RoundingMode) *apd.Context {
	c := apd.BaseContext.WithPrecision(64)
	c.Rounding = rounder(rounding)
	return c
}

func toDecimalPlaces(d *apd.Decimal, rounding RoundingMode, places int, padding PaddingMode) (string, error) {
	c := workingContext(rounding)
	var out apd.Decimal
	if _, err := c.Quantize(&out, d, int32(-places)); err != nil {
		return "", err
	}
	if padding == PadWithZero && places > 0 {
		if out.IsZero() {
			// Quantize keeps the sign of negative zero; drop it.
			out.Abs(&out)
		}
		return out.Text('f'), nil
	}
	return render(&out), nil
}

func toSignificantDigits(d *apd.Decimal, rounding RoundingMode, digits int, padding PaddingMode) (string, error) {
	c := apd.BaseContext.WithPrecision(uint32(digits))
	c.Rounding = rounder(rounding)
	var out apd.Decimal
	if _, err := c.Round(&out, d); err != nil {
		return "", err
	}
	if padding == PadWithZero && !out.IsZero() {
		if deficit := int64(digits) - out.NumDigits(); deficit > 0 {
			var shift apd.BigInt
			shift.Exp(apd.NewBigInt(10), apd.NewBigInt(deficit), nil)
			out.Coeff.Mul(&out.Coeff, &shift)
			out.Exponent -= int32(deficit)
		}
		return out.Text('f'), nil
	}
	return render(&out), nil
}

func toTickSize(d *apd.Decimal, rounding RoundingMode, prec string, padding PaddingMode) (string, error) {
	tick, _, err := apd.NewFromString(strings.TrimSpace(prec))
	if err != nil {
		return "", fmt.Errorf("invalid tick size %q: %w", prec, err)
	}
	if tick.IsZero() || tick.Negative {
		return "", fmt.Errorf("tick size must be positive, got %q", prec)
	}

	c := workingContext(rounding)
	var ticks apd.Decimal
	if _, err := c.Quo(&ticks, d, tick); err != nil {
		return "", err
	}
	// Snap the quotient to a whole number of ticks, then scale back.
	if _, err := c.Quantize(&ticks, &ticks, 0); err != nil {
		return "", err
	}
	var out apd.Decimal
	if _, err := c.Mul(&out, &ticks, tick); err != nil {
		return "", err
	}
	if padding == PadWithZero && tick.Exponent < 0 {
		if _, err := c.Quantize(&out, &out, tick.Exponent); err != nil {
			return "", err
		}
		if out.IsZero() {
			out.Abs(&out)
		}
		return out.Text('f'), nil
	}
	return render(&out), nil
}

// render gives the minimal plain-decimal form; zero and negative zero both
// collapse to "0".
func render(d *apd.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	d.Reduce(d)
	return d.Text('f')
}
