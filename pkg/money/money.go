// Package money provides the decimal arithmetic used for every monetary and
// weight quantity in the calculation engine.
//
// Invariants:
//   - Values are arbitrary-precision decimals, never float64.
//   - Parsing is total: empty, malformed, NaN or infinite input yields Zero.
//   - Division keeps DivisionPlaces fractional digits.
//   - Display rounding is half-up (half away from zero) to a fixed number of places.
package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// DivisionPlaces is the number of fractional digits kept by Div.
const DivisionPlaces int32 = 32

// maxExponent bounds the magnitude of parsed input; anything beyond it is
// treated as malformed.
const maxExponent int32 = 64

// DisplayPlaces is the number of places used when a value crosses the
// engine boundary.
const DisplayPlaces int32 = 2

var (
	// Zero is the additive identity.
	Zero = decimal.Zero

	// One is the multiplicative identity.
	One = decimal.NewFromInt(1)

	// Hundred converts percentages to ratios.
	Hundred = decimal.NewFromInt(100)

	// ZakatRate is the obligation rate, exactly 2.5%.
	ZakatRate = decimal.RequireFromString("0.025")
)

// Parse converts a decimal string to a Decimal.
// Returns Zero if the string is empty, cannot be parsed, or has an absurd magnitude.
func Parse(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return Zero
	}
	return d
}

// FromFloat converts a float64 to a Decimal. NaN and infinities yield Zero.
func FromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Zero
	}
	return decimal.NewFromFloat(f)
}

// Add returns a + b.
func Add(a, b decimal.Decimal) decimal.Decimal { return a.Add(b) }

// Sub returns a - b.
func Sub(a, b decimal.Decimal) decimal.Decimal { return a.Sub(b) }

// Mul returns a × b. Multiplication is exact.
func Mul(a, b decimal.Decimal) decimal.Decimal { return a.Mul(b) }

// Div returns a ÷ b rounded to DivisionPlaces.
// Division by zero yields Zero instead of panicking.
func Div(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return Zero
	}
	return a.DivRound(b, DivisionPlaces)
}

// Cmp compares a and b and returns -1, 0 or +1.
func Cmp(a, b decimal.Decimal) int { return a.Cmp(b) }

// Max returns the larger of a and b.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThanOrEqual(b) {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThanOrEqual(b) {
		return a
	}
	return b
}

// Sum adds all values. An empty list sums to Zero.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Percent converts a percentage such as 12.5 to the ratio 0.125.
func Percent(p decimal.Decimal) decimal.Decimal {
	return Div(p, Hundred)
}

// Fixed formats d with exactly places fractional digits, rounding half-up.
func Fixed(d decimal.Decimal, places int32) string {
	return d.StringFixed(places)
}

// Fixed2 formats d with two fractional digits.
func Fixed2(d decimal.Decimal) string {
	return d.StringFixed(DisplayPlaces)
}

// Equal reports whether two decimal strings hold the same value within
// tolerance. An empty or zero tolerance means exact equality.
func Equal(actual, expected, tolerance string) bool {
	diff := Parse(actual).Sub(Parse(expected)).Abs()
	return diff.LessThanOrEqual(Parse(tolerance))
}
