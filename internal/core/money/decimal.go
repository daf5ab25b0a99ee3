// Package money holds the fixed-point arithmetic every ledger amount goes through.
// Amounts are shopspring decimals kept at Scale fractional digits; floats never touch them.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits stored for every monetary value.
const Scale int32 = 6

var hundred = decimal.NewFromInt(100)

// Normalize truncates d to Scale digits.
func Normalize(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(Scale)
}

// Parse reads a decimal string and normalizes it. Empty input is an error.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Normalize(d), nil
}

// Sum adds the normalized values exactly.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(Normalize(v))
	}
	return total
}

// IsZero reports whether d is zero at Scale precision.
func IsZero(d decimal.Decimal) bool {
	return Normalize(d).IsZero()
}

// IsPositive reports whether d is strictly greater than zero at Scale precision.
func IsPositive(d decimal.Decimal) bool {
	return Normalize(d).IsPositive()
}

// String renders d with exactly Scale fractional digits, e.g. "175.500000".
func String(d decimal.Decimal) string {
	return Normalize(d).StringFixed(Scale)
}

// Remaining returns budget - spent.
func Remaining(budget, spent decimal.Decimal) decimal.Decimal {
	return Normalize(budget).Sub(Normalize(spent))
}

// UsagePercent returns spent / budget * 100 rounded at Scale. A zero budget yields zero.
func UsagePercent(spent, budget decimal.Decimal) decimal.Decimal {
	b := Normalize(budget)
	if b.IsZero() {
		return decimal.Zero
	}
	return Normalize(spent).Mul(hundred).DivRound(b, Scale)
}
