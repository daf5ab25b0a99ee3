package money

import (
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/budget_ledger/internal/apperrors"
)

// NormalizeCurrency upper-cases and trims an ISO 4217 code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCurrency checks code against the ISO 4217 table.
func ValidateCurrency(code string) error {
	code = NormalizeCurrency(code)
	if len(code) != 3 || gomoney.GetCurrency(code) == nil {
		return fmt.Errorf("%w: unknown currency code %q", apperrors.ErrValidation, code)
	}
	return nil
}

// Fraction returns the display precision of the currency, 2 when unknown.
func Fraction(code string) int {
	cur := gomoney.GetCurrency(NormalizeCurrency(code))
	if cur == nil {
		return 2
	}
	return cur.Fraction
}

// Format renders amount in the currency's display format, rounded to its fraction digits.
func Format(amount decimal.Decimal, code string) string {
	code = NormalizeCurrency(code)
	cur := gomoney.GetCurrency(code)
	if cur == nil {
		return String(amount) + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return gomoney.New(minor, code).Display()
}
