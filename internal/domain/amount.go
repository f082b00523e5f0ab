package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern is a plain dollar amount: up to 12 whole digits and at most two cents digits.
// Exponent notation is refused so a short message cannot expand into a huge number.
var amountPattern = regexp.MustCompile(`^[0-9]{1,12}(\.[0-9]{1,2})?$`)

// ParseAmount parses a withdrawal amount typed by the user.
// Accepts an optional leading "$". Empty, non-numeric, exponent, non-positive amounts
// and amounts with fractions of a cent are rejected with ErrInvalidAmount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	if !amountPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}

	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %q is not positive", ErrInvalidAmount, raw)
	}

	return amount, nil
}

// FormatAmount renders an amount the way the ATM screen shows it, e.g. "$4800" or "$12.5"
func FormatAmount(amount decimal.Decimal) string {
	return "$" + amount.String()
}
