package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrTooManyDecimals = errors.New("amount has too many decimal places")
)

// Parse converts user input into a decimal amount with at most two
// decimal places.
func Parse(input string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if amount.Exponent() < -2 {
		return decimal.Zero, ErrTooManyDecimals
	}
	return amount, nil
}

// ParsePositive is Parse restricted to amounts greater than zero.
func ParsePositive(input string) (decimal.Decimal, error) {
	amount, err := Parse(input)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
