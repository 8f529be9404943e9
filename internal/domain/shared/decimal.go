package shared

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SFLDecimalPlaces is the fractional precision of all token-like
// quantities, matching the 18-digit fixed point used on chain.
const SFLDecimalPlaces = 18

// RoundSFL normalizes a quantity to on-chain precision using
// half-even (banker's) rounding so replay results are identical
// across platforms.
func RoundSFL(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(SFLDecimalPlaces)
}

// ParseQuantity parses a decimal literal as used in farm documents
// and request payloads. Quantities are never negative on the wire.
func ParseQuantity(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal quantity %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("quantity cannot be negative: %s", s)
	}
	return RoundSFL(d), nil
}
