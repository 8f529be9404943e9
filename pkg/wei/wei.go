// Package wei converts between on-chain fixed-point integer amounts
// and the decimal quantities the game engine computes with. Tools and
// limited editions live on chain as unit tokens (0 decimals); the
// currency and all token-like items use 18.
package wei

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Parse reads a wei amount from its canonical base-10 string form.
func Parse(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid wei amount: %q", s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("wei amount cannot be negative: %q", s)
	}
	return v, nil
}

// ToDecimal converts a raw on-chain amount to a decimal quantity
// using the item's on-chain precision.
func ToDecimal(v *big.Int, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(v, -decimals)
}

// FromDecimal converts a decimal quantity to its on-chain integer
// representation. The quantity must not carry more fractional digits
// than the item's precision.
func FromDecimal(d decimal.Decimal, decimals int32) (*big.Int, error) {
	shifted := d.Shift(decimals)
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("amount %s does not fit %d on-chain decimals", d, decimals)
	}
	return shifted.BigInt(), nil
}
