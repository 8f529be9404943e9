package catalog

import "github.com/shopspring/decimal"

// Withdrawal tax brackets in basis points. Small withdrawals are
// taxed hardest to discourage draining the farm in many small hops.
var taxBrackets = []struct {
	below decimal.Decimal
	bps   int64
}{
	{below: decimal.NewFromInt(10), bps: 3000},
	{below: decimal.NewFromInt(100), bps: 2500},
	{below: decimal.NewFromInt(1000), bps: 2000},
	{below: decimal.NewFromInt(5000), bps: 1500},
	{below: decimal.NewFromInt(10000), bps: 1000},
}

// withdrawalTaxFloorBps is the 5% floor applied above every bracket.
const withdrawalTaxFloorBps = 500

// WithdrawalTaxBps returns the tax on an SFL withdrawal in basis
// points, piecewise on the withdrawn amount.
func WithdrawalTaxBps(sfl decimal.Decimal) int64 {
	for _, bracket := range taxBrackets {
		if sfl.LessThan(bracket.below) {
			return bracket.bps
		}
	}
	return withdrawalTaxFloorBps
}
