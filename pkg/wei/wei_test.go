package wei_test

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/farmchain-go/pkg/wei"
)

func TestParse(t *testing.T) {
	v, err := wei.Parse("120000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "120000000000000000000", v.String())

	_, err = wei.Parse("-1")
	assert.Error(t, err)

	_, err = wei.Parse("12.5")
	assert.Error(t, err)

	_, err = wei.Parse("")
	assert.Error(t, err)
}

func TestToDecimal_EighteenDecimals(t *testing.T) {
	// 120e18 wei is 120 SFL.
	v, err := wei.Parse("120000000000000000000")
	require.NoError(t, err)

	d := wei.ToDecimal(v, 18)

	assert.True(t, d.Equal(decimal.NewFromInt(120)))
}

func TestToDecimal_UnitTokens(t *testing.T) {
	// Unit-semantics items map one wei to one item.
	d := wei.ToDecimal(big.NewInt(2), 0)

	assert.True(t, d.Equal(decimal.NewFromInt(2)))
}

func TestFromDecimal_RoundTrips(t *testing.T) {
	cases := []struct {
		amount   string
		decimals int32
		want     string
	}{
		{"119.9", 18, "119900000000000000000"},
		{"0.000000000000000001", 18, "1"},
		{"3", 0, "3"},
	}

	for _, tc := range cases {
		v, err := wei.FromDecimal(decimal.RequireFromString(tc.amount), tc.decimals)
		require.NoError(t, err)
		assert.Equal(t, tc.want, v.String())
		assert.True(t, wei.ToDecimal(v, tc.decimals).Equal(decimal.RequireFromString(tc.amount)))
	}
}

func TestFromDecimal_RejectsExcessPrecision(t *testing.T) {
	_, err := wei.FromDecimal(decimal.RequireFromString("1.5"), 0)
	assert.Error(t, err)
}
