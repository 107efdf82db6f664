package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluecup/backend-pos/internal/pricing"
)

func TestRoundTaxHalfUp(t *testing.T) {
	policy, err := pricing.NewPolicy(800, pricing.RoundHalfUp)
	require.NoError(t, err)

	// 9.50 * 8% = 0.76 exactly
	require.Equal(t, pricing.Money(76), policy.RoundTax(950))
	// 4.69 * 8% = 0.3752 -> 0.38
	require.Equal(t, pricing.Money(38), policy.RoundTax(469))
	// 0.31 * 8% = 0.0248 -> 0.02
	require.Equal(t, pricing.Money(2), policy.RoundTax(31))
}

func TestRoundTaxHalfBoundary(t *testing.T) {
	halfUp, err := pricing.NewPolicy(500, pricing.RoundHalfUp)
	require.NoError(t, err)
	halfEven, err := pricing.NewPolicy(500, pricing.RoundHalfEven)
	require.NoError(t, err)

	// 0.30 * 5% = 0.015: exactly half a cent.
	require.Equal(t, pricing.Money(2), halfUp.RoundTax(30))
	require.Equal(t, pricing.Money(2), halfEven.RoundTax(30))

	// 0.10 * 5% = 0.005: half up -> 1, half even -> 0.
	require.Equal(t, pricing.Money(1), halfUp.RoundTax(10))
	require.Equal(t, pricing.Money(0), halfEven.RoundTax(10))
}

func TestRoundTaxZeroCases(t *testing.T) {
	policy, err := pricing.NewPolicy(825, pricing.RoundHalfUp)
	require.NoError(t, err)
	require.Equal(t, pricing.Money(0), policy.RoundTax(0))

	free, err := pricing.NewPolicy(0, pricing.RoundHalfUp)
	require.NoError(t, err)
	require.Equal(t, pricing.Money(0), free.RoundTax(12345))
}

func TestNewPolicyRejectsNegativeRate(t *testing.T) {
	_, err := pricing.NewPolicy(-1, pricing.RoundHalfUp)
	require.ErrorIs(t, err, pricing.ErrInvalidTaxRate)
}

func TestParseRoundingMode(t *testing.T) {
	mode, err := pricing.ParseRoundingMode("half_even")
	require.NoError(t, err)
	require.Equal(t, pricing.RoundHalfEven, mode)

	mode, err = pricing.ParseRoundingMode("")
	require.NoError(t, err)
	require.Equal(t, pricing.RoundHalfUp, mode)

	_, err = pricing.ParseRoundingMode("ceiling")
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	require.Equal(t, "4.75", pricing.Format(475))
	require.Equal(t, "0.05", pricing.Format(5))
	require.Equal(t, "-1.20", pricing.Format(-120))
	require.Equal(t, "10.26", pricing.Format(1026))
}
