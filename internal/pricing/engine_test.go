package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-checkout/internal/pricing"
)

func TestComputeSubtotalAndTotal(t *testing.T) {
	items := []pricing.Item{
		{Qty: 2, UnitPrice: decimal.NewFromInt(100)},
		{Qty: 3, UnitPrice: decimal.NewFromInt(600)},
	}
	summary := pricing.Compute(items, decimal.NewFromInt(220))

	require.True(t, summary.Subtotal.Equal(decimal.NewFromInt(2000)), summary.Subtotal.String())
	require.True(t, summary.Shipping.Equal(decimal.NewFromInt(220)))
	require.True(t, summary.Total.Equal(decimal.NewFromInt(2220)), summary.Total.String())
}

func TestComputeSkipsNonPositiveQuantities(t *testing.T) {
	items := []pricing.Item{
		{Qty: 0, UnitPrice: decimal.NewFromInt(100)},
		{Qty: -1, UnitPrice: decimal.NewFromInt(100)},
		{Qty: 1, UnitPrice: decimal.RequireFromString("12.50")},
	}
	summary := pricing.Compute(items, decimal.Zero)
	require.Equal(t, "12.5", summary.Subtotal.String())
	require.True(t, summary.Total.Equal(summary.Subtotal))
}

func TestComputeClampsNegativeShipping(t *testing.T) {
	summary := pricing.Compute(nil, decimal.NewFromInt(-5))
	require.True(t, summary.Shipping.IsZero())
	require.True(t, summary.Total.IsZero())
}

func TestLineTotalFractional(t *testing.T) {
	it := pricing.Item{Qty: 3, UnitPrice: decimal.RequireFromString("0.10")}
	require.Equal(t, "0.3", it.LineTotal().String())
}
