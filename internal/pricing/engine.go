package pricing

import "github.com/shopspring/decimal"

// Money represents a monetary value in the store currency.
type Money = decimal.Decimal

// Item describes a line item used for pricing calculation.
type Item struct {
	Qty       int
	UnitPrice Money
}

// LineTotal returns the unit price multiplied by the quantity.
func (it Item) LineTotal() Money {
	if it.Qty <= 0 {
		return decimal.Zero
	}
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Qty)))
}

// Summary aggregates computed pricing components.
type Summary struct {
	Subtotal Money
	Shipping Money
	Total    Money
}

// Compute calculates cart totals given the line items and the shipping fee.
func Compute(items []Item, shipping Money) Summary {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	if shipping.IsNegative() {
		shipping = decimal.Zero
	}
	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}
