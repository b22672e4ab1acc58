// Package pricing derives the order totals breakdown from cart state.
// All amounts are in minor currency units (cents). Calculations are pure
// functions of their inputs; nothing here is cached.
package pricing

import "storefront-proxy/internal/model"

// ShippingStrategy is the user-selected shipping cost rule.
type ShippingStrategy string

const (
	ShippingFree ShippingStrategy = "free"
	ShippingFlat ShippingStrategy = "flat"
)

// DefaultFlatRateCents is the flat shipping rate used when none is configured.
const DefaultFlatRateCents int64 = 1000

// Breakdown is the structured totals result, suitable for independent
// display and for order submission.
type Breakdown struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Tax      int64 `json:"tax"`
	Discount int64 `json:"discount"`
	Total    int64 `json:"total"`

	SubtotalDisplay string `json:"subtotal_display"`
	ShippingDisplay string `json:"shipping_display"`
	TaxDisplay      string `json:"tax_display"`
	DiscountDisplay string `json:"discount_display"`
	TotalDisplay    string `json:"total_display"`
}

// Calculator computes totals breakdowns. The zero value uses the default
// flat shipping rate.
type Calculator struct {
	FlatRateCents int64
}

// ShippingCost returns the cost for the selected strategy. Unknown
// strategies cost nothing, matching the free default.
func (c Calculator) ShippingCost(strategy ShippingStrategy) int64 {
	if strategy == ShippingFlat {
		if c.FlatRateCents > 0 {
			return c.FlatRateCents
		}
		return DefaultFlatRateCents
	}
	return 0
}

// Calculate derives the breakdown: total = subtotal + shipping + tax - discount.
// The discount is capped so the presented total is never negative.
func (c Calculator) Calculate(subtotal int64, strategy ShippingStrategy, tax, discount int64) Breakdown {
	shipping := c.ShippingCost(strategy)

	if max := subtotal + shipping + tax; discount > max {
		discount = max
	}
	if discount < 0 {
		discount = 0
	}

	total := subtotal + shipping + tax - discount
	if total < 0 {
		total = 0
	}

	return Breakdown{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Discount: discount,
		Total:    total,

		SubtotalDisplay: model.FormatCents(subtotal),
		ShippingDisplay: model.FormatCents(shipping),
		TaxDisplay:      model.FormatCents(tax),
		DiscountDisplay: model.FormatCents(discount),
		TotalDisplay:    model.FormatCents(total),
	}
}
