package pricing

import "github.com/alebedeva/cardforge/internal/domain"

// All amounts are integer minor units (cents/pence) to avoid floating-point
// drift in totals.
const (
	FreeShippingThreshold int64 = 5000 // above this subtotal shipping is free
	FlatShippingFee       int64 = 899
	TaxRatePercent        int64 = 8
)

type Quote struct {
	Subtotal     int64 `json:"subtotal"`
	ShippingCost int64 `json:"shipping_cost"`
	Tax          int64 `json:"tax"`
	Total        int64 `json:"total"`
}

func Subtotal(items []domain.LineItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.UnitPrice * int64(it.Quantity)
	}
	return sum
}

func ShippingCost(subtotal int64) int64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// Tax rounds half-up to the nearest minor unit.
func Tax(subtotal int64) int64 {
	return (subtotal*TaxRatePercent + 50) / 100
}

// QuoteFor derives the full order totals for a set of cart lines.
func QuoteFor(items []domain.LineItem) Quote {
	subtotal := Subtotal(items)
	shipping := ShippingCost(subtotal)
	tax := Tax(subtotal)
	return Quote{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Tax:          tax,
		Total:        subtotal + shipping + tax,
	}
}
