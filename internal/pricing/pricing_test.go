package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alebedeva/cardforge/internal/domain"
)

func TestQuoteFor(t *testing.T) {
	tests := []struct {
		name     string
		items    []domain.LineItem
		expected Quote
	}{
		{
			name:  "empty cart",
			items: nil,
			expected: Quote{
				Subtotal:     0,
				ShippingCost: FlatShippingFee,
				Tax:          0,
				Total:        FlatShippingFee,
			},
		},
		{
			name: "single line below free shipping threshold",
			items: []domain.LineItem{
				{UnitPrice: 499, Quantity: 3},
			},
			expected: Quote{
				Subtotal:     1497,
				ShippingCost: 899,
				Tax:          120, // 119.76 rounded half-up
				Total:        1497 + 899 + 120,
			},
		},
		{
			name: "subtotal above threshold ships free",
			items: []domain.LineItem{
				{UnitPrice: 1299, Quantity: 4},
			},
			expected: Quote{
				Subtotal:     5196,
				ShippingCost: 0,
				Tax:          416, // 415.68 rounded half-up
				Total:        5196 + 416,
			},
		},
		{
			name: "subtotal exactly at threshold still pays shipping",
			items: []domain.LineItem{
				{UnitPrice: 2500, Quantity: 2},
			},
			expected: Quote{
				Subtotal:     5000,
				ShippingCost: 899,
				Tax:          400,
				Total:        5000 + 899 + 400,
			},
		},
		{
			name: "multiple lines",
			items: []domain.LineItem{
				{UnitPrice: 499, Quantity: 1},
				{UnitPrice: 799, Quantity: 2},
			},
			expected: Quote{
				Subtotal:     2097,
				ShippingCost: 899,
				Tax:          168, // 167.76 rounded half-up
				Total:        2097 + 899 + 168,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, QuoteFor(tc.items))
		})
	}
}

func TestTaxRounding(t *testing.T) {
	// 8% of 6 is 0.48, rounds down; 8% of 7 is 0.56, rounds up.
	assert.Equal(t, int64(0), Tax(6))
	assert.Equal(t, int64(1), Tax(7))
	assert.Equal(t, int64(0), Tax(0))
}

func TestShippingCost(t *testing.T) {
	assert.Equal(t, FlatShippingFee, ShippingCost(0))
	assert.Equal(t, FlatShippingFee, ShippingCost(FreeShippingThreshold))
	assert.Equal(t, int64(0), ShippingCost(FreeShippingThreshold+1))
}
