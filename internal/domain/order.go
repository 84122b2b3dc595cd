package domain

import "time"

type OrderStatus string

// Fulfillment progression. The admin surface may set any status in any
// order; the sequence below is the canonical forward path.
const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusPrinting   OrderStatus = "printing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusPrinting, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// LineItem is one cart/order line: a card snapshot with its customization,
// quantity and the unit price fixed at add-to-cart time. Prices are integer
// minor units.
type LineItem struct {
	ID            string        `json:"id"`
	CardID        string        `json:"card_id"`
	CardTitle     string        `json:"card_title"`
	Customization Customization `json:"customization"`
	Quantity      int           `json:"quantity"`
	UnitPrice     int64         `json:"unit_price"`
}

type Customer struct {
	UserID string `json:"user_id,omitempty"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type Order struct {
	ID              string      `json:"id"`
	Number          string      `json:"number"`
	Items           []LineItem  `json:"items"`
	Customer        Customer    `json:"customer"`
	ShippingAddress Address     `json:"shipping_address"`
	VideoMessageURL string      `json:"video_message_url,omitempty"`
	Subtotal        int64       `json:"subtotal"`
	ShippingCost    int64       `json:"shipping_cost"`
	Tax             int64       `json:"tax"`
	Total           int64       `json:"total"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderDraft is the checkout submission: a cart snapshot plus customer
// details. Ids, number, totals and timestamps are assigned by the store.
type OrderDraft struct {
	Items           []LineItem `json:"items"`
	Customer        Customer   `json:"customer"`
	ShippingAddress Address    `json:"shipping_address"`
	VideoMessageURL string     `json:"video_message_url,omitempty"`
	Subtotal        int64      `json:"subtotal"`
	ShippingCost    int64      `json:"shipping_cost"`
	Tax             int64      `json:"tax"`
	Total           int64      `json:"total"`
}
