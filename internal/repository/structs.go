package repository

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("not found")

type Order struct {
	ID              string          `db:"id"`
	Number          string          `db:"number"`
	Items           json.RawMessage `db:"items"`
	CustomerUserID  string          `db:"customer_user_id"`
	CustomerName    string          `db:"customer_name"`
	CustomerEmail   string          `db:"customer_email"`
	ShippingAddress json.RawMessage `db:"shipping_address"`
	VideoMessageURL string          `db:"video_message_url"`
	Subtotal        int64           `db:"subtotal"`
	ShippingCost    int64           `db:"shipping_cost"`
	Tax             int64           `db:"tax"`
	Total           int64           `db:"total"`
	Status          string          `db:"status"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

type User struct {
	ID       string `db:"id"`
	Username string `db:"username"`
	Password string `db:"password"`
}
