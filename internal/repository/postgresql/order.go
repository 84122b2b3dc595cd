package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/alebedeva/cardforge/internal/db"
	"github.com/alebedeva/cardforge/internal/repository"
)

type OrderRepo struct {
	db db.DB
}

func NewOrderRepo(db db.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) CreateTx(ctx context.Context, tx db.Tx, order *repository.Order) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO orders (
            id, number, items, customer_user_id, customer_name, customer_email,
            shipping_address, video_message_url, subtotal, shipping_cost, tax,
            total, status, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
    `, order.ID, order.Number, order.Items, order.CustomerUserID, order.CustomerName,
		order.CustomerEmail, order.ShippingAddress, order.VideoMessageURL, order.Subtotal,
		order.ShippingCost, order.Tax, order.Total, order.Status, order.CreatedAt, order.UpdatedAt)
	return err
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*repository.Order, error) {
	var order repository.Order
	err := r.db.Get(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Order, error) {
	var order repository.Order
	err := tx.Get(ctx, &order, "SELECT * FROM orders WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) UpdateStatusTx(ctx context.Context, tx db.Tx, order *repository.Order) error {
	_, err := tx.Exec(ctx, `
        UPDATE orders
        SET status = $1, updated_at = $2
        WHERE id = $3
    `, order.Status, order.UpdatedAt, order.ID)
	return err
}

func (r *OrderRepo) GetAll(ctx context.Context) ([]*repository.Order, error) {
	var orders []*repository.Order
	err := r.db.Select(ctx, &orders, "SELECT * FROM orders ORDER BY created_at DESC")
	return orders, err
}

func (r *OrderRepo) GetByUserID(ctx context.Context, userID string) ([]*repository.Order, error) {
	var orders []*repository.Order
	err := r.db.Select(ctx, &orders,
		"SELECT * FROM orders WHERE customer_user_id = $1 ORDER BY created_at DESC", userID)
	return orders, err
}

func (r *OrderRepo) GetByEmail(ctx context.Context, email string) ([]*repository.Order, error) {
	var orders []*repository.Order
	err := r.db.Select(ctx, &orders,
		"SELECT * FROM orders WHERE customer_email = $1 ORDER BY created_at DESC", email)
	return orders, err
}

// NextNumberTx draws the next value from the order number sequence inside
// the creating transaction, so numbers are strictly increasing and gap into
// the void only on rollback.
func (r *OrderRepo) NextNumberTx(ctx context.Context, tx db.Tx) (int64, error) {
	var seq int64
	err := tx.ExecQueryRow(ctx, "SELECT nextval('order_number_seq')").Scan(&seq)
	return seq, err
}
