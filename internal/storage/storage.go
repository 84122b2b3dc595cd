package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alebedeva/cardforge/internal/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyOrder    = errors.New("order has no items")
)

// OrderStorage owns the canonical list of submitted orders. The in-memory
// implementation is the demo default; the postgres one adds durability and
// an outbox event per mutation. Callers only see this interface, so the
// backing store can be swapped without touching handlers.
type OrderStorage interface {
	CreateOrder(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	// UpdateOrderStatus overwrites the status without enforcing a forward
	// transition: operators may move an order anywhere in the sequence.
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	GetAllOrders(ctx context.Context) ([]domain.Order, error)
	GetUserOrders(ctx context.Context, userID string) ([]domain.Order, error)
	// GetOrdersByEmail is the guest-checkout fallback: orders placed without
	// an account are found by the customer email later associated with one.
	GetOrdersByEmail(ctx context.Context, email string) ([]domain.Order, error)
}

// formatOrderNumber renders the sequential, human-facing order number,
// e.g. CARD-2026-007.
func formatOrderNumber(prefix string, createdAt time.Time, seq int64) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, createdAt.Year(), seq)
}
