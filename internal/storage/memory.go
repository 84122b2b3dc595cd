package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alebedeva/cardforge/internal/domain"
)

// MemoryStorage keeps orders in process memory, guarded by a mutex so the
// HTTP surface can mutate it concurrently. State is lost on restart.
type MemoryStorage struct {
	mu           sync.Mutex
	orders       []domain.Order
	seq          int64
	numberPrefix string

	timeNow func() time.Time
}

func NewMemoryStorage(numberPrefix string) *MemoryStorage {
	return &MemoryStorage{
		numberPrefix: numberPrefix,
		timeNow:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStorage) CreateOrder(_ context.Context, draft domain.OrderDraft) (*domain.Order, error) {
	if len(draft.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timeNow()
	s.seq++

	order := domain.Order{
		ID:              uuid.NewString(),
		Number:          formatOrderNumber(s.numberPrefix, now, s.seq),
		Items:           append([]domain.LineItem(nil), draft.Items...),
		Customer:        draft.Customer,
		ShippingAddress: draft.ShippingAddress,
		VideoMessageURL: draft.VideoMessageURL,
		Subtotal:        draft.Subtotal,
		ShippingCost:    draft.ShippingCost,
		Tax:             draft.Tax,
		Total:           draft.Total,
		Status:          domain.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.orders = append(s.orders, order)

	orderCopy := cloneOrder(order)
	return &orderCopy, nil
}

// cloneOrder detaches the Items slice so callers can mutate returned orders
// without corrupting the stored ones.
func cloneOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.LineItem(nil), o.Items...)
	return o
}

func (s *MemoryStorage) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			orderCopy := cloneOrder(s.orders[i])
			return &orderCopy, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (s *MemoryStorage) UpdateOrderStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			s.orders[i].UpdatedAt = s.timeNow()
			orderCopy := cloneOrder(s.orders[i])
			return &orderCopy, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (s *MemoryStorage) GetAllOrders(_ context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Order, 0, len(s.orders))
	for i := range s.orders {
		out = append(out, cloneOrder(s.orders[i]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStorage) GetUserOrders(_ context.Context, userID string) ([]domain.Order, error) {
	return s.filter(func(o *domain.Order) bool {
		return o.Customer.UserID == userID
	}), nil
}

func (s *MemoryStorage) GetOrdersByEmail(_ context.Context, email string) ([]domain.Order, error) {
	return s.filter(func(o *domain.Order) bool {
		return o.Customer.Email == email
	}), nil
}

func (s *MemoryStorage) filter(keep func(*domain.Order) bool) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Order
	for i := range s.orders {
		if keep(&s.orders[i]) {
			out = append(out, cloneOrder(s.orders[i]))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
