package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alebedeva/cardforge/internal/domain"
)

func testDraft() domain.OrderDraft {
	return domain.OrderDraft{
		Items: []domain.LineItem{
			{ID: "line-1", CardID: "bday-balloons", UnitPrice: 499, Quantity: 3},
		},
		Customer: domain.Customer{
			UserID: "user-1",
			Name:   "Sam Carter",
			Email:  "sam@example.com",
		},
		ShippingAddress: domain.Address{Line1: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US"},
		Subtotal:        1497,
		ShippingCost:    899,
		Tax:             120,
		Total:           2516,
	}
}

func TestMemoryStorage_CreateOrder(t *testing.T) {
	fixedTime := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStorage("CARD")
	s.timeNow = func() time.Time { return fixedTime }
	ctx := context.Background()

	order, err := s.CreateOrder(ctx, testDraft())
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "CARD-2026-001", order.Number)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, fixedTime, order.CreatedAt)
	assert.Equal(t, fixedTime, order.UpdatedAt)
	assert.Equal(t, int64(2516), order.Total)

	t.Run("numbers strictly increase and stay zero padded", func(t *testing.T) {
		var numbers []string
		for i := 0; i < 11; i++ {
			order, err := s.CreateOrder(ctx, testDraft())
			require.NoError(t, err)
			numbers = append(numbers, order.Number)
		}
		assert.Equal(t, "CARD-2026-002", numbers[0])
		assert.Equal(t, "CARD-2026-009", numbers[7])
		assert.Equal(t, "CARD-2026-012", numbers[10])
		for i := 1; i < len(numbers); i++ {
			assert.Greater(t, numbers[i], numbers[i-1])
		}
	})

	t.Run("empty draft rejected", func(t *testing.T) {
		_, err := s.CreateOrder(ctx, domain.OrderDraft{})
		assert.ErrorIs(t, err, ErrEmptyOrder)
	})
}

func TestMemoryStorage_UpdateOrderStatus(t *testing.T) {
	s := NewMemoryStorage("CARD")
	ctx := context.Background()

	order, err := s.CreateOrder(ctx, testDraft())
	require.NoError(t, err)

	updated, err := s.UpdateOrderStatus(ctx, order.ID, domain.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, updated.Status)
	assert.False(t, updated.UpdatedAt.Before(order.UpdatedAt))

	t.Run("backwards transition is allowed", func(t *testing.T) {
		updated, err := s.UpdateOrderStatus(ctx, order.ID, domain.StatusPending)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, updated.Status)
	})

	t.Run("missing id leaves the store unchanged", func(t *testing.T) {
		before, err := s.GetAllOrders(ctx)
		require.NoError(t, err)

		_, err = s.UpdateOrderStatus(ctx, "ghost", domain.StatusDelivered)
		assert.ErrorIs(t, err, ErrOrderNotFound)

		after, err := s.GetAllOrders(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestMemoryStorage_GetAllOrders_SortedNewestFirst(t *testing.T) {
	s := NewMemoryStorage("CARD")
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	s.timeNow = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Hour)
	}

	var ids []string
	for i := 0; i < 3; i++ {
		order, err := s.CreateOrder(ctx, testDraft())
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}

	orders, err := s.GetAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, ids[2], orders[0].ID)
	assert.Equal(t, ids[0], orders[2].ID)
}

func TestMemoryStorage_Lookups(t *testing.T) {
	s := NewMemoryStorage("CARD")
	ctx := context.Background()

	draft := testDraft()
	order, err := s.CreateOrder(ctx, draft)
	require.NoError(t, err)

	guestDraft := testDraft()
	guestDraft.Customer = domain.Customer{Name: "Guest", Email: "guest@example.com"}
	guest, err := s.CreateOrder(ctx, guestDraft)
	require.NoError(t, err)

	t.Run("by id", func(t *testing.T) {
		got, err := s.GetOrder(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.Number, got.Number)

		_, err = s.GetOrder(ctx, "ghost")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("by user id", func(t *testing.T) {
		orders, err := s.GetUserOrders(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, order.ID, orders[0].ID)

		none, err := s.GetUserOrders(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("by email catches guest checkouts", func(t *testing.T) {
		orders, err := s.GetOrdersByEmail(ctx, "guest@example.com")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, guest.ID, orders[0].ID)
	})
}

func TestMemoryStorage_ReturnsCopies(t *testing.T) {
	s := NewMemoryStorage("CARD")
	ctx := context.Background()

	order, err := s.CreateOrder(ctx, testDraft())
	require.NoError(t, err)

	order.Status = domain.StatusDelivered
	order.Items[0].Quantity = 99

	fresh, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, fresh.Status)
	assert.Equal(t, 3, fresh.Items[0].Quantity)

	t.Run("list results are detached too", func(t *testing.T) {
		all, err := s.GetAllOrders(ctx)
		require.NoError(t, err)
		all[0].Items[0].Quantity = 77

		byUser, err := s.GetUserOrders(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, byUser, 1)
		assert.Equal(t, 3, byUser[0].Items[0].Quantity)
	})

	t.Run("status update result is detached", func(t *testing.T) {
		updated, err := s.UpdateOrderStatus(ctx, order.ID, domain.StatusShipped)
		require.NoError(t, err)
		updated.Items[0].Quantity = 55

		fresh, err := s.GetOrder(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, fresh.Items[0].Quantity)
	})
}

func TestFormatOrderNumber(t *testing.T) {
	at := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "CARD-2026-001", formatOrderNumber("CARD", at, 1))
	assert.Equal(t, "CARD-2026-042", formatOrderNumber("CARD", at, 42))
	assert.Equal(t, "CARD-2026-1042", formatOrderNumber("CARD", at, 1042))
}
