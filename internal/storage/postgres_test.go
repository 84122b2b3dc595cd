package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_db "github.com/alebedeva/cardforge/internal/db/mocks"
	"github.com/alebedeva/cardforge/internal/domain"
	"github.com/alebedeva/cardforge/internal/repository"
	mock_storage "github.com/alebedeva/cardforge/internal/storage/mocks"
)

func newPostgresFixture(t *testing.T) (*PostgresStorage, *mock_db.MockDB, *mock_db.MockTx, *mock_storage.MockOrderRepository, *mock_storage.MockOutboxTaskRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockDB := mock_db.NewMockDB(ctrl)
	mockTx := mock_db.NewMockTx(ctrl)
	orderRepo := mock_storage.NewMockOrderRepository(ctrl)
	outboxRepo := mock_storage.NewMockOutboxTaskRepository(ctrl)

	s := NewPostgresStorage(mockDB, orderRepo, outboxRepo, "order_events", "CARD")
	s.timeNow = func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }
	return s, mockDB, mockTx, orderRepo, outboxRepo
}

func TestPostgresStorage_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("writes order and outbox task in one transaction", func(t *testing.T) {
		s, mockDB, mockTx, orderRepo, outboxRepo := newPostgresFixture(t)

		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)
		orderRepo.EXPECT().NextNumberTx(gomock.Any(), mockTx).Return(int64(7), nil)

		var created *repository.Order
		orderRepo.EXPECT().CreateTx(gomock.Any(), mockTx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, order *repository.Order) error {
				created = order
				return nil
			})

		var task *repository.OutboxTask
		outboxRepo.EXPECT().CreateTx(gomock.Any(), mockTx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, tsk *repository.OutboxTask) error {
				task = tsk
				return nil
			})
		mockTx.EXPECT().Commit(gomock.Any()).Return(nil)
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil)

		order, err := s.CreateOrder(ctx, testDraft())
		require.NoError(t, err)

		assert.Equal(t, "CARD-2026-007", order.Number)
		assert.Equal(t, domain.StatusPending, order.Status)
		require.NotNil(t, created)
		assert.Equal(t, order.ID, created.ID)
		assert.Equal(t, int64(2516), created.Total)

		require.NotNil(t, task)
		assert.Equal(t, "order_events", task.Topic)
		assert.Equal(t, repository.TaskStatusCreated, task.Status)
		var payload repository.OrderEventPayload
		require.NoError(t, json.Unmarshal(task.Payload, &payload))
		assert.Equal(t, "order_created", payload.Event)
		assert.Equal(t, order.ID, payload.OrderID)
		assert.Equal(t, int64(2516), payload.TotalMinor)
	})

	t.Run("rolls back when the insert fails", func(t *testing.T) {
		s, mockDB, mockTx, orderRepo, _ := newPostgresFixture(t)

		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)
		orderRepo.EXPECT().NextNumberTx(gomock.Any(), mockTx).Return(int64(8), nil)
		orderRepo.EXPECT().CreateTx(gomock.Any(), mockTx, gomock.Any()).Return(errors.New("boom"))
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil)

		_, err := s.CreateOrder(ctx, testDraft())
		assert.ErrorContains(t, err, "failed to create order")
	})

	t.Run("empty draft never touches the database", func(t *testing.T) {
		s, _, _, _, _ := newPostgresFixture(t)

		_, err := s.CreateOrder(ctx, domain.OrderDraft{})
		assert.ErrorIs(t, err, ErrEmptyOrder)
	})
}

func TestPostgresStorage_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("enqueues a status change event", func(t *testing.T) {
		s, mockDB, mockTx, orderRepo, outboxRepo := newPostgresFixture(t)

		stored := &repository.Order{
			ID:     "order-1",
			Number: "CARD-2026-001",
			Status: string(domain.StatusPending),
			Total:  2516,
		}
		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)
		orderRepo.EXPECT().GetByIDTx(gomock.Any(), mockTx, "order-1").Return(stored, nil)
		orderRepo.EXPECT().UpdateStatusTx(gomock.Any(), mockTx, stored).Return(nil)

		var task *repository.OutboxTask
		outboxRepo.EXPECT().CreateTx(gomock.Any(), mockTx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, tsk *repository.OutboxTask) error {
				task = tsk
				return nil
			})
		mockTx.EXPECT().Commit(gomock.Any()).Return(nil)
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil)

		order, err := s.UpdateOrderStatus(ctx, "order-1", domain.StatusShipped)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusShipped, order.Status)

		require.NotNil(t, task)
		var payload repository.OrderEventPayload
		require.NoError(t, json.Unmarshal(task.Payload, &payload))
		assert.Equal(t, "order_status_changed", payload.Event)
		assert.Equal(t, string(domain.StatusShipped), payload.Status)
	})

	t.Run("maps missing rows to ErrOrderNotFound", func(t *testing.T) {
		s, mockDB, mockTx, orderRepo, _ := newPostgresFixture(t)

		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)
		orderRepo.EXPECT().GetByIDTx(gomock.Any(), mockTx, "ghost").Return(nil, repository.ErrObjectNotFound)
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil)

		_, err := s.UpdateOrderStatus(ctx, "ghost", domain.StatusShipped)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestPostgresStorage_GetOrder_NotFound(t *testing.T) {
	s, _, _, orderRepo, _ := newPostgresFixture(t)

	orderRepo.EXPECT().GetByID(gomock.Any(), "ghost").Return(nil, repository.ErrObjectNotFound)

	_, err := s.GetOrder(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderConversion_RoundTrip(t *testing.T) {
	order := &domain.Order{
		ID:     "order-1",
		Number: "CARD-2026-001",
		Items: []domain.LineItem{
			{ID: "line-1", CardID: "bday-balloons", CardTitle: "Birthday Balloons", UnitPrice: 499, Quantity: 3},
		},
		Customer:        domain.Customer{UserID: "user-1", Name: "Sam Carter", Email: "sam@example.com"},
		ShippingAddress: domain.Address{Line1: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US"},
		Subtotal:        1497,
		ShippingCost:    899,
		Tax:             120,
		Total:           2516,
		Status:          domain.StatusPending,
		CreatedAt:       time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}

	repoOrder, err := toRepoOrder(order)
	require.NoError(t, err)

	back, err := toDomainOrder(repoOrder)
	require.NoError(t, err)
	assert.Equal(t, order, back)
}
