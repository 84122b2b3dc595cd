package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alebedeva/cardforge/internal/db"
	"github.com/alebedeva/cardforge/internal/domain"
	"github.com/alebedeva/cardforge/internal/repository"
)

//go:generate mockgen -source ./postgres.go -destination=./mocks/storage.go -package=mock_storage

type OrderRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, order *repository.Order) error
	GetByID(ctx context.Context, id string) (*repository.Order, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Order, error)
	UpdateStatusTx(ctx context.Context, tx db.Tx, order *repository.Order) error
	GetAll(ctx context.Context) ([]*repository.Order, error)
	GetByUserID(ctx context.Context, userID string) ([]*repository.Order, error)
	GetByEmail(ctx context.Context, email string) ([]*repository.Order, error)
	NextNumberTx(ctx context.Context, tx db.Tx) (int64, error)
}

type OutboxTaskRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
	GetProcessable(ctx context.Context, db db.DB, limit, maxAttempts int) ([]*repository.OutboxTask, error)
	UpdateStatus(ctx context.Context, db db.DB, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
}

// PostgresStorage is the durable OrderStorage. Each order mutation writes an
// outbox task in the same transaction, so the kafka feed never observes an
// event for a rolled-back change.
type PostgresStorage struct {
	db           db.DB
	orderRepo    OrderRepository
	outboxRepo   OutboxTaskRepository
	topic        string
	numberPrefix string

	timeNow func() time.Time
}

func NewPostgresStorage(database db.DB, orderRepo OrderRepository, outboxRepo OutboxTaskRepository, topic, numberPrefix string) *PostgresStorage {
	return &PostgresStorage{
		db:           database,
		orderRepo:    orderRepo,
		outboxRepo:   outboxRepo,
		topic:        topic,
		numberPrefix: numberPrefix,
		timeNow:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *PostgresStorage) CreateOrder(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error) {
	if len(draft.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	now := s.timeNow()
	seq, err := s.orderRepo.NextNumberTx(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to draw order number: %w", err)
	}

	order := domain.Order{
		ID:              uuid.NewString(),
		Number:          formatOrderNumber(s.numberPrefix, now, seq),
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

	repoOrder, err := toRepoOrder(&order)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.CreateTx(ctx, tx, repoOrder); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.enqueueEventTx(ctx, tx, "order_created", &order); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}
	return &order, nil
}

func (s *PostgresStorage) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	repoOrder, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return toDomainOrder(repoOrder)
}

func (s *PostgresStorage) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	repoOrder, err := s.orderRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	repoOrder.Status = string(status)
	repoOrder.UpdatedAt = s.timeNow()
	if err := s.orderRepo.UpdateStatusTx(ctx, tx, repoOrder); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order, err := toDomainOrder(repoOrder)
	if err != nil {
		return nil, err
	}

	if err := s.enqueueEventTx(ctx, tx, "order_status_changed", order); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}
	return order, nil
}

func (s *PostgresStorage) GetAllOrders(ctx context.Context) ([]domain.Order, error) {
	repoOrders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return toDomainOrders(repoOrders)
}

func (s *PostgresStorage) GetUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	repoOrders, err := s.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user orders: %w", err)
	}
	return toDomainOrders(repoOrders)
}

func (s *PostgresStorage) GetOrdersByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	repoOrders, err := s.orderRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders by email: %w", err)
	}
	return toDomainOrders(repoOrders)
}

func (s *PostgresStorage) enqueueEventTx(ctx context.Context, tx db.Tx, event string, order *domain.Order) error {
	payload, err := json.Marshal(repository.OrderEventPayload{
		Event:       event,
		OrderID:     order.ID,
		OrderNumber: order.Number,
		Status:      string(order.Status),
		TotalMinor:  order.Total,
		OccurredAt:  s.timeNow(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}

	task := &repository.OutboxTask{
		ID:        uuid.New(),
		Status:    repository.TaskStatusCreated,
		Payload:   payload,
		Topic:     s.topic,
		CreatedAt: s.timeNow(),
		UpdatedAt: s.timeNow(),
	}
	if err := s.outboxRepo.CreateTx(ctx, tx, task); err != nil {
		return fmt.Errorf("failed to enqueue order event: %w", err)
	}
	return nil
}

func toRepoOrder(order *domain.Order) (*repository.Order, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order items: %w", err)
	}
	address, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to encode shipping address: %w", err)
	}

	return &repository.Order{
		ID:              order.ID,
		Number:          order.Number,
		Items:           items,
		CustomerUserID:  order.Customer.UserID,
		CustomerName:    order.Customer.Name,
		CustomerEmail:   order.Customer.Email,
		ShippingAddress: address,
		VideoMessageURL: order.VideoMessageURL,
		Subtotal:        order.Subtotal,
		ShippingCost:    order.ShippingCost,
		Tax:             order.Tax,
		Total:           order.Total,
		Status:          string(order.Status),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}, nil
}

func toDomainOrder(repoOrder *repository.Order) (*domain.Order, error) {
	var items []domain.LineItem
	if len(repoOrder.Items) > 0 {
		if err := json.Unmarshal(repoOrder.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to decode order items: %w", err)
		}
	}
	var address domain.Address
	if len(repoOrder.ShippingAddress) > 0 {
		if err := json.Unmarshal(repoOrder.ShippingAddress, &address); err != nil {
			return nil, fmt.Errorf("failed to decode shipping address: %w", err)
		}
	}

	return &domain.Order{
		ID:     repoOrder.ID,
		Number: repoOrder.Number,
		Items:  items,
		Customer: domain.Customer{
			UserID: repoOrder.CustomerUserID,
			Name:   repoOrder.CustomerName,
			Email:  repoOrder.CustomerEmail,
		},
		ShippingAddress: address,
		VideoMessageURL: repoOrder.VideoMessageURL,
		Subtotal:        repoOrder.Subtotal,
		ShippingCost:    repoOrder.ShippingCost,
		Tax:             repoOrder.Tax,
		Total:           repoOrder.Total,
		Status:          domain.OrderStatus(repoOrder.Status),
		CreatedAt:       repoOrder.CreatedAt,
		UpdatedAt:       repoOrder.UpdatedAt,
	}, nil
}

func toDomainOrders(repoOrders []*repository.Order) ([]domain.Order, error) {
	orders := make([]domain.Order, 0, len(repoOrders))
	for _, repoOrder := range repoOrders {
		order, err := toDomainOrder(repoOrder)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}
