package postgresql

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alebedeva/cardforge/internal/db"
	"github.com/alebedeva/cardforge/internal/repository"
)

type OutboxTaskRepo struct{}

func NewOutboxTaskRepo() *OutboxTaskRepo {
	return &OutboxTaskRepo{}
}

func (r *OutboxTaskRepo) CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO outbox_tasks (id, status, payload, topic, attempts, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, task.ID, task.Status, task.Payload, task.Topic, task.Attempts, task.CreatedAt, task.UpdatedAt)
	return err
}

// GetProcessable picks up fresh tasks plus failed ones below the attempt cap.
func (r *OutboxTaskRepo) GetProcessable(ctx context.Context, db db.DB, limit, maxAttempts int) ([]*repository.OutboxTask, error) {
	var tasks []*repository.OutboxTask
	err := db.Select(ctx, &tasks, `
        SELECT * FROM outbox_tasks
        WHERE status = $1 OR (status = $2 AND attempts < $3)
        ORDER BY created_at ASC
        LIMIT $4
    `, repository.TaskStatusCreated, repository.TaskStatusFailed, maxAttempts, limit)
	return tasks, err
}

func (r *OutboxTaskRepo) UpdateStatus(ctx context.Context, db db.DB, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error {
	_, err := db.Exec(ctx, `
        UPDATE outbox_tasks
        SET status = $1, attempts = $2, last_error = $3, completed_at = $4, updated_at = $5
        WHERE id = $6
    `, status, attempts, lastError, completedAt, time.Now().UTC(), id)
	return err
}
