package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	mock_db "github.com/alebedeva/cardforge/internal/db/mocks"
	"github.com/alebedeva/cardforge/internal/repository"
	mock_storage "github.com/alebedeva/cardforge/internal/storage/mocks"
)

type recordingProducer struct {
	sent   []string
	failOn map[string]error
}

func (p *recordingProducer) SendMessage(_ context.Context, topic string, key []byte, _ []byte) error {
	if err, ok := p.failOn[string(key)]; ok {
		return err
	}
	p.sent = append(p.sent, topic+"/"+string(key))
	return nil
}

func (p *recordingProducer) Close() error { return nil }

func TestPublisher_ProcessBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := mock_db.NewMockDB(ctrl)
	repo := mock_storage.NewMockOutboxTaskRepository(ctrl)
	producer := &recordingProducer{failOn: map[string]error{}}

	cfg := PublisherConfig{PollInterval: time.Second, BatchSize: 20, MaxAttempts: 5}
	p := NewPublisher(mockDB, repo, producer, cfg, zap.NewNop())
	ctx := context.Background()

	taskID := uuid.New()
	task := &repository.OutboxTask{
		ID:      taskID,
		Status:  repository.TaskStatusCreated,
		Topic:   "order_events",
		Payload: []byte(`{"event":"order_created"}`),
	}

	repo.EXPECT().
		GetProcessable(gomock.Any(), mockDB, 20, 5).
		Return([]*repository.OutboxTask{task}, nil)
	repo.EXPECT().
		UpdateStatus(gomock.Any(), mockDB, taskID, repository.TaskStatusProcessing, 0, nil, nil).
		Return(nil)
	repo.EXPECT().
		UpdateStatus(gomock.Any(), mockDB, taskID, repository.TaskStatusDone, 0, nil, gomock.Any()).
		Return(nil)

	require.NoError(t, p.processBatch(ctx))
	assert.Equal(t, []string{"order_events/" + taskID.String()}, producer.sent)
}

func TestPublisher_SendFailureMarksTaskFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockDB := mock_db.NewMockDB(ctrl)
	repo := mock_storage.NewMockOutboxTaskRepository(ctrl)

	cfg := PublisherConfig{PollInterval: time.Second, BatchSize: 20, MaxAttempts: 5}
	ctx := context.Background()

	taskID := uuid.New()
	task := &repository.OutboxTask{
		ID:       taskID,
		Status:   repository.TaskStatusFailed,
		Attempts: 1,
		Topic:    "order_events",
		Payload:  []byte(`{}`),
	}
	producer := &recordingProducer{failOn: map[string]error{
		taskID.String(): errors.New("broker unreachable"),
	}}
	p := NewPublisher(mockDB, repo, producer, cfg, zap.NewNop())

	repo.EXPECT().
		UpdateStatus(gomock.Any(), mockDB, taskID, repository.TaskStatusProcessing, 1, nil, nil).
		Return(nil)
	repo.EXPECT().
		UpdateStatus(gomock.Any(), mockDB, taskID, repository.TaskStatusFailed, 2, gomock.Any(), nil).
		DoAndReturn(func(_ context.Context, _ any, _ uuid.UUID, _ repository.TaskStatus, _ int, lastError *string, _ *time.Time) error {
			require.NotNil(t, lastError)
			assert.Contains(t, *lastError, "broker unreachable")
			return nil
		})

	err := p.processSingleTask(ctx, task)
	assert.ErrorContains(t, err, "broker unreachable")
	assert.Empty(t, producer.sent)
}
