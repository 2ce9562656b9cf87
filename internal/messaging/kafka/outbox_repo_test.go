package kafka_test

import (
	"context"
	"testing"
	"time"

	"go-hrms/internal/docstore"
	"go-hrms/internal/messaging/kafka"

	"github.com/stretchr/testify/assert"
)

func newEvent(id string, createdAt time.Time) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            id,
		AggregateType: "leave",
		AggregateID:   "leave_1",
		EventType:     "leave.approved",
		Topic:         "hr.leave.decision.v1",
		Payload:       []byte(`{"leave_id":"leave_1"}`),
		Status:        kafka.OutboxStatusPending,
		CreatedAt:     createdAt,
	}
}

func TestOutboxRepository_CreateAndListPending(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryClient()
	repo := kafka.NewOutboxRepository(store)

	t.Run("success ordered by creation time", func(t *testing.T) {
		base := time.Now().UTC().Add(-time.Minute)
		assert.NoError(t, repo.Create(ctx, newEvent("ob_2", base.Add(10*time.Second))))
		assert.NoError(t, repo.Create(ctx, newEvent("ob_1", base)))

		events, err := repo.ListPending(ctx, 10)
		assert.NoError(t, err)
		assert.Len(t, events, 2)
		assert.Equal(t, "ob_1", events[0].ID)
		assert.Equal(t, "ob_2", events[1].ID)
	})

	t.Run("negative invalid event", func(t *testing.T) {
		err := repo.Create(ctx, kafka.OutboxEvent{ID: "", Topic: "t", Payload: []byte("x")})
		assert.Error(t, err)
	})
}

func TestOutboxRepository_MarkSent(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryClient()
	repo := kafka.NewOutboxRepository(store)

	assert.NoError(t, repo.Create(ctx, newEvent("ob_1", time.Now().UTC().Add(-time.Minute))))
	assert.NoError(t, repo.MarkSent(ctx, "ob_1"))

	events, err := repo.ListPending(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, events)

	doc, err := store.Get(ctx, kafka.OutboxCollection, "ob_1")
	assert.NoError(t, err)
	assert.Equal(t, kafka.OutboxStatusSent, docstore.String(doc.Fields, "status"))
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryClient()
	repo := kafka.NewOutboxRepository(store)

	assert.NoError(t, repo.Create(ctx, newEvent("ob_1", time.Now().UTC().Add(-time.Minute))))
	assert.NoError(t, repo.MarkFailed(ctx, "ob_1", "broker unavailable"))

	doc, err := store.Get(ctx, kafka.OutboxCollection, "ob_1")
	assert.NoError(t, err)
	assert.Equal(t, kafka.OutboxStatusFailed, docstore.String(doc.Fields, "status"))
	assert.Equal(t, 1, docstore.Int(doc.Fields, "retryCount"))

	// Backoff window keeps the event out of the pending list for now.
	events, err := repo.ListPending(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, events)
}

func TestValidateOutboxEvent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		assert.NoError(t, kafka.ValidateOutboxEvent(newEvent("ob_1", time.Now())))
	})

	t.Run("negative bad status", func(t *testing.T) {
		e := newEvent("ob_1", time.Now())
		e.Status = "done"
		assert.Error(t, kafka.ValidateOutboxEvent(e))
	})
}
