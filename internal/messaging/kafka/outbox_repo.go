package kafka

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go-hrms/internal/docstore"
)

const OutboxCollection = "OutboxEvent"

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	LastError     string
	NextRetryAt   time.Time
	CreatedAt     time.Time
}

type OutboxRepository interface {
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type outboxRepository struct {
	store docstore.Client
}

func NewOutboxRepository(store docstore.Client) OutboxRepository {
	return &outboxRepository{store: store}
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	return r.store.Create(ctx, OutboxCollection, event.ID, toFields(event))
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	docs, err := r.store.Scan(ctx, OutboxCollection)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	events := make([]OutboxEvent, 0, limit)
	for _, doc := range docs {
		e := fromFields(doc.ID, doc.Fields)
		if e.Status != OutboxStatusPending && e.Status != OutboxStatusFailed {
			continue
		}
		if !e.NextRetryAt.IsZero() && e.NextRetryAt.After(now) {
			continue
		}
		events = append(events, e)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})

	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// MarkSent rewrites the document with the sent status. The store has no
// partial update, so the old document is deleted and recreated under the
// same id.
func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	return r.rewrite(ctx, id, func(e *OutboxEvent) {
		e.Status = OutboxStatusSent
		e.LastError = ""
	})
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	if len(reason) > 500 {
		reason = reason[:500]
	}
	return r.rewrite(ctx, id, func(e *OutboxEvent) {
		e.Status = OutboxStatusFailed
		e.RetryCount++
		e.LastError = reason

		backoff := e.RetryCount
		if backoff > 10 {
			backoff = 10
		}
		e.NextRetryAt = time.Now().UTC().Add(time.Duration(backoff) * 15 * time.Second)
	})
}

func (r *outboxRepository) rewrite(ctx context.Context, id string, mutate func(*OutboxEvent)) error {
	doc, err := r.store.Get(ctx, OutboxCollection, id)
	if err != nil {
		return err
	}

	event := fromFields(doc.ID, doc.Fields)
	mutate(&event)

	if err := r.store.Delete(ctx, OutboxCollection, id); err != nil {
		return err
	}
	return r.store.Create(ctx, OutboxCollection, id, toFields(event))
}

func toFields(e OutboxEvent) docstore.Fields {
	return docstore.Fields{
		"requestId":     e.RequestID,
		"aggregateType": e.AggregateType,
		"aggregateId":   e.AggregateID,
		"eventType":     e.EventType,
		"topic":         e.Topic,
		"payload":       string(e.Payload),
		"status":        e.Status,
		"retryCount":    e.RetryCount,
		"lastError":     e.LastError,
		"nextRetryAt":   e.NextRetryAt,
		"createdAt":     e.CreatedAt,
	}
}

func fromFields(id string, f docstore.Fields) OutboxEvent {
	return OutboxEvent{
		ID:            id,
		RequestID:     docstore.String(f, "requestId"),
		AggregateType: docstore.String(f, "aggregateType"),
		AggregateID:   docstore.String(f, "aggregateId"),
		EventType:     docstore.String(f, "eventType"),
		Topic:         docstore.String(f, "topic"),
		Payload:       []byte(docstore.String(f, "payload")),
		Status:        docstore.String(f, "status"),
		RetryCount:    docstore.Int(f, "retryCount"),
		LastError:     docstore.String(f, "lastError"),
		NextRetryAt:   docstore.Time(f, "nextRetryAt"),
		CreatedAt:     docstore.Time(f, "createdAt"),
	}
}

func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
