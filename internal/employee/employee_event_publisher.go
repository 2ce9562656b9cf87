package employee

import (
	"context"
	"encoding/json"

	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/idgen"
)

type EventPublisher interface {
	PublishEmployeeCreated(ctx context.Context, event events.EmployeeCreatedEvent) error
}

type outboxPublisher struct {
	outbox kafka.OutboxRepository
}

func NewOutboxPublisher(outbox kafka.OutboxRepository) EventPublisher {
	return &outboxPublisher{outbox: outbox}
}

func (p *outboxPublisher) PublishEmployeeCreated(ctx context.Context, event events.EmployeeCreatedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            idgen.NewID("ob"),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "employee",
		AggregateID:   event.EmployeeID,
		EventType:     event.EventType,
		Topic:         events.EmployeeCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
