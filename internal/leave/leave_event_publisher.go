package leave

import (
	"context"
	"encoding/json"

	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/idgen"
)

type EventPublisher interface {
	PublishLeaveDecided(ctx context.Context, event events.LeaveDecidedEvent) error
}

// outboxPublisher stages events in the outbox collection; the producer
// worker ships them to kafka.
type outboxPublisher struct {
	outbox kafka.OutboxRepository
}

func NewOutboxPublisher(outbox kafka.OutboxRepository) EventPublisher {
	return &outboxPublisher{outbox: outbox}
}

func (p *outboxPublisher) PublishLeaveDecided(ctx context.Context, event events.LeaveDecidedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            idgen.NewID("ob"),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave",
		AggregateID:   event.LeaveID,
		EventType:     event.EventType,
		Topic:         events.LeaveDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
