package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go/jetstream"

	inats "github.com/damda-platform/damda-admin/internal/nats"
)

// Consumer listens on the audit event NATS subject and persists records to
// the database.
type Consumer struct {
	repo        Inserter
	consumerMgr *inats.ConsumerManager
}

// NewConsumer creates a new audit event Consumer.
func NewConsumer(repo Inserter, consumerMgr *inats.ConsumerManager) *Consumer {
	return &Consumer{
		repo:        repo,
		consumerMgr: consumerMgr,
	}
}

// Start begins the consume loop. Blocks until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	consumer, err := c.consumerMgr.EnsureConsumer(ctx, inats.StreamEvents, "audit-persister", inats.SubjectAuditEvent)
	if err != nil {
		return err
	}

	slog.Info("audit consumer started", "consumer", "audit-persister")

	for {
		msgs, err := consumer.Fetch(10, jetstream.FetchMaxWait(inats.FetchTimeout))
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.Debug("audit consumer: fetching events", "error", err)
			continue
		}

		for msg := range msgs.Messages() {
			c.handleEvent(ctx, msg)
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *Consumer) handleEvent(ctx context.Context, msg jetstream.Msg) {
	if err := c.persistEvent(ctx, msg.Data()); err != nil {
		slog.Error("audit consumer: handling event", "error", err)
		_ = msg.Nak()
		return
	}
	_ = msg.Ack()
}

// persistEvent decodes one published audit event and writes it to the
// repository. The returned error decides ack vs nak.
func (c *Consumer) persistEvent(ctx context.Context, data []byte) error {
	var event inats.AuditEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("unmarshaling audit event: %w", err)
	}

	rec := &Record{
		ID:         event.ID,
		ActorID:    event.ActorID,
		Action:     Action(event.Action),
		TargetType: event.TargetType,
		TargetID:   event.TargetID,
		Before:     event.Before,
		After:      event.After,
		OccurredAt: event.OccurredAt,
	}

	if err := c.repo.Insert(ctx, rec); err != nil {
		return fmt.Errorf("persisting audit record: %w", err)
	}

	slog.Debug("audit consumer: persisted record",
		"action", event.Action,
		"target_type", event.TargetType,
		"target_id", event.TargetID,
	)
	return nil
}
