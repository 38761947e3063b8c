package audit

import (
	"context"
	"log/slog"

	"github.com/damda-platform/damda-admin/internal/metrics"
	inats "github.com/damda-platform/damda-admin/internal/nats"
)

// Sink appends audit records. Implementations are best-effort by contract:
// a failed append is reported on the operational log and dropped, never
// surfaced to the caller. The audit trail is a diagnostic artifact, not a
// consistency guarantee.
type Sink interface {
	Record(ctx context.Context, rec Record)
}

// Inserter is the slice of Repository the direct sink and the consumer
// depend on.
type Inserter interface {
	Insert(ctx context.Context, rec *Record) error
}

// NATSSink publishes records to the audit event subject; the Consumer
// persists them out-of-band.
type NATSSink struct {
	pub *inats.Publisher
}

// NewNATSSink creates a Sink backed by the JetStream publisher.
func NewNATSSink(pub *inats.Publisher) *NATSSink {
	return &NATSSink{pub: pub}
}

func (s *NATSSink) Record(ctx context.Context, rec Record) {
	event := inats.AuditEvent{
		ID:         rec.ID,
		ActorID:    rec.ActorID,
		Action:     string(rec.Action),
		TargetType: rec.TargetType,
		TargetID:   rec.TargetID,
		Before:     rec.Before,
		After:      rec.After,
		OccurredAt: rec.OccurredAt,
	}
	if err := s.pub.PublishAuditEvent(ctx, event); err != nil {
		metrics.AuditEventsDropped.Inc()
		slog.Error("audit sink: publishing record",
			"error", err,
			"action", rec.Action,
			"target_type", rec.TargetType,
			"target_id", rec.TargetID,
		)
		return
	}
	metrics.AuditEventsPublished.Inc()
}

// RepositorySink writes records straight to the database. Used when NATS is
// not configured; failures are swallowed the same way.
type RepositorySink struct {
	repo Inserter
}

// NewRepositorySink creates a Sink that persists directly.
func NewRepositorySink(repo Inserter) *RepositorySink {
	return &RepositorySink{repo: repo}
}

func (s *RepositorySink) Record(ctx context.Context, rec Record) {
	if err := s.repo.Insert(ctx, &rec); err != nil {
		metrics.AuditEventsDropped.Inc()
		slog.Error("audit sink: persisting record",
			"error", err,
			"action", rec.Action,
			"target_type", rec.TargetType,
			"target_id", rec.TargetID,
		)
		return
	}
	metrics.AuditEventsPublished.Inc()
}
