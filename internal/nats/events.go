package nats

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// FetchTimeout is the default timeout for batch fetching messages from consumers.
const FetchTimeout = 2 * time.Second

// StreamEvents holds all back-office events, audit records included.
const StreamEvents = "DAMDA_EVENTS"

// Subject constants.
const (
	SubjectAuditEvent = "damda.events.audit"
)

// AuditEvent is published for every audited back-office mutation and
// for admin login/logout. The consumer persists it to audit_logs.
type AuditEvent struct {
	ID         uuid.UUID       `json:"id"`
	ActorID    uuid.UUID       `json:"actor_id"`
	Action     string          `json:"action"`
	TargetType string          `json:"target_type"`
	TargetID   string          `json:"target_id"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}
