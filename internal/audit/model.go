package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Action tags what kind of mutation produced a record. StatusChange shares
// Update's write shape but signals a semantically distinct event to audit
// readers.
type Action string

const (
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionStatusChange Action = "status_change"
	ActionLogin        Action = "login"
	ActionLogout       Action = "logout"
)

// Target type of every audited entity kind.
const (
	TargetVendor        = "vendor"
	TargetDaycare       = "daycare"
	TargetProduct       = "product"
	TargetReservation   = "reservation"
	TargetPayment       = "payment"
	TargetRefund        = "refund"
	TargetReview        = "review"
	TargetNotice        = "notice"
	TargetFAQ           = "faq"
	TargetBanner        = "banner"
	TargetPopup         = "popup"
	TargetLegalDocument = "legal_document"
	TargetInquiry       = "inquiry"
	TargetAdmin         = "admin"
)

// Record matches the audit_logs table schema. Immutable once written: the
// application never updates or deletes audit rows.
//
// Snapshot shape: Before is present for update/delete/status_change and
// absent for create; After is present for create/update/status_change and
// absent for delete.
type Record struct {
	ID         uuid.UUID       `json:"id"`
	ActorID    uuid.UUID       `json:"actor_id"`
	Action     Action          `json:"action"`
	TargetType string          `json:"target_type"`
	TargetID   string          `json:"target_id"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// ListParams holds pagination and filtering parameters for audit log queries.
type ListParams struct {
	ActorID    string
	Action     string
	TargetType string
	TargetID   string
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

// DefaultListParams returns sensible defaults.
func DefaultListParams() ListParams {
	return ListParams{
		Page:     1,
		PageSize: 20,
	}
}
