package mutation

import (
	"context"

	"github.com/google/uuid"

	"github.com/damda-platform/damda-admin/internal/store"
)

// BulkError reports one failed item of a bulk operation.
type BulkError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// BulkCreate inserts each payload in order. A failed item is recorded and
// the batch continues; the batch never aborts on first failure.
func (w *Wrapper) BulkCreate(ctx context.Context, s store.Schema, payloads []store.Row, actorID uuid.UUID) ([]store.Row, []BulkError) {
	var created []store.Row
	var failed []BulkError
	for i, payload := range payloads {
		row, err := w.Create(ctx, s, payload, actorID)
		if err != nil {
			failed = append(failed, BulkError{Index: i, Error: err.Error()})
			continue
		}
		created = append(created, row)
	}
	return created, failed
}

// BulkChangeStatus applies the same status write to each id in order,
// accumulating per-item failures.
func (w *Wrapper) BulkChangeStatus(ctx context.Context, s store.Schema, ids []string, field string, value any, actorID uuid.UUID) ([]store.Row, []BulkError) {
	var updated []store.Row
	var failed []BulkError
	for i, id := range ids {
		row, err := w.ChangeStatus(ctx, s, id, field, value, actorID, nil)
		if err != nil {
			failed = append(failed, BulkError{Index: i, Error: err.Error()})
			continue
		}
		updated = append(updated, row)
	}
	return updated, failed
}

// BulkDelete deletes each id in order, accumulating per-item failures.
func (w *Wrapper) BulkDelete(ctx context.Context, s store.Schema, ids []string, actorID uuid.UUID) []BulkError {
	var failed []BulkError
	for i, id := range ids {
		if err := w.Delete(ctx, s, id, actorID); err != nil {
			failed = append(failed, BulkError{Index: i, Error: err.Error()})
		}
	}
	return failed
}
