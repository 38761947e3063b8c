package mutation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/damda-platform/damda-admin/internal/audit"
	"github.com/damda-platform/damda-admin/internal/cache"
	"github.com/damda-platform/damda-admin/internal/metrics"
	"github.com/damda-platform/damda-admin/internal/store"
)

// Wrapper performs entity mutations with an audit trail: capture-before,
// mutate, capture-after, log, invalidate. The audit write is best-effort:
// it never rolls back or fails the primary mutation. The before-read and
// the write are not transactional; under concurrent edits the before
// snapshot may be stale, which is accepted because the audit log is
// diagnostic, not authoritative.
type Wrapper struct {
	store store.Store
	sink  audit.Sink
	lists *cache.Lists // nil disables invalidation
	now   func() time.Time
}

// New creates a Wrapper. lists may be nil.
func New(st store.Store, sink audit.Sink, lists *cache.Lists) *Wrapper {
	return &Wrapper{
		store: st,
		sink:  sink,
		lists: lists,
		now:   time.Now,
	}
}

// Create inserts payload with the schema's defaults merged in for absent
// keys and both timestamps stamped, then logs a create record carrying the
// after snapshot only.
func (w *Wrapper) Create(ctx context.Context, s store.Schema, payload store.Row, actorID uuid.UUID) (store.Row, error) {
	if len(payload) == 0 {
		return nil, NewValidationError("empty payload")
	}

	merged := payload.Clone()
	for k, v := range s.Defaults {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	if _, ok := merged["id"]; !ok {
		merged["id"] = uuid.New()
	}
	now := w.now()
	merged["created_at"] = now
	merged["updated_at"] = now

	created, err := w.store.Insert(ctx, s, merged)
	if err != nil {
		metrics.MutationsTotal.WithLabelValues(string(audit.ActionCreate), s.Target, "error").Inc()
		return nil, err
	}

	w.finish(ctx, s, audit.ActionCreate, actorID, created.ID(), nil, created)
	return created, nil
}

// Update reads the current row for the before snapshot, applies patch plus
// a stamped updated_at, writes, and logs an update record with both
// snapshots. A missing row fails with NotFoundError before any write or
// log attempt.
func (w *Wrapper) Update(ctx context.Context, s store.Schema, id string, patch store.Row, actorID uuid.UUID) (store.Row, error) {
	return w.write(ctx, s, id, patch, actorID, audit.ActionUpdate)
}

// ChangeStatus shares Update's write shape but logs a status_change record,
// a semantically distinct event for audit readers. extra carries fields
// stamped alongside the status (e.g. answered_at).
func (w *Wrapper) ChangeStatus(ctx context.Context, s store.Schema, id, field string, value any, actorID uuid.UUID, extra store.Row) (store.Row, error) {
	patch := extra.Clone()
	if patch == nil {
		patch = store.Row{}
	}
	patch[field] = value
	return w.write(ctx, s, id, patch, actorID, audit.ActionStatusChange)
}

// Delete reads the row for the before snapshot, deletes it, and logs a
// delete record with the before snapshot only. Owned sub-rows are the
// caller's responsibility; the wrapper does not cascade.
func (w *Wrapper) Delete(ctx context.Context, s store.Schema, id string, actorID uuid.UUID) error {
	before, err := w.store.Get(ctx, s, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &NotFoundError{Target: s.Target, ID: id}
		}
		return err
	}

	if err := w.store.Delete(ctx, s, id); err != nil {
		metrics.MutationsTotal.WithLabelValues(string(audit.ActionDelete), s.Target, "error").Inc()
		if errors.Is(err, store.ErrNotFound) {
			return &NotFoundError{Target: s.Target, ID: id}
		}
		return err
	}

	w.finish(ctx, s, audit.ActionDelete, actorID, id, before, nil)
	return nil
}

func (w *Wrapper) write(ctx context.Context, s store.Schema, id string, patch store.Row, actorID uuid.UUID, action audit.Action) (store.Row, error) {
	if len(patch) == 0 {
		return nil, NewValidationError("empty patch")
	}

	before, err := w.store.Get(ctx, s, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Target: s.Target, ID: id}
		}
		return nil, err
	}

	stamped := patch.Clone()
	delete(stamped, "id")
	delete(stamped, "created_at")
	stamped["updated_at"] = w.stampAfter(before)

	updated, err := w.store.Update(ctx, s, id, stamped)
	if err != nil {
		metrics.MutationsTotal.WithLabelValues(string(action), s.Target, "error").Inc()
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Target: s.Target, ID: id}
		}
		return nil, err
	}

	w.finish(ctx, s, action, actorID, id, before, updated)
	return updated, nil
}

// stampAfter produces an updated_at strictly greater than the row's prior
// value, even under a clock that hasn't ticked past it. Stamps are truncated
// to microseconds to match timestamptz resolution, so the ordering survives
// the round-trip through the database.
func (w *Wrapper) stampAfter(before store.Row) time.Time {
	now := w.now().Truncate(time.Microsecond)
	if prev, ok := before["updated_at"].(time.Time); ok {
		prev = prev.Truncate(time.Microsecond)
		if !now.After(prev) {
			return prev.Add(time.Microsecond)
		}
	}
	return now
}

// finish records metrics, appends the audit record, and drops the entity's
// cached list pages. Runs only after a successful primary mutation; exactly
// one audit record per mutation.
func (w *Wrapper) finish(ctx context.Context, s store.Schema, action audit.Action, actorID uuid.UUID, targetID string, before, after store.Row) {
	metrics.MutationsTotal.WithLabelValues(string(action), s.Target, "ok").Inc()

	w.sink.Record(ctx, audit.Record{
		ID:         uuid.New(),
		ActorID:    actorID,
		Action:     action,
		TargetType: s.Target,
		TargetID:   targetID,
		Before:     snapshot(before),
		After:      snapshot(after),
		OccurredAt: w.now(),
	})

	if w.lists != nil {
		w.lists.Invalidate(ctx, s.Target)
	}
}

func snapshot(r store.Row) json.RawMessage {
	if r == nil {
		return nil
	}
	return r.Snapshot()
}
