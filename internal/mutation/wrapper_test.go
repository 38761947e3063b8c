package mutation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damda-platform/damda-admin/internal/audit"
	"github.com/damda-platform/damda-admin/internal/store"
)

// fakeStore keeps rows in a map and lets tests inject failures.
type fakeStore struct {
	rows       map[string]store.Row
	insertErr  error
	updateErr  error
	deleteErr  error
	lastInsert store.Row
	lastPatch  store.Row
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[string]store.Row{}}
}

func (f *fakeStore) Select(ctx context.Context, s store.Schema, q store.PagedQuery) ([]store.Row, int64, error) {
	var out []store.Row
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStore) Get(ctx context.Context, s store.Schema, id string) (store.Row, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return r.Clone(), nil
}

func (f *fakeStore) Insert(ctx context.Context, s store.Schema, payload store.Row) (store.Row, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.lastInsert = payload.Clone()
	f.rows[payload.ID()] = payload.Clone()
	return payload.Clone(), nil
}

func (f *fakeStore) Update(ctx context.Context, s store.Schema, id string, patch store.Row) (store.Row, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	r, ok := f.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	f.lastPatch = patch.Clone()
	for k, v := range patch {
		r[k] = v
	}
	return r.Clone(), nil
}

func (f *fakeStore) Delete(ctx context.Context, s store.Schema, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type recordingSink struct {
	records []audit.Record
}

func (s *recordingSink) Record(ctx context.Context, rec audit.Record) {
	s.records = append(s.records, rec)
}

var widgetSchema = store.Schema{
	Table:  "widgets",
	Target: "widget",
	Defaults: store.Row{
		"status":     "pending",
		"is_visible": true,
	},
}

func TestCreateMergesDefaultsAndStamps(t *testing.T) {
	st := newFakeStore()
	sink := &recordingSink{}
	w := New(st, sink, nil)

	actor := uuid.New()
	created, err := w.Create(context.Background(), widgetSchema, store.Row{"name": "bear"}, actor)
	require.NoError(t, err)

	assert.Equal(t, "bear", st.lastInsert["name"])
	assert.Equal(t, "pending", st.lastInsert["status"])
	assert.Equal(t, true, st.lastInsert["is_visible"])
	assert.NotEmpty(t, created.ID())
	assert.Equal(t, st.lastInsert["created_at"], st.lastInsert["updated_at"])

	require.Len(t, sink.records, 1)
	rec := sink.records[0]
	assert.Equal(t, audit.ActionCreate, rec.Action)
	assert.Equal(t, "widget", rec.TargetType)
	assert.Equal(t, created.ID(), rec.TargetID)
	assert.Equal(t, actor, rec.ActorID)
	assert.Nil(t, rec.Before)
	assert.NotNil(t, rec.After)
}

func TestCreateDoesNotOverrideExplicitValues(t *testing.T) {
	st := newFakeStore()
	w := New(st, &recordingSink{}, nil)

	_, err := w.Create(context.Background(), widgetSchema, store.Row{"name": "x", "status": "approved"}, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "approved", st.lastInsert["status"])
}

func TestCreateEmptyPayload(t *testing.T) {
	w := New(newFakeStore(), &recordingSink{}, nil)
	_, err := w.Create(context.Background(), widgetSchema, nil, uuid.New())
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCreateStoreFailureSkipsAudit(t *testing.T) {
	st := newFakeStore()
	st.insertErr = &store.StoreError{Op: "insert", Table: "widgets"}
	sink := &recordingSink{}
	w := New(st, sink, nil)

	_, err := w.Create(context.Background(), widgetSchema, store.Row{"name": "x"}, uuid.New())
	require.Error(t, err)
	assert.Empty(t, sink.records)
}

func TestUpdateCapturesBothSnapshots(t *testing.T) {
	st := newFakeStore()
	st.rows["w1"] = store.Row{"id": "w1", "name": "old", "updated_at": time.Now().Add(-time.Hour)}
	sink := &recordingSink{}
	w := New(st, sink, nil)

	updated, err := w.Update(context.Background(), widgetSchema, "w1", store.Row{"name": "new"}, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "new", updated["name"])

	require.Len(t, sink.records, 1)
	rec := sink.records[0]
	assert.Equal(t, audit.ActionUpdate, rec.Action)

	var before map[string]any
	require.NoError(t, json.Unmarshal(rec.Before, &before))
	assert.Equal(t, "old", before["name"])

	var after map[string]any
	require.NoError(t, json.Unmarshal(rec.After, &after))
	assert.Equal(t, "new", after["name"])
}

func TestUpdateMissingRow(t *testing.T) {
	sink := &recordingSink{}
	w := New(newFakeStore(), sink, nil)

	_, err := w.Update(context.Background(), widgetSchema, "nope", store.Row{"name": "x"}, uuid.New())
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "widget", nf.Target)
	assert.Empty(t, sink.records, "no audit record before the write happens")
}

func TestUpdateStripsProtectedColumns(t *testing.T) {
	st := newFakeStore()
	st.rows["w1"] = store.Row{"id": "w1", "name": "old"}
	w := New(st, &recordingSink{}, nil)

	_, err := w.Update(context.Background(), widgetSchema, "w1", store.Row{
		"name":       "new",
		"id":         "hijacked",
		"created_at": time.Now(),
	}, uuid.New())
	require.NoError(t, err)

	assert.NotContains(t, st.lastPatch, "id")
	assert.NotContains(t, st.lastPatch, "created_at")
	assert.Contains(t, st.lastPatch, "updated_at")
}

func TestUpdateStampStrictlyGreaterUnderFrozenClock(t *testing.T) {
	frozen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st := newFakeStore()
	st.rows["w1"] = store.Row{"id": "w1", "name": "a", "updated_at": frozen}

	w := New(st, &recordingSink{}, nil)
	w.now = func() time.Time { return frozen }

	_, err := w.Update(context.Background(), widgetSchema, "w1", store.Row{"name": "b"}, uuid.New())
	require.NoError(t, err)

	stamped, ok := st.lastPatch["updated_at"].(time.Time)
	require.True(t, ok)
	assert.True(t, stamped.After(frozen), "updated_at must move forward even when the clock does not")
}

func TestUpdateStampSurvivesMicrosecondTruncation(t *testing.T) {
	prev := time.Date(2026, 3, 1, 12, 0, 0, 5000, time.UTC) // 5µs past the second
	st := newFakeStore()
	st.rows["w1"] = store.Row{"id": "w1", "name": "a", "updated_at": prev}

	w := New(st, &recordingSink{}, nil)
	// The clock has advanced, but by less than the database's microsecond
	// resolution.
	w.now = func() time.Time { return prev.Add(500 * time.Nanosecond) }

	_, err := w.Update(context.Background(), widgetSchema, "w1", store.Row{"name": "b"}, uuid.New())
	require.NoError(t, err)

	stamped, ok := st.lastPatch["updated_at"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, stamped, stamped.Truncate(time.Microsecond), "stamp must be microsecond-aligned")
	assert.True(t, stamped.Truncate(time.Microsecond).After(prev.Truncate(time.Microsecond)),
		"updated_at must stay strictly greater after the database rounds it")
}

// failingAuditRepo simulates the audit backend being unreachable.
type failingAuditRepo struct{}

func (failingAuditRepo) Insert(ctx context.Context, rec *audit.Record) error {
	return errors.New("audit store down")
}

func TestMutationUnaffectedByAuditBackendFailure(t *testing.T) {
	st := newFakeStore()
	w := New(st, audit.NewRepositorySink(failingAuditRepo{}), nil)

	created, err := w.Create(context.Background(), widgetSchema, store.Row{"name": "bear"}, uuid.New())
	require.NoError(t, err, "a dropped audit record must not fail the create")
	assert.Equal(t, "bear", created["name"])

	updated, err := w.Update(context.Background(), widgetSchema, created.ID(), store.Row{"name": "cub"}, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "cub", updated["name"])

	assert.NoError(t, w.Delete(context.Background(), widgetSchema, created.ID(), uuid.New()))
}

func TestChangeStatusLogsDistinctAction(t *testing.T) {
	st := newFakeStore()
	st.rows["w1"] = store.Row{"id": "w1", "status": "pending"}
	sink := &recordingSink{}
	w := New(st, sink, nil)

	updated, err := w.ChangeStatus(context.Background(), widgetSchema, "w1", "status", "approved", uuid.New(), store.Row{"status_reason": "docs ok"})
	require.NoError(t, err)
	assert.Equal(t, "approved", updated["status"])
	assert.Equal(t, "docs ok", updated["status_reason"])

	require.Len(t, sink.records, 1)
	assert.Equal(t, audit.ActionStatusChange, sink.records[0].Action)
}

func TestChangeStatusIdempotentToggleStillAudits(t *testing.T) {
	st := newFakeStore()
	st.rows["w1"] = store.Row{"id": "w1", "is_visible": true}
	sink := &recordingSink{}
	w := New(st, sink, nil)

	updated, err := w.ChangeStatus(context.Background(), widgetSchema, "w1", "is_visible", true, uuid.New(), nil)
	require.NoError(t, err)
	assert.Equal(t, true, updated["is_visible"])
	require.Len(t, sink.records, 1)
}

func TestDeleteRecordsBeforeOnly(t *testing.T) {
	st := newFakeStore()
	st.rows["w1"] = store.Row{"id": "w1", "name": "gone"}
	sink := &recordingSink{}
	w := New(st, sink, nil)

	require.NoError(t, w.Delete(context.Background(), widgetSchema, "w1", uuid.New()))
	assert.NotContains(t, st.rows, "w1")

	require.Len(t, sink.records, 1)
	rec := sink.records[0]
	assert.Equal(t, audit.ActionDelete, rec.Action)
	assert.NotNil(t, rec.Before)
	assert.Nil(t, rec.After)
}

func TestDeleteMissingRow(t *testing.T) {
	w := New(newFakeStore(), &recordingSink{}, nil)
	err := w.Delete(context.Background(), widgetSchema, "nope", uuid.New())
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestExactlyOneAuditRecordPerMutation(t *testing.T) {
	st := newFakeStore()
	sink := &recordingSink{}
	w := New(st, sink, nil)
	actor := uuid.New()

	created, err := w.Create(context.Background(), widgetSchema, store.Row{"name": "a"}, actor)
	require.NoError(t, err)
	_, err = w.Update(context.Background(), widgetSchema, created.ID(), store.Row{"name": "b"}, actor)
	require.NoError(t, err)
	require.NoError(t, w.Delete(context.Background(), widgetSchema, created.ID(), actor))

	assert.Len(t, sink.records, 3)
}
