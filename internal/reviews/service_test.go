package reviews

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damda-platform/damda-admin/internal/audit"
	"github.com/damda-platform/damda-admin/internal/mutation"
	"github.com/damda-platform/damda-admin/internal/store"
)

// tableStore routes rows by schema table so the review and image tables can
// coexist in one fake.
type tableStore struct {
	tables map[string]map[string]store.Row
}

func newTableStore() *tableStore {
	return &tableStore{tables: map[string]map[string]store.Row{}}
}

func (f *tableStore) table(name string) map[string]store.Row {
	if f.tables[name] == nil {
		f.tables[name] = map[string]store.Row{}
	}
	return f.tables[name]
}

func (f *tableStore) Select(ctx context.Context, s store.Schema, q store.PagedQuery) ([]store.Row, int64, error) {
	var out []store.Row
	for _, r := range f.table(s.Table) {
		if want, ok := q.Filters["review_id"]; ok && r.String("review_id") != want {
			continue
		}
		out = append(out, r.Clone())
	}
	return out, int64(len(out)), nil
}

func (f *tableStore) Get(ctx context.Context, s store.Schema, id string) (store.Row, error) {
	r, ok := f.table(s.Table)[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return r.Clone(), nil
}

func (f *tableStore) Insert(ctx context.Context, s store.Schema, payload store.Row) (store.Row, error) {
	f.table(s.Table)[payload.ID()] = payload.Clone()
	return payload.Clone(), nil
}

func (f *tableStore) Update(ctx context.Context, s store.Schema, id string, patch store.Row) (store.Row, error) {
	r, ok := f.table(s.Table)[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	for k, v := range patch {
		r[k] = v
	}
	return r.Clone(), nil
}

func (f *tableStore) Delete(ctx context.Context, s store.Schema, id string) error {
	if _, ok := f.table(s.Table)[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.table(s.Table), id)
	return nil
}

type fakeObjects struct {
	deleted []string
	err     error
}

func (f *fakeObjects) Upload(ctx context.Context, path string, blob []byte, contentType string) (string, error) {
	return "https://cdn.example.com/" + path, nil
}

func (f *fakeObjects) Delete(ctx context.Context, path string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, path)
	return nil
}

type nullSink struct{ count int }

func (s *nullSink) Record(ctx context.Context, rec audit.Record) { s.count++ }

func seedReview(st *tableStore) {
	st.table("reviews")["r1"] = store.Row{"id": "r1", "content": "good"}
	st.table("review_images")["i1"] = store.Row{"id": "i1", "review_id": "r1", "storage_path": "reviews/r1/a.jpg"}
	st.table("review_images")["i2"] = store.Row{"id": "i2", "review_id": "r1", "storage_path": "reviews/r1/b.jpg"}
	st.table("review_images")["i3"] = store.Row{"id": "i3", "review_id": "other", "storage_path": "reviews/other/c.jpg"}
}

func TestDeleteCascadesImages(t *testing.T) {
	st := newTableStore()
	seedReview(st)
	objects := &fakeObjects{}
	sink := &nullSink{}
	svc := NewService(mutation.New(st, sink, nil), st, objects)

	require.NoError(t, svc.Delete(context.Background(), "r1", uuid.New()))

	assert.NotContains(t, st.table("reviews"), "r1")
	assert.NotContains(t, st.table("review_images"), "i1")
	assert.NotContains(t, st.table("review_images"), "i2")
	assert.Contains(t, st.table("review_images"), "i3", "other reviews keep their images")
	assert.ElementsMatch(t, []string{"reviews/r1/a.jpg", "reviews/r1/b.jpg"}, objects.deleted)
	assert.Equal(t, 1, sink.count, "one audit record for the review; image rows are not separately audited")
}

func TestDeleteSurvivesObjectStorageFailure(t *testing.T) {
	st := newTableStore()
	seedReview(st)
	objects := &fakeObjects{err: errors.New("storage down")}
	svc := NewService(mutation.New(st, &nullSink{}, nil), st, objects)

	require.NoError(t, svc.Delete(context.Background(), "r1", uuid.New()))
	assert.NotContains(t, st.table("reviews"), "r1", "review row still deleted")
}

func TestGetAttachesImages(t *testing.T) {
	st := newTableStore()
	seedReview(st)
	svc := NewService(mutation.New(st, &nullSink{}, nil), st, &fakeObjects{})

	review, err := svc.Get(context.Background(), "r1")
	require.NoError(t, err)

	images, ok := review["images"].([]store.Row)
	require.True(t, ok)
	assert.Len(t, images, 2)
}

func TestSetHidden(t *testing.T) {
	st := newTableStore()
	seedReview(st)
	sink := &nullSink{}
	svc := NewService(mutation.New(st, sink, nil), st, &fakeObjects{})

	hidden := true
	row, err := svc.SetHidden(context.Background(), "r1", &SetHiddenRequest{IsHidden: &hidden, Reason: "abuse"}, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, true, row["is_hidden"])
	assert.Equal(t, "abuse", row["hidden_reason"])
	assert.Equal(t, 1, sink.count)
}
