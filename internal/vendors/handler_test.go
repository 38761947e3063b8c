package vendors

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damda-platform/damda-admin/internal/audit"
	"github.com/damda-platform/damda-admin/internal/mutation"
	"github.com/damda-platform/damda-admin/internal/store"
)

type fakeStore struct {
	rows map[string]store.Row
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
	f.rows[payload.ID()] = payload.Clone()
	return payload.Clone(), nil
}

func (f *fakeStore) Update(ctx context.Context, s store.Schema, id string, patch store.Row) (store.Row, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	for k, v := range patch {
		r[k] = v
	}
	return r.Clone(), nil
}

func (f *fakeStore) Delete(ctx context.Context, s store.Schema, id string) error {
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

func newTestRouter() (*chi.Mux, *fakeStore, *recordingSink) {
	st := &fakeStore{rows: map[string]store.Row{}}
	sink := &recordingSink{}
	h := NewHandler(NewService(mutation.New(st, sink, nil), st), nil)

	r := chi.NewRouter()
	r.Route("/vendors", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Patch("/bulk/status", h.BulkChangeStatus)
		r.Get("/{vendorID}", h.Get)
		r.Put("/{vendorID}", h.Update)
		r.Patch("/{vendorID}/status", h.ChangeStatus)
		r.Delete("/{vendorID}", h.Delete)
	})
	return r, st, sink
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateVendor(t *testing.T) {
	r, st, sink := newTestRouter()

	rec := doJSON(r, http.MethodPost, "/vendors", `{
		"name": "숲속상회",
		"owner_name": "김담다",
		"email": "owner@forest.kr",
		"category": "food"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "숲속상회", resp.Data["name"])
	assert.Equal(t, "pending", resp.Data["status"], "schema default applied")

	assert.Len(t, st.rows, 1)
	require.Len(t, sink.records, 1)
	assert.Equal(t, audit.ActionCreate, sink.records[0].Action)
	assert.Equal(t, "vendor", sink.records[0].TargetType)
}

func TestCreateVendorRejectsUnknownFields(t *testing.T) {
	r, st, _ := newTestRouter()
	rec := doJSON(r, http.MethodPost, "/vendors", `{"name":"x","owner_name":"y","email":"a@b.kr","category":"food","is_admin":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, st.rows)
}

func TestCreateVendorValidation(t *testing.T) {
	r, _, sink := newTestRouter()
	rec := doJSON(r, http.MethodPost, "/vendors", `{"name":"x","owner_name":"y","email":"not-an-email","category":"food"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, sink.records, "rejected input is never audited")
}

func TestGetVendorNotFound(t *testing.T) {
	r, _, _ := newTestRouter()
	rec := doJSON(r, http.MethodGet, "/vendors/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListVendorsEnvelope(t *testing.T) {
	r, st, _ := newTestRouter()
	st.rows["v1"] = store.Row{"id": "v1", "name": "a"}

	rec := doJSON(r, http.MethodGet, "/vendors?page=1&page_size=20&status=all", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data       []map[string]any `json:"data"`
		TotalCount int64            `json:"total_count"`
		Page       int              `json:"page"`
		PageSize   int              `json:"page_size"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.TotalCount)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
	require.Len(t, resp.Data, 1)
}

func TestChangeStatusInvalidValue(t *testing.T) {
	r, st, _ := newTestRouter()
	st.rows["v1"] = store.Row{"id": "v1", "status": "pending"}

	rec := doJSON(r, http.MethodPatch, "/vendors/v1/status", `{"status":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "pending", st.rows["v1"]["status"])
}

func TestChangeStatusWithReason(t *testing.T) {
	r, st, sink := newTestRouter()
	st.rows["v1"] = store.Row{"id": "v1", "status": "pending"}

	rec := doJSON(r, http.MethodPatch, "/vendors/v1/status", `{"status":"rejected","reason":"missing license"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rejected", st.rows["v1"]["status"])
	assert.Equal(t, "missing license", st.rows["v1"]["status_reason"])

	require.Len(t, sink.records, 1)
	assert.Equal(t, audit.ActionStatusChange, sink.records[0].Action)
}

func TestDeleteVendor(t *testing.T) {
	r, st, sink := newTestRouter()
	st.rows["v1"] = store.Row{"id": "v1", "name": "gone"}

	rec := doJSON(r, http.MethodDelete, "/vendors/v1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, st.rows)

	require.Len(t, sink.records, 1)
	assert.Equal(t, audit.ActionDelete, sink.records[0].Action)
	assert.NotNil(t, sink.records[0].Before)
	assert.Nil(t, sink.records[0].After)
}

func TestBulkChangeStatusPartialFailure(t *testing.T) {
	r, st, _ := newTestRouter()
	id1 := "0b2b9a66-0c3f-4b58-9d39-0d5a6f3d8e01"
	id2 := "0b2b9a66-0c3f-4b58-9d39-0d5a6f3d8e02"
	st.rows[id1] = store.Row{"id": id1, "status": "pending"}

	rec := doJSON(r, http.MethodPatch, "/vendors/bulk/status",
		`{"ids":["`+id1+`","`+id2+`"],"status":"approved"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data   []map[string]any `json:"data"`
		Failed []struct {
			Index int    `json:"index"`
			Error string `json:"error"`
		} `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	require.Len(t, resp.Failed, 1)
	assert.Equal(t, 1, resp.Failed[0].Index)
}
