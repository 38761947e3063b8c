package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/damda-platform/damda-admin/internal/cache"
	"github.com/damda-platform/damda-admin/internal/store"
)

// ServeList renders one page of a list, serving from the list cache when a
// fresh copy exists. Every list screen goes through here, so the pagination
// envelope is identical across entities.
func ServeList(w http.ResponseWriter, r *http.Request, lists *cache.Lists, entity string, q store.PagedQuery, fetch func() (any, int64, error)) {
	if lists != nil {
		if payload := lists.Get(r.Context(), entity, q); payload != nil {
			JSONRaw(w, http.StatusOK, payload)
			return
		}
	}

	data, total, err := fetch()
	if err != nil {
		HandleError(w, err)
		return
	}

	q = q.Normalize()
	resp := PaginatedResponse{
		Data:       data,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		slog.Error("marshaling list response", "entity", entity, "error", err)
		HandleError(w, ErrInternalServer)
		return
	}

	if lists != nil {
		lists.Set(r.Context(), entity, q, payload)
	}
	JSONRaw(w, http.StatusOK, payload)
}
