package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/damda-platform/damda-admin/internal/store"
)

// DecodeStrict decodes a JSON request body into v, rejecting unknown
// fields. Dynamic, untyped payloads never cross the handler boundary.
func DecodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return NewBadRequestError("malformed request body: " + err.Error())
	}
	return nil
}

// ParsePagedQuery reads page, page_size, and the given filter keys from the
// URL query. The `search` key is always read.
func ParsePagedQuery(r *http.Request, filterKeys ...string) store.PagedQuery {
	q := store.PagedQuery{Page: 1, PageSize: 20, Filters: map[string]string{}}

	query := r.URL.Query()
	if v := query.Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			q.Page = page
		}
	}
	if v := query.Get("page_size"); v != "" {
		if pageSize, err := strconv.Atoi(v); err == nil && pageSize > 0 && pageSize <= 100 {
			q.PageSize = pageSize
		}
	}
	for _, key := range filterKeys {
		if v := query.Get(key); v != "" {
			q.Filters[key] = v
		}
	}
	if v := query.Get("search"); v != "" {
		q.Filters["search"] = v
	}
	return q
}
