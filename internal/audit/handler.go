package audit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/damda-platform/damda-admin/internal/api"
)

// Handler serves the audit log browse screen.
type Handler struct {
	repo *Repository
}

// NewHandler creates a new audit Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List returns paginated audit records filtered by actor, action, target
// type/id, and date range.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	records, total, err := h.repo.List(r.Context(), params)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSONPaginated(w, http.StatusOK, records, total, params.Page, params.PageSize)
}

func parseListParams(r *http.Request) ListParams {
	params := DefaultListParams()

	q := r.URL.Query()
	if v := q.Get("actor_id"); v != "" {
		params.ActorID = v
	}
	if v := q.Get("action"); v != "" {
		params.Action = v
	}
	if v := q.Get("target_type"); v != "" {
		params.TargetType = v
	}
	if v := q.Get("target_id"); v != "" {
		params.TargetID = v
	}
	if v := q.Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			params.Page = page
		}
	}
	if v := q.Get("page_size"); v != "" {
		if pageSize, err := strconv.Atoi(v); err == nil && pageSize > 0 && pageSize <= 100 {
			params.PageSize = pageSize
		}
	}
	if v := q.Get("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			params.From = &t
		}
	}
	if v := q.Get("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			params.To = &t
		}
	}

	return params
}
