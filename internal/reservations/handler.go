package reservations

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/damda-platform/damda-admin/internal/api"
	"github.com/damda-platform/damda-admin/internal/audit"
	"github.com/damda-platform/damda-admin/internal/auth"
	"github.com/damda-platform/damda-admin/internal/cache"
)

type Handler struct {
	svc      *Service
	lists    *cache.Lists
	validate *validator.Validate
}

func NewHandler(svc *Service, lists *cache.Lists) *Handler {
	return &Handler{
		svc:      svc,
		lists:    lists,
		validate: validator.New(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := api.ParsePagedQuery(r, "status", "daycare_id", "vendor_id", "dateFrom", "dateTo")
	api.ServeList(w, r, h.lists, audit.TargetReservation, q, func() (any, int64, error) {
		return h.svc.List(r.Context(), q)
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	row, err := h.svc.Get(r.Context(), chi.URLParam(r, "reservationID"))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, row)
}

func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req ChangeStatusRequest
	if err := api.DecodeStrict(r, &req); err != nil {
		api.HandleError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}

	row, err := h.svc.ChangeStatus(r.Context(), chi.URLParam(r, "reservationID"), &req, auth.ActorID(r.Context()))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, row)
}

func (h *Handler) BulkChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req BulkStatusRequest
	if err := api.DecodeStrict(r, &req); err != nil {
		api.HandleError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}

	updated, failed := h.svc.BulkChangeStatus(r.Context(), &req, auth.ActorID(r.Context()))
	api.JSONBulk(w, http.StatusOK, updated, failed)
}
