package daycares

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
	q := api.ParsePagedQuery(r, "status", "region", "dateFrom", "dateTo")
	api.ServeList(w, r, h.lists, audit.TargetDaycare, q, func() (any, int64, error) {
		return h.svc.List(r.Context(), q)
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	row, err := h.svc.Get(r.Context(), chi.URLParam(r, "daycareID"))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, row)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDaycareRequest
	if err := api.DecodeStrict(r, &req); err != nil {
		api.HandleError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}

	row, err := h.svc.Create(r.Context(), &req, auth.ActorID(r.Context()))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusCreated, row)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateDaycareRequest
	if err := api.DecodeStrict(r, &req); err != nil {
		api.HandleError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}

	row, err := h.svc.Update(r.Context(), chi.URLParam(r, "daycareID"), &req, auth.ActorID(r.Context()))
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

	row, err := h.svc.ChangeStatus(r.Context(), chi.URLParam(r, "daycareID"), req.Status, auth.ActorID(r.Context()))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, row)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "daycareID"), auth.ActorID(r.Context())); err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSONMessage(w, http.StatusOK, "daycare deleted")
}
