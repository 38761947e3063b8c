package payments

import (
	"errors"
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
	q := api.ParsePagedQuery(r, "status", "method", "daycare_id", "dateFrom", "dateTo")
	api.ServeList(w, r, h.lists, audit.TargetPayment, q, func() (any, int64, error) {
		return h.svc.List(r.Context(), q)
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	row, err := h.svc.Get(r.Context(), chi.URLParam(r, "paymentID"))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, row)
}

func (h *Handler) ListRefunds(w http.ResponseWriter, r *http.Request) {
	q := api.ParsePagedQuery(r, "payment_id", "dateFrom", "dateTo")
	api.ServeList(w, r, h.lists, audit.TargetRefund, q, func() (any, int64, error) {
		return h.svc.ListRefunds(r.Context(), q)
	})
}

func (h *Handler) Refund(w http.ResponseWriter, r *http.Request) {
	var req RefundRequest
	if err := api.DecodeStrict(r, &req); err != nil {
		api.HandleError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}

	refund, err := h.svc.Refund(r.Context(), chi.URLParam(r, "paymentID"), &req, auth.ActorID(r.Context()))
	if err != nil {
		var gwErr *GatewayError
		if errors.As(err, &gwErr) {
			api.JSONError(w, http.StatusBadGateway, gwErr)
			return
		}
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusCreated, refund)
}
