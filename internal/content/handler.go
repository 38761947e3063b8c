package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/damda-platform/damda-admin/internal/api"
	"github.com/damda-platform/damda-admin/internal/auth"
	"github.com/damda-platform/damda-admin/internal/cache"
	"github.com/damda-platform/damda-admin/internal/store"
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

// The content entities share handler shapes, so the per-entity exported
// methods delegate to these.

func (h *Handler) list(w http.ResponseWriter, r *http.Request, schema store.Schema, filterKeys ...string) {
	q := api.ParsePagedQuery(r, filterKeys...)
	api.ServeList(w, r, h.lists, schema.Target, q, func() (any, int64, error) {
		return h.svc.List(r.Context(), schema, q)
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, schema store.Schema, param string) {
	row, err := h.svc.Get(r.Context(), schema, chi.URLParam(r, param))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, row)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, schema store.Schema, req interface{ row() store.Row }) {
	if err := api.DecodeStrict(r, req); err != nil {
		api.HandleError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}
	row, err := h.svc.Create(r.Context(), schema, req.row(), auth.ActorID(r.Context()))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusCreated, row)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, schema store.Schema, param string, req interface{ patch() store.Row }) {
	if err := api.DecodeStrict(r, req); err != nil {
		api.HandleError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}
	row, err := h.svc.Update(r.Context(), schema, chi.URLParam(r, param), req.patch(), auth.ActorID(r.Context()))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, row)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, schema store.Schema, param, message string) {
	if err := h.svc.Delete(r.Context(), schema, chi.URLParam(r, param), auth.ActorID(r.Context())); err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSONMessage(w, http.StatusOK, message)
}

// Notices

func (h *Handler) ListNotices(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, NoticeSchema, "is_pinned", "is_visible", "dateFrom", "dateTo")
}

func (h *Handler) GetNotice(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, NoticeSchema, "noticeID")
}

func (h *Handler) CreateNotice(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, NoticeSchema, &CreateNoticeRequest{})
}

func (h *Handler) UpdateNotice(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, NoticeSchema, "noticeID", &UpdateNoticeRequest{})
}

func (h *Handler) DeleteNotice(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, NoticeSchema, "noticeID", "notice deleted")
}

// FAQs

func (h *Handler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, FAQSchema, "category", "is_visible")
}

func (h *Handler) GetFAQ(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, FAQSchema, "faqID")
}

func (h *Handler) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, FAQSchema, &CreateFAQRequest{})
}

func (h *Handler) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, FAQSchema, "faqID", &UpdateFAQRequest{})
}

func (h *Handler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, FAQSchema, "faqID", "faq deleted")
}

// Banners

func (h *Handler) ListBanners(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, BannerSchema, "is_visible", "activeFrom", "activeTo")
}

func (h *Handler) GetBanner(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, BannerSchema, "bannerID")
}

func (h *Handler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, BannerSchema, &CreativeRequest{})
}

func (h *Handler) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, BannerSchema, "bannerID", &UpdateCreativeRequest{})
}

func (h *Handler) SetBannerVisibility(w http.ResponseWriter, r *http.Request) {
	h.setVisibility(w, r, BannerSchema, "bannerID")
}

func (h *Handler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, BannerSchema, "bannerID", "banner deleted")
}

// Popups

func (h *Handler) ListPopups(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, PopupSchema, "is_visible", "activeFrom", "activeTo")
}

func (h *Handler) GetPopup(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, PopupSchema, "popupID")
}

func (h *Handler) CreatePopup(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, PopupSchema, &CreativeRequest{})
}

func (h *Handler) UpdatePopup(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, PopupSchema, "popupID", &UpdateCreativeRequest{})
}

func (h *Handler) SetPopupVisibility(w http.ResponseWriter, r *http.Request) {
	h.setVisibility(w, r, PopupSchema, "popupID")
}

func (h *Handler) DeletePopup(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, PopupSchema, "popupID", "popup deleted")
}

type setVisibilityRequest struct {
	IsVisible *bool `json:"is_visible" validate:"required"`
}

func (h *Handler) setVisibility(w http.ResponseWriter, r *http.Request, schema store.Schema, param string) {
	var req setVisibilityRequest
	if err := api.DecodeStrict(r, &req); err != nil {
		api.HandleError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}
	row, err := h.svc.SetVisibility(r.Context(), schema, chi.URLParam(r, param), *req.IsVisible, auth.ActorID(r.Context()))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, row)
}

// Legal documents

func (h *Handler) ListLegal(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, LegalSchema, "kind")
}

func (h *Handler) GetLegal(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, LegalSchema, "documentID")
}

func (h *Handler) CreateLegal(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, LegalSchema, &CreateLegalRequest{})
}

func (h *Handler) UpdateLegal(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, LegalSchema, "documentID", &UpdateLegalRequest{})
}

func (h *Handler) PublishLegal(w http.ResponseWriter, r *http.Request) {
	row, err := h.svc.PublishLegal(r.Context(), chi.URLParam(r, "documentID"), auth.ActorID(r.Context()))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, row)
}

func (h *Handler) DeleteLegal(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, LegalSchema, "documentID", "legal document deleted")
}

// Inquiries

func (h *Handler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, InquirySchema, "status", "category", "dateFrom", "dateTo")
}

func (h *Handler) GetInquiry(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, InquirySchema, "inquiryID")
}

func (h *Handler) AnswerInquiry(w http.ResponseWriter, r *http.Request) {
	var req AnswerInquiryRequest
	if err := api.DecodeStrict(r, &req); err != nil {
		api.HandleError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}
	row, err := h.svc.AnswerInquiry(r.Context(), chi.URLParam(r, "inquiryID"), req.Answer, auth.ActorID(r.Context()))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, row)
}

func (h *Handler) DeleteInquiry(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, InquirySchema, "inquiryID", "inquiry deleted")
}
