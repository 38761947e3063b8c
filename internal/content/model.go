package content

import (
	"github.com/damda-platform/damda-admin/internal/audit"
	"github.com/damda-platform/damda-admin/internal/store"
)

// Schemas for the site-content tables. These all ride the same mutation
// pipeline as the commerce entities; only the columns and sort orders differ.
var (
	// Pinned notices float above the rest regardless of age.
	NoticeSchema = store.Schema{
		Table:  "notices",
		Target: audit.TargetNotice,
		Defaults: store.Row{
			"is_pinned":  false,
			"is_visible": true,
		},
		SearchColumns: []string{"title", "body"},
		Filters: map[string]store.Predicate{
			"is_pinned":  {Column: "is_pinned", Op: store.OpEq},
			"is_visible": {Column: "is_visible", Op: store.OpEq},
			"dateFrom":   {Column: "created_at", Op: store.OpGTE},
			"dateTo":     {Column: "created_at", Op: store.OpLTE},
		},
		Sort: []store.Order{{Column: "is_pinned", Desc: true}},
	}

	FAQSchema = store.Schema{
		Table:  "faqs",
		Target: audit.TargetFAQ,
		Defaults: store.Row{
			"sort_order": 0,
			"is_visible": true,
		},
		SearchColumns: []string{"question", "answer"},
		Filters: map[string]store.Predicate{
			"category":   {Column: "category", Op: store.OpEq},
			"is_visible": {Column: "is_visible", Op: store.OpEq},
		},
		Sort: []store.Order{{Column: "sort_order"}},
	}

	BannerSchema = store.Schema{
		Table:  "banners",
		Target: audit.TargetBanner,
		Defaults: store.Row{
			"sort_order": 0,
			"is_visible": true,
		},
		SearchColumns: []string{"title"},
		Filters: map[string]store.Predicate{
			"is_visible": {Column: "is_visible", Op: store.OpEq},
			"activeFrom": {Column: "ends_at", Op: store.OpGTE},
			"activeTo":   {Column: "starts_at", Op: store.OpLTE},
		},
		Sort: []store.Order{{Column: "sort_order"}},
	}

	PopupSchema = store.Schema{
		Table:  "popups",
		Target: audit.TargetPopup,
		Defaults: store.Row{
			"sort_order": 0,
			"is_visible": true,
		},
		SearchColumns: []string{"title"},
		Filters: map[string]store.Predicate{
			"is_visible": {Column: "is_visible", Op: store.OpEq},
			"activeFrom": {Column: "ends_at", Op: store.OpGTE},
			"activeTo":   {Column: "starts_at", Op: store.OpLTE},
		},
		Sort: []store.Order{{Column: "sort_order"}},
	}

	LegalSchema = store.Schema{
		Table:         "legal_documents",
		Target:        audit.TargetLegalDocument,
		SearchColumns: []string{"title", "body"},
		Filters: map[string]store.Predicate{
			"kind": {Column: "kind", Op: store.OpEq},
		},
		Sort: []store.Order{{Column: "published_at", Desc: true}},
	}

	InquirySchema = store.Schema{
		Table:  "inquiries",
		Target: audit.TargetInquiry,
		Defaults: store.Row{
			"status": "waiting",
		},
		SearchColumns: []string{"title", "body", "author_name"},
		Filters: map[string]store.Predicate{
			"status":   {Column: "status", Op: store.OpEq},
			"category": {Column: "category", Op: store.OpEq},
			"dateFrom": {Column: "created_at", Op: store.OpGTE},
			"dateTo":   {Column: "created_at", Op: store.OpLTE},
		},
	}
)

type CreateNoticeRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=255"`
	Body     string `json:"body" validate:"required"`
	IsPinned bool   `json:"is_pinned"`
}

func (req *CreateNoticeRequest) row() store.Row {
	return store.Row{"title": req.Title, "body": req.Body, "is_pinned": req.IsPinned}
}

type UpdateNoticeRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1,max=255"`
	Body      *string `json:"body" validate:"omitempty,min=1"`
	IsPinned  *bool   `json:"is_pinned"`
	IsVisible *bool   `json:"is_visible"`
}

func (req *UpdateNoticeRequest) patch() store.Row {
	patch := store.Row{}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.Body != nil {
		patch["body"] = *req.Body
	}
	if req.IsPinned != nil {
		patch["is_pinned"] = *req.IsPinned
	}
	if req.IsVisible != nil {
		patch["is_visible"] = *req.IsVisible
	}
	return patch
}

type CreateFAQRequest struct {
	Category  string `json:"category" validate:"required,min=1,max=100"`
	Question  string `json:"question" validate:"required,min=1,max=500"`
	Answer    string `json:"answer" validate:"required"`
	SortOrder int    `json:"sort_order" validate:"min=0"`
}

func (req *CreateFAQRequest) row() store.Row {
	return store.Row{
		"category":   req.Category,
		"question":   req.Question,
		"answer":     req.Answer,
		"sort_order": req.SortOrder,
	}
}

type UpdateFAQRequest struct {
	Category  *string `json:"category" validate:"omitempty,min=1,max=100"`
	Question  *string `json:"question" validate:"omitempty,min=1,max=500"`
	Answer    *string `json:"answer" validate:"omitempty,min=1"`
	SortOrder *int    `json:"sort_order" validate:"omitempty,min=0"`
	IsVisible *bool   `json:"is_visible"`
}

func (req *UpdateFAQRequest) patch() store.Row {
	patch := store.Row{}
	if req.Category != nil {
		patch["category"] = *req.Category
	}
	if req.Question != nil {
		patch["question"] = *req.Question
	}
	if req.Answer != nil {
		patch["answer"] = *req.Answer
	}
	if req.SortOrder != nil {
		patch["sort_order"] = *req.SortOrder
	}
	if req.IsVisible != nil {
		patch["is_visible"] = *req.IsVisible
	}
	return patch
}

// CreativeRequest covers banners and popups, which share a shape: an image,
// a link, a display window, and a slot order.
type CreativeRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=255"`
	ImageURL  string `json:"image_url" validate:"required,url"`
	LinkURL   string `json:"link_url" validate:"omitempty,url"`
	SortOrder int    `json:"sort_order" validate:"min=0"`
	StartsAt  string `json:"starts_at" validate:"omitempty,datetime=2006-01-02"`
	EndsAt    string `json:"ends_at" validate:"omitempty,datetime=2006-01-02"`
}

func (req *CreativeRequest) row() store.Row {
	r := store.Row{
		"title":      req.Title,
		"image_url":  req.ImageURL,
		"link_url":   req.LinkURL,
		"sort_order": req.SortOrder,
	}
	if req.StartsAt != "" {
		r["starts_at"] = req.StartsAt
	}
	if req.EndsAt != "" {
		r["ends_at"] = req.EndsAt
	}
	return r
}

type UpdateCreativeRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1,max=255"`
	ImageURL  *string `json:"image_url" validate:"omitempty,url"`
	LinkURL   *string `json:"link_url" validate:"omitempty,url"`
	SortOrder *int    `json:"sort_order" validate:"omitempty,min=0"`
	StartsAt  *string `json:"starts_at" validate:"omitempty,datetime=2006-01-02"`
	EndsAt    *string `json:"ends_at" validate:"omitempty,datetime=2006-01-02"`
	IsVisible *bool   `json:"is_visible"`
}

func (req *UpdateCreativeRequest) patch() store.Row {
	patch := store.Row{}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.ImageURL != nil {
		patch["image_url"] = *req.ImageURL
	}
	if req.LinkURL != nil {
		patch["link_url"] = *req.LinkURL
	}
	if req.SortOrder != nil {
		patch["sort_order"] = *req.SortOrder
	}
	if req.StartsAt != nil {
		patch["starts_at"] = *req.StartsAt
	}
	if req.EndsAt != nil {
		patch["ends_at"] = *req.EndsAt
	}
	if req.IsVisible != nil {
		patch["is_visible"] = *req.IsVisible
	}
	return patch
}

type CreateLegalRequest struct {
	Kind    string `json:"kind" validate:"required,oneof=terms privacy marketing"`
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Body    string `json:"body" validate:"required"`
	Version string `json:"version" validate:"required,min=1,max=50"`
}

func (req *CreateLegalRequest) row() store.Row {
	return store.Row{
		"kind":    req.Kind,
		"title":   req.Title,
		"body":    req.Body,
		"version": req.Version,
	}
}

type UpdateLegalRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=255"`
	Body    *string `json:"body" validate:"omitempty,min=1"`
	Version *string `json:"version" validate:"omitempty,min=1,max=50"`
}

func (req *UpdateLegalRequest) patch() store.Row {
	patch := store.Row{}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.Body != nil {
		patch["body"] = *req.Body
	}
	if req.Version != nil {
		patch["version"] = *req.Version
	}
	return patch
}

// AnswerInquiryRequest closes an inquiry with the admin's reply.
type AnswerInquiryRequest struct {
	Answer string `json:"answer" validate:"required,min=1"`
}
