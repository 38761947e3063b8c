package vendors

import (
	"github.com/damda-platform/damda-admin/internal/audit"
	"github.com/damda-platform/damda-admin/internal/store"
)

// Schema binds the vendors table to the mutation pipeline.
var Schema = store.Schema{
	Table:  "vendors",
	Target: audit.TargetVendor,
	Defaults: store.Row{
		"status":     "pending",
		"is_visible": true,
	},
	SearchColumns: []string{"name", "owner_name", "email"},
	Filters: map[string]store.Predicate{
		"status":   {Column: "status", Op: store.OpEq},
		"category": {Column: "category", Op: store.OpEq},
		"dateFrom": {Column: "created_at", Op: store.OpGTE},
		"dateTo":   {Column: "created_at", Op: store.OpLTE},
	},
}

type CreateVendorRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	OwnerName   string `json:"owner_name" validate:"required,min=1,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"max=30"`
	Category    string `json:"category" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=2000"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
	Status      string `json:"status" validate:"omitempty,oneof=pending approved rejected suspended"`
}

func (req *CreateVendorRequest) row() store.Row {
	row := store.Row{
		"name":        req.Name,
		"owner_name":  req.OwnerName,
		"email":       req.Email,
		"phone":       req.Phone,
		"category":    req.Category,
		"description": req.Description,
		"logo_url":    req.LogoURL,
	}
	if req.Status != "" {
		row["status"] = req.Status
	}
	return row
}

type UpdateVendorRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	OwnerName   *string `json:"owner_name" validate:"omitempty,min=1,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=30"`
	Category    *string `json:"category" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	LogoURL     *string `json:"logo_url" validate:"omitempty,url"`
	IsVisible   *bool   `json:"is_visible"`
}

func (req *UpdateVendorRequest) patch() store.Row {
	patch := store.Row{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.OwnerName != nil {
		patch["owner_name"] = *req.OwnerName
	}
	if req.Email != nil {
		patch["email"] = *req.Email
	}
	if req.Phone != nil {
		patch["phone"] = *req.Phone
	}
	if req.Category != nil {
		patch["category"] = *req.Category
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.LogoURL != nil {
		patch["logo_url"] = *req.LogoURL
	}
	if req.IsVisible != nil {
		patch["is_visible"] = *req.IsVisible
	}
	return patch
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected suspended"`
	Reason string `json:"reason" validate:"max=500"`
}

type BulkCreateRequest struct {
	Vendors []CreateVendorRequest `json:"vendors" validate:"required,min=1,max=100,dive"`
}

type BulkStatusRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1,max=100,dive,uuid"`
	Status string   `json:"status" validate:"required,oneof=pending approved rejected suspended"`
}
