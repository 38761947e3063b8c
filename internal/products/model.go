package products

import (
	"github.com/damda-platform/damda-admin/internal/audit"
	"github.com/damda-platform/damda-admin/internal/store"
)

// Schema binds the products table to the mutation pipeline. Products always
// belong to a vendor; the vendor_id filter drives the per-vendor listing on
// the vendor detail screen.
var Schema = store.Schema{
	Table:  "products",
	Target: audit.TargetProduct,
	Defaults: store.Row{
		"status":     "draft",
		"is_visible": true,
	},
	SearchColumns: []string{"name", "description"},
	Filters: map[string]store.Predicate{
		"status":    {Column: "status", Op: store.OpEq},
		"category":  {Column: "category", Op: store.OpEq},
		"vendor_id": {Column: "vendor_id", Op: store.OpEq},
		"priceFrom": {Column: "price", Op: store.OpGTE},
		"priceTo":   {Column: "price", Op: store.OpLTE},
		"dateFrom":  {Column: "created_at", Op: store.OpGTE},
		"dateTo":    {Column: "created_at", Op: store.OpLTE},
	},
}

type CreateProductRequest struct {
	VendorID    string `json:"vendor_id" validate:"required,uuid"`
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=5000"`
	Category    string `json:"category" validate:"required,min=1,max=100"`
	Price       int64  `json:"price" validate:"min=0"`
	StockCount  int    `json:"stock_count" validate:"min=0"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

func (req *CreateProductRequest) row() store.Row {
	return store.Row{
		"vendor_id":   req.VendorID,
		"name":        req.Name,
		"description": req.Description,
		"category":    req.Category,
		"price":       req.Price,
		"stock_count": req.StockCount,
		"image_url":   req.ImageURL,
	}
}

type UpdateProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Category    *string `json:"category" validate:"omitempty,min=1,max=100"`
	Price       *int64  `json:"price" validate:"omitempty,min=0"`
	StockCount  *int    `json:"stock_count" validate:"omitempty,min=0"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
}

func (req *UpdateProductRequest) patch() store.Row {
	patch := store.Row{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.Category != nil {
		patch["category"] = *req.Category
	}
	if req.Price != nil {
		patch["price"] = *req.Price
	}
	if req.StockCount != nil {
		patch["stock_count"] = *req.StockCount
	}
	if req.ImageURL != nil {
		patch["image_url"] = *req.ImageURL
	}
	return patch
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft on_sale sold_out discontinued"`
}

type SetVisibilityRequest struct {
	IsVisible *bool `json:"is_visible" validate:"required"`
}

type BulkStatusRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1,max=100,dive,uuid"`
	Status string   `json:"status" validate:"required,oneof=draft on_sale sold_out discontinued"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=100,dive,uuid"`
}
