package daycares

import (
	"github.com/damda-platform/damda-admin/internal/audit"
	"github.com/damda-platform/damda-admin/internal/store"
)

// Schema binds the daycares (member) table to the mutation pipeline.
var Schema = store.Schema{
	Table:  "daycares",
	Target: audit.TargetDaycare,
	Defaults: store.Row{
		"status": "active",
	},
	SearchColumns: []string{"name", "director_name", "email", "phone"},
	Filters: map[string]store.Predicate{
		"status":   {Column: "status", Op: store.OpEq},
		"region":   {Column: "region", Op: store.OpEq},
		"dateFrom": {Column: "created_at", Op: store.OpGTE},
		"dateTo":   {Column: "created_at", Op: store.OpLTE},
	},
}

type CreateDaycareRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=255"`
	DirectorName string `json:"director_name" validate:"required,min=1,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"max=30"`
	Region       string `json:"region" validate:"required,min=1,max=100"`
	Address      string `json:"address" validate:"max=500"`
	LicenseNo    string `json:"license_no" validate:"max=50"`
	ChildCount   int    `json:"child_count" validate:"min=0"`
}

func (req *CreateDaycareRequest) row() store.Row {
	return store.Row{
		"name":          req.Name,
		"director_name": req.DirectorName,
		"email":         req.Email,
		"phone":         req.Phone,
		"region":        req.Region,
		"address":       req.Address,
		"license_no":    req.LicenseNo,
		"child_count":   req.ChildCount,
	}
}

type UpdateDaycareRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=255"`
	DirectorName *string `json:"director_name" validate:"omitempty,min=1,max=100"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone" validate:"omitempty,max=30"`
	Region       *string `json:"region" validate:"omitempty,min=1,max=100"`
	Address      *string `json:"address" validate:"omitempty,max=500"`
	LicenseNo    *string `json:"license_no" validate:"omitempty,max=50"`
	ChildCount   *int    `json:"child_count" validate:"omitempty,min=0"`
}

func (req *UpdateDaycareRequest) patch() store.Row {
	patch := store.Row{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.DirectorName != nil {
		patch["director_name"] = *req.DirectorName
	}
	if req.Email != nil {
		patch["email"] = *req.Email
	}
	if req.Phone != nil {
		patch["phone"] = *req.Phone
	}
	if req.Region != nil {
		patch["region"] = *req.Region
	}
	if req.Address != nil {
		patch["address"] = *req.Address
	}
	if req.LicenseNo != nil {
		patch["license_no"] = *req.LicenseNo
	}
	if req.ChildCount != nil {
		patch["child_count"] = *req.ChildCount
	}
	return patch
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended withdrawn"`
}
