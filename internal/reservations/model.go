package reservations

import (
	"github.com/damda-platform/damda-admin/internal/audit"
	"github.com/damda-platform/damda-admin/internal/store"
)

// Schema binds the reservations table. Reservations are created by daycares
// through the member-facing product; the back office only inspects them and
// moves them through their status lifecycle.
var Schema = store.Schema{
	Table:         "reservations",
	Target:        audit.TargetReservation,
	SearchColumns: []string{"reservation_no", "daycare_name", "product_name"},
	Filters: map[string]store.Predicate{
		"status":     {Column: "status", Op: store.OpEq},
		"daycare_id": {Column: "daycare_id", Op: store.OpEq},
		"vendor_id":  {Column: "vendor_id", Op: store.OpEq},
		"dateFrom":   {Column: "reserved_at", Op: store.OpGTE},
		"dateTo":     {Column: "reserved_at", Op: store.OpLTE},
	},
	Sort: []store.Order{{Column: "reserved_at", Desc: true}},
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	Reason string `json:"reason" validate:"max=500"`
}

type BulkStatusRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1,max=100,dive,uuid"`
	Status string   `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}
