package payments

import (
	"github.com/damda-platform/damda-admin/internal/audit"
	"github.com/damda-platform/damda-admin/internal/store"
)

// Schema binds the payments table. Payments are written by the member-facing
// checkout; the back office lists them and issues refunds.
var Schema = store.Schema{
	Table:         "payments",
	Target:        audit.TargetPayment,
	SearchColumns: []string{"order_no", "daycare_name", "payment_key"},
	Filters: map[string]store.Predicate{
		"status":     {Column: "status", Op: store.OpEq},
		"method":     {Column: "method", Op: store.OpEq},
		"daycare_id": {Column: "daycare_id", Op: store.OpEq},
		"dateFrom":   {Column: "paid_at", Op: store.OpGTE},
		"dateTo":     {Column: "paid_at", Op: store.OpLTE},
	},
	Sort: []store.Order{{Column: "paid_at", Desc: true}},
}

// RefundSchema binds the refunds table, one row per gateway-confirmed refund.
var RefundSchema = store.Schema{
	Table:         "refunds",
	Target:        audit.TargetRefund,
	SearchColumns: []string{"order_no"},
	Filters: map[string]store.Predicate{
		"payment_id": {Column: "payment_id", Op: store.OpEq},
		"dateFrom":   {Column: "created_at", Op: store.OpGTE},
		"dateTo":     {Column: "created_at", Op: store.OpLTE},
	},
}

type RefundRequest struct {
	Amount int64  `json:"amount" validate:"required,min=1"`
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}
