package reviews

import (
	"github.com/damda-platform/damda-admin/internal/audit"
	"github.com/damda-platform/damda-admin/internal/store"
)

// Schema binds the reviews table. Reviews come in from daycares; the back
// office moderates them (hide/show) and removes abusive ones.
var Schema = store.Schema{
	Table:  "reviews",
	Target: audit.TargetReview,
	Defaults: store.Row{
		"is_hidden": false,
	},
	SearchColumns: []string{"content", "daycare_name", "product_name"},
	Filters: map[string]store.Predicate{
		"rating":     {Column: "rating", Op: store.OpEq},
		"product_id": {Column: "product_id", Op: store.OpEq},
		"daycare_id": {Column: "daycare_id", Op: store.OpEq},
		"is_hidden":  {Column: "is_hidden", Op: store.OpEq},
		"dateFrom":   {Column: "created_at", Op: store.OpGTE},
		"dateTo":     {Column: "created_at", Op: store.OpLTE},
	},
}

// ImageSchema binds review_images, the owned sub-rows cascaded on review
// delete. Image rows are not independently audited; the review's delete
// record covers them.
var ImageSchema = store.Schema{
	Table:  "review_images",
	Target: audit.TargetReview,
	Filters: map[string]store.Predicate{
		"review_id": {Column: "review_id", Op: store.OpEq},
	},
}

type SetHiddenRequest struct {
	IsHidden *bool  `json:"is_hidden" validate:"required"`
	Reason   string `json:"reason" validate:"max=500"`
}
