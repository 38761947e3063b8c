package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/damda-platform/damda-admin/internal/store"
)

// Repository handles audit_logs PostgreSQL operations. Append and read only.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new audit Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert persists a single audit record.
func (r *Repository) Insert(ctx context.Context, rec *Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_logs (id, actor_id, action, target_type, target_id, before_snapshot, after_snapshot, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO NOTHING`,
		rec.ID, rec.ActorID, rec.Action, rec.TargetType, rec.TargetID, rec.Before, rec.After, rec.OccurredAt)
	if err != nil {
		return fmt.Errorf("inserting audit log: %w", err)
	}
	return nil
}

// List returns paginated audit records with optional filters. Read failures
// propagate as *store.StoreError so the browse screen maps them like any
// other list backend rejection.
func (r *Repository) List(ctx context.Context, params ListParams) ([]Record, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}

	where, args := listWhere(params)

	countQuery := "SELECT COUNT(*) FROM audit_logs" + where
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, &store.StoreError{Op: "count", Table: "audit_logs", Err: err}
	}

	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(
		`SELECT id, actor_id, action, target_type, target_id, before_snapshot, after_snapshot, occurred_at
		 FROM audit_logs%s
		 ORDER BY occurred_at DESC, id ASC
		 LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, &store.StoreError{Op: "select", Table: "audit_logs", Err: err}
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.ActorID, &rec.Action, &rec.TargetType,
			&rec.TargetID, &rec.Before, &rec.After, &rec.OccurredAt); err != nil {
			return nil, 0, &store.StoreError{Op: "scan", Table: "audit_logs", Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, &store.StoreError{Op: "select", Table: "audit_logs", Err: err}
	}

	return records, total, nil
}

// listWhere translates ListParams into a WHERE clause and its arguments,
// skipping empty filters and the "all" sentinel.
func listWhere(params ListParams) (string, []any) {
	var conditions []string
	var args []any

	add := func(cond string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if params.ActorID != "" {
		add("actor_id = $%d", params.ActorID)
	}
	if params.Action != "" && params.Action != store.FilterAll {
		add("action = $%d", params.Action)
	}
	if params.TargetType != "" && params.TargetType != store.FilterAll {
		add("target_type = $%d", params.TargetType)
	}
	if params.TargetID != "" {
		add("target_id = $%d", params.TargetID)
	}
	if params.From != nil {
		add("occurred_at >= $%d", *params.From)
	}
	if params.To != nil {
		add("occurred_at <= $%d", *params.To)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
