package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the entity store boundary: filterable paginated reads plus
// row-level insert/update/delete, all on opaque rows.
type Store interface {
	Select(ctx context.Context, s Schema, q PagedQuery) ([]Row, int64, error)
	Get(ctx context.Context, s Schema, id string) (Row, error)
	Insert(ctx context.Context, s Schema, payload Row) (Row, error)
	Update(ctx context.Context, s Schema, id string, patch Row) (Row, error)
	Delete(ctx context.Context, s Schema, id string) error
}

type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Store backed by a pgx pool.
func NewPostgres(pool *pgxpool.Pool) Store {
	return &postgresStore{pool: pool}
}

// Select returns one page of matching rows plus the total match count.
// A page beyond the last one yields an empty slice with the correct total.
func (ps *postgresStore) Select(ctx context.Context, s Schema, q PagedQuery) ([]Row, int64, error) {
	q = q.Normalize()
	where, args := buildWhere(s, q.Filters)

	countQuery := "SELECT COUNT(*) FROM " + s.Table + where
	var total int64
	if err := ps.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, storeErr("count", s.Table, err)
	}

	dataQuery := fmt.Sprintf("SELECT * FROM %s%s%s LIMIT $%d OFFSET $%d",
		s.Table, where, buildOrderBy(s), len(args)+1, len(args)+2)
	args = append(args, q.PageSize, q.Offset())

	rows, err := ps.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, storeErr("select", s.Table, err)
	}
	defer rows.Close()

	out, err := collectRows(rows)
	if err != nil {
		return nil, 0, storeErr("select", s.Table, err)
	}
	return out, total, nil
}

func (ps *postgresStore) Get(ctx context.Context, s Schema, id string) (Row, error) {
	rows, err := ps.pool.Query(ctx, "SELECT * FROM "+s.Table+" WHERE id = $1", id)
	if err != nil {
		return nil, storeErr("get", s.Table, err)
	}
	defer rows.Close()

	row, err := collectOneRow(rows)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr("get", s.Table, err)
	}
	return row, nil
}

func (ps *postgresStore) Insert(ctx context.Context, s Schema, payload Row) (Row, error) {
	cols := rowKeys(payload)
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = payload[col]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		s.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	rows, err := ps.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("insert", s.Table, err)
	}
	defer rows.Close()

	row, err := collectOneRow(rows)
	if err != nil {
		return nil, storeErr("insert", s.Table, err)
	}
	return row, nil
}

func (ps *postgresStore) Update(ctx context.Context, s Schema, id string, patch Row) (Row, error) {
	cols := rowKeys(patch)
	if len(cols) == 0 {
		return ps.Get(ctx, s, id)
	}

	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	args = append(args, id)
	for i, col := range cols {
		args = append(args, patch[col])
		sets[i] = fmt.Sprintf("%s = $%d", col, len(args))
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $1 RETURNING *",
		s.Table, strings.Join(sets, ", "))

	rows, err := ps.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("update", s.Table, err)
	}
	defer rows.Close()

	row, err := collectOneRow(rows)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr("update", s.Table, err)
	}
	return row, nil
}

func (ps *postgresStore) Delete(ctx context.Context, s Schema, id string) error {
	tag, err := ps.pool.Exec(ctx, "DELETE FROM "+s.Table+" WHERE id = $1", id)
	if err != nil {
		return storeErr("delete", s.Table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// collectRows materializes a result set as opaque rows keyed by column name.
func collectRows(rows pgx.Rows) ([]Row, error) {
	var out []Row
	fields := rows.FieldDescriptions()
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("reading row values: %w", err)
		}
		row := make(Row, len(fields))
		for i, fd := range fields {
			row[fd.Name] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func collectOneRow(rows pgx.Rows) (Row, error) {
	collected, err := collectRows(rows)
	if err != nil {
		return nil, err
	}
	if len(collected) == 0 {
		return nil, pgx.ErrNoRows
	}
	return collected[0], nil
}

func rowKeys(r Row) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
