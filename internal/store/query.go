package store

import (
	"fmt"
	"strings"
	"time"
)

// FilterAll is the sentinel value that disables an enum filter. Every list
// screen sends it for "show everything", so it must never become a predicate.
const FilterAll = "all"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PagedQuery selects one page of a filtered list.
type PagedQuery struct {
	Page     int
	PageSize int
	Filters  map[string]string
}

// Normalize clamps page and page size into their valid ranges.
func (q PagedQuery) Normalize() PagedQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > maxPageSize {
		q.PageSize = defaultPageSize
	}
	return q
}

// Offset returns the row offset of the page window.
func (q PagedQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// buildWhere translates the query's filters into a WHERE clause with $n
// placeholders, in the argument order of the returned slice. Filter keys
// without a schema predicate are ignored; enum filters with the value "all"
// apply no predicate; `search` ORs a substring match over the schema's
// search columns.
func buildWhere(s Schema, filters map[string]string) (string, []any) {
	var conditions []string
	var args []any

	// Deterministic clause order: schema predicate keys are iterated in a
	// stable order so the same filter set always builds the same SQL.
	for _, key := range sortedKeys(s.Filters) {
		value, ok := filters[key]
		if !ok || value == "" {
			continue
		}
		pred := s.Filters[key]
		if value == FilterAll && pred.Op == OpEq {
			continue
		}

		switch pred.Op {
		case OpEq:
			args = append(args, value)
			conditions = append(conditions, fmt.Sprintf("%s = $%d", pred.Column, len(args)))
		case OpILike:
			args = append(args, "%"+value+"%")
			conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", pred.Column, len(args)))
		case OpIn:
			args = append(args, splitList(value))
			conditions = append(conditions, fmt.Sprintf("%s = ANY($%d)", pred.Column, len(args)))
		case OpGTE:
			args = append(args, parseTime(value, false))
			conditions = append(conditions, fmt.Sprintf("%s >= $%d", pred.Column, len(args)))
		case OpLTE:
			args = append(args, parseTime(value, true))
			conditions = append(conditions, fmt.Sprintf("%s <= $%d", pred.Column, len(args)))
		}
	}

	if term, ok := filters["search"]; ok && term != "" && len(s.SearchColumns) > 0 {
		args = append(args, "%"+term+"%")
		n := len(args)
		ors := make([]string, len(s.SearchColumns))
		for i, col := range s.SearchColumns {
			ors[i] = fmt.Sprintf("%s ILIKE $%d", col, n)
		}
		conditions = append(conditions, "("+strings.Join(ors, " OR ")+")")
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// buildOrderBy renders the schema's sort terms plus the stable tiebreak.
func buildOrderBy(s Schema) string {
	terms := s.sortTerms()
	parts := make([]string, len(terms))
	for i, t := range terms {
		dir := "ASC"
		if t.Desc {
			dir = "DESC"
		}
		parts[i] = t.Column + " " + dir
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

func sortedKeys(m map[string]Predicate) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// insertion sort, the maps are tiny
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseTime accepts RFC3339 or a bare date. A bare date used as a range end
// is widened to the end of that day so dateTo is inclusive. Unparseable
// values pass through as-is and fail at the database.
func parseTime(value string, end bool) any {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		if end {
			return t.Add(24*time.Hour - time.Nanosecond)
		}
		return t
	}
	return value
}
