package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	Table:         "widgets",
	Target:        "widget",
	SearchColumns: []string{"name", "description"},
	Filters: map[string]Predicate{
		"status":   {Column: "status", Op: OpEq},
		"ids":      {Column: "id", Op: OpIn},
		"dateFrom": {Column: "created_at", Op: OpGTE},
		"dateTo":   {Column: "created_at", Op: OpLTE},
	},
}

func TestBuildWhereEmpty(t *testing.T) {
	where, args := buildWhere(testSchema, nil)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildWhereEq(t *testing.T) {
	where, args := buildWhere(testSchema, map[string]string{"status": "approved"})
	assert.Equal(t, " WHERE status = $1", where)
	require.Len(t, args, 1)
	assert.Equal(t, "approved", args[0])
}

func TestBuildWhereAllSentinelSkipsPredicate(t *testing.T) {
	where, args := buildWhere(testSchema, map[string]string{"status": FilterAll})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildWhereUnknownKeyIgnored(t *testing.T) {
	where, args := buildWhere(testSchema, map[string]string{"bogus": "x"})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildWhereSearchORsColumns(t *testing.T) {
	where, args := buildWhere(testSchema, map[string]string{"search": "bear"})
	assert.Equal(t, " WHERE (name ILIKE $1 OR description ILIKE $1)", where)
	require.Len(t, args, 1)
	assert.Equal(t, "%bear%", args[0])
}

func TestBuildWhereInSplitsCommaList(t *testing.T) {
	where, args := buildWhere(testSchema, map[string]string{"ids": "a, b,,c"})
	assert.Equal(t, " WHERE id = ANY($1)", where)
	require.Len(t, args, 1)
	assert.Equal(t, []string{"a", "b", "c"}, args[0])
}

func TestBuildWhereDateRange(t *testing.T) {
	where, args := buildWhere(testSchema, map[string]string{
		"dateFrom": "2026-01-01",
		"dateTo":   "2026-01-31",
	})
	// Keys iterate in sorted order, so dateFrom binds $1.
	assert.Equal(t, " WHERE created_at >= $1 AND created_at <= $2", where)
	require.Len(t, args, 2)

	from, ok := args[0].(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), from)

	// A bare date as the range end is inclusive of the whole day.
	to, ok := args[1].(time.Time)
	require.True(t, ok)
	assert.Equal(t, 31, to.Day())
	assert.Equal(t, 23, to.Hour())
}

func TestBuildWhereRFC3339Passthrough(t *testing.T) {
	_, args := buildWhere(testSchema, map[string]string{"dateTo": "2026-01-31T12:00:00Z"})
	require.Len(t, args, 1)
	to, ok := args[0].(time.Time)
	require.True(t, ok)
	assert.Equal(t, 12, to.Hour())
}

func TestBuildWhereDeterministicOrder(t *testing.T) {
	filters := map[string]string{"status": "approved", "dateFrom": "2026-01-01", "search": "x"}
	first, _ := buildWhere(testSchema, filters)
	for i := 0; i < 20; i++ {
		again, _ := buildWhere(testSchema, filters)
		require.Equal(t, first, again)
	}
}

func TestBuildOrderByDefault(t *testing.T) {
	assert.Equal(t, " ORDER BY created_at DESC, id ASC", buildOrderBy(testSchema))
}

func TestBuildOrderByAppendsTiebreaks(t *testing.T) {
	s := testSchema
	s.Sort = []Order{{Column: "sort_order"}}
	assert.Equal(t, " ORDER BY sort_order ASC, created_at DESC, id ASC", buildOrderBy(s))
}

func TestBuildOrderByNoDuplicateTiebreak(t *testing.T) {
	s := testSchema
	s.Sort = []Order{{Column: "created_at", Desc: true}}
	assert.Equal(t, " ORDER BY created_at DESC, id ASC", buildOrderBy(s))
}

func TestBuildOrderByIsTotal(t *testing.T) {
	s := testSchema
	s.Sort = []Order{{Column: "is_pinned", Desc: true}}
	order := buildOrderBy(s)
	assert.Contains(t, order, "id ASC", "ordering must end on a unique column so page walks never repeat or drop a row")
}

func TestNormalizeClampsPage(t *testing.T) {
	q := PagedQuery{Page: 0, PageSize: 0}.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, defaultPageSize, q.PageSize)

	q = PagedQuery{Page: 3, PageSize: 500}.Normalize()
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, defaultPageSize, q.PageSize)

	q = PagedQuery{Page: 2, PageSize: 100}.Normalize()
	assert.Equal(t, 100, q.PageSize)
}

func TestOffset(t *testing.T) {
	q := PagedQuery{Page: 3, PageSize: 20}
	assert.Equal(t, 40, q.Offset())
}
