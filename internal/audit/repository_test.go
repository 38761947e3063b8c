package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestListWhereComposesFilters(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	where, args := listWhere(ListParams{
		ActorID:    "a1",
		Action:     "update",
		TargetType: "vendor",
		TargetID:   "v1",
		From:       &from,
		To:         &to,
	})

	assert.Equal(t,
		" WHERE actor_id = $1 AND action = $2 AND target_type = $3 AND target_id = $4 AND occurred_at >= $5 AND occurred_at <= $6",
		where)
	assert.Equal(t, []any{"a1", "update", "vendor", "v1", from, to}, args)
}

func TestListWhereAllSentinelIsNoOp(t *testing.T) {
	where, args := listWhere(ListParams{Action: "all", TargetType: "all"})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestListWhereEmptyParams(t *testing.T) {
	where, args := listWhere(ListParams{Page: 1, PageSize: 20})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestListWherePlaceholdersFollowArgOrder(t *testing.T) {
	where, args := listWhere(ListParams{Action: "delete", TargetID: "x"})
	assert.Equal(t, " WHERE action = $1 AND target_id = $2", where)
	assert.Equal(t, []any{"delete", "x"}, args)
}
