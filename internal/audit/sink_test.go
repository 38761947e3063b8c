package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingInserter stands in for the repository and lets tests inject a
// backend failure.
type capturingInserter struct {
	records []*Record
	err     error
}

func (c *capturingInserter) Insert(ctx context.Context, rec *Record) error {
	if c.err != nil {
		return c.err
	}
	c.records = append(c.records, rec)
	return nil
}

func TestRepositorySinkPersistsRecord(t *testing.T) {
	repo := &capturingInserter{}
	sink := NewRepositorySink(repo)

	rec := Record{
		ID:         uuid.New(),
		ActorID:    uuid.New(),
		Action:     ActionCreate,
		TargetType: TargetVendor,
		TargetID:   "v1",
		OccurredAt: time.Now().UTC(),
	}
	sink.Record(context.Background(), rec)

	require.Len(t, repo.records, 1)
	got := repo.records[0]
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.ActorID, got.ActorID)
	assert.Equal(t, ActionCreate, got.Action)
	assert.Equal(t, TargetVendor, got.TargetType)
	assert.Equal(t, "v1", got.TargetID)
}

func TestRepositorySinkSwallowsBackendFailure(t *testing.T) {
	repo := &capturingInserter{err: errors.New("connection refused")}
	sink := NewRepositorySink(repo)

	// Must return normally: a sink failure is logged and dropped, never
	// surfaced to the caller.
	sink.Record(context.Background(), Record{
		ID:         uuid.New(),
		Action:     ActionUpdate,
		TargetType: TargetVendor,
		TargetID:   "v1",
	})

	assert.Empty(t, repo.records)
}
