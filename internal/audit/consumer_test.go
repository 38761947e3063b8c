package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inats "github.com/damda-platform/damda-admin/internal/nats"
)

func TestConsumerPersistsEvent(t *testing.T) {
	repo := &capturingInserter{}
	c := &Consumer{repo: repo}

	event := inats.AuditEvent{
		ID:         uuid.New(),
		ActorID:    uuid.New(),
		Action:     "status_change",
		TargetType: TargetProduct,
		TargetID:   "p1",
		Before:     json.RawMessage(`{"status":"draft"}`),
		After:      json.RawMessage(`{"status":"selling"}`),
		OccurredAt: time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	require.NoError(t, err)

	require.NoError(t, c.persistEvent(context.Background(), data))

	require.Len(t, repo.records, 1)
	rec := repo.records[0]
	assert.Equal(t, event.ID, rec.ID)
	assert.Equal(t, event.ActorID, rec.ActorID)
	assert.Equal(t, ActionStatusChange, rec.Action)
	assert.Equal(t, TargetProduct, rec.TargetType)
	assert.Equal(t, "p1", rec.TargetID)
	assert.JSONEq(t, `{"status":"draft"}`, string(rec.Before))
	assert.JSONEq(t, `{"status":"selling"}`, string(rec.After))
}

func TestConsumerRejectsMalformedEvent(t *testing.T) {
	repo := &capturingInserter{}
	c := &Consumer{repo: repo}

	err := c.persistEvent(context.Background(), []byte("{not json"))
	assert.Error(t, err, "a malformed event must nak, not ack")
	assert.Empty(t, repo.records)
}

func TestConsumerReportsPersistFailure(t *testing.T) {
	c := &Consumer{repo: &capturingInserter{err: errors.New("db down")}}

	data, err := json.Marshal(inats.AuditEvent{ID: uuid.New(), Action: "create", TargetType: TargetVendor})
	require.NoError(t, err)

	assert.Error(t, c.persistEvent(context.Background(), data), "a failed insert must nak so the event is redelivered")
}
