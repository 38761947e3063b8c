package store

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Row is an entity row as an opaque column→value mapping. The mutation
// pipeline never interprets entity fields beyond id and the timestamp pair.
type Row map[string]any

// ID returns the row's id column as a string.
func (r Row) ID() string {
	switch v := r["id"].(type) {
	case string:
		return v
	case uuid.UUID:
		return v.String()
	case [16]byte:
		return uuid.UUID(v).String()
	case fmt.Stringer:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns a string column, or "" when absent or differently typed.
func (r Row) String(key string) string {
	v, _ := r[key].(string)
	return v
}

// Bool returns a bool column, defaulting to false.
func (r Row) Bool(key string) bool {
	v, _ := r[key].(bool)
	return v
}

// Int returns an integer column regardless of the driver's scan width.
func (r Row) Int(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int16:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// Snapshot serializes the row for an audit record. Returns nil for a nil row.
func (r Row) Snapshot() json.RawMessage {
	if r == nil {
		return nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil
	}
	return data
}
