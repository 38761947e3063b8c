package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a row lookup matches nothing.
var ErrNotFound = errors.New("row not found")

// StoreError wraps a backend rejection: constraint violation, network
// failure, malformed query. Retryable by re-invocation, never swallowed.
type StoreError struct {
	Op    string
	Table string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op, table string, err error) error {
	return &StoreError{Op: op, Table: table, Err: err}
}
