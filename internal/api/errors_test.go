package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/damda-platform/damda-admin/internal/mutation"
	"github.com/damda-platform/damda-admin/internal/store"
)

func TestHandleErrorMapsTaxonomy(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"app error", ErrForbidden, http.StatusForbidden},
		{"validation", mutation.NewValidationError("bad input"), http.StatusBadRequest},
		{"not found", &mutation.NotFoundError{Target: "vendor", ID: "v1"}, http.StatusNotFound},
		{"authorization", &mutation.AuthorizationError{ActorID: "a1", Target: "vendor"}, http.StatusForbidden},
		{"missing row", fmt.Errorf("loading vendor: %w", store.ErrNotFound), http.StatusNotFound},
		{"backend rejection", &store.StoreError{Op: "select", Table: "vendors", Err: errors.New("down")}, http.StatusBadGateway},
		{"wrapped backend rejection", fmt.Errorf("listing audit logs: %w",
			&store.StoreError{Op: "count", Table: "audit_logs", Err: errors.New("down")}), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleError(w, tc.err)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}
