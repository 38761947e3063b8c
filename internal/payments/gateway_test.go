package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGatewayRefund(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(RefundResult{
			TransactionKey: "txn-1",
			RefundedAmount: 15000,
			RefundedAt:     time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		})
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "secret", 5*time.Second)
	result, err := gw.Refund(context.Background(), "pay-key-1", 15000, "defective goods")
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "pay-key-1", gotBody["payment_key"])
	assert.Equal(t, float64(15000), gotBody["cancel_amount"])
	assert.Equal(t, "txn-1", result.TransactionKey)
	assert.Equal(t, int64(15000), result.RefundedAmount)
}

func TestHTTPGatewayStructuredError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(GatewayError{Code: "ALREADY_CANCELLED", Message: "payment already cancelled"})
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "secret", 5*time.Second)
	_, err := gw.Refund(context.Background(), "pay-key-1", 15000, "dup")

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "ALREADY_CANCELLED", gwErr.Code)
}

func TestHTTPGatewayOpaqueError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "secret", 5*time.Second)
	_, err := gw.Refund(context.Background(), "pay-key-1", 15000, "x")
	require.Error(t, err)
	var gwErr *GatewayError
	assert.False(t, errors.As(err, &gwErr))
}
