package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Gateway cancels payments against the external payment-gateway refund
// function. Gateway failures are surfaced to the caller verbatim; the
// payment row is only touched after the gateway confirms.
type Gateway interface {
	Refund(ctx context.Context, paymentKey string, amount int64, reason string) (*RefundResult, error)
}

type RefundResult struct {
	TransactionKey string    `json:"transaction_key"`
	RefundedAmount int64     `json:"refunded_amount"`
	RefundedAt     time.Time `json:"refunded_at"`
}

// GatewayError carries the structured error payload the gateway returns on
// a rejected cancel (insufficient balance, already cancelled, ...).
type GatewayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway rejected refund: %s: %s", e.Code, e.Message)
}

type HTTPGateway struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHTTPGateway(endpoint, apiKey string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

func (g *HTTPGateway) Refund(ctx context.Context, paymentKey string, amount int64, reason string) (*RefundResult, error) {
	body, err := json.Marshal(map[string]any{
		"payment_key":   paymentKey,
		"cancel_amount": amount,
		"cancel_reason": reason,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling refund request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating refund request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling payment gateway: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var gwErr GatewayError
		if err := json.Unmarshal(payload, &gwErr); err == nil && gwErr.Code != "" {
			return nil, &gwErr
		}
		return nil, fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var result RefundResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decoding gateway response: %w", err)
	}
	return &result, nil
}
