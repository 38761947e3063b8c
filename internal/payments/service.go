package payments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/damda-platform/damda-admin/internal/mutation"
	"github.com/damda-platform/damda-admin/internal/store"
)

type Service struct {
	mut     *mutation.Wrapper
	st      store.Store
	gateway Gateway
}

func NewService(mut *mutation.Wrapper, st store.Store, gateway Gateway) *Service {
	return &Service{mut: mut, st: st, gateway: gateway}
}

func (s *Service) List(ctx context.Context, q store.PagedQuery) ([]store.Row, int64, error) {
	return s.st.Select(ctx, Schema, q)
}

func (s *Service) Get(ctx context.Context, id string) (store.Row, error) {
	return s.st.Get(ctx, Schema, id)
}

func (s *Service) ListRefunds(ctx context.Context, q store.PagedQuery) ([]store.Row, int64, error) {
	return s.st.Select(ctx, RefundSchema, q)
}

// Refund cancels a payment through the external gateway and, once the
// gateway confirms, records the refund row and flips the payment status.
// The gateway call happens first: a rejected cancel leaves the payment
// untouched and surfaces the gateway's structured error to the client.
func (s *Service) Refund(ctx context.Context, paymentID string, req *RefundRequest, actorID uuid.UUID) (store.Row, error) {
	payment, err := s.st.Get(ctx, Schema, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.String("status") == "refunded" {
		return nil, mutation.NewValidationError("payment already refunded")
	}

	result, err := s.gateway.Refund(ctx, payment.String("payment_key"), req.Amount, req.Reason)
	if err != nil {
		return nil, err
	}

	refund, err := s.mut.Create(ctx, RefundSchema, store.Row{
		"payment_id":      paymentID,
		"order_no":        payment.String("order_no"),
		"amount":          result.RefundedAmount,
		"reason":          req.Reason,
		"transaction_key": result.TransactionKey,
		"refunded_at":     result.RefundedAt,
	}, actorID)
	if err != nil {
		return nil, err
	}

	// The gateway has already moved the money; a failed status flip here
	// must not hide the recorded refund from the caller.
	if _, err := s.mut.ChangeStatus(ctx, Schema, paymentID, "status", "refunded", actorID, store.Row{
		"refunded_at": time.Now(),
	}); err != nil {
		return refund, err
	}
	return refund, nil
}
