package reservations

import (
	"context"

	"github.com/google/uuid"

	"github.com/damda-platform/damda-admin/internal/mutation"
	"github.com/damda-platform/damda-admin/internal/store"
)

type Service struct {
	mut *mutation.Wrapper
	st  store.Store
}

func NewService(mut *mutation.Wrapper, st store.Store) *Service {
	return &Service{mut: mut, st: st}
}

func (s *Service) List(ctx context.Context, q store.PagedQuery) ([]store.Row, int64, error) {
	return s.st.Select(ctx, Schema, q)
}

func (s *Service) Get(ctx context.Context, id string) (store.Row, error) {
	return s.st.Get(ctx, Schema, id)
}

func (s *Service) ChangeStatus(ctx context.Context, id string, req *ChangeStatusRequest, actorID uuid.UUID) (store.Row, error) {
	var extra store.Row
	if req.Reason != "" {
		extra = store.Row{"status_reason": req.Reason}
	}
	return s.mut.ChangeStatus(ctx, Schema, id, "status", req.Status, actorID, extra)
}

func (s *Service) BulkChangeStatus(ctx context.Context, req *BulkStatusRequest, actorID uuid.UUID) ([]store.Row, []mutation.BulkError) {
	return s.mut.BulkChangeStatus(ctx, Schema, req.IDs, "status", req.Status, actorID)
}
