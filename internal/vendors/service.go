package vendors

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

func (s *Service) Create(ctx context.Context, req *CreateVendorRequest, actorID uuid.UUID) (store.Row, error) {
	return s.mut.Create(ctx, Schema, req.row(), actorID)
}

// BulkCreate registers vendors one by one, accumulating per-item failures
// instead of aborting the batch.
func (s *Service) BulkCreate(ctx context.Context, req *BulkCreateRequest, actorID uuid.UUID) ([]store.Row, []mutation.BulkError) {
	payloads := make([]store.Row, len(req.Vendors))
	for i := range req.Vendors {
		payloads[i] = req.Vendors[i].row()
	}
	return s.mut.BulkCreate(ctx, Schema, payloads, actorID)
}

func (s *Service) Update(ctx context.Context, id string, req *UpdateVendorRequest, actorID uuid.UUID) (store.Row, error) {
	return s.mut.Update(ctx, Schema, id, req.patch(), actorID)
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

func (s *Service) Delete(ctx context.Context, id string, actorID uuid.UUID) error {
	return s.mut.Delete(ctx, Schema, id, actorID)
}
