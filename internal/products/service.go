package products

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

func (s *Service) Create(ctx context.Context, req *CreateProductRequest, actorID uuid.UUID) (store.Row, error) {
	return s.mut.Create(ctx, Schema, req.row(), actorID)
}

func (s *Service) Update(ctx context.Context, id string, req *UpdateProductRequest, actorID uuid.UUID) (store.Row, error) {
	return s.mut.Update(ctx, Schema, id, req.patch(), actorID)
}

func (s *Service) ChangeStatus(ctx context.Context, id, status string, actorID uuid.UUID) (store.Row, error) {
	return s.mut.ChangeStatus(ctx, Schema, id, "status", status, actorID, nil)
}

// SetVisibility is idempotent: toggling to the current value still succeeds
// and still produces an audit record with identical snapshots.
func (s *Service) SetVisibility(ctx context.Context, id string, visible bool, actorID uuid.UUID) (store.Row, error) {
	return s.mut.ChangeStatus(ctx, Schema, id, "is_visible", visible, actorID, nil)
}

func (s *Service) BulkChangeStatus(ctx context.Context, req *BulkStatusRequest, actorID uuid.UUID) ([]store.Row, []mutation.BulkError) {
	return s.mut.BulkChangeStatus(ctx, Schema, req.IDs, "status", req.Status, actorID)
}

func (s *Service) Delete(ctx context.Context, id string, actorID uuid.UUID) error {
	return s.mut.Delete(ctx, Schema, id, actorID)
}

func (s *Service) BulkDelete(ctx context.Context, ids []string, actorID uuid.UUID) []mutation.BulkError {
	return s.mut.BulkDelete(ctx, Schema, ids, actorID)
}
