package daycares

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

func (s *Service) Create(ctx context.Context, req *CreateDaycareRequest, actorID uuid.UUID) (store.Row, error) {
	return s.mut.Create(ctx, Schema, req.row(), actorID)
}

func (s *Service) Update(ctx context.Context, id string, req *UpdateDaycareRequest, actorID uuid.UUID) (store.Row, error) {
	return s.mut.Update(ctx, Schema, id, req.patch(), actorID)
}

func (s *Service) ChangeStatus(ctx context.Context, id, status string, actorID uuid.UUID) (store.Row, error) {
	return s.mut.ChangeStatus(ctx, Schema, id, "status", status, actorID, nil)
}

func (s *Service) Delete(ctx context.Context, id string, actorID uuid.UUID) error {
	return s.mut.Delete(ctx, Schema, id, actorID)
}
