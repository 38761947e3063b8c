package content

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/damda-platform/damda-admin/internal/mutation"
	"github.com/damda-platform/damda-admin/internal/store"
)

// Service drives all the site-content entities. The per-entity methods are
// thin; everything interesting happens in the mutation wrapper.
type Service struct {
	mut *mutation.Wrapper
	st  store.Store
	now func() time.Time
}

func NewService(mut *mutation.Wrapper, st store.Store) *Service {
	return &Service{mut: mut, st: st, now: time.Now}
}

func (s *Service) List(ctx context.Context, schema store.Schema, q store.PagedQuery) ([]store.Row, int64, error) {
	return s.st.Select(ctx, schema, q)
}

func (s *Service) Get(ctx context.Context, schema store.Schema, id string) (store.Row, error) {
	return s.st.Get(ctx, schema, id)
}

func (s *Service) Create(ctx context.Context, schema store.Schema, payload store.Row, actorID uuid.UUID) (store.Row, error) {
	return s.mut.Create(ctx, schema, payload, actorID)
}

func (s *Service) Update(ctx context.Context, schema store.Schema, id string, patch store.Row, actorID uuid.UUID) (store.Row, error) {
	return s.mut.Update(ctx, schema, id, patch, actorID)
}

func (s *Service) SetVisibility(ctx context.Context, schema store.Schema, id string, visible bool, actorID uuid.UUID) (store.Row, error) {
	return s.mut.ChangeStatus(ctx, schema, id, "is_visible", visible, actorID, nil)
}

func (s *Service) Delete(ctx context.Context, schema store.Schema, id string, actorID uuid.UUID) error {
	return s.mut.Delete(ctx, schema, id, actorID)
}

// PublishLegal stamps published_at when a legal document goes live. Earlier
// versions stay in the table for the revision history screen.
func (s *Service) PublishLegal(ctx context.Context, id string, actorID uuid.UUID) (store.Row, error) {
	return s.mut.ChangeStatus(ctx, LegalSchema, id, "published_at", s.now(), actorID, nil)
}

// AnswerInquiry stores the reply and flips the inquiry to answered with an
// answered_at stamp, as one status-change mutation.
func (s *Service) AnswerInquiry(ctx context.Context, id, answer string, actorID uuid.UUID) (store.Row, error) {
	return s.mut.ChangeStatus(ctx, InquirySchema, id, "status", "answered", actorID, store.Row{
		"answer":      answer,
		"answered_at": s.now(),
		"answered_by": actorID,
	})
}
