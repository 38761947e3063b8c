package reviews

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/damda-platform/damda-admin/internal/mutation"
	"github.com/damda-platform/damda-admin/internal/storage"
	"github.com/damda-platform/damda-admin/internal/store"
)

type Service struct {
	mut     *mutation.Wrapper
	st      store.Store
	objects storage.Client
}

func NewService(mut *mutation.Wrapper, st store.Store, objects storage.Client) *Service {
	return &Service{mut: mut, st: st, objects: objects}
}

func (s *Service) List(ctx context.Context, q store.PagedQuery) ([]store.Row, int64, error) {
	return s.st.Select(ctx, Schema, q)
}

// Get returns the review together with its image rows.
func (s *Service) Get(ctx context.Context, id string) (store.Row, error) {
	review, err := s.st.Get(ctx, Schema, id)
	if err != nil {
		return nil, err
	}
	images, _, err := s.st.Select(ctx, ImageSchema, store.PagedQuery{
		PageSize: 100,
		Filters:  map[string]string{"review_id": id},
	})
	if err != nil {
		return nil, err
	}
	review["images"] = images
	return review, nil
}

func (s *Service) SetHidden(ctx context.Context, id string, req *SetHiddenRequest, actorID uuid.UUID) (store.Row, error) {
	var extra store.Row
	if req.Reason != "" {
		extra = store.Row{"hidden_reason": req.Reason}
	}
	return s.mut.ChangeStatus(ctx, Schema, id, "is_hidden", *req.IsHidden, actorID, extra)
}

// Delete removes the review's stored images and image rows before deleting
// the review itself. A failed object delete is logged and skipped so a
// half-gone file in object storage cannot strand the review row; orphaned
// objects are cheaper than undeletable reviews.
func (s *Service) Delete(ctx context.Context, id string, actorID uuid.UUID) error {
	images, _, err := s.st.Select(ctx, ImageSchema, store.PagedQuery{
		PageSize: 100,
		Filters:  map[string]string{"review_id": id},
	})
	if err != nil {
		return err
	}

	for _, img := range images {
		path := img.String("storage_path")
		if path == "" {
			continue
		}
		if err := s.objects.Delete(ctx, path); err != nil {
			slog.Warn("deleting review image object", "review_id", id, "path", path, "error", err)
		}
	}
	for _, img := range images {
		if err := s.st.Delete(ctx, ImageSchema, img.ID()); err != nil {
			return err
		}
	}

	return s.mut.Delete(ctx, Schema, id, actorID)
}
