package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/naf-scheduler/internal/audit"
	"github.com/BruksfildServices01/naf-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/imaging"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
	"github.com/BruksfildServices01/naf-scheduler/internal/storage"
)

// SetServiceImage converte o upload para WebP e publica no bucket.
type SetServiceImage struct {
	repo     domain.Repository
	store    storage.ObjectStore
	cache    cache.Catalog
	audit    audit.Sink
	maxWidth int
}

// NewSetServiceImage aceita store nil (storage não configurado).
func NewSetServiceImage(
	repo domain.Repository,
	store storage.ObjectStore,
	cache cache.Catalog,
	audit audit.Sink,
	maxWidth int,
) *SetServiceImage {
	return &SetServiceImage{
		repo:     repo,
		store:    store,
		cache:    cache,
		audit:    audit,
		maxWidth: maxWidth,
	}
}

func (uc *SetServiceImage) Execute(
	ctx context.Context,
	actorID uint,
	id uint,
	upload io.Reader,
) (*models.Service, error) {

	if uc.store == nil {
		return nil, httperr.ErrBusiness("storage_unavailable")
	}

	s, err := findService(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}

	body, err := imaging.ToWebP(upload, uc.maxWidth)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupported) {
			return nil, httperr.ErrBusiness("invalid_image")
		}
		return nil, fmt.Errorf("convert image: %w", err)
	}

	key := fmt.Sprintf("services/%d/%s.webp", s.ID, uuid.NewString())
	url, err := uc.store.Put(ctx, key, imaging.ContentType, body)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	s.ImageURL = url
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("update service image: %w", err)
	}

	// a alteração já foi gravada; falhas do cache são registradas em cache.Logged
	_ = uc.cache.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "service_image_updated",
		Entity:   "service",
		EntityID: &s.ID,
		Metadata: map[string]any{"imagem_url": url},
	})

	return s, nil
}
