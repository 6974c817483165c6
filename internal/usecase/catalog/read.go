package catalog

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/naf-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

// ======================================================
// GET
// ======================================================

type GetService struct {
	repo  domain.Repository
	cache cache.Catalog
}

func NewGetService(repo domain.Repository, cache cache.Catalog) *GetService {
	return &GetService{repo: repo, cache: cache}
}

func (uc *GetService) Execute(ctx context.Context, id uint) (*models.Service, error) {
	var cached models.Service
	if hit, err := uc.cache.Get(ctx, itemKey(id), &cached); err == nil && hit {
		return &cached, nil
	}

	s, err := findService(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}

	_ = uc.cache.Set(ctx, itemKey(id), s)
	return s, nil
}

// ======================================================
// LIST
// ======================================================

type ListServices struct {
	repo  domain.Repository
	cache cache.Catalog
}

func NewListServices(repo domain.Repository, cache cache.Catalog) *ListServices {
	return &ListServices{repo: repo, cache: cache}
}

func (uc *ListServices) Execute(ctx context.Context, filter domain.ListFilter) ([]models.Service, error) {
	key := listKey(filter)

	var cached []models.Service
	if hit, err := uc.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	_ = uc.cache.Set(ctx, key, list)
	return list, nil
}
