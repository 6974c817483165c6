package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/naf-scheduler/internal/audit"
	"github.com/BruksfildServices01/naf-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

type CreateServiceInput struct {
	Name        string
	Description string
	DurationMin int
	Active      *bool
}

type CreateService struct {
	repo  domain.Repository
	cache cache.Catalog
	audit audit.Sink
}

func NewCreateService(
	repo domain.Repository,
	cache cache.Catalog,
	audit audit.Sink,
) *CreateService {
	return &CreateService{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

func (uc *CreateService) Execute(
	ctx context.Context,
	actorID uint,
	in CreateServiceInput,
) (*models.Service, error) {

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrBusinessMsg("invalid_request", "O nome do serviço é obrigatório.")
	}
	if err := validDuration(in.DurationMin); err != nil {
		return nil, err
	}

	s := &models.Service{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		DurationMin: in.DurationMin,
		Active:      true,
	}
	if in.Active != nil {
		s.Active = *in.Active
	}

	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	// a alteração já foi gravada; falhas do cache são registradas em cache.Logged
	_ = uc.cache.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &s.ID,
		Metadata: map[string]any{"nome": s.Name},
	})

	return s, nil
}
