package catalog

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/naf-scheduler/internal/audit"
	"github.com/BruksfildServices01/naf-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
)

type DeleteService struct {
	repo  domain.Repository
	cache cache.Catalog
	audit audit.Sink
}

func NewDeleteService(
	repo domain.Repository,
	cache cache.Catalog,
	audit audit.Sink,
) *DeleteService {
	return &DeleteService{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// Execute remove os agendamentos do serviço e depois o serviço.
func (uc *DeleteService) Execute(ctx context.Context, actorID, id uint) error {
	var removed int64

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if _, err := findService(ctx, tx, id); err != nil {
			return err
		}

		n, err := tx.DeleteAppointments(ctx, id)
		if err != nil {
			return fmt.Errorf("delete service appointments: %w", err)
		}
		removed = n

		deleted, err := tx.Delete(ctx, id)
		if err != nil {
			return fmt.Errorf("delete service: %w", err)
		}
		if !deleted {
			return httperr.ErrBusiness("service_not_found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	// a alteração já foi gravada; falhas do cache são registradas em cache.Logged
	_ = uc.cache.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: &id,
		Metadata: map[string]any{"agendamentos_removidos": removed},
	})
	return nil
}
