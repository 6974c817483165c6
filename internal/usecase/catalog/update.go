package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/naf-scheduler/internal/audit"
	"github.com/BruksfildServices01/naf-scheduler/internal/cache"
	"github.com/BruksfildServices01/naf-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type UpdateServiceInput struct {
	Name        *string
	Description *string
	DurationMin *int
	Active      *bool
}

type UpdateServiceResult struct {
	Service   *models.Service
	Cancelled int64
}

// ======================================================
// USE CASE
// ======================================================

type UpdateService struct {
	repo  domain.Repository
	cache cache.Catalog
	audit audit.Sink
	now   func() time.Time
}

func NewUpdateService(
	repo domain.Repository,
	cache cache.Catalog,
	audit audit.Sink,
	loc *time.Location,
) *UpdateService {
	return &UpdateService{
		repo:  repo,
		cache: cache,
		audit: audit,
		now:   func() time.Time { return time.Now().In(loc) },
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateService) Execute(
	ctx context.Context,
	actorID uint,
	id uint,
	in UpdateServiceInput,
) (*UpdateServiceResult, error) {

	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, httperr.ErrBusinessMsg("invalid_request", "O nome do serviço é obrigatório.")
	}
	if in.DurationMin != nil {
		if err := validDuration(*in.DurationMin); err != nil {
			return nil, err
		}
	}

	res := &UpdateServiceResult{}

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		s, err := findService(ctx, tx, id)
		if err != nil {
			return err
		}

		if in.Name != nil {
			s.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			s.Description = strings.TrimSpace(*in.Description)
		}
		if in.DurationMin != nil {
			s.DurationMin = *in.DurationMin
		}
		if in.Active != nil {
			s.Active = *in.Active
		}

		if err := tx.Update(ctx, s); err != nil {
			return fmt.Errorf("update service: %w", err)
		}
		res.Service = s

		// --------------------------------------------------
		// ativo=false cancela os agendamentos futuros, mesmo
		// se o serviço já estava inativo
		// --------------------------------------------------
		if in.Active != nil && !*in.Active {
			n, err := tx.CancelFutureAppointments(ctx, s.ID, appointment.SlotAt(uc.now()))
			if err != nil {
				return fmt.Errorf("cancel future appointments: %w", err)
			}
			res.Cancelled = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// a alteração já foi gravada; falhas do cache são registradas em cache.Logged
	_ = uc.cache.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &id,
		Metadata: map[string]any{
			"ativo":                   res.Service.Active,
			"agendamentos_cancelados": res.Cancelled,
		},
	})

	return res, nil
}
