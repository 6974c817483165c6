package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/naf-scheduler/internal/audit"
	"github.com/BruksfildServices01/naf-scheduler/internal/domain/account"
	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewDeleteAppointment(repo domain.Repository, audit audit.Sink) *DeleteAppointment {
	return &DeleteAppointment{repo: repo, audit: audit}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	actor account.Actor,
	id uint,
) error {
	if !actor.IsAdmin() {
		return httperr.ErrBusiness("forbidden")
	}

	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if !deleted {
		return httperr.ErrBusiness("appointment_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &id,
	})
	return nil
}
