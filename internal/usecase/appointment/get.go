package appointment

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/naf-scheduler/internal/domain/account"
	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	actor account.Actor,
	id uint,
) (*models.Appointment, error) {
	return findVisible(ctx, uc.repo, actor, id)
}

// findVisible carrega o agendamento; para quem não é dono nem admin ele
// simplesmente não existe.
func findVisible(
	ctx context.Context,
	repo domain.Repository,
	actor account.Actor,
	id uint,
) (*models.Appointment, error) {
	ap, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}

	if !actor.CanAccess(ap.UserID) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return ap, nil
}
