package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/naf-scheduler/internal/domain/account"
	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

// ListAppointmentsInput: todos os campos são filtros opcionais.
type ListAppointmentsInput struct {
	UserID    *uint
	ServiceID *uint
	Status    string
	From      string
	To        string
}

type ListAppointments struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointments(repo domain.Repository, loc *time.Location) *ListAppointments {
	return &ListAppointments{repo: repo, loc: loc}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	actor account.Actor,
	in ListAppointmentsInput,
) ([]models.Appointment, error) {

	filter := domain.ListFilter{
		UserID:    in.UserID,
		ServiceID: in.ServiceID,
	}

	// usuário comum só enxerga os próprios agendamentos
	if !actor.IsAdmin() {
		own := actor.UserID
		filter.UserID = &own
	}

	if in.Status != "" {
		status, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}

	if in.From != "" {
		from, err := domain.ParseDate(in.From, uc.loc)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if in.To != "" {
		to, err := domain.ParseDate(in.To, uc.loc)
		if err != nil {
			return nil, err
		}
		filter.To = &to
	}

	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return list, nil
}
