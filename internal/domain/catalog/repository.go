package catalog

import (
	"context"

	"github.com/BruksfildServices01/naf-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

type ListFilter struct {
	Active *bool
	Query  string
}

// Repository persiste o catálogo de serviços. Get devolve
// gorm.ErrRecordNotFound quando o id não existe.
type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	Create(ctx context.Context, s *models.Service) error
	Get(ctx context.Context, id uint) (*models.Service, error)
	List(ctx context.Context, filter ListFilter) ([]models.Service, error)
	Update(ctx context.Context, s *models.Service) error
	Delete(ctx context.Context, id uint) (bool, error)

	// CancelFutureAppointments cancela os agendamentos não cancelados do
	// serviço cujo slot é igual ou posterior a from.
	CancelFutureAppointments(ctx context.Context, serviceID uint, from appointment.Slot) (int64, error)

	DeleteAppointments(ctx context.Context, serviceID uint) (int64, error)
}
