package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

type ListFilter struct {
	UserID    *uint
	ServiceID *uint
	Status    *Status
	From      *time.Time
	To        *time.Time
}

// Repository é a persistência usada pelas regras de agendamento.
// Get devolve gorm.ErrRecordNotFound quando o id não existe.
type Repository interface {
	// -------- Transaction --------
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// LockSlot serializa escritores do mesmo slot até o fim da transação.
	LockSlot(
		ctx context.Context,
		slot Slot,
	) error

	// -------- References --------
	UserExists(
		ctx context.Context,
		id uint,
	) (bool, error)

	ServiceExists(
		ctx context.Context,
		id uint,
	) (bool, error)

	// -------- Conflict --------
	// SlotTaken considera apenas agendamentos não cancelados; excludeID 0
	// não exclui nenhum.
	SlotTaken(
		ctx context.Context,
		slot Slot,
		excludeID uint,
	) (bool, error)

	// -------- Appointment --------
	Create(
		ctx context.Context,
		ap *models.Appointment,
	) error

	Get(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	Update(
		ctx context.Context,
		ap *models.Appointment,
	) error

	Delete(
		ctx context.Context,
		id uint,
	) (bool, error)

	List(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)
}
