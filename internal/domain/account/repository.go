package account

import (
	"context"

	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

// Summary é o usuário com o total de agendamentos (lista de clientes).
type Summary struct {
	models.User
	AppointmentCount int64 `json:"total_agendamentos"`
}

// Repository persiste usuários. Get e FindByEmail devolvem
// gorm.ErrRecordNotFound quando nada é encontrado.
type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindConflicting devolve um usuário (diferente de excludeID) que já use
	// o email ou o cpf informado, ou nil.
	FindConflicting(ctx context.Context, email, cpf string, excludeID uint) (*models.User, error)

	List(ctx context.Context, query string) ([]Summary, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id uint) (bool, error)

	DeleteAppointments(ctx context.Context, userID uint) (int64, error)
}
