package dto

import (
	"time"

	"github.com/BruksfildServices01/naf-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

// AppointmentDTO expõe a data como "YYYY-MM-DD", sem fuso.
type AppointmentDTO struct {
	ID        uint            `json:"id"`
	Date      string          `json:"data"`
	TimeSlot  string          `json:"horario"`
	Status    string          `json:"status"`
	Notes     string          `json:"observacoes"`
	UserID    uint            `json:"usuarioId"`
	ServiceID uint            `json:"servicoId"`
	User      *UserDTO        `json:"usuario,omitempty"`
	Service   *models.Service `json:"servico,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// UserDTO é o recorte do usuário embutido no agendamento.
type UserDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
	Phone string `json:"telefone"`
}

func FromAppointment(ap *models.Appointment) AppointmentDTO {
	out := AppointmentDTO{
		ID:        ap.ID,
		Date:      appointment.SlotOf(ap).DateKey(),
		TimeSlot:  ap.TimeSlot,
		Status:    ap.Status,
		Notes:     ap.Notes,
		UserID:    ap.UserID,
		ServiceID: ap.ServiceID,
		Service:   ap.Service,
		CreatedAt: ap.CreatedAt,
		UpdatedAt: ap.UpdatedAt,
	}

	if ap.User != nil {
		out.User = &UserDTO{
			ID:    ap.User.ID,
			Name:  ap.User.Name,
			Email: ap.User.Email,
			Phone: ap.User.Phone,
		}
	}
	return out
}

func FromAppointments(list []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(list))
	for i := range list {
		out = append(out, FromAppointment(&list[i]))
	}
	return out
}
