package appointment

import (
	"strings"

	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pendente"
	StatusConfirmed Status = "confirmado"
	StatusConcluded Status = "concluido"
	StatusCancelled Status = "cancelado"
)

// InitialStatus é o status de todo agendamento criado sem status explícito.
func InitialStatus() Status {
	return StatusPending
}

// ParseStatus normaliza caixa, espaços e acento ("Concluído" → concluido).
// Não há máquina de estados no servidor: qualquer status conhecido é aceito.
func ParseStatus(raw string) (Status, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "í", "i")

	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusConcluded, StatusCancelled:
		return Status(s), nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// OccupiesSlot: somente agendamentos cancelados liberam o horário.
func (s Status) OccupiesSlot() bool {
	return s != StatusCancelled
}

// IsTerminal indica status finais (cancelado/concluído).
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusConcluded
}
