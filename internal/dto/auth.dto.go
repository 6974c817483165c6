package dto

import "github.com/BruksfildServices01/naf-scheduler/internal/models"

type AuthResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"usuario"`
	Token   string       `json:"token"`
}

type ServiceUpdateResponse struct {
	*models.Service
	Cancelled int64 `json:"agendamentos_cancelados"`
}
