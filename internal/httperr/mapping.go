package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type mapped struct {
	status  int
	message string
}

var codes = map[string]mapped{
	"invalid_request":      {http.StatusBadRequest, "Dados inválidos."},
	"invalid_date":         {http.StatusBadRequest, "Data inválida."},
	"invalid_time_slot":    {http.StatusBadRequest, "Horário inválido. Use o formato HH:MM."},
	"invalid_status":       {http.StatusBadRequest, "Status inválido."},
	"invalid_role":         {http.StatusBadRequest, "Perfil inválido."},
	"invalid_cpf":          {http.StatusBadRequest, "CPF inválido."},
	"invalid_duration":     {http.StatusBadRequest, "Duração deve ser maior que zero."},
	"invalid_email_domain": {http.StatusBadRequest, "O domínio do e-mail informado não parece ser válido."},
	"invalid_image":        {http.StatusBadRequest, "Imagem inválida. Envie PNG ou JPEG."},
	"invalid_reset_token":  {http.StatusBadRequest, "Link de redefinição inválido ou expirado."},
	"weak_password":        {http.StatusBadRequest, "A senha deve ter pelo menos 6 caracteres."},
	"terminal_status":      {http.StatusBadRequest, "Agendamento já finalizado."},

	"invalid_credentials": {http.StatusUnauthorized, "Email ou senha incorretos."},

	"forbidden": {http.StatusForbidden, "Acesso negado."},

	"appointment_not_found": {http.StatusNotFound, "Agendamento não encontrado."},
	"service_not_found":     {http.StatusNotFound, "Serviço não encontrado."},
	"user_not_found":        {http.StatusNotFound, "Usuário não encontrado."},

	"slot_taken":               {http.StatusConflict, "Já existe um agendamento para esta data e horário."},
	"email_already_registered": {http.StatusConflict, "Email já cadastrado."},
	"cpf_already_registered":   {http.StatusConflict, "CPF já cadastrado."},

	"storage_unavailable": {http.StatusServiceUnavailable, "Armazenamento de imagens não configurado."},
}

// Status devolve o status HTTP e a mensagem padrão de um código de negócio.
func Status(code string) (int, string) {
	if m, ok := codes[code]; ok {
		return m.status, m.message
	}
	return http.StatusBadRequest, "Requisição inválida."
}

// FromError escreve a resposta de erro adequada. Erros que não são de
// negócio viram 500 e ficam registrados em c.Errors para o logger.
func FromError(c *gin.Context, err error) {
	be, ok := AsBusiness(err)
	if !ok {
		_ = c.Error(err)
		Internal(c, "internal_error", "Erro interno. Tente novamente.")
		return
	}

	status, message := Status(be.Code)
	if be.Message != "" {
		message = be.Message
	}
	Write(c, status, be.Code, message)
}
