package account

import "github.com/BruksfildServices01/naf-scheduler/internal/models"

// Actor é quem faz a requisição (extraído do token de sessão).
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanAccess: admin acessa tudo, usuário comum apenas os próprios dados.
func (a Actor) CanAccess(ownerID uint) bool {
	return a.IsAdmin() || a.UserID == ownerID
}
