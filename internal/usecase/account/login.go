package account

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/naf-scheduler/internal/audit"
	"github.com/BruksfildServices01/naf-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/validators"
)

type Login struct {
	repo   domain.Repository
	issuer *auth.Issuer
	audit  audit.Sink
}

func NewLogin(repo domain.Repository, issuer *auth.Issuer, audit audit.Sink) *Login {
	return &Login{repo: repo, issuer: issuer, audit: audit}
}

// Execute responde com a mesma falha para email desconhecido e senha
// errada.
func (uc *Login) Execute(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := required(email, password); err != nil {
		return nil, httperr.ErrBusinessMsg("invalid_request", "Email e senha são obrigatórios.")
	}

	u, err := uc.repo.FindByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("invalid_credentials")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}

	token, err := uc.issuer.Session(u)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "user_login",
		Entity:   "user",
		EntityID: &u.ID,
	})

	return &AuthResult{User: u, Token: token}, nil
}
