package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/naf-scheduler/internal/audit"
	"github.com/BruksfildServices01/naf-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
	"github.com/BruksfildServices01/naf-scheduler/internal/validators"
)

type RegisterInput struct {
	Name     string
	Email    string
	CPF      string
	Phone    string
	Password string
}

type Register struct {
	repo        domain.Repository
	issuer      *auth.Issuer
	audit       audit.Sink
	checkDomain func(email string) bool
}

// NewRegister: checkDomain pode ser nil (sem verificação de DNS).
func NewRegister(
	repo domain.Repository,
	issuer *auth.Issuer,
	audit audit.Sink,
	checkDomain func(email string) bool,
) *Register {
	return &Register{
		repo:        repo,
		issuer:      issuer,
		audit:       audit,
		checkDomain: checkDomain,
	}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*AuthResult, error) {

	// --------------------------------------------------
	// 1️⃣ Validação
	// --------------------------------------------------
	if err := required(in.Name, in.Email, in.CPF, in.Phone, in.Password); err != nil {
		return nil, err
	}

	email := validators.NormalizeEmail(in.Email)
	if uc.checkDomain != nil && !uc.checkDomain(email) {
		return nil, httperr.ErrBusiness("invalid_email_domain")
	}

	cpf, err := normalizeCPF(in.CPF)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Unicidade
	// --------------------------------------------------
	if err := assertUnique(ctx, uc.repo, email, cpf, 0); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Criação
	// --------------------------------------------------
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		CPF:          cpf,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		if mapped := uniqueViolation(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := uc.issuer.Session(u)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &u.ID,
	})

	return &AuthResult{User: u, Token: token}, nil
}
