package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
	"github.com/BruksfildServices01/naf-scheduler/internal/validators"
)

const minPasswordLen = 6

// AuthResult é devolvido por cadastro e login.
type AuthResult struct {
	User  *models.User
	Token string
}

func findUser(ctx context.Context, repo domain.Repository, id uint) (*models.User, error) {
	u, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusinessMsg("user_not_found",
				fmt.Sprintf("Usuário com ID %d não encontrado.", id))
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// assertUnique falha com 409 quando email ou cpf já pertencem a outro
// usuário; a mensagem diz qual dos dois.
func assertUnique(ctx context.Context, repo domain.Repository, email, cpf string, excludeID uint) error {
	existing, err := repo.FindConflicting(ctx, email, cpf, excludeID)
	if err != nil {
		return fmt.Errorf("find conflicting user: %w", err)
	}
	if existing == nil {
		return nil
	}
	if email != "" && existing.Email == email {
		return httperr.ErrBusiness("email_already_registered")
	}
	return httperr.ErrBusiness("cpf_already_registered")
}

// uniqueViolation traduz a corrida entre a checagem e o INSERT.
func uniqueViolation(err error) error {
	constraint, ok := httperr.UniqueViolation(err)
	if !ok {
		return err
	}
	if strings.Contains(constraint, "cpf") {
		return httperr.ErrBusiness("cpf_already_registered")
	}
	return httperr.ErrBusiness("email_already_registered")
}

func normalizeCPF(raw string) (string, error) {
	cpf := validators.NormalizeCPF(raw)
	if !validators.IsCPFValid(cpf) {
		return "", httperr.ErrBusiness("invalid_cpf")
	}
	return cpf, nil
}

func checkPassword(pw string) error {
	if len(pw) < minPasswordLen {
		return httperr.ErrBusiness("weak_password")
	}
	return nil
}

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleUser
}

func required(fields ...string) error {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return httperr.ErrBusinessMsg("invalid_request", "Todos os campos são obrigatórios.")
		}
	}
	return nil
}
