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

// ======================================================
// LIST / GET
// ======================================================

type ListUsers struct {
	repo domain.Repository
}

func NewListUsers(repo domain.Repository) *ListUsers {
	return &ListUsers{repo: repo}
}

func (uc *ListUsers) Execute(ctx context.Context, query string) ([]domain.Summary, error) {
	list, err := uc.repo.List(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return list, nil
}

// GetUser também atende GET /auth/me.
type GetUser struct {
	repo domain.Repository
}

func NewGetUser(repo domain.Repository) *GetUser {
	return &GetUser{repo: repo}
}

func (uc *GetUser) Execute(ctx context.Context, id uint) (*models.User, error) {
	return findUser(ctx, uc.repo, id)
}

// ======================================================
// CREATE
// ======================================================

type CreateUserInput struct {
	RegisterInput
	Role string
}

type CreateUser struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewCreateUser(repo domain.Repository, audit audit.Sink) *CreateUser {
	return &CreateUser{repo: repo, audit: audit}
}

func (uc *CreateUser) Execute(ctx context.Context, actorID uint, in CreateUserInput) (*models.User, error) {
	if err := required(in.Name, in.Email, in.CPF, in.Password); err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !validRole(role) {
		return nil, httperr.ErrBusiness("invalid_role")
	}

	email := validators.NormalizeEmail(in.Email)
	cpf, err := normalizeCPF(in.CPF)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}
	if err := assertUnique(ctx, uc.repo, email, cpf, 0); err != nil {
		return nil, err
	}

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
		Role:         role,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		if mapped := uniqueViolation(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "user_created",
		Entity:   "user",
		EntityID: &u.ID,
		Metadata: map[string]any{"role": u.Role},
	})
	return u, nil
}

// ======================================================
// UPDATE (parcial)
// ======================================================

type UpdateUserInput struct {
	Name     *string
	Email    *string
	CPF      *string
	Phone    *string
	Password *string
	Role     *string
}

type UpdateUser struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewUpdateUser(repo domain.Repository, audit audit.Sink) *UpdateUser {
	return &UpdateUser{repo: repo, audit: audit}
}

func (uc *UpdateUser) Execute(ctx context.Context, actorID, id uint, in UpdateUserInput) (*models.User, error) {
	u, err := findUser(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}

	var email, cpf string

	if in.Name != nil {
		if err := required(*in.Name); err != nil {
			return nil, err
		}
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		if err := required(*in.Email); err != nil {
			return nil, err
		}
		email = validators.NormalizeEmail(*in.Email)
		u.Email = email
	}
	if in.CPF != nil {
		if cpf, err = normalizeCPF(*in.CPF); err != nil {
			return nil, err
		}
		u.CPF = cpf
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Role != nil {
		if !validRole(*in.Role) {
			return nil, httperr.ErrBusiness("invalid_role")
		}
		u.Role = *in.Role
	}
	if in.Password != nil {
		if err := checkPassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}

	if email != "" || cpf != "" {
		if err := assertUnique(ctx, uc.repo, email, cpf, u.ID); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.Update(ctx, u); err != nil {
		if mapped := uniqueViolation(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "user_updated",
		Entity:   "user",
		EntityID: &u.ID,
	})
	return u, nil
}

// ======================================================
// DELETE (agendamentos primeiro)
// ======================================================

type DeleteUser struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewDeleteUser(repo domain.Repository, audit audit.Sink) *DeleteUser {
	return &DeleteUser{repo: repo, audit: audit}
}

func (uc *DeleteUser) Execute(ctx context.Context, actorID, id uint) error {
	var removed int64

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if _, err := findUser(ctx, tx, id); err != nil {
			return err
		}

		n, err := tx.DeleteAppointments(ctx, id)
		if err != nil {
			return fmt.Errorf("delete user appointments: %w", err)
		}
		removed = n

		deleted, err := tx.Delete(ctx, id)
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if !deleted {
			return httperr.ErrBusiness("user_not_found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &id,
		Metadata: map[string]any{"agendamentos_removidos": removed},
	})
	return nil
}
