package account

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/naf-scheduler/internal/audit"
	"github.com/BruksfildServices01/naf-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/notify"
	"github.com/BruksfildServices01/naf-scheduler/internal/validators"
)

// ======================================================
// FORGOT PASSWORD
// ======================================================

type ForgotPassword struct {
	repo        domain.Repository
	issuer      *auth.Issuer
	notifier    notify.Notifier
	frontendURL string
}

func NewForgotPassword(
	repo domain.Repository,
	issuer *auth.Issuer,
	notifier notify.Notifier,
	frontendURL string,
) *ForgotPassword {
	return &ForgotPassword{
		repo:        repo,
		issuer:      issuer,
		notifier:    notifier,
		frontendURL: frontendURL,
	}
}

// Execute não revela se o email existe: sem erro para email desconhecido.
func (uc *ForgotPassword) Execute(ctx context.Context, email string) error {
	if err := required(email); err != nil {
		return httperr.ErrBusinessMsg("invalid_request", "Email é obrigatório.")
	}

	u, err := uc.repo.FindByEmail(ctx, validators.NormalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	token, err := uc.issuer.Reset(u)
	if err != nil {
		return fmt.Errorf("sign reset token: %w", err)
	}

	link := uc.frontendURL + "/redefinir-senha?token=" + url.QueryEscape(token)
	if err := uc.notifier.PasswordReset(ctx, u, link); err != nil {
		return fmt.Errorf("notify password reset: %w", err)
	}
	return nil
}

// ======================================================
// RESET PASSWORD
// ======================================================

type ResetPassword struct {
	repo   domain.Repository
	issuer *auth.Issuer
	audit  audit.Sink
}

func NewResetPassword(repo domain.Repository, issuer *auth.Issuer, audit audit.Sink) *ResetPassword {
	return &ResetPassword{repo: repo, issuer: issuer, audit: audit}
}

func (uc *ResetPassword) Execute(ctx context.Context, token, newPassword string) error {
	if err := required(token, newPassword); err != nil {
		return httperr.ErrBusinessMsg("invalid_request", "Token e nova senha são obrigatórios.")
	}
	if err := checkPassword(newPassword); err != nil {
		return err
	}

	claims, err := uc.issuer.ParseReset(token)
	if err != nil {
		return httperr.ErrBusiness("invalid_reset_token")
	}
	id, err := claims.UserID()
	if err != nil {
		return httperr.ErrBusiness("invalid_reset_token")
	}

	u, err := uc.repo.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("invalid_reset_token")
	}
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	// senha trocada depois da emissão invalida o link
	if auth.Fingerprint(u.PasswordHash) != claims.Fingerprint {
		return httperr.ErrBusiness("invalid_reset_token")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash

	if err := uc.repo.Update(ctx, u); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "password_reset",
		Entity:   "user",
		EntityID: &u.ID,
	})
	return nil
}
