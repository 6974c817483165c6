package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

// Notifier entrega mensagens para usuários.
type Notifier interface {
	PasswordReset(ctx context.Context, u *models.User, link string) error
}

// LogNotifier apenas registra o link no log; serve enquanto o NAF não tem
// provedor de e-mail.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) PasswordReset(_ context.Context, u *models.User, link string) error {
	n.log.Info("password reset requested",
		zap.Uint("user_id", u.ID),
		zap.String("email", u.Email),
		zap.String("link", link),
	)
	return nil
}
