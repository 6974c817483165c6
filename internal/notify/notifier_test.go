package notify

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

func TestLogNotifierLogsLink(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	err := n.PasswordReset(context.Background(), &models.User{ID: 3, Email: "a@b.com"}, "http://front/redefinir?token=x")
	if err != nil {
		t.Fatalf("notify: %v", err)
	}

	entries := logs.FilterMessage("password reset requested").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["link"] != "http://front/redefinir?token=x" {
		t.Errorf("unexpected fields %v", entries[0].ContextMap())
	}
}
