package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"slot taken", ErrBusiness("slot_taken"), http.StatusConflict, "slot_taken", "Já existe um agendamento para esta data e horário."},
		{"not found with message", ErrBusinessMsg("user_not_found", "Usuário com ID 7 não encontrado"), http.StatusNotFound, "user_not_found", "Usuário com ID 7 não encontrado"},
		{"wrapped business", fmt.Errorf("create: %w", ErrBusiness("service_not_found")), http.StatusNotFound, "service_not_found", "Serviço não encontrado."},
		{"unknown code", ErrBusiness("something_else"), http.StatusBadRequest, "something_else", "Requisição inválida."},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "internal_error", "Erro interno. Tente novamente."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			var body HTTPError
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.wantCode || body.Message != tt.wantMsg {
				t.Errorf("unexpected body %+v", body)
			}
		})
	}
}

func TestFromErrorRecordsInternalError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromError(c, errors.New("db down"))

	if len(c.Errors) != 1 {
		t.Fatalf("expected error recorded on context, got %d", len(c.Errors))
	}
}

func TestUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	name, ok := UniqueViolation(err)
	if !ok || name != "users_email_key" {
		t.Errorf("expected users_email_key, got %q (%v)", name, ok)
	}

	if _, ok := UniqueViolation(errors.New("x")); ok {
		t.Error("plain error reported as unique violation")
	}
}
