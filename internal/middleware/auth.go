package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/naf-scheduler/internal/auth"
	"github.com/BruksfildServices01/naf-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Autenticação necessária.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Cabeçalho Authorization inválido.")
			return
		}

		claims, err := issuer.ParseSession(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Sessão inválida ou expirada.")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "Sessão inválida ou expirada.")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// RequireAdmin deve vir depois de AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != models.RoleAdmin {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "Acesso restrito a administradores.")
			return
		}
		c.Next()
	}
}

// Actor monta o autor da requisição a partir do contexto autenticado.
func Actor(c *gin.Context) account.Actor {
	return account.Actor{
		UserID: c.GetUint(ContextUserID),
		Role:   c.GetString(ContextUserRole),
	}
}
