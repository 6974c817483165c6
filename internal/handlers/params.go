package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/validators"
)

// --------------------------------------------------
// Helpers de request
// --------------------------------------------------

// bindJSON responde 400 com os campos inválidos quando o corpo não valida.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if fields := validators.Messages(err); len(fields) > 0 {
			httperr.Validation(c, fields)
			return false
		}
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return false
	}
	return true
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

// queryUint lê um filtro numérico opcional; nil quando ausente.
func queryUint(c *gin.Context, key string) (*uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Parâmetro "+key+" inválido.")
		return nil, false
	}
	id := uint(v)
	return &id, true
}

func queryBool(c *gin.Context, key string) (*bool, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Parâmetro "+key+" inválido.")
		return nil, false
	}
	return &v, true
}
