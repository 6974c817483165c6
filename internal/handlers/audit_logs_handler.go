package handlers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/naf-scheduler/internal/audit"
	"github.com/BruksfildServices01/naf-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

// AuditReader é a leitura paginada dos registros de auditoria.
type AuditReader interface {
	List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	reader AuditReader
	loc    *time.Location
}

func NewAuditLogsHandler(reader AuditReader, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader, loc: loc}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	// --------------------------------------------------
	// Período (dias no fuso do NAF)
	// --------------------------------------------------

	if raw := c.Query("from"); raw != "" {
		if from, err := time.ParseInLocation(appointment.DateLayout, raw, h.loc); err == nil {
			f.From = &from
		}
	}

	if raw := c.Query("to"); raw != "" {
		if to, err := time.ParseInLocation(appointment.DateLayout, raw, h.loc); err == nil {
			end := to.AddDate(0, 0, 1)
			f.To = &end
		}
	}

	logs, total, err := h.reader.List(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, fmt.Errorf("list audit logs: %w", err))
		return
	}

	httpresp.Page(c, page, limit, total, logs)
}
