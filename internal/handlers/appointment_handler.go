package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/naf-scheduler/internal/dto"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/naf-scheduler/internal/middleware"
	usecase "github.com/BruksfildServices01/naf-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	list   *usecase.ListAppointments
	get    *usecase.GetAppointment
	create *usecase.CreateAppointment
	update *usecase.UpdateAppointment
	remove *usecase.DeleteAppointment
}

func NewAppointmentHandler(
	list *usecase.ListAppointments,
	get *usecase.GetAppointment,
	create *usecase.CreateAppointment,
	update *usecase.UpdateAppointment,
	remove *usecase.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		list:   list,
		get:    get,
		create: create,
		update: update,
		remove: remove,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// CreateAppointmentRequest: usuarioId é opcional para o próprio cliente.
type CreateAppointmentRequest struct {
	Date      string `json:"data" binding:"required"`
	TimeSlot  string `json:"horario" binding:"required,horario"`
	ServiceID uint   `json:"servicoId" binding:"required"`
	UserID    uint   `json:"usuarioId"`
	Notes     string `json:"observacoes"`
	Status    string `json:"status"`
}

// UpdateAppointmentRequest: campos ausentes não são alterados.
type UpdateAppointmentRequest struct {
	Date      *string `json:"data"`
	TimeSlot  *string `json:"horario"`
	Status    *string `json:"status"`
	Notes     *string `json:"observacoes"`
	ServiceID *uint   `json:"servicoId"`
	UserID    *uint   `json:"usuarioId"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	userID, ok := queryUint(c, "usuarioId")
	if !ok {
		return
	}
	serviceID, ok := queryUint(c, "servicoId")
	if !ok {
		return
	}

	list, err := h.list.Execute(c.Request.Context(), middleware.Actor(c), usecase.ListAppointmentsInput{
		UserID:    userID,
		ServiceID: serviceID,
		Status:    c.Query("status"),
		From:      c.Query("de"),
		To:        c.Query("ate"),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, dto.FromAppointments(list))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, dto.FromAppointment(ap))
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), middleware.Actor(c), usecase.CreateAppointmentInput{
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		ServiceID: req.ServiceID,
		UserID:    req.UserID,
		Notes:     req.Notes,
		Status:    req.Status,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(ap))
}

// ======================================================
// UPDATE (parcial)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), middleware.Actor(c), id, usecase.UpdateAppointmentInput{
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		Status:    req.Status,
		Notes:     req.Notes,
		ServiceID: req.ServiceID,
		UserID:    req.UserID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.Actor(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Message(c, "Agendamento deletado com sucesso!")
}
