package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/naf-scheduler/internal/middleware"
	usecase "github.com/BruksfildServices01/naf-scheduler/internal/usecase/account"
)

// ======================================================
// HANDLER
// ======================================================

type UserHandler struct {
	list   *usecase.ListUsers
	get    *usecase.GetUser
	create *usecase.CreateUser
	update *usecase.UpdateUser
	remove *usecase.DeleteUser
}

func NewUserHandler(
	list *usecase.ListUsers,
	get *usecase.GetUser,
	create *usecase.CreateUser,
	update *usecase.UpdateUser,
	remove *usecase.DeleteUser,
) *UserHandler {
	return &UserHandler{
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

type CreateUserRequest struct {
	Name     string `json:"nome" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	CPF      string `json:"cpf" binding:"required,cpf"`
	Phone    string `json:"telefone"`
	Password string `json:"senha" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

type UpdateUserRequest struct {
	Name     *string `json:"nome"`
	Email    *string `json:"email"`
	CPF      *string `json:"cpf"`
	Phone    *string `json:"telefone"`
	Password *string `json:"senha"`
	Role     *string `json:"role"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *UserHandler) List(c *gin.Context) {
	list, err := h.list.Execute(c.Request.Context(), c.Query("q"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	u, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.create.Execute(c.Request.Context(), middleware.Actor(c).UserID, usecase.CreateUserInput{
		RegisterInput: usecase.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			CPF:      req.CPF,
			Phone:    req.Phone,
			Password: req.Password,
		},
		Role: req.Role,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.update.Execute(c.Request.Context(), middleware.Actor(c).UserID, id, usecase.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		CPF:      req.CPF,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.Actor(c).UserID, id); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Message(c, "Usuário deletado com sucesso!")
}
