package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/naf-scheduler/internal/dto"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/naf-scheduler/internal/middleware"
	usecase "github.com/BruksfildServices01/naf-scheduler/internal/usecase/account"
)

type AuthHandler struct {
	register *usecase.Register
	login    *usecase.Login
	forgot   *usecase.ForgotPassword
	reset    *usecase.ResetPassword
	getUser  *usecase.GetUser
}

func NewAuthHandler(
	register *usecase.Register,
	login *usecase.Login,
	forgot *usecase.ForgotPassword,
	reset *usecase.ResetPassword,
	getUser *usecase.GetUser,
) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		forgot:   forgot,
		reset:    reset,
		getUser:  getUser,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"nome" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	CPF      string `json:"cpf" binding:"required,cpf"`
	Phone    string `json:"telefone" binding:"required"`
	Password string `json:"senha" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"novaSenha"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.register.Execute(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		CPF:      req.CPF,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.AuthResponse{
		Message: "Usuário criado com sucesso",
		User:    res.User,
		Token:   res.Token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.AuthResponse{
		Message: "Login realizado com sucesso",
		User:    res.User,
		Token:   res.Token,
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.forgot.Execute(c.Request.Context(), req.Email); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Message(c, "Se o email estiver cadastrado, você receberá instruções para recuperação")
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.reset.Execute(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Message(c, "Senha redefinida com sucesso")
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.getUser.Execute(c.Request.Context(), middleware.Actor(c).UserID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, u)
}
