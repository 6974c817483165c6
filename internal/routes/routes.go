package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/naf-scheduler/internal/audit"
	"github.com/BruksfildServices01/naf-scheduler/internal/auth"
	"github.com/BruksfildServices01/naf-scheduler/internal/cache"
	"github.com/BruksfildServices01/naf-scheduler/internal/config"
	"github.com/BruksfildServices01/naf-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/naf-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/naf-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/naf-scheduler/internal/handlers"
	"github.com/BruksfildServices01/naf-scheduler/internal/middleware"
	"github.com/BruksfildServices01/naf-scheduler/internal/notify"
	"github.com/BruksfildServices01/naf-scheduler/internal/storage"
	ucAccount "github.com/BruksfildServices01/naf-scheduler/internal/usecase/account"
	ucAppointment "github.com/BruksfildServices01/naf-scheduler/internal/usecase/appointment"
	ucCatalog "github.com/BruksfildServices01/naf-scheduler/internal/usecase/catalog"
	"github.com/BruksfildServices01/naf-scheduler/internal/validators"
)

// Deps reúne a infraestrutura já construída (em main ou nos testes).
type Deps struct {
	Config *config.Config
	Log    *zap.Logger
	Loc    *time.Location

	Appointments appointment.Repository
	Services     catalog.Repository
	Users        account.Repository

	Audit       audit.Sink
	AuditReader handlers.AuditReader
	Cache       cache.Catalog
	Objects     storage.ObjectStore // nil quando S3 não está configurado
	Notifier    notify.Notifier
	Issuer      *auth.Issuer
	RateLimiter *middleware.RateLimiter

	Ping func(ctx context.Context) error
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	cfg := d.Config

	if err := validators.Register(); err != nil {
		return err
	}
	if d.Audit == nil {
		d.Audit = audit.Nop{}
	}
	if d.Cache == nil {
		d.Cache = cache.Nop{}
	}

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	// ======================================================
	// 🧠 USE CASES: ACCOUNTS
	// ======================================================
	var checkDomain func(string) bool
	if cfg.EmailDomainCheck {
		checkDomain = validators.IsEmailDomainValid
	}

	registerUC := ucAccount.NewRegister(d.Users, d.Issuer, d.Audit, checkDomain)
	loginUC := ucAccount.NewLogin(d.Users, d.Issuer, d.Audit)
	forgotUC := ucAccount.NewForgotPassword(d.Users, d.Issuer, d.Notifier, cfg.FrontendURL)
	resetUC := ucAccount.NewResetPassword(d.Users, d.Issuer, d.Audit)
	getUserUC := ucAccount.NewGetUser(d.Users)

	// ======================================================
	// 🧠 USE CASES: CATALOG
	// ======================================================
	listServicesUC := ucCatalog.NewListServices(d.Services, d.Cache)
	getServiceUC := ucCatalog.NewGetService(d.Services, d.Cache)
	createServiceUC := ucCatalog.NewCreateService(d.Services, d.Cache, d.Audit)
	updateServiceUC := ucCatalog.NewUpdateService(d.Services, d.Cache, d.Audit, d.Loc)
	deleteServiceUC := ucCatalog.NewDeleteService(d.Services, d.Cache, d.Audit)
	setImageUC := ucCatalog.NewSetServiceImage(d.Services, d.Objects, d.Cache, d.Audit, cfg.ImageMaxWidth)

	// ======================================================
	// 🧠 USE CASES: APPOINTMENTS
	// ======================================================
	listAppointmentsUC := ucAppointment.NewListAppointments(d.Appointments, d.Loc)
	getAppointmentUC := ucAppointment.NewGetAppointment(d.Appointments)
	createAppointmentUC := ucAppointment.NewCreateAppointment(d.Appointments, d.Audit, d.Loc)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(d.Appointments, d.Audit, d.Loc)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(d.Appointments, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.Ping)

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, forgotUC, resetUC, getUserUC)

	userHandler := handlers.NewUserHandler(
		ucAccount.NewListUsers(d.Users),
		getUserUC,
		ucAccount.NewCreateUser(d.Users, d.Audit),
		ucAccount.NewUpdateUser(d.Users, d.Audit),
		ucAccount.NewDeleteUser(d.Users, d.Audit),
	)

	serviceHandler := handlers.NewServiceHandler(
		listServicesUC,
		getServiceUC,
		createServiceUC,
		updateServiceUC,
		deleteServiceUC,
		setImageUC,
		cfg.ImageMaxUploadMiB<<20,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		listAppointmentsUC,
		getAppointmentUC,
		createAppointmentUC,
		updateAppointmentUC,
		deleteAppointmentUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditReader, d.Loc)

	authenticated := middleware.AuthMiddleware(d.Issuer)
	adminOnly := middleware.RequireAdmin()

	// ======================================================
	// 🌐 ROTAS
	// ======================================================
	r.GET("/health", healthHandler.Check)

	// ------------------------------
	// 🔐 AUTH
	// ------------------------------
	authGroup := r.Group("/auth")
	{
		limited := authGroup.Group("")
		if d.RateLimiter != nil {
			limited.Use(d.RateLimiter.Middleware())
		}
		limited.POST("/login", authHandler.Login)
		limited.POST("/registrar", authHandler.Register)
		limited.POST("/esqueceu-senha", authHandler.ForgotPassword)
		limited.POST("/redefinir-senha", authHandler.ResetPassword)

		authGroup.GET("/me", authenticated, authHandler.Me)
	}

	// ------------------------------
	// SERVIÇOS (leitura pública)
	// ------------------------------
	services := r.Group("/servicos")
	{
		services.GET("", serviceHandler.List)
		services.GET("/:id", serviceHandler.Get)

		admin := services.Group("", authenticated, adminOnly)
		admin.POST("", serviceHandler.Create)
		admin.PUT("/:id", serviceHandler.Update)
		admin.DELETE("/:id", serviceHandler.Delete)
		admin.PUT("/:id/imagem", serviceHandler.UploadImage)
	}

	// ------------------------------
	// USUÁRIOS (admin)
	// ------------------------------
	users := r.Group("/usuarios", authenticated, adminOnly)
	{
		users.GET("", userHandler.List)
		users.POST("", userHandler.Create)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	// ------------------------------
	// AGENDAMENTOS
	// ------------------------------
	appointments := r.Group("/agendamentos", authenticated)
	{
		appointments.GET("", appointmentHandler.List)
		appointments.POST("", appointmentHandler.Create)
		appointments.GET("/:id", appointmentHandler.Get)
		appointments.PUT("/:id", appointmentHandler.Update)
		appointments.DELETE("/:id", adminOnly, appointmentHandler.Delete)
	}

	// ------------------------------
	// AUDITORIA
	// ------------------------------
	r.GET("/audit-logs", authenticated, adminOnly, auditLogsHandler.List)

	return nil
}
