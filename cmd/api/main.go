package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/naf-scheduler/internal/audit"
	"github.com/BruksfildServices01/naf-scheduler/internal/auth"
	"github.com/BruksfildServices01/naf-scheduler/internal/cache"
	"github.com/BruksfildServices01/naf-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/naf-scheduler/internal/db"
	"github.com/BruksfildServices01/naf-scheduler/internal/handlers"
	"github.com/BruksfildServices01/naf-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/naf-scheduler/internal/logger"
	"github.com/BruksfildServices01/naf-scheduler/internal/middleware"
	"github.com/BruksfildServices01/naf-scheduler/internal/notify"
	"github.com/BruksfildServices01/naf-scheduler/internal/routes"
	"github.com/BruksfildServices01/naf-scheduler/internal/storage"
	"github.com/BruksfildServices01/naf-scheduler/internal/timezone"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zl.Sync()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 🗄️ BANCO
	// ======================================================
	if cfg.DBAutoMigrate {
		if err := dbpkg.RunMigrations(cfg.DBUrl); err != nil {
			return err
		}
		zl.Info("migrations applied")
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	var catalogCache cache.Catalog = cache.Nop{}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCatalog(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			return err
		}
		defer rc.Close()
		catalogCache = cache.NewLogged(rc, zl)
		zl.Info("catalog cache enabled")
	}

	var (
		auditStore  audit.Store
		auditReader handlers.AuditReader
	)
	if cfg.MongoURI != "" {
		ms, err := audit.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return err
		}
		defer ms.Close(context.Background())
		auditStore, auditReader = ms, ms
		zl.Info("audit trail stored in mongo")
	} else {
		gs := audit.NewGormStore(db)
		auditStore, auditReader = gs, gs
	}

	dispatcher := audit.NewDispatcher(auditStore, zl)
	defer dispatcher.Close()

	// sem S3 o upload de imagem responde storage_unavailable
	var objects storage.ObjectStore
	if cfg.S3.Enabled() {
		objects = storage.NewS3Store(cfg.S3)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Stop()

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	err = routes.RegisterRoutes(r, routes.Deps{
		Config:       cfg,
		Log:          zl,
		Loc:          timezone.Location(cfg.Timezone),
		Appointments: repository.NewAppointmentGormRepository(db),
		Services:     repository.NewServiceGormRepository(db),
		Users:        repository.NewUserGormRepository(db),
		Audit:        dispatcher,
		AuditReader:  auditReader,
		Cache:        catalogCache,
		Objects:      objects,
		Notifier:     notify.NewLogNotifier(zl),
		Issuer:       auth.NewIssuer(cfg.JWTSecret, cfg.JWTExpiry, cfg.ResetTokenTTL),
		RateLimiter:  limiter,
		Ping:         sqlDB.PingContext,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
