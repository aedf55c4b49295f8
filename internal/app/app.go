package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	nats "github.com/nats-io/nats.go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/muneezaZaki85/galvan-ai-auth-system/config"
	httpadapter "github.com/muneezaZaki85/galvan-ai-auth-system/internal/adapters/http"
	apiv1 "github.com/muneezaZaki85/galvan-ai-auth-system/internal/adapters/http/api/v1"
	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/adapters/http/api/v1/handlers"
	authmw "github.com/muneezaZaki85/galvan-ai-auth-system/internal/adapters/http/middleware"
	natsadapter "github.com/muneezaZaki85/galvan-ai-auth-system/internal/adapters/nats"
	repo "github.com/muneezaZaki85/galvan-ai-auth-system/internal/adapters/postgres"
	smtpadapter "github.com/muneezaZaki85/galvan-ai-auth-system/internal/adapters/smtp"
	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/domain"
	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/usecase"
	pkglog "github.com/muneezaZaki85/galvan-ai-auth-system/pkg/log"
)

type App struct {
	cfg      *config.Config
	logger   pkglog.Logger
	db       *gorm.DB
	natsConn *nats.Conn
	echo     *echo.Echo
}

func New(ctx context.Context) (*App, error) {
	cfg := config.MustLoad()
	log := pkglog.New(cfg.AppEnv)

	db, err := gorm.Open(postgres.Open(buildDSN(cfg)), &gorm.Config{
		Logger:         loggerForGorm(cfg),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		return nil, err
	}

	userRepo := repo.NewUserRepository(db)
	if err := usecase.EnsureSuperAdmin(ctx, log, userRepo, cfg.SuperAdminEmail, cfg.SuperAdminPassword); err != nil {
		return nil, err
	}

	issuer, err := usecase.NewTokenIssuer(cfg)
	if err != nil {
		return nil, err
	}

	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		log.Warn().Err(err).Msg("nats connect failed, events disabled")
		nc = nil
	}
	var events usecase.EventPublisher
	if nc != nil {
		events = natsadapter.NewPublisher(nc, cfg.NATSUserEventsSubject)
		verifyHandler := natsadapter.NewVerifyHandler(issuer)
		if err := verifyHandler.Subscribe(nc, cfg.NATSVerifySubject, cfg.AppName); err != nil {
			log.Warn().Err(err).Msg("verify-jwt subscription failed")
		}
	}

	sender := smtpadapter.NewSender(cfg, log)
	authService := usecase.NewAuthService(cfg, log, userRepo, issuer, usecase.NewOTPGenerator(), sender, events)
	adminService := usecase.NewAdminService(log, userRepo, events)

	mw := authmw.NewAuthMiddleware(issuer)
	router := httpadapter.NewRouter(cfg, apiv1.NewRouter(
		handlers.NewAuthHandler(authService),
		handlers.NewAdminHandler(adminService),
		mw,
	))

	e := echo.New()
	router.Setup(e)

	return &App{cfg: cfg, logger: log, db: db, natsConn: nc, echo: e}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.echo.Shutdown(shutdownCtx)
	}()
	go func() {
		errCh <- a.echo.Start(fmt.Sprintf("%s:%s", a.cfg.HTTPHost, a.cfg.HTTPPort))
	}()
	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) Close() {
	if a.natsConn != nil {
		_ = a.natsConn.Drain()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func buildDSN(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
}

func loggerForGorm(cfg *config.Config) logger.Interface {
	level := logger.Warn
	if cfg.AppEnv == "local" {
		level = logger.Info
	}
	return logger.Default.LogMode(level)
}
