package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tamilsociety/tls-platform/internal/api/handlers"
	"github.com/tamilsociety/tls-platform/internal/api/middleware"
	"github.com/tamilsociety/tls-platform/internal/api/routes"
	"github.com/tamilsociety/tls-platform/internal/application"
	"github.com/tamilsociety/tls-platform/internal/config"
	"github.com/tamilsociety/tls-platform/internal/config/db"
	"github.com/tamilsociety/tls-platform/internal/cron"
	"github.com/tamilsociety/tls-platform/internal/feed"
	"github.com/tamilsociety/tls-platform/internal/metrics"
	"github.com/tamilsociety/tls-platform/internal/notify"
	"github.com/tamilsociety/tls-platform/internal/repository"
	"github.com/tamilsociety/tls-platform/internal/storage"
	"github.com/tamilsociety/tls-platform/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	if err := logger.Init(config.AppEnv, config.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize JWT signing key
	middleware.Init()

	if err := db.Init(); err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(db.DB); err != nil {
		logger.Log.Fatal("failed to migrate database", zap.Error(err))
	}
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	attachments, err := storage.New(ctx)
	if err != nil {
		logger.Log.Fatal("failed to initialize attachment storage", zap.Error(err))
	}

	repos := repository.NewRepositories(db.DB)
	notifiers := notify.Multi{notify.NewInbox(repos.Notification)}
	if email := notify.NewSMTPEmail(config.SmtpHost, config.SmtpPort, config.SmtpUser, config.SmtpPassword, config.SmtpFrom); email != nil {
		notifiers = append(notifiers, email)
	} else {
		logger.Log.Info("SMTP_HOST not set, acceptance emails disabled")
	}

	hub := feed.NewHub()
	services := application.New(repos, application.Deps{
		Notifier:    notifiers,
		Attachments: attachments,
		Feed:        hub,
	})

	jobs := cron.New(services, config.AuditRetentionDays)
	if err := jobs.Start(config.ReconcileSchedule); err != nil {
		logger.Log.Fatal("failed to start background jobs", zap.Error(err))
	}
	defer jobs.Stop()

	if config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())

	routes.RegisterRoutes(router, handlers.New(services, repos, hub))

	srv := &http.Server{
		Addr:              ":" + config.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		logger.Log.Info("starting API server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}
}
