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

	"lexium/config"
	"lexium/db"
	"lexium/handlers"
	"lexium/logger"
	"lexium/metrics"
	"lexium/middleware"
	"lexium/models"
	"lexium/services"
	"lexium/services/i18n"
	"lexium/services/jobs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: "lexium",
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	zlog := logger.GetLogger()
	defer zlog.Sync() //nolint:errcheck

	// Initialize database
	database, err := db.Open(cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close(database)

	// Run migrations
	if err := db.AutoMigrate(database, models.All()...); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := services.SeedCaseTypes(database); err != nil {
		zlog.Fatal("Failed to seed case types", zap.Error(err))
	}

	if err := i18n.Load(); err != nil {
		zlog.Fatal("Failed to load translations", zap.Error(err))
	}
	i18n.SetDefaultLanguage(cfg.DefaultLanguage)

	metrics.Register()

	secret, err := config.LoadOrCreateSecretKey(cfg.SecretKeyFile)
	if err != nil {
		zlog.Fatal("Failed to load secret key", zap.Error(err))
	}
	flasher := middleware.NewFlasher(secret, cfg.IsProduction())

	storage := services.NewStorage(cfg)
	mailer := services.NewMailer(cfg)
	h := &handlers.Handler{
		DB:      database,
		Cfg:     cfg,
		PDF:     services.NewChromePDFRenderer(cfg.ChromePath),
		Storage: storage,
		Mailer:  mailer,
		Flash:   flasher,
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.ErrorHandler

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(logger.Middleware())
	e.Use(echomiddleware.Recover())
	e.Use(metrics.Middleware())
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.CSRF(cfg))
	e.Use(flasher.Middleware())

	h.RegisterRoutes(e)

	scheduler, err := jobs.StartScheduler(&jobs.Digest{
		DB:      database,
		Cfg:     cfg,
		Storage: storage,
		Mailer:  mailer,
	})
	if err != nil {
		zlog.Fatal("Failed to start scheduler", zap.Error(err))
	}

	// Start server
	go func() {
		zlog.Info("Server starting", zap.String("port", cfg.ServerPort))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down")

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		zlog.Error("Server shutdown failed", zap.Error(err))
	}
}
