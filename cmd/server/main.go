package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/folhaponto/ponto-backend/internal/calendar"
	"github.com/folhaponto/ponto-backend/internal/config"
	"github.com/folhaponto/ponto-backend/internal/database"
	"github.com/folhaponto/ponto-backend/internal/dto"
	"github.com/folhaponto/ponto-backend/internal/handlers"
	"github.com/folhaponto/ponto-backend/internal/logging"
	"github.com/folhaponto/ponto-backend/internal/middleware"
	"github.com/folhaponto/ponto-backend/internal/models"
	"github.com/folhaponto/ponto-backend/internal/routes"
	"github.com/folhaponto/ponto-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Working-day gate backed by the BrasilAPI national holiday feed
	gate := calendar.NewGate(calendar.NewBrasilAPIClient(cfg.HolidayAPIURL))

	// Services
	auditService := services.NewAuditService(database.DB)
	authService := services.NewAuthService(database.DB, cfg, auditService)
	colaboradorService := services.NewColaboradorService(database.DB, auditService)
	pontoService := services.NewPontoService(database.DB, gate, auditService)
	justificativaService := services.NewJustificativaService(database.DB, cfg.UploadDir, auditService)

	seedAdmin(cfg, authService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	pontoHandler := handlers.NewPontoHandler(pontoService, colaboradorService)
	colaboradorHandler := handlers.NewColaboradorHandler(colaboradorService)
	justificativaHandler := handlers.NewJustificativaHandler(justificativaService)
	auditoriaHandler := handlers.NewAuditoriaHandler(auditService)
	healthHandler := handlers.NewHealthHandler()

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, authHandler, pontoHandler, colaboradorHandler, justificativaHandler, auditoriaHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

// seedAdmin creates the first management account from ADMIN_* env vars so a
// fresh deployment is not left without any way to log in.
func seedAdmin(cfg *config.Config, authService *services.AuthService) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}
	hasUsers, err := authService.HasAnyUser()
	if err != nil {
		slog.Error("admin seed check failed", "error", err)
		return
	}
	if hasUsers {
		return
	}
	_, err = authService.Signup(&dto.SignupRequest{
		Email:    cfg.AdminEmail,
		Nome:     cfg.AdminNome,
		Password: cfg.AdminPassword,
		Role:     string(models.RoleGestao),
	})
	if err != nil {
		slog.Error("admin seed failed", "error", err)
		return
	}
	slog.Info("admin account seeded", "email", cfg.AdminEmail)
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Erro interno do servidor"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Erro interno do servidor"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
