package routes

import (
	"time"

	"github.com/folhaponto/ponto-backend/internal/config"
	"github.com/folhaponto/ponto-backend/internal/handlers"
	"github.com/folhaponto/ponto-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	pontoHandler *handlers.PontoHandler,
	colaboradorHandler *handlers.ColaboradorHandler,
	justificativaHandler *handlers.JustificativaHandler,
	auditoriaHandler *handlers.AuditoriaHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Signup stays outside JWTProtected: the handler itself requires a token
	// only once the first user exists.
	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	jwt := middleware.JWTProtected(cfg)
	gestao := middleware.GestaoRequired(db)

	// Session
	api.Get("/me/colaborador", jwt, colaboradorHandler.Me)

	// Punches
	api.Post("/ponto/bater", jwt, pontoHandler.BaterPonto)
	api.Get("/ponto/status", jwt, pontoHandler.Status)
	api.Post("/ponto/manual", jwt, gestao, pontoHandler.Manual)
	api.Post("/ponto/periodo", jwt, gestao, pontoHandler.Periodo)
	api.Get("/pontos", jwt, gestao, pontoHandler.List)
	api.Get("/pontos/:code", jwt, pontoHandler.GetPorDia)
	api.Put("/pontos/:id", jwt, gestao, pontoHandler.Update)
	api.Delete("/pontos/:id", jwt, gestao, pontoHandler.Delete)

	// Collaborators
	api.Get("/colaboradores", jwt, gestao, colaboradorHandler.List)
	api.Post("/colaboradores", jwt, colaboradorHandler.Create)
	api.Get("/colaboradores/by-user/:user_id", jwt, colaboradorHandler.GetByUser)
	api.Patch("/colaboradores/by-user/:user_id", jwt, colaboradorHandler.UpsertByUser)
	api.Get("/colaboradores/:id", jwt, colaboradorHandler.Get)
	api.Delete("/colaboradores/:code", jwt, gestao, colaboradorHandler.Delete)

	// Justifications
	api.Post("/justificativas", jwt, justificativaHandler.Submit)
	api.Get("/justificativas/arquivo/:nome", justificativaHandler.Download)
	api.Get("/justificativas/:code", jwt, justificativaHandler.ListByCode)
	api.Post("/justificativas/:id/avaliar", jwt, gestao, justificativaHandler.Avaliar)

	// Audit trail
	api.Get("/auditoria", jwt, gestao, auditoriaHandler.List)
}
