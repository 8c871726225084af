package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-chatbot/internal/api/http/handlers"
	"github.com/spec-kit/support-chatbot/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Chat           *handlers.ChatHandler
	Tickets        *handlers.TicketsHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/chat", cfg.Chat.HandleMessage)

	app.Post("/auth/login", cfg.Auth.Login)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle)
	admin.Post("/tickets", cfg.Tickets.CreateTicket)
	admin.Get("/tickets", cfg.Tickets.ListTickets)
	admin.Get("/tickets/:id", cfg.Tickets.GetTicket)
	admin.Patch("/tickets/:id/status", cfg.Tickets.UpdateStatus)
	admin.Get("/interactions", cfg.Tickets.ListInteractions)
}
