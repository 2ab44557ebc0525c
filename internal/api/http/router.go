package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fieldsafe-service/internal/api/http/handlers"
	"github.com/spec-kit/fieldsafe-service/internal/auth"
	"github.com/spec-kit/fieldsafe-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Events         *handlers.EventsHandler
	Notify         *handlers.NotifyHandler
	Directory      *handlers.DirectoryHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/staff/login", cfg.Auth.StaffLogin)
	authGroup.Post("/field/login", cfg.Auth.FieldLogin)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/session", cfg.Auth.Session)

	api := app.Group("/api", cfg.AuthMiddleware.Require(auth.KindAny))
	api.Get("/events", cfg.Events.Stream)
	api.Post("/notify", auth.RequireStaff(), cfg.Notify.Notify)

	staff := api.Group("/staff", auth.RequireStaff(domain.StaffRoleElevated))
	staff.Get("/", cfg.Directory.ListStaff)
	staff.Post("/", cfg.Directory.CreateStaff)
	staff.Patch("/:id/role", cfg.Directory.UpdateRole)
	staff.Patch("/:id/active", cfg.Directory.SetActive)
}
