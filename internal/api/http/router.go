package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/diagnosis-service/internal/api/http/handlers"
	"github.com/spec-kit/diagnosis-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profile        *handlers.ProfileHandler
	Reports        *handlers.ReportsHandler
	Diagnosis      *handlers.DiagnosisHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Protected groups pass through the
// auth middleware before any handler body runs.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/predict", cfg.Diagnosis.Predict)
	app.Post("/chat", cfg.Diagnosis.Chat)
	app.Post("/analyze-image", cfg.Diagnosis.AnalyzeImage)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)
	api.Put("/user/profile", cfg.Profile.Update)
	api.Post("/reports", cfg.Reports.Create)
	api.Get("/reports", cfg.Reports.List)
}
