package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/RominaTrazziSpindox/CIAMS-project/internal/api/http/handlers"
	"github.com/RominaTrazziSpindox/CIAMS-project/internal/auth"
)

// AuthRouteConfig bundles dependencies for the auth service routes.
type AuthRouteConfig struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Users  *handlers.UsersHandler
	Codec  *auth.Codec
	Logger *zap.Logger
}

// AuthPolicy is the access rule table of the auth service. Login,
// registration and the probes are public; user administration is
// admin only; everything else requires an authenticated caller.
func AuthPolicy() *auth.Policy {
	return auth.NewPolicy(
		auth.Rule{Method: "GET", Pattern: "/health/*", Access: auth.Public()},
		auth.Rule{Method: "POST", Pattern: "/auth/login", Access: auth.Public()},
		auth.Rule{Method: "POST", Pattern: "/auth/register", Access: auth.Public()},
		auth.Rule{Method: "*", Pattern: "/users", Access: auth.RequireRole(auth.RoleAdmin)},
		auth.Rule{Method: "*", Pattern: "/users/*", Access: auth.RequireRole(auth.RoleAdmin)},
	)
}

// RegisterAuthRoutes wires the auth service HTTP routes.
func RegisterAuthRoutes(app *fiber.App, cfg AuthRouteConfig) {
	app.Use(auth.Authenticate(cfg.Codec, cfg.Logger))
	app.Use(AuthPolicy().Enforce())

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)

	users := app.Group("/users")
	users.Get("", cfg.Users.ListByRole)
	users.Get("/:username", cfg.Users.Get)
	users.Delete("/:username", cfg.Users.Delete)
}
