package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/Santos-dev-tech/beauty-express/internal/handler"
	"github.com/Santos-dev-tech/beauty-express/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitors probe this endpoint to verify the
	// service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware. Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Session bootstrap endpoints: no existing token required.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token and issues a fresh access token.
	g.POST("/refresh", a.Refresh)
	// Logout accepts a JSON body with a `refresh_token` and revokes it.
	// No JWT is required so that a client with an expired access token
	// can still terminate its session.
	g.POST("/logout", a.Logout)

	// /v1/me requires a valid access token but no specific role.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("CLIENT", "STYLIST", "ADMIN"))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated catalog browse endpoint.
// Guests read the service list while deciding what to book, so this is
// the one route that sits behind the Redis response cache.
func RegisterPublic(e *echo.Echo, s *handler.ServiceHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/services", s.List, cache)
}
