package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Santos-dev-tech/beauty-express/internal/handler"
	"github.com/Santos-dev-tech/beauty-express/internal/middleware"
)

// RegisterClient registers client-scoped endpoints under /v1. All
// routes require a valid JWT and the CLIENT role. Clients request
// bookings and review their own.
func RegisterClient(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CLIENT"),
	)
	g.POST("/bookings", b.Create)
	g.GET("/my-bookings", b.ListMine)
}
