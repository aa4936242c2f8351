package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/Santos-dev-tech/beauty-express/internal/handler"
	"github.com/Santos-dev-tech/beauty-express/internal/middleware"
)

// RegisterStaff registers endpoints shared by STYLIST and ADMIN users.
// Staff move bookings through their lifecycle, browse the full booking
// list and read the dashboard aggregates.
func RegisterStaff(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("STYLIST", "ADMIN"),
	)

	// ---- Lifecycle ----
	g.PATCH("/bookings/:id", b.UpdateStatus)

	// ---- Browse ----
	// Supports ?stylist_id= to narrow to one stylist's schedule.
	g.GET("/bookings", b.List)

	// ---- Dashboard ----
	g.GET("/dashboard/stats", b.Stats)
}

// RegisterAdmin registers ADMIN-only endpoints under /v1.
func RegisterAdmin(e *echo.Echo, b *handler.BookingHandler, s *handler.ServiceHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	g.DELETE("/bookings/:id", b.Delete)
	g.POST("/services", s.Create)
}
