package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Santos-dev-tech/beauty-express/internal/handler"
	"github.com/Santos-dev-tech/beauty-express/internal/middleware"
)

// RegisterShared registers endpoints open to every authenticated role.
// Ownership rules (a client may only read their own booking, users only
// see their own notifications and conversations) are enforced inside
// the handlers, not the router.
func RegisterShared(e *echo.Echo, b *handler.BookingHandler, n *handler.NotificationHandler, m *handler.MessageHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CLIENT", "STYLIST", "ADMIN"),
	)

	g.GET("/bookings/:id", b.Get)

	// ---- Notifications ----
	g.GET("/notifications", n.List)
	g.PATCH("/notifications/:id/read", n.MarkRead)

	// ---- Chat ----
	g.GET("/messages", m.List)
	g.POST("/messages", m.Send)
}
