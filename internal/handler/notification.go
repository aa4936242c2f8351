package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Santos-dev-tech/beauty-express/internal/model"
	"github.com/Santos-dev-tech/beauty-express/internal/repository"
)

// NotificationHandler exposes the recipient's notification feed.
type NotificationHandler struct {
	Repo *repository.NotificationRepo
}

func NewNotificationHandler(r *repository.NotificationRepo) *NotificationHandler {
	if r == nil {
		panic("nil repository passed to NewNotificationHandler")
	}
	return &NotificationHandler{Repo: r}
}

type notificationResp struct {
	ID        uint64  `json:"id"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	Type      string  `json:"type"`
	IsRead    bool    `json:"is_read"`
	Data      *string `json:"data,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func toNotificationResp(n model.Notification) notificationResp {
	return notificationResp{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		Data:      n.Data,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// List handles GET /v1/notifications: the caller's own notifications,
// newest first, capped at 50.
func (h *NotificationHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Repo.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]notificationResp, 0, len(rows))
	for _, n := range rows {
		out = append(out, toNotificationResp(n))
	}
	return c.JSON(http.StatusOK, out)
}

// MarkRead handles PATCH /v1/notifications/:id/read. A notification can
// only be marked by its recipient. Re-marking an already-read row
// changes nothing and reports not found, matching the read-exactly-once
// lifecycle.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Repo.MarkRead(ctx, id, userID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "notification marked read"})
}
