package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Santos-dev-tech/beauty-express/internal/booking"
	"github.com/Santos-dev-tech/beauty-express/internal/model"
	"github.com/Santos-dev-tech/beauty-express/internal/repository"
)

// MessageHandler implements the chat feature: flat two-party
// conversations that clients poll every few seconds. Sending a message
// also drops a MESSAGE-type notification for the receiver through the
// same fire-and-forget sink the booking lifecycle uses.
type MessageHandler struct {
	Messages *repository.MessageRepo
	Users    *repository.UserRepo
	Notifier booking.Notifier
	Log      zerolog.Logger
}

func NewMessageHandler(m *repository.MessageRepo, u *repository.UserRepo, n booking.Notifier, log zerolog.Logger) *MessageHandler {
	if m == nil || u == nil || n == nil {
		panic("nil dependency passed to NewMessageHandler")
	}
	return &MessageHandler{Messages: m, Users: u, Notifier: n, Log: log.With().Str("component", "chat").Logger()}
}

type sendMessageReq struct {
	ReceiverID uint64 `json:"receiver_id" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

type messageResp struct {
	ID           uint64 `json:"id"`
	SenderID     uint64 `json:"sender_id"`
	ReceiverID   uint64 `json:"receiver_id"`
	SenderName   string `json:"sender_name"`
	ReceiverName string `json:"receiver_name"`
	Content      string `json:"content"`
	IsRead       bool   `json:"is_read"`
	CreatedAt    string `json:"created_at"`
}

// List handles GET /v1/messages?other_user_id=&since=. It returns the
// conversation between the caller and the other user, oldest first, and
// marks the other party's messages as read. The optional since
// parameter (a message ID) lets polling clients fetch only the tail.
func (h *MessageHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	otherID, err := strconv.ParseUint(c.QueryParam("other_user_id"), 10, 64)
	if err != nil || otherID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "other_user_id required"})
	}
	var sinceID uint64
	if raw := c.QueryParam("since"); raw != "" {
		sinceID, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid since"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	msgs, err := h.Messages.Conversation(ctx, userID, otherID, sinceID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Messages.MarkConversationRead(ctx, userID, otherID); err != nil {
		h.Log.Warn().Err(err).Msg("mark conversation read failed")
	}

	out := make([]messageResp, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageResp{
			ID:           m.ID,
			SenderID:     m.SenderID,
			ReceiverID:   m.ReceiverID,
			SenderName:   m.SenderName,
			ReceiverName: m.ReceiverName,
			Content:      m.Content,
			IsRead:       m.IsRead,
			CreatedAt:    m.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Send handles POST /v1/messages. The receiver must exist; the message
// write is the primary operation and the receiver's notification is
// best effort.
func (h *MessageHandler) Send(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req sendMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Content = strings.TrimSpace(req.Content)
	if err := c.Validate(&req); err != nil || req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "receiver_id and content required"})
	}
	if req.ReceiverID == userID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot message yourself"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sender, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load sender failed"})
	}
	receiver, err := h.Users.GetByID(ctx, req.ReceiverID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "receiver not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load receiver failed"})
	}

	msg := &model.Message{SenderID: userID, ReceiverID: req.ReceiverID, Content: req.Content}
	if err := h.Messages.Create(ctx, msg); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "send failed"})
	}

	if err := h.Notifier.Notify(ctx, receiver.ID, "New Message",
		fmt.Sprintf("%s sent you a message", sender.Name), model.NotificationMessage, nil); err != nil {
		h.Log.Warn().Err(err).Uint64("receiver_id", receiver.ID).Msg("message notification failed")
	}

	return c.JSON(http.StatusCreated, messageResp{
		ID:           msg.ID,
		SenderID:     msg.SenderID,
		ReceiverID:   msg.ReceiverID,
		SenderName:   sender.Name,
		ReceiverName: receiver.Name,
		Content:      msg.Content,
		IsRead:       false,
		CreatedAt:    msg.CreatedAt.UTC().Format(time.RFC3339),
	})
}
