// Package notifier implements the notification sink consumed by the
// booking lifecycle and the chat handler. A notification is first
// written to the notifications table (the row clients poll for), then
// best-effort published to the message broker for out-of-band delivery.
package notifier

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Santos-dev-tech/beauty-express/internal/model"
	"github.com/Santos-dev-tech/beauty-express/internal/queue"
	"github.com/Santos-dev-tech/beauty-express/internal/repository"
	queue_publisher "github.com/Santos-dev-tech/beauty-express/internal/service"
)

// Notifier writes notification rows and fans them out to the broker.
type Notifier struct {
	repo *repository.NotificationRepo
	log  zerolog.Logger
}

// New constructs a Notifier bound to the notification repository.
func New(repo *repository.NotificationRepo, log zerolog.Logger) *Notifier {
	return &Notifier{repo: repo, log: log.With().Str("component", "notifier").Logger()}
}

// Notify persists a notification for the recipient. The database row is
// the source of truth; the broker publish that follows is best effort
// and its failure is only logged. Callers treat the whole call as
// fire-and-forget.
func (n *Notifier) Notify(ctx context.Context, userID uint64, title, message, typ string, data *string) error {
	row := &model.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
		Data:    data,
	}
	if err := n.repo.Create(ctx, row); err != nil {
		return err
	}

	if err := queue_publisher.PublishNotification(ctx, queue.NotificationEvent{
		NotificationID: row.ID,
		UserID:         row.UserID,
		Title:          row.Title,
		Message:        row.Message,
		Type:           row.Type,
		Data:           row.Data,
		CreatedAt:      row.CreatedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		n.log.Warn().Err(err).Uint64("notification_id", row.ID).Msg("broker publish failed")
	}
	return nil
}
