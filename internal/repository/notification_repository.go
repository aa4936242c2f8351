package repository

import (
	"context"
	"database/sql"

	"github.com/Santos-dev-tech/beauty-express/internal/model"
)

// NotificationRepo persists notification rows. Notifications are only
// ever created as side effects of booking mutations or chat sends and
// are mutated exactly once, when the recipient marks them read.
type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

// Create inserts a notification and populates its generated ID and
// creation timestamp.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notifications (user_id, title, message, type, data) VALUES (?,?,?,?,?)",
		n.UserID, n.Title, n.Message, n.Type, n.Data)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM notifications WHERE id=?", n.ID).Scan(&n.CreatedAt)
}

// ListByUser returns the recipient's notifications, newest first,
// capped at the 50 most recent.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Notification, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,title,message,type,is_read,data,created_at FROM notifications WHERE user_id=? ORDER BY created_at DESC LIMIT 50",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		var data sql.NullString
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &data, &n.CreatedAt); err != nil {
			return nil, err
		}
		if data.Valid {
			d := data.String
			n.Data = &d
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flips is_read for a notification owned by the given user.
// Marking someone else's notification, or a missing one, returns
// sql.ErrNoRows.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET is_read=1 WHERE id=? AND user_id=? AND is_read=0", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
