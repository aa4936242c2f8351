package repository

import (
	"context"
	"database/sql"

	"github.com/Santos-dev-tech/beauty-express/internal/model"
)

// MessageRepo persists chat messages between two users. Conversations
// are flat message lists; clients poll for entries newer than the last
// ID they have seen.
type MessageRepo struct{ DB *sql.DB }

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{DB: db} }

// Create inserts a message and populates its generated ID and creation
// timestamp.
func (r *MessageRepo) Create(ctx context.Context, m *model.Message) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO messages (sender_id, receiver_id, content) VALUES (?,?,?)",
		m.SenderID, m.ReceiverID, m.Content)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM messages WHERE id=?", m.ID).Scan(&m.CreatedAt)
}

// Conversation returns messages exchanged between two users, oldest
// first. When sinceID is non-zero, only messages with a larger ID are
// returned, which lets polling clients fetch just the tail.
func (r *MessageRepo) Conversation(ctx context.Context, userID, otherID, sinceID uint64) ([]model.MessageDetail, error) {
	const q = `SELECT m.id, m.sender_id, m.receiver_id, m.content, m.is_read, m.created_at,
	                  s.name, rc.name
	           FROM messages m
	           JOIN users s ON s.id = m.sender_id
	           JOIN users rc ON rc.id = m.receiver_id
	           WHERE ((m.sender_id = ? AND m.receiver_id = ?) OR (m.sender_id = ? AND m.receiver_id = ?))
	             AND m.id > ?
	           ORDER BY m.id`
	rows, err := r.DB.QueryContext(ctx, q, userID, otherID, otherID, userID, sinceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.MessageDetail, 0)
	for rows.Next() {
		var d model.MessageDetail
		if err := rows.Scan(&d.ID, &d.SenderID, &d.ReceiverID, &d.Content, &d.IsRead, &d.CreatedAt,
			&d.SenderName, &d.ReceiverName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// MarkConversationRead marks all messages sent by otherID to userID as
// read. Returned row count is not meaningful; re-marking is a no-op.
func (r *MessageRepo) MarkConversationRead(ctx context.Context, userID, otherID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE messages SET is_read=1 WHERE receiver_id=? AND sender_id=? AND is_read=0",
		userID, otherID)
	return err
}
