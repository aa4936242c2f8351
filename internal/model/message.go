package model

import "time"

// Message mirrors the `messages` table. Messages form a flat
// conversation between two users; clients poll for new entries.
type Message struct {
    ID         uint64    // messages.id
    SenderID   uint64    // messages.sender_id
    ReceiverID uint64    // messages.receiver_id
    Content    string    // messages.content
    IsRead     bool      // messages.is_read
    CreatedAt  time.Time // messages.created_at
}

// MessageDetail is a message joined with the sender and receiver
// display names for rendering a chat window.
type MessageDetail struct {
    Message
    SenderName   string
    ReceiverName string
}
