// Package queue defines message payloads exchanged over the message broker.
package queue

// NotificationEvent is published after a notification row is written.
// It carries enough information for downstream consumers to deliver or
// log the notification without querying the primary database.
type NotificationEvent struct {
    NotificationID uint64  `json:"notification_id"`
    UserID         uint64  `json:"user_id"`
    Title          string  `json:"title"`
    Message        string  `json:"message"`
    Type           string  `json:"type"`
    Data           *string `json:"data,omitempty"`
    CreatedAt      string  `json:"created_at"`
}
