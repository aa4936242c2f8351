package model

import "time"

// Notification type tags stored in notifications.type. BOOKING entries
// come from the booking lifecycle, MESSAGE entries from chat sends.
const (
    NotificationBooking  = "BOOKING"
    NotificationMessage  = "MESSAGE"
    NotificationInfo     = "INFO"
    NotificationReminder = "REMINDER"
)

// Notification mirrors the `notifications` table. A notification is
// created unread as a side effect of a booking mutation or a chat
// message and is flipped to read exactly once by the recipient.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – recipient of the notification.
//  Title     – short headline.
//  Message   – human-readable body.
//  Type      – one of BOOKING, MESSAGE, INFO, REMINDER.
//  IsRead    – whether the recipient has opened it.
//  Data      – optional opaque JSON payload for client-side context.
//  CreatedAt – timestamp of creation.
type Notification struct {
    ID        uint64    // notifications.id
    UserID    uint64    // notifications.user_id
    Title     string    // notifications.title
    Message   string    // notifications.message
    Type      string    // notifications.type
    IsRead    bool      // notifications.is_read
    Data      *string   // notifications.data (nullable JSON)
    CreatedAt time.Time // notifications.created_at
}
