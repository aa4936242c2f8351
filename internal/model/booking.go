package model

import "time"

// Status enumerates the lifecycle states of a booking. A booking is
// created PENDING and moves forward as the stylist or admin acts on it.
// COMPLETED and CANCELLED are terminal.
type Status string

const (
    StatusPending    Status = "PENDING"
    StatusConfirmed  Status = "CONFIRMED"
    StatusInProgress Status = "IN_PROGRESS"
    StatusCompleted  Status = "COMPLETED"
    StatusCancelled  Status = "CANCELLED"
)

// ParseStatus normalizes a raw status string into a Status. The second
// return value is false when the input is not one of the five known
// states.
func ParseStatus(raw string) (Status, bool) {
    switch Status(raw) {
    case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
        return Status(raw), true
    }
    return "", false
}

// Terminal reports whether a booking in this status has reached the end
// of its lifecycle.
func (s Status) Terminal() bool {
    return s == StatusCompleted || s == StatusCancelled
}

// Booking mirrors the `bookings` table. Date is stored as a DATE column
// and carried around as a "2006-01-02" string so that "today" comparisons
// are plain string equality. Time is a display slot label ("10:00 AM")
// and is never parsed. StartTime, EndTime and DurationMin are derived
// fields set only by specific status transitions.
//
// Fields:
//  ID          – primary key identifier.
//  CustomerID  – user who requested the booking.
//  StylistID   – stylist assigned to perform the service.
//  ServiceID   – service being booked.
//  Date        – appointment date as a date-only string.
//  Time        – requested slot as a display string.
//  Status      – lifecycle state.
//  StartTime   – set when the service starts (nullable).
//  EndTime     – set when the service completes (nullable).
//  DurationMin – actual service duration in minutes (nullable).
//  PriceCents  – price agreed at creation, in cents.
//  Notes       – optional free text, mutable independent of status.
//  CreatedAt   – creation timestamp, immutable.
//  UpdatedAt   – last update timestamp.
type Booking struct {
    ID          uint64     // bookings.id
    CustomerID  uint64     // bookings.customer_id
    StylistID   uint64     // bookings.stylist_id
    ServiceID   uint64     // bookings.service_id
    Date        string     // bookings.date (DATE, "2006-01-02")
    Time        string     // bookings.time (display string)
    Status      Status     // bookings.status
    StartTime   *time.Time // bookings.start_time (nullable)
    EndTime     *time.Time // bookings.end_time (nullable)
    DurationMin *uint32    // bookings.duration_min (nullable)
    PriceCents  uint32     // bookings.price_cents
    Notes       *string    // bookings.notes (nullable)
    CreatedAt   time.Time  // bookings.created_at
    UpdatedAt   time.Time  // bookings.updated_at
}

// UserPart is the slice of a related user exposed on booking reads:
// name and contact fields only, never the full record.
type UserPart struct {
    ID    uint64  `json:"id"`
    Name  string  `json:"name"`
    Email string  `json:"email,omitempty"`
    Phone *string `json:"phone,omitempty"`
}

// ServicePart is the slice of the related service exposed on booking reads.
type ServicePart struct {
    ID          uint64 `json:"id"`
    Name        string `json:"name"`
    DurationMin uint32 `json:"duration_min"`
}

// BookingDetail is a booking joined with its related customer, stylist
// and service. It is the shape returned by every booking read and by
// the update operation.
type BookingDetail struct {
    Booking
    Customer UserPart
    Stylist  UserPart
    Service  ServicePart
}
