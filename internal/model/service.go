package model

import "time"

// Service mirrors the `services` table. Services are the salon's
// offerings (manicure, pedicure, nail art and so on). DurationMin is
// the advertised length, not the measured one recorded on bookings.
type Service struct {
    ID          uint64    // services.id
    Name        string    // services.name
    Description string    // services.description
    DurationMin uint32    // services.duration_min
    PriceCents  uint32    // services.price_cents
    IsActive    bool      // services.is_active
    CreatedAt   time.Time // services.created_at
}
