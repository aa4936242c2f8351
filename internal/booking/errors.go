// Package booking owns the booking lifecycle: it validates transitions,
// computes derived fields (start/end timestamps, measured duration) and
// triggers the notification side effects of each mutation. Persistence
// and delivery are delegated to the ports defined in ports.go.
package booking

import "errors"

// ErrNotFound is returned when a referenced booking, user or service
// does not exist. The operation aborts cleanly with no mutation.
var ErrNotFound = errors.New("not found")

// ErrInvalidStatus is returned when a status string is not one of the
// five known lifecycle states. Rejected before any write.
var ErrInvalidStatus = errors.New("invalid status")

// ErrInvalidTransition is returned when the target status is not
// reachable from the booking's current status: terminal bookings can
// only be re-targeted to their own status, and PENDING is never a valid
// target of an update (it is assigned at creation only).
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrInvalidInput is returned for malformed request fields such as an
// unparseable date or a negative price. Rejected before any write.
var ErrInvalidInput = errors.New("invalid input")
