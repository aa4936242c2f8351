package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/Santos-dev-tech/beauty-express/internal/model"
)

// Manager implements the booking lifecycle. Each operation is a single
// logical transaction against the Store followed by zero or more
// fire-and-forget notification dispatches. There is no locking and no
// version check: concurrent updates to the same booking are
// last-write-wins by design.
type Manager struct {
	store    Store
	users    Directory
	services Catalog
	notifier Notifier
	log      zerolog.Logger
	now      func() time.Time // injectable for tests
}

// NewManager constructs a Manager. All collaborators must be non-nil.
func NewManager(store Store, users Directory, services Catalog, notifier Notifier, log zerolog.Logger) *Manager {
	if store == nil || users == nil || services == nil || notifier == nil {
		panic("nil collaborator passed to NewManager")
	}
	return &Manager{
		store:    store,
		users:    users,
		services: services,
		notifier: notifier,
		log:      log.With().Str("component", "booking").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RequestInput carries the fields of a new booking request. Price is
// the decimal amount as submitted; it is converted to cents for storage.
type RequestInput struct {
	CustomerID uint64
	StylistID  uint64
	ServiceID  uint64
	Date       string // "2006-01-02"
	Time       string // display slot label, not parsed
	Notes      *string
	Price      float64
}

// Request creates a new booking in PENDING state and emits exactly two
// notifications: one to the customer and one to the assigned stylist.
// No availability check is performed; overlapping bookings for the same
// stylist and slot are permitted.
func (m *Manager) Request(ctx context.Context, in RequestInput) (*model.BookingDetail, error) {
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, fmt.Errorf("%w: date %q", ErrInvalidInput, in.Date)
	}
	if in.Price < 0 || math.IsNaN(in.Price) || math.IsInf(in.Price, 0) {
		return nil, fmt.Errorf("%w: price must be a non-negative amount", ErrInvalidInput)
	}
	cents := math.Round(in.Price * 100)
	if cents > math.MaxUint32 {
		return nil, fmt.Errorf("%w: price exceeds the storable range", ErrInvalidInput)
	}

	customer, err := m.users.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, asNotFound("customer", err)
	}
	if _, err := m.users.GetByID(ctx, in.StylistID); err != nil {
		return nil, asNotFound("stylist", err)
	}
	svc, err := m.services.GetByID(ctx, in.ServiceID)
	if err != nil {
		return nil, asNotFound("service", err)
	}

	b := &model.Booking{
		CustomerID: in.CustomerID,
		StylistID:  in.StylistID,
		ServiceID:  in.ServiceID,
		Date:       in.Date,
		Time:       in.Time,
		Status:     model.StatusPending,
		PriceCents: uint32(cents),
		Notes:      in.Notes,
	}
	if err := m.store.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	// Best effort: the booking is committed, notification failure must
	// not roll it back.
	m.notify(ctx, in.CustomerID, "Booking Submitted",
		"Your booking request has been submitted and is pending confirmation.")
	m.notify(ctx, in.StylistID, "New Booking Request",
		fmt.Sprintf("%s requested a booking for %s", customer.Name, svc.Name))

	detail, err := m.store.GetDetail(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("load created booking: %w", err)
	}
	return detail, nil
}

// UpdateStatus mutates a booking per the transition table and emits one
// notification to the customer. Notes, when non-nil, overwrite the
// stored value unconditionally. The persistence write commits before
// any notification is dispatched, so a crash in between leaves the
// booking updated but the customer un-notified (accepted best-effort gap).
func (m *Manager) UpdateStatus(ctx context.Context, id uint64, rawStatus string, notes *string) (*model.BookingDetail, error) {
	target, ok := model.ParseStatus(rawStatus)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, rawStatus)
	}
	detail, err := m.store.GetDetail(ctx, id)
	if err != nil {
		return nil, asNotFound("booking", err)
	}
	if !allowed(detail.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, detail.Status, target)
	}

	b := detail.Booking
	b.Status = target
	switch target {
	case model.StatusInProgress:
		// start_time is recorded once and never re-derived.
		if b.StartTime == nil {
			t := m.now()
			b.StartTime = &t
		}
	case model.StatusCompleted:
		// end_time is overwritten on replay (last-write-wins), and the
		// duration is recomputed from it; without a recorded start there
		// is nothing to measure and duration stays unset.
		t := m.now()
		b.EndTime = &t
		if b.StartTime != nil {
			mins := uint32(math.Round(t.Sub(*b.StartTime).Seconds() / 60))
			b.DurationMin = &mins
		}
	}
	if notes != nil {
		b.Notes = notes
	}

	if err := m.store.UpdateLifecycle(ctx, &b); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	if msg := statusMessage(target, detail.Service.Name); msg != "" {
		m.notify(ctx, b.CustomerID, "Booking Update", msg)
	}

	detail.Booking = b
	return detail, nil
}

// Delete removes a booking unconditionally. No notification is emitted
// and no soft-delete trail is kept.
func (m *Manager) Delete(ctx context.Context, id uint64) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return asNotFound("booking", err)
	}
	return nil
}

// Get returns a single booking with interpolated relations.
func (m *Manager) Get(ctx context.Context, id uint64) (*model.BookingDetail, error) {
	d, err := m.store.GetDetail(ctx, id)
	if err != nil {
		return nil, asNotFound("booking", err)
	}
	return d, nil
}

// ListForCustomer returns the customer's own bookings, newest first.
func (m *Manager) ListForCustomer(ctx context.Context, customerID uint64) ([]model.BookingDetail, error) {
	return m.store.ListByCustomer(ctx, customerID)
}

// ListForStylist returns the bookings assigned to a stylist, newest first.
func (m *Manager) ListForStylist(ctx context.Context, stylistID uint64) ([]model.BookingDetail, error) {
	return m.store.ListByStylist(ctx, stylistID)
}

// ListAll returns every booking, newest first.
func (m *Manager) ListAll(ctx context.Context) ([]model.BookingDetail, error) {
	return m.store.ListAll(ctx)
}

// Activity is one line of the dashboard's recent-activity feed.
type Activity struct {
	Time     string `json:"time"`
	Action   string `json:"action"`
	Customer string `json:"customer"`
	Service  string `json:"service"`
}

// DashboardStats aggregates today's figures for staff dashboards. The
// values are pure projections over the bookings table, recomputed from
// the database on every call.
type DashboardStats struct {
	TodayBookings   int        `json:"today_bookings"`
	PendingBookings int        `json:"pending_bookings"`
	TotalClients    int        `json:"total_clients"`
	TodayRevenue    float64    `json:"today_revenue"`
	RecentActivity  []Activity `json:"recent_activity"`
}

// Stats computes the dashboard aggregates for the manager's current
// calendar date.
func (m *Manager) Stats(ctx context.Context) (*DashboardStats, error) {
	today := m.now().Format("2006-01-02")

	todayCount, err := m.store.CountByDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("count today's bookings: %w", err)
	}
	pending, err := m.store.CountByStatus(ctx, model.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("count pending bookings: %w", err)
	}
	clients, err := m.users.CountClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("count clients: %w", err)
	}
	revenueCents, err := m.store.RevenueCentsForDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("sum today's revenue: %w", err)
	}
	recent, err := m.store.Recent(ctx, 4)
	if err != nil {
		return nil, fmt.Errorf("load recent bookings: %w", err)
	}

	activity := make([]Activity, 0, len(recent))
	for _, d := range recent {
		activity = append(activity, Activity{
			Time:     d.CreatedAt.Format("15:04"),
			Action:   actionFor(d.Status),
			Customer: d.Customer.Name,
			Service:  d.Service.Name,
		})
	}
	return &DashboardStats{
		TodayBookings:   todayCount,
		PendingBookings: pending,
		TotalClients:    clients,
		TodayRevenue:    float64(revenueCents) / 100,
		RecentActivity:  activity,
	}, nil
}

// allowed reports whether the lifecycle permits moving from current to
// target. Terminal bookings accept only a replay of their own status;
// PENDING is assigned at creation and is never a valid update target.
func allowed(current, target model.Status) bool {
	if target == model.StatusPending {
		return false
	}
	if current.Terminal() {
		return current == target
	}
	return true
}

// statusMessage returns the customer-facing text for a target status,
// or "" when the transition carries no notification.
func statusMessage(target model.Status, serviceName string) string {
	switch target {
	case model.StatusConfirmed:
		return fmt.Sprintf("Your booking for %s has been confirmed!", serviceName)
	case model.StatusInProgress:
		return "Your service has started!"
	case model.StatusCompleted:
		return fmt.Sprintf("Your %s service has been completed.", serviceName)
	case model.StatusCancelled:
		return fmt.Sprintf("Your booking for %s has been cancelled.", serviceName)
	}
	return ""
}

func actionFor(s model.Status) string {
	switch s {
	case model.StatusPending:
		return "New booking"
	case model.StatusConfirmed:
		return "Booking confirmed"
	case model.StatusInProgress:
		return "Service started"
	case model.StatusCompleted:
		return "Service completed"
	case model.StatusCancelled:
		return "Booking cancelled"
	}
	return "Booking updated"
}

func (m *Manager) notify(ctx context.Context, userID uint64, title, message string) {
	if err := m.notifier.Notify(ctx, userID, title, message, model.NotificationBooking, nil); err != nil {
		m.log.Warn().Err(err).Uint64("user_id", userID).Str("title", title).
			Msg("notification dispatch failed")
	}
}

// asNotFound maps missing-row errors from the collaborators to
// ErrNotFound and passes everything else through wrapped.
func asNotFound(what string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return fmt.Errorf("%s lookup: %w", what, err)
}
