package repository

import (
    "context"
    "database/sql"

    "github.com/Santos-dev-tech/beauty-express/internal/model"
)

// BookingRepo provides CRUD operations and aggregate queries for
// bookings. Every read joins the customer, stylist and service rows so
// callers receive interpolated relations (name/contact fields only)
// alongside the booking itself. All timestamp fields are stored in UTC;
// the appointment date is a DATE column read back as a plain
// "YYYY-MM-DD" string so day comparisons are string equality.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// detailColumns is the shared SELECT list used by every detail query.
// Order must match scanDetail.
const detailColumns = `b.id, b.customer_id, b.stylist_id, b.service_id,
       DATE_FORMAT(b.date, '%Y-%m-%d'), b.time, b.status,
       b.start_time, b.end_time, b.duration_min, b.price_cents, b.notes,
       b.created_at, b.updated_at,
       c.name, c.email, c.phone,
       st.name,
       sv.name, sv.duration_min`

const detailJoins = ` FROM bookings b
       JOIN users c ON c.id = b.customer_id
       JOIN users st ON st.id = b.stylist_id
       JOIN services sv ON sv.id = b.service_id`

// scanner abstracts *sql.Row and *sql.Rows for scanDetail.
type scanner interface {
    Scan(dest ...interface{}) error
}

func scanDetail(s scanner) (*model.BookingDetail, error) {
    var d model.BookingDetail
    var startTime, endTime sql.NullTime
    var duration sql.NullInt64
    var notes sql.NullString
    var custPhone sql.NullString
    if err := s.Scan(
        &d.ID, &d.CustomerID, &d.StylistID, &d.ServiceID,
        &d.Date, &d.Time, &d.Status,
        &startTime, &endTime, &duration, &d.PriceCents, &notes,
        &d.CreatedAt, &d.UpdatedAt,
        &d.Customer.Name, &d.Customer.Email, &custPhone,
        &d.Stylist.Name,
        &d.Service.Name, &d.Service.DurationMin,
    ); err != nil {
        return nil, err
    }
    if startTime.Valid {
        t := startTime.Time.UTC()
        d.StartTime = &t
    }
    if endTime.Valid {
        t := endTime.Time.UTC()
        d.EndTime = &t
    }
    if duration.Valid {
        m := uint32(duration.Int64)
        d.DurationMin = &m
    }
    if notes.Valid {
        n := notes.String
        d.Notes = &n
    }
    if custPhone.Valid {
        p := custPhone.String
        d.Customer.Phone = &p
    }
    d.Customer.ID = d.CustomerID
    d.Stylist.ID = d.StylistID
    d.Service.ID = d.ServiceID
    return &d, nil
}

// Create inserts a new booking and populates the generated ID and the
// server-assigned timestamps on the provided record. Status must be set
// by the caller (PENDING at creation).
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
    const q = `INSERT INTO bookings (customer_id, stylist_id, service_id, date, time, status, price_cents, notes)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := r.db.ExecContext(ctx, q,
        b.CustomerID, b.StylistID, b.ServiceID, b.Date, b.Time, b.Status, b.PriceCents, b.Notes)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    // Query back the row to populate timestamps and defaults.
    const sel = `SELECT DATE_FORMAT(date, '%Y-%m-%d'), created_at, updated_at FROM bookings WHERE id = ?`
    return r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.Date, &b.CreatedAt, &b.UpdatedAt)
}

// GetDetail returns a single booking with interpolated relations. When
// no booking with the given ID exists, sql.ErrNoRows is returned.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (*model.BookingDetail, error) {
    q := `SELECT ` + detailColumns + detailJoins + ` WHERE b.id = ?`
    return scanDetail(r.db.QueryRowContext(ctx, q, id))
}

// UpdateLifecycle persists the mutable lifecycle fields of a booking:
// status, start/end timestamps, measured duration and notes. The write
// is the unit of atomicity for a status transition; notification
// dispatch happens only after it succeeds.
func (r *BookingRepo) UpdateLifecycle(ctx context.Context, b *model.Booking) error {
    const q = `UPDATE bookings SET status = ?, start_time = ?, end_time = ?, duration_min = ?, notes = ? WHERE id = ?`
    _, err := r.db.ExecContext(ctx, q, b.Status, b.StartTime, b.EndTime, b.DurationMin, b.Notes, b.ID)
    return err
}

// Delete removes a booking unconditionally (hard delete, no audit
// trail). Deleting a missing booking returns sql.ErrNoRows.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
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

func (r *BookingRepo) list(ctx context.Context, where string, args ...interface{}) ([]model.BookingDetail, error) {
    q := `SELECT ` + detailColumns + detailJoins + where + ` ORDER BY b.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]model.BookingDetail, 0)
    for rows.Next() {
        d, err := scanDetail(rows)
        if err != nil {
            return nil, err
        }
        details = append(details, *d)
    }
    return details, rows.Err()
}

// ListByCustomer returns all bookings created by the given customer,
// newest first.
func (r *BookingRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]model.BookingDetail, error) {
    return r.list(ctx, ` WHERE b.customer_id = ?`, customerID)
}

// ListByStylist returns all bookings assigned to the given stylist,
// newest first.
func (r *BookingRepo) ListByStylist(ctx context.Context, stylistID uint64) ([]model.BookingDetail, error) {
    return r.list(ctx, ` WHERE b.stylist_id = ?`, stylistID)
}

// ListAll returns every booking, newest first. Staff dashboards filter
// client-side.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.BookingDetail, error) {
    return r.list(ctx, ``)
}

// Recent returns the latest bookings up to limit, newest first. Used to
// build the dashboard's recent-activity feed.
func (r *BookingRepo) Recent(ctx context.Context, limit int) ([]model.BookingDetail, error) {
    q := `SELECT ` + detailColumns + detailJoins + ` ORDER BY b.created_at DESC LIMIT ?`
    rows, err := r.db.QueryContext(ctx, q, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]model.BookingDetail, 0, limit)
    for rows.Next() {
        d, err := scanDetail(rows)
        if err != nil {
            return nil, err
        }
        details = append(details, *d)
    }
    return details, rows.Err()
}

// CountByDate returns the number of bookings on the given date
// ("YYYY-MM-DD"). Dates are compared as date-only values.
func (r *BookingRepo) CountByDate(ctx context.Context, date string) (int, error) {
    var n int
    err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM bookings WHERE date = ?`, date).Scan(&n)
    return n, err
}

// CountByStatus returns the number of bookings currently in the given
// status.
func (r *BookingRepo) CountByStatus(ctx context.Context, status model.Status) (int, error) {
    var n int
    err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM bookings WHERE status = ?`, status).Scan(&n)
    return n, err
}

// RevenueCentsForDate sums the price of completed bookings on the given
// date. Recomputed from the source of truth on every call; the result
// is never cached.
func (r *BookingRepo) RevenueCentsForDate(ctx context.Context, date string) (uint64, error) {
    var cents uint64
    err := r.db.QueryRowContext(ctx,
        `SELECT COALESCE(SUM(price_cents), 0) FROM bookings WHERE date = ? AND status = ?`,
        date, model.StatusCompleted).Scan(&cents)
    return cents, err
}
