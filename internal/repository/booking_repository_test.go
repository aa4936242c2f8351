package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Santos-dev-tech/beauty-express/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func detailRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "customer_id", "stylist_id", "service_id",
		"date", "time", "status",
		"start_time", "end_time", "duration_min", "price_cents", "notes",
		"created_at", "updated_at",
		"c_name", "c_email", "c_phone",
		"st_name",
		"sv_name", "sv_duration_min",
	})
}

func TestBookingCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(uint64(1), uint64(2), uint64(10), "2025-06-02", "10:00 AM", model.StatusPending, uint32(3500), nil).
		WillReturnResult(sqlmock.NewResult(7, 1))
	created := time.Date(2025, 6, 2, 9, 59, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DATE_FORMAT(date, '%Y-%m-%d'), created_at, updated_at FROM bookings WHERE id = ?")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"date", "created_at", "updated_at"}).
			AddRow("2025-06-02", created, created))

	b := &model.Booking{
		CustomerID: 1, StylistID: 2, ServiceID: 10,
		Date: "2025-06-02", Time: "10:00 AM",
		Status: model.StatusPending, PriceCents: 3500,
	}
	require.NoError(t, repo.Create(context.Background(), b))
	assert.Equal(t, uint64(7), b.ID)
	assert.Equal(t, created, b.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingGetDetail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)

	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT b.id, b.customer_id").
		WithArgs(uint64(7)).
		WillReturnRows(detailRows().AddRow(
			7, 1, 2, 10,
			"2025-06-02", "10:00 AM", "CONFIRMED",
			nil, nil, nil, 3500, "walk-in",
			now, now,
			"Amaka", "amaka@example.com", nil,
			"Bisi",
			"Gel Manicure", 45,
		))

	d, err := repo.GetDetail(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, d.Status)
	assert.Equal(t, "2025-06-02", d.Date)
	assert.Nil(t, d.StartTime)
	assert.Nil(t, d.DurationMin)
	require.NotNil(t, d.Notes)
	assert.Equal(t, "walk-in", *d.Notes)
	assert.Equal(t, uint64(1), d.Customer.ID)
	assert.Nil(t, d.Customer.Phone)
	assert.Equal(t, "Bisi", d.Stylist.Name)
	assert.Equal(t, uint32(45), d.Service.DurationMin)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingGetDetailMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)

	mock.ExpectQuery("SELECT b.id, b.customer_id").
		WithArgs(uint64(404)).
		WillReturnRows(detailRows())

	_, err := repo.GetDetail(context.Background(), 404)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestBookingUpdateLifecycle(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)

	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)
	mins := uint32(45)
	notes := "client was late"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = ?, start_time = ?, end_time = ?, duration_min = ?, notes = ? WHERE id = ?")).
		WithArgs(model.StatusCompleted, start, end, mins, notes, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateLifecycle(context.Background(), &model.Booking{
		ID: 7, Status: model.StatusCompleted,
		StartTime: &start, EndTime: &end, DurationMin: &mins, Notes: &notes,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingDeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id = ?")).
		WithArgs(uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 404), sql.ErrNoRows)
}

func TestBookingAggregates(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings WHERE date = ?")).
		WithArgs("2025-06-02").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))
	n, err := repo.CountByDate(ctx, "2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings WHERE status = ?")).
		WithArgs(model.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))
	n, err = repo.CountByStatus(ctx, model.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(price_cents), 0) FROM bookings WHERE date = ? AND status = ?")).
		WithArgs("2025-06-02", model.StatusCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"cents"}).AddRow(10500))
	cents, err := repo.RevenueCentsForDate(ctx, "2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, uint64(10500), cents)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRecentLimit(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)

	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("ORDER BY b.created_at DESC LIMIT").
		WithArgs(4).
		WillReturnRows(detailRows().AddRow(
			9, 1, 2, 10,
			"2025-06-02", "10:00 AM", "PENDING",
			nil, nil, nil, 3500, nil,
			now, now,
			"Amaka", "amaka@example.com", "08012345678",
			"Bisi",
			"Gel Manicure", 45,
		))

	out, err := repo.Recent(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].Customer.Phone)
	assert.Equal(t, "08012345678", *out[0].Customer.Phone)
	require.NoError(t, mock.ExpectationsWereMet())
}
