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

func TestNotificationCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNotificationRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notifications (user_id, title, message, type, data) VALUES (?,?,?,?,?)")).
		WithArgs(uint64(1), "Booking Update", "Your service has started!", model.NotificationBooking, nil).
		WillReturnResult(sqlmock.NewResult(42, 1))
	created := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT created_at FROM notifications WHERE id=?")).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	n := &model.Notification{
		UserID:  1,
		Title:   "Booking Update",
		Message: "Your service has started!",
		Type:    model.NotificationBooking,
	}
	require.NoError(t, repo.Create(context.Background(), n))
	assert.Equal(t, uint64(42), n.ID)
	assert.Equal(t, created, n.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationMarkRead(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNotificationRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET is_read=1 WHERE id=? AND user_id=? AND is_read=0")).
		WithArgs(uint64(42), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.MarkRead(context.Background(), 42, 1))

	// Marking again, or marking someone else's, touches no rows.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET is_read=1")).
		WithArgs(uint64(42), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.MarkRead(context.Background(), 42, 1), sql.ErrNoRows)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationListByUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNotificationRepo(db)

	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM notifications WHERE user_id=").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "message", "type", "is_read", "data", "created_at"}).
			AddRow(2, 1, "Booking Update", "Your service has started!", "BOOKING", false, nil, now).
			AddRow(1, 1, "New Message", "Bisi sent you a message", "MESSAGE", true, nil, now.Add(-time.Hour)))

	out, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Booking Update", out[0].Title)
	assert.False(t, out[0].IsRead)
	assert.Nil(t, out[0].Data)
	assert.True(t, out[1].IsRead)
	require.NoError(t, mock.ExpectationsWereMet())
}
