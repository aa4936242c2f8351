package booking

import (
	"context"

	"github.com/Santos-dev-tech/beauty-express/internal/model"
)

// Store is the persistence collaborator for bookings. The repository
// layer implements it over MySQL; tests swap in an in-memory fake.
// Missing rows surface as sql.ErrNoRows.
type Store interface {
	Create(ctx context.Context, b *model.Booking) error
	GetDetail(ctx context.Context, id uint64) (*model.BookingDetail, error)
	UpdateLifecycle(ctx context.Context, b *model.Booking) error
	Delete(ctx context.Context, id uint64) error
	ListByCustomer(ctx context.Context, customerID uint64) ([]model.BookingDetail, error)
	ListByStylist(ctx context.Context, stylistID uint64) ([]model.BookingDetail, error)
	ListAll(ctx context.Context) ([]model.BookingDetail, error)
	Recent(ctx context.Context, limit int) ([]model.BookingDetail, error)
	CountByDate(ctx context.Context, date string) (int, error)
	CountByStatus(ctx context.Context, status model.Status) (int, error)
	RevenueCentsForDate(ctx context.Context, date string) (uint64, error)
}

// Directory resolves user references to display name and contact info
// for notification text interpolation. Read-only from this package's
// perspective.
type Directory interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
	CountClients(ctx context.Context) (int, error)
}

// Catalog resolves service references to name and advertised duration.
type Catalog interface {
	GetByID(ctx context.Context, id uint64) (model.Service, error)
}

// Notifier accepts a notification for a recipient and persists/delivers
// it. The lifecycle manager treats it as fire-and-forget: a returned
// error is logged and swallowed, never surfaced as a failure of the
// primary operation.
type Notifier interface {
	Notify(ctx context.Context, userID uint64, title, message, typ string, data *string) error
}
