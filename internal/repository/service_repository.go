package repository

import (
	"context"
	"database/sql"

	"github.com/Santos-dev-tech/beauty-express/internal/model"
)

// ServiceRepo provides access to the salon's service catalog. The
// catalog is small and mostly read-only: clients browse it when
// requesting a booking, admins occasionally add entries.
type ServiceRepo struct{ DB *sql.DB }

func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{DB: db} }

// Create inserts a service and returns its ID.
func (r *ServiceRepo) Create(ctx context.Context, name, description string, durationMin, priceCents uint32) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO services (name, description, duration_min, price_cents) VALUES (?,?,?,?)",
		name, description, durationMin, priceCents)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a service by id. Returns sql.ErrNoRows when absent.
func (r *ServiceRepo) GetByID(ctx context.Context, id uint64) (model.Service, error) {
	var s model.Service
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,description,duration_min,price_cents,is_active,created_at FROM services WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.Name, &s.Description, &s.DurationMin, &s.PriceCents, &s.IsActive, &s.CreatedAt)
	return s, err
}

// ListActive returns all active services ordered by name.
func (r *ServiceRepo) ListActive(ctx context.Context) ([]model.Service, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,description,duration_min,price_cents,is_active,created_at FROM services WHERE is_active=1 ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Service, 0)
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.DurationMin, &s.PriceCents, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
