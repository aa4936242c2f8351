package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Santos-dev-tech/beauty-express/internal/booking"
	"github.com/Santos-dev-tech/beauty-express/internal/model"
)

// In-memory implementations of the lifecycle manager's ports. They back
// a real Manager so these tests cover the handler and the lifecycle
// rules together, without a database.

type memStore struct {
	bookings map[uint64]*model.BookingDetail
	nextID   uint64
	users    *memDirectory
	services *memCatalog

	// lastHadDeadline records whether the most recent call carried a
	// deadline, so tests can verify the handlers bound their requests.
	lastHadDeadline bool
}

func (s *memStore) mark(ctx context.Context) {
	_, s.lastHadDeadline = ctx.Deadline()
}

func (s *memStore) Create(ctx context.Context, b *model.Booking) error {
	s.mark(ctx)
	b.ID = s.nextID
	s.nextID++
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	u := s.users.users[b.CustomerID]
	st := s.users.users[b.StylistID]
	sv := s.services.services[b.ServiceID]
	s.bookings[b.ID] = &model.BookingDetail{
		Booking:  cp,
		Customer: model.UserPart{ID: u.ID, Name: u.Name, Email: u.Email},
		Stylist:  model.UserPart{ID: st.ID, Name: st.Name},
		Service:  model.ServicePart{ID: sv.ID, Name: sv.Name, DurationMin: sv.DurationMin},
	}
	return nil
}

func (s *memStore) GetDetail(ctx context.Context, id uint64) (*model.BookingDetail, error) {
	s.mark(ctx)
	d, ok := s.bookings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *d
	return &cp, nil
}

func (s *memStore) UpdateLifecycle(ctx context.Context, b *model.Booking) error {
	s.mark(ctx)
	d, ok := s.bookings[b.ID]
	if !ok {
		return sql.ErrNoRows
	}
	d.Status = b.Status
	d.StartTime = b.StartTime
	d.EndTime = b.EndTime
	d.DurationMin = b.DurationMin
	d.Notes = b.Notes
	return nil
}

func (s *memStore) Delete(ctx context.Context, id uint64) error {
	s.mark(ctx)
	if _, ok := s.bookings[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.bookings, id)
	return nil
}

func (s *memStore) all() []model.BookingDetail {
	out := []model.BookingDetail{}
	for _, d := range s.bookings {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (s *memStore) ListByCustomer(ctx context.Context, customerID uint64) ([]model.BookingDetail, error) {
	s.mark(ctx)
	out := []model.BookingDetail{}
	for _, d := range s.all() {
		if d.CustomerID == customerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *memStore) ListByStylist(ctx context.Context, stylistID uint64) ([]model.BookingDetail, error) {
	out := []model.BookingDetail{}
	for _, d := range s.all() {
		if d.StylistID == stylistID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *memStore) ListAll(ctx context.Context) ([]model.BookingDetail, error) { return s.all(), nil }

func (s *memStore) Recent(ctx context.Context, limit int) ([]model.BookingDetail, error) {
	all := s.all()
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *memStore) CountByDate(ctx context.Context, date string) (int, error) {
	s.mark(ctx)
	n := 0
	for _, d := range s.all() {
		if d.Date == date {
			n++
		}
	}
	return n, nil
}

func (s *memStore) CountByStatus(ctx context.Context, status model.Status) (int, error) {
	n := 0
	for _, d := range s.all() {
		if d.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *memStore) RevenueCentsForDate(ctx context.Context, date string) (uint64, error) {
	var total uint64
	for _, d := range s.all() {
		if d.Date == date && d.Status == model.StatusCompleted {
			total += uint64(d.PriceCents)
		}
	}
	return total, nil
}

type memDirectory struct{ users map[uint64]model.User }

func (d *memDirectory) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, ok := d.users[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (d *memDirectory) CountClients(ctx context.Context) (int, error) { return 1, nil }

type memCatalog struct{ services map[uint64]model.Service }

func (c *memCatalog) GetByID(ctx context.Context, id uint64) (model.Service, error) {
	s, ok := c.services[id]
	if !ok {
		return model.Service{}, sql.ErrNoRows
	}
	return s, nil
}

type memSink struct{ sent int }

func (m *memSink) Notify(ctx context.Context, userID uint64, title, message, typ string, data *string) error {
	m.sent++
	return nil
}

func newBookingHandler() (*BookingHandler, *memStore, *memSink) {
	users := &memDirectory{users: map[uint64]model.User{
		1: {ID: 1, Name: "Amaka", Email: "amaka@example.com", Role: model.RoleClient},
		2: {ID: 2, Name: "Bisi", Role: model.RoleStylist},
	}}
	services := &memCatalog{services: map[uint64]model.Service{
		10: {ID: 10, Name: "Gel Manicure", DurationMin: 45, PriceCents: 3500},
	}}
	store := &memStore{bookings: map[uint64]*model.BookingDetail{}, nextID: 1, users: users, services: services}
	sink := &memSink{}
	m := booking.NewManager(store, users, services, sink, zerolog.Nop())
	return NewBookingHandler(m), store, sink
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewRequestValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asClient(c echo.Context, id uint64) {
	c.Set("user_id", float64(id)) // JWT numeric claims arrive as float64
	c.Set("role", model.RoleClient)
}

func TestCreateBooking(t *testing.T) {
	h, _, sink := newBookingHandler()
	c, rec := newContext(http.MethodPost, "/v1/bookings",
		`{"stylist_id":2,"service_id":10,"date":"2025-06-02","time":"10:00 AM","price":35}`)
	asClient(c, 1)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "PENDING", resp["status"])
	assert.Equal(t, 35.0, resp["price"])
	assert.Equal(t, 2, sink.sent)
}

func TestCreateBookingValidation(t *testing.T) {
	h, _, _ := newBookingHandler()
	c, rec := newContext(http.MethodPost, "/v1/bookings", `{"service_id":10}`)
	asClient(c, 1)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingBadDate(t *testing.T) {
	h, _, _ := newBookingHandler()
	c, rec := newContext(http.MethodPost, "/v1/bookings",
		`{"stylist_id":2,"service_id":10,"date":"junk","time":"10:00 AM","price":35}`)
	asClient(c, 1)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func seedBooking(t *testing.T, h *BookingHandler) uint64 {
	t.Helper()
	c, rec := newContext(http.MethodPost, "/v1/bookings",
		`{"stylist_id":2,"service_id":10,"date":"2025-06-02","time":"10:00 AM","price":35}`)
	asClient(c, 1)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

func TestGetBookingOwnership(t *testing.T) {
	h, _, _ := newBookingHandler()
	seedBooking(t, h)

	// Another client may not read it.
	c, rec := newContext(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	asClient(c, 99)
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Staff may.
	c, rec = newContext(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user_id", float64(2))
	c.Set("role", model.RoleStylist)
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetBookingNotFound(t *testing.T) {
	h, _, _ := newBookingHandler()
	c, rec := newContext(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("404")
	asClient(c, 1)

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateStatusMapping(t *testing.T) {
	h, _, _ := newBookingHandler()
	seedBooking(t, h)

	cases := []struct {
		name string
		body string
		code int
	}{
		{"valid transition", `{"status":"CONFIRMED"}`, http.StatusOK},
		{"unknown status", `{"status":"DONE"}`, http.StatusBadRequest},
		{"pending target rejected", `{"status":"PENDING"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext(http.MethodPatch, "/", tc.body)
			c.SetParamNames("id")
			c.SetParamValues("1")
			c.Set("user_id", float64(2))
			c.Set("role", model.RoleStylist)
			require.NoError(t, h.UpdateStatus(c))
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestUpdateStatusTerminalConflict(t *testing.T) {
	h, _, _ := newBookingHandler()
	seedBooking(t, h)

	do := func(body string) int {
		c, rec := newContext(http.MethodPatch, "/", body)
		c.SetParamNames("id")
		c.SetParamValues("1")
		c.Set("user_id", float64(2))
		c.Set("role", model.RoleStylist)
		require.NoError(t, h.UpdateStatus(c))
		return rec.Code
	}
	assert.Equal(t, http.StatusOK, do(`{"status":"CANCELLED"}`))
	assert.Equal(t, http.StatusBadRequest, do(`{"status":"CONFIRMED"}`))
	// Replaying the terminal status is allowed.
	assert.Equal(t, http.StatusOK, do(`{"status":"CANCELLED"}`))
}

func TestDeleteBooking(t *testing.T) {
	h, store, _ := newBookingHandler()
	seedBooking(t, h)

	c, rec := newContext(http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.bookings)

	c, rec = newContext(http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListMineFiltersByCaller(t *testing.T) {
	h, _, _ := newBookingHandler()
	seedBooking(t, h)

	c, rec := newContext(http.MethodGet, "/v1/my-bookings", "")
	asClient(c, 1)
	require.NoError(t, h.ListMine(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	var mine []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	assert.Len(t, mine, 1)

	c, rec = newContext(http.MethodGet, "/v1/my-bookings", "")
	asClient(c, 99)
	require.NoError(t, h.ListMine(c))
	var other []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &other))
	assert.Empty(t, other)
}

func TestBookingEndpointsBoundTheirContexts(t *testing.T) {
	h, store, _ := newBookingHandler()

	c, _ := newContext(http.MethodPost, "/v1/bookings",
		`{"stylist_id":2,"service_id":10,"date":"2025-06-02","time":"10:00 AM","price":35}`)
	asClient(c, 1)
	require.NoError(t, h.Create(c))
	assert.True(t, store.lastHadDeadline, "Create must pass a deadline to the store")

	c, _ = newContext(http.MethodGet, "/v1/my-bookings", "")
	asClient(c, 1)
	require.NoError(t, h.ListMine(c))
	assert.True(t, store.lastHadDeadline, "ListMine must pass a deadline to the store")

	c, _ = newContext(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	asClient(c, 1)
	require.NoError(t, h.Get(c))
	assert.True(t, store.lastHadDeadline, "Get must pass a deadline to the store")

	c, _ = newContext(http.MethodPatch, "/", `{"status":"CONFIRMED"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user_id", float64(2))
	c.Set("role", model.RoleStylist)
	require.NoError(t, h.UpdateStatus(c))
	assert.True(t, store.lastHadDeadline, "UpdateStatus must pass a deadline to the store")

	c, _ = newContext(http.MethodGet, "/v1/dashboard/stats", "")
	c.Set("user_id", float64(2))
	c.Set("role", model.RoleStylist)
	require.NoError(t, h.Stats(c))
	assert.True(t, store.lastHadDeadline, "Stats must pass a deadline to the store")

	c, _ = newContext(http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	assert.True(t, store.lastHadDeadline, "Delete must pass a deadline to the store")
}

func TestStatsEndpoint(t *testing.T) {
	h, _, _ := newBookingHandler()
	seedBooking(t, h)

	c, rec := newContext(http.MethodGet, "/v1/dashboard/stats", "")
	c.Set("user_id", float64(2))
	c.Set("role", model.RoleStylist)
	require.NoError(t, h.Stats(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var stats booking.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.PendingBookings)
	assert.Equal(t, 1, stats.TotalClients)
	require.Len(t, stats.RecentActivity, 1)
	assert.Equal(t, "New booking", stats.RecentActivity[0].Action)
}
