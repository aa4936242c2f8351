package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Santos-dev-tech/beauty-express/internal/booking"
	"github.com/Santos-dev-tech/beauty-express/internal/model"
	"github.com/Santos-dev-tech/beauty-express/internal/repository"
)

// BookingHandler exposes the booking lifecycle over HTTP. All methods
// assume JWT authentication and role validation have already been
// performed by middleware; ownership checks that depend on the booking
// row itself happen here.
type BookingHandler struct {
	Manager *booking.Manager
}

// NewBookingHandler constructs a BookingHandler around the lifecycle
// manager.
func NewBookingHandler(m *booking.Manager) *BookingHandler {
	if m == nil {
		panic("nil manager passed to NewBookingHandler")
	}
	return &BookingHandler{Manager: m}
}

type createBookingReq struct {
	StylistID uint64  `json:"stylist_id" validate:"required"`
	ServiceID uint64  `json:"service_id" validate:"required"`
	Date      string  `json:"date" validate:"required"`
	Time      string  `json:"time" validate:"required"`
	Notes     *string `json:"notes"`
	Price     float64 `json:"price" validate:"gte=0"`
}

type updateBookingReq struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes"`
}

// Create handles POST /v1/bookings. The caller becomes the booking's
// customer; the new booking starts PENDING and both the customer and
// the assigned stylist are notified.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stylist_id, service_id, date, time required; price must be non-negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Manager.Request(ctx, booking.RequestInput{
		CustomerID: userID,
		StylistID:  req.StylistID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
		Price:      req.Price,
	})
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingResp(detail))
}

// ListMine handles GET /v1/my-bookings for clients.
func (h *BookingHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Manager.ListForCustomer(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toBookingList(details))
}

// List handles GET /v1/bookings for staff. Admins and stylists see the
// full list; an optional ?stylist_id= narrows it to one stylist.
func (h *BookingHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if raw := c.QueryParam("stylist_id"); raw != "" {
		stylistID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || stylistID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid stylist_id"})
		}
		details, err := h.Manager.ListForStylist(ctx, stylistID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return c.JSON(http.StatusOK, toBookingList(details))
	}
	details, err := h.Manager.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toBookingList(details))
}

// Get handles GET /v1/bookings/:id. Clients may only read their own
// bookings; staff may read any.
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Manager.Get(ctx, id)
	if err != nil {
		return bookingError(c, err)
	}
	if getRole(c) == model.RoleClient && detail.CustomerID != userID {
		return bookingError(c, repository.ErrForbidden)
	}
	return c.JSON(http.StatusOK, toBookingResp(detail))
}

// UpdateStatus handles PATCH /v1/bookings/:id. The body carries the
// target status and optional notes; the lifecycle manager validates the
// transition, computes derived fields and notifies the customer.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req updateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Manager.UpdateStatus(ctx, id, req.Status, req.Notes)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(detail))
}

// Delete handles DELETE /v1/bookings/:id. Hard delete, admin only.
func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Manager.Delete(ctx, id); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking deleted"})
}

// Stats handles GET /v1/dashboard/stats for staff dashboards. The
// aggregates are recomputed from the database on every request.
func (h *BookingHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, err := h.Manager.Stats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, stats)
}
