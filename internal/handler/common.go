package handler // handler defines http handlers

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Santos-dev-tech/beauty-express/internal/booking"
    "github.com/Santos-dev-tech/beauty-express/internal/model"
    "github.com/Santos-dev-tech/beauty-express/internal/repository"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
// JWT numeric claims arrive as float64; older middleware may store other
// numeric types or strings.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// getRole returns the role claim stored by the JWT middleware, or "".
func getRole(c echo.Context) string {
    if r, ok := c.Get("role").(string); ok {
        return r
    }
    return ""
}

// bookingError translates lifecycle errors into HTTP responses: missing
// references are 404, ownership violations 403, rejected input 400, and
// everything else a 500 the caller may retry.
func bookingError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, booking.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
    case errors.Is(err, repository.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    case errors.Is(err, booking.ErrInvalidStatus),
        errors.Is(err, booking.ErrInvalidTransition),
        errors.Is(err, booking.ErrInvalidInput):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// bookingResp is the wire shape of a booking with interpolated
// relations. Price is serialized as a decimal amount.
type bookingResp struct {
    ID          uint64            `json:"id"`
    Date        string            `json:"date"`
    Time        string            `json:"time"`
    Status      model.Status      `json:"status"`
    StartTime   *string           `json:"start_time,omitempty"`
    EndTime     *string           `json:"end_time,omitempty"`
    DurationMin *uint32           `json:"duration_min,omitempty"`
    Price       float64           `json:"price"`
    Notes       *string           `json:"notes,omitempty"`
    CreatedAt   string            `json:"created_at"`
    Customer    model.UserPart    `json:"customer"`
    Stylist     model.UserPart    `json:"stylist"`
    Service     model.ServicePart `json:"service"`
}

func toBookingResp(d *model.BookingDetail) bookingResp {
    r := bookingResp{
        ID:          d.ID,
        Date:        d.Date,
        Time:        d.Time,
        Status:      d.Status,
        DurationMin: d.DurationMin,
        Price:       float64(d.PriceCents) / 100,
        Notes:       d.Notes,
        CreatedAt:   d.CreatedAt.UTC().Format(time.RFC3339),
        Customer:    d.Customer,
        Stylist:     d.Stylist,
        Service:     d.Service,
    }
    if d.StartTime != nil {
        s := d.StartTime.UTC().Format(time.RFC3339)
        r.StartTime = &s
    }
    if d.EndTime != nil {
        s := d.EndTime.UTC().Format(time.RFC3339)
        r.EndTime = &s
    }
    return r
}

func toBookingList(details []model.BookingDetail) []bookingResp {
    out := make([]bookingResp, 0, len(details))
    for i := range details {
        out = append(out, toBookingResp(&details[i]))
    }
    return out
}
