package handler

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Santos-dev-tech/beauty-express/internal/repository"
)

// ServiceHandler exposes the salon's service catalog. Listing is public
// (and sits behind the Redis response cache); creation is admin-only.
type ServiceHandler struct {
	Services *repository.ServiceRepo
}

func NewServiceHandler(s *repository.ServiceRepo) *ServiceHandler {
	if s == nil {
		panic("nil ServiceRepo passed to NewServiceHandler")
	}
	return &ServiceHandler{Services: s}
}

type createServiceReq struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	DurationMin uint32  `json:"duration_min" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
}

type serviceResp struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DurationMin uint32  `json:"duration_min"`
	Price       float64 `json:"price"`
}

// List handles GET /v1/services.
func (h *ServiceHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	services, err := h.Services.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]serviceResp, 0, len(services))
	for _, s := range services {
		out = append(out, serviceResp{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			DurationMin: s.DurationMin,
			Price:       float64(s.PriceCents) / 100,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /v1/services (admin only, enforced by the route
// group).
func (h *ServiceHandler) Create(c echo.Context) error {
	var req createServiceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, duration_min and price required"})
	}
	if math.IsNaN(req.Price) || math.IsInf(req.Price, 0) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price"})
	}
	cents := math.Round(req.Price * 100)
	if cents > math.MaxUint32 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price exceeds the storable range"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	priceCents := uint32(cents)
	id, err := h.Services.Create(ctx, req.Name, req.Description, req.DurationMin, priceCents)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, serviceResp{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       float64(priceCents) / 100,
	})
}
