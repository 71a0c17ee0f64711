package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"gigboard/internal/seed"
)

// SeedHandler handles seed data endpoints.
type SeedHandler struct {
	store seed.Store
	now   func() time.Time
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(store seed.Store) *SeedHandler {
	return &SeedHandler{store: store, now: time.Now}
}

// SeedResponse represents the seed response.
type SeedResponse struct {
	Message string `json:"message"`
	seed.Result
}

// Seed godoc
// @Summary Load the demo marketplace
// @Description Creates demo users, jobs and chats. Entities that already exist are skipped.
// @Tags seed
// @Produce json
// @Success 200 {object} SeedResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /seed [post]
func (h *SeedHandler) Seed(c echo.Context) error {
	data, err := seed.Demo(h.now())
	if err != nil {
		return fail(c, err)
	}
	res, err := seed.Run(c.Request().Context(), h.store, data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, SeedResponse{
		Message: "demo data seeded",
		Result:  res,
	})
}
