package handler

import (
	"log/slog"
	"net/http"

	"larder/internal/delivery/http/response"
	"larder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SeedHandler holds dependencies for demo data and bulk purge handlers.
type SeedHandler struct {
	uc     usecase.SeedUsecase
	logger *slog.Logger
}

// NewSeedHandler is the constructor for SeedHandler, injected by Fx.
func NewSeedHandler(uc usecase.SeedUsecase, logger *slog.Logger) *SeedHandler {
	return &SeedHandler{
		uc:     uc,
		logger: logger,
	}
}

// Seed populates demo units, items and history.
func (h *SeedHandler) Seed(c echo.Context) error {
	result, err := h.uc.SeedExampleData(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, result, "Example data seeded successfully")
}

// ClearExample removes only data flagged as example data.
func (h *SeedHandler) ClearExample(c echo.Context) error {
	if err := h.uc.ClearExampleData(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Example data cleared successfully")
}

type purgeRequest struct {
	Confirm bool `json:"confirm"`
}

// Purge wipes inventory, history and reminder keys. Refused without the
// confirm flag.
func (h *SeedHandler) Purge(c echo.Context) error {
	var req purgeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid purge input")
	}

	if err := h.uc.PurgeAll(c.Request().Context(), req.Confirm); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "All inventory data purged")
}
