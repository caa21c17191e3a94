package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"larder/internal/delivery/http/response"
	"larder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// defaultStatsPeriodDays is the activity window used when none is given.
const defaultStatsPeriodDays = 30

// StatsHandler holds dependencies for the statistics handlers.
type StatsHandler struct {
	uc     usecase.StatsUsecase
	logger *slog.Logger
}

// NewStatsHandler is the constructor for StatsHandler, injected by Fx.
func NewStatsHandler(uc usecase.StatsUsecase, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		uc:     uc,
		logger: logger,
	}
}

// Activity aggregates history over the requested period.
func (h *StatsHandler) Activity(c echo.Context) error {
	periodDays := defaultStatsPeriodDays
	if raw := c.QueryParam("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			return response.BadRequest(c, "INVALID_INPUT", "days must be a positive integer")
		}
		periodDays = days
	}

	summary, err := h.uc.ActivitySummary(c.Request().Context(), periodDays)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary, "Activity summary retrieved successfully")
}

// Outlook summarizes expiry state across the current inventory.
func (h *StatsHandler) Outlook(c echo.Context) error {
	outlook, err := h.uc.ExpiryOutlook(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, outlook, "Expiry outlook retrieved successfully")
}
