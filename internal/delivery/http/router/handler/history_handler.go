package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"larder/internal/delivery/http/response"
	"larder/internal/domain/entity"
	"larder/internal/domain/repository"
	"larder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HistoryHandler holds dependencies for the mutation log handlers.
type HistoryHandler struct {
	uc     usecase.HistoryUsecase
	logger *slog.Logger
}

// NewHistoryHandler is the constructor for HistoryHandler, injected by Fx.
func NewHistoryHandler(uc usecase.HistoryUsecase, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		uc:     uc,
		logger: logger,
	}
}

// List returns history entries, newest first. Supports since_days, action
// and category query filters.
func (h *HistoryHandler) List(c echo.Context) error {
	var filter repository.HistoryFilter

	if raw := c.QueryParam("since_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			return response.BadRequest(c, "INVALID_INPUT", "since_days must be a non-negative integer")
		}
		filter.SinceDays = days
	}

	if raw := c.QueryParam("action"); raw != "" {
		action := entity.Action(raw)
		if !action.IsValid() {
			return response.BadRequest(c, "INVALID_INPUT", "action must be 'added' or 'removed'")
		}
		filter.Action = action
	}

	if raw := c.QueryParam("category"); raw != "" {
		category := entity.Category(raw)
		if !category.IsValid() {
			return response.BadRequest(c, "INVALID_INPUT", "unknown category")
		}
		filter.Category = category
	}

	entries, err := h.uc.List(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, entries, "History retrieved successfully")
}

// Clear wipes the whole mutation log.
func (h *HistoryHandler) Clear(c echo.Context) error {
	if err := h.uc.ClearHistory(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "History cleared successfully")
}
