package handler

import (
	"log/slog"
	"net/http"

	"larder/internal/delivery/http/response"
	"larder/internal/domain/entity"
	"larder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NotificationHandler holds dependencies for notification settings handlers.
type NotificationHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler, injected by Fx.
func NewNotificationHandler(uc usecase.NotificationUsecase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: logger,
	}
}

type cycleView struct {
	Sent         bool   `json:"sent"`
	Reason       string `json:"reason,omitempty"`
	Expired      int    `json:"expired"`
	ExpiringSoon int    `json:"expiring_soon"`
	LowQuantity  int    `json:"low_quantity"`
}

func toCycleView(result *usecase.CycleResult) cycleView {
	return cycleView{
		Sent:         result.Sent,
		Reason:       result.Reason,
		Expired:      result.Expired,
		ExpiringSoon: result.ExpiringSoon,
		LowQuantity:  result.LowQuantity,
	}
}

// GetConfig returns the current notification settings.
func (h *NotificationHandler) GetConfig(c echo.Context) error {
	cfg, err := h.uc.GetConfig(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cfg, "Notification settings retrieved successfully")
}

type configureRequest struct {
	Recipient   string             `json:"recipient" validate:"required,email"`
	Schedule    entity.Schedule    `json:"schedule"`
	Preferences entity.Preferences `json:"preferences"`
}

// Configure replaces recipient, schedule and preferences. Schedule
// semantics (valid weekdays, HH:MM time) are checked by the usecase.
func (h *NotificationHandler) Configure(c echo.Context) error {
	var req configureRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid notification settings input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cfg, err := h.uc.Configure(c.Request().Context(), usecase.ConfigureNotificationsInput{
		Recipient:   req.Recipient,
		Schedule:    req.Schedule,
		Preferences: req.Preferences,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cfg, "Notification settings updated successfully")
}

// UpdatePreferences changes only the notification preferences.
func (h *NotificationHandler) UpdatePreferences(c echo.Context) error {
	var prefs entity.Preferences
	if err := c.Bind(&prefs); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid preferences input")
	}

	cfg, err := h.uc.UpdatePreferences(c.Request().Context(), prefs)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cfg, "Preferences updated successfully")
}

// SendNow sends the status report immediately, ignoring the schedule.
func (h *NotificationHandler) SendNow(c echo.Context) error {
	result, err := h.uc.SendNow(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCycleView(result), "Notification cycle executed")
}

// ResetLastSent clears the last-sent marker.
func (h *NotificationHandler) ResetLastSent(c echo.Context) error {
	if err := h.uc.ResetLastSent(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Last-sent marker cleared")
}

// ClearReminders forgets every expiring-soon dedup marker.
func (h *NotificationHandler) ClearReminders(c echo.Context) error {
	if err := h.uc.ClearReminders(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Reminder markers cleared")
}
