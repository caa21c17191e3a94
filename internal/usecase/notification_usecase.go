package usecase

import (
	"context"

	"larder/internal/domain/entity"
	"larder/internal/domain/service"
)

// MutationNotifier receives inventory mutations that may warrant an
// immediate email. Split from NotificationUsecase so the inventory service
// depends only on this narrow contract.
type MutationNotifier interface {
	// NotifyMutation emails the recipient about a single add or remove when
	// the matching preference is enabled.
	NotifyMutation(ctx context.Context, event *service.InventoryEvent) error
}

// ConfigureNotificationsInput defines the data required to replace the
// notification settings.
type ConfigureNotificationsInput struct {
	Recipient   string
	Schedule    entity.Schedule
	Preferences entity.Preferences
}

// CycleResult reports what a scheduled notification cycle did.
type CycleResult struct {
	Sent         bool   // True when an email actually went out.
	Reason       string // Why nothing was sent ("not due", "nothing to report", ...).
	Expired      int    // Expired items included in the report.
	ExpiringSoon int    // Expiring-soon items included in the report.
	LowQuantity  int    // Low-quantity items included in the report.
}

// NotificationUsecase defines the interface for notification settings and the
// scheduled email cycle.
type NotificationUsecase interface {
	// GetConfig retrieves the current notification settings, creating the
	// defaults if none exist yet.
	GetConfig(ctx context.Context) (*entity.NotificationConfig, error)

	// Configure validates and replaces recipient, schedule and preferences.
	Configure(ctx context.Context, input ConfigureNotificationsInput) (*entity.NotificationConfig, error)

	// UpdatePreferences changes only the notification preferences.
	UpdatePreferences(ctx context.Context, prefs entity.Preferences) (*entity.NotificationConfig, error)

	// ResetLastSent clears the last-sent marker so the next eligible slot
	// sends again. Admin only.
	ResetLastSent(ctx context.Context) error

	// ClearReminders forgets every "expiring soon" dedup marker. Admin only.
	ClearReminders(ctx context.Context) error

	// SendNow runs scan and filter and sends the report immediately,
	// ignoring the schedule. The last-sent marker is not advanced.
	SendNow(ctx context.Context) (*CycleResult, error)

	// RunScheduledCycle is the single entry point for scheduled sending:
	// checks eligibility, scans, filters, sends, marks reminder keys and
	// persists the last-sent timestamp.
	RunScheduledCycle(ctx context.Context) (*CycleResult, error)
}
