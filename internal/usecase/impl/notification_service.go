package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	deliverycontext "larder/internal/delivery/context"
	"larder/internal/domain/entity"
	domainerrors "larder/internal/domain/errors"
	"larder/internal/domain/expiry"
	"larder/internal/domain/repository"
	"larder/internal/domain/schedule"
	"larder/internal/domain/service"
	"larder/internal/usecase"
	"larder/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// notificationService implements NotificationUsecase and MutationNotifier.
type notificationService struct {
	txManager     repository.TransactionManager
	configRepo    repository.ConfigRepository
	inventoryRepo repository.InventoryRepository
	reminderRepo  repository.ReminderRepository
	mailer        service.Mailer
	clock         service.Clock
	logger        *slog.Logger
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	ConfigRepo    repository.ConfigRepository
	InventoryRepo repository.InventoryRepository
	ReminderRepo  repository.ReminderRepository
	Mailer        service.Mailer
	Clock         service.Clock
	Logger        *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		txManager:     params.TxManager,
		configRepo:    params.ConfigRepo,
		inventoryRepo: params.InventoryRepo,
		reminderRepo:  params.ReminderRepo,
		mailer:        params.Mailer,
		clock:         params.Clock,
		logger:        params.Logger,
	}
}

// NewMutationNotifier exposes the same service under the narrow contract the
// inventory service depends on.
func NewMutationNotifier(params NotificationServiceParams) usecase.MutationNotifier {
	return NewNotificationService(params).(usecase.MutationNotifier)
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// defaultConfig is what GetConfig materializes on first access: Mondays at
// 08:00, everything enabled, no recipient yet.
func (srv *notificationService) defaultConfig() *entity.NotificationConfig {
	return &entity.NotificationConfig{
		Schedule:    entity.Schedule{Weekdays: []int{0}, Time: "08:00"},
		Preferences: entity.DefaultPreferences(),
		UpdatedAt:   srv.clock.Now(),
	}
}

// GetConfig retrieves the notification settings, creating the defaults when
// none exist yet.
func (srv *notificationService) GetConfig(ctx context.Context) (*entity.NotificationConfig, error) {
	cfg, err := srv.configRepo.Get(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, repository.ErrConfigNotFound) {
		return nil, errors.Wrap(err, "failed to load notification config")
	}

	cfg = srv.defaultConfig()
	if err := srv.configRepo.Save(ctx, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to persist default notification config")
	}

	return cfg, nil
}

// Configure validates and replaces recipient, schedule and preferences.
// LastSent is preserved.
func (srv *notificationService) Configure(ctx context.Context, input usecase.ConfigureNotificationsInput) (*entity.NotificationConfig, error) {
	if err := schedule.Validate(input.Schedule); err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidSchedule.WithDetails(err.Error()), "configure notifications failed")
	}
	if input.Preferences.ExpiringSoonDays < 0 || input.Preferences.LowQuantityThreshold < 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "thresholds must not be negative")
	}

	current, err := srv.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	cfg := &entity.NotificationConfig{
		Recipient:   input.Recipient,
		Schedule:    input.Schedule,
		Preferences: input.Preferences,
		LastSent:    current.LastSent,
		UpdatedAt:   srv.clock.Now(),
	}

	if err := srv.configRepo.Save(ctx, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to save notification config")
	}

	srv.log(ctx).Info("Notification config updated",
		slog.String("recipient", cfg.Recipient),
		slog.Any("weekdays", cfg.Schedule.Weekdays),
		slog.String("time", cfg.Schedule.Time))

	return cfg, nil
}

// UpdatePreferences changes only the notification preferences.
func (srv *notificationService) UpdatePreferences(ctx context.Context, prefs entity.Preferences) (*entity.NotificationConfig, error) {
	if prefs.ExpiringSoonDays < 0 || prefs.LowQuantityThreshold < 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "thresholds must not be negative")
	}

	cfg, err := srv.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	cfg.Preferences = prefs
	cfg.UpdatedAt = srv.clock.Now()

	if err := srv.configRepo.Save(ctx, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to save notification preferences")
	}

	return cfg, nil
}

// ResetLastSent clears the last-sent marker so the next eligible slot sends again.
func (srv *notificationService) ResetLastSent(ctx context.Context) error {
	if err := srv.configRepo.UpdateLastSent(ctx, nil); err != nil {
		return errors.Wrap(err, "failed to reset last sent timestamp")
	}

	srv.log(ctx).Info("Last-sent marker reset")

	return nil
}

// ClearReminders forgets every "expiring soon" dedup marker.
func (srv *notificationService) ClearReminders(ctx context.Context) error {
	if err := srv.reminderRepo.ClearAll(ctx); err != nil {
		return errors.Wrap(err, "failed to clear reminder keys")
	}

	srv.log(ctx).Info("Reminder keys cleared")

	return nil
}

// SendNow runs scan and filter and sends immediately, ignoring the schedule.
// The last-sent marker is not advanced, so the regular cadence is unaffected.
func (srv *notificationService) SendNow(ctx context.Context) (*usecase.CycleResult, error) {
	cfg, err := srv.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.Recipient == "" {
		return nil, errors.Wrap(domainerrors.ErrNoRecipientConfigured, "send now failed")
	}

	return srv.scanAndSend(ctx, cfg, false)
}

// RunScheduledCycle checks eligibility against the schedule, then scans,
// filters, sends, marks reminder keys and persists the last-sent timestamp.
func (srv *notificationService) RunScheduledCycle(ctx context.Context) (*usecase.CycleResult, error) {
	cfg, err := srv.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.Recipient == "" {
		return &usecase.CycleResult{Reason: "no recipient configured"}, nil
	}

	due, err := schedule.IsDue(cfg, srv.clock.Now())
	if err != nil {
		return nil, errors.Wrap(err, "failed to evaluate notification schedule")
	}
	if !due {
		return &usecase.CycleResult{Reason: "not due"}, nil
	}

	return srv.scanAndSend(ctx, cfg, true)
}

// scanAndSend is the shared tail of SendNow and RunScheduledCycle. When
// scheduled is true, a successful send also advances the last-sent marker.
// A transport failure leaves both the reminder keys and the marker untouched
// so the next eligible cycle retries.
func (srv *notificationService) scanAndSend(ctx context.Context, cfg *entity.NotificationConfig, scheduled bool) (*usecase.CycleResult, error) {
	now := srv.clock.Now()

	units, err := srv.inventoryRepo.ListUnits(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list storage units for scan")
	}

	keys, err := srv.reminderRepo.ListKeys(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reminder keys")
	}
	notified := make(map[string]bool, len(keys))
	for _, key := range keys {
		notified[key] = true
	}

	report := expiry.Scan(units, now, cfg.Preferences.ExpiringSoonDays, notified)
	for _, skipped := range report.Skipped {
		srv.log(ctx).Warn("Skipping item with unparseable expiration date",
			slog.String("unit", skipped.StorageUnit),
			slog.String("item", skipped.Item),
			slog.String("reason", skipped.Reason))
	}

	filtered := expiry.Filter(report, units, cfg.Preferences)
	result := &usecase.CycleResult{
		Expired:      len(filtered.Expired),
		ExpiringSoon: len(filtered.ExpiringSoon),
		LowQuantity:  len(filtered.LowQuantity),
	}
	if filtered.Empty() {
		result.Reason = "nothing to report"

		return result, nil
	}

	subject, body := composeReportEmail(filtered, now)
	if err := srv.mailer.Send(ctx, cfg.Recipient, subject, body); err != nil {
		srv.log(ctx).Error("Failed to send status report", slog.String("recipient", cfg.Recipient), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrEmailSendFailed.WithDetails(err.Error()), "status report delivery failed")
	}

	markKeys := make([]string, 0, len(filtered.ExpiringSoon))
	for _, status := range filtered.ExpiringSoon {
		markKeys = append(markKeys, entity.ReminderKey(status.StorageUnit, status.Item))
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if len(markKeys) > 0 {
			if err := repoFactory.NewReminderRepository().MarkKeys(ctx, markKeys); err != nil {
				return errors.Wrap(err, "failed to mark reminder keys")
			}
		}
		if scheduled {
			if err := repoFactory.NewConfigRepository().UpdateLastSent(ctx, &now); err != nil {
				return errors.Wrap(err, "failed to persist last sent timestamp")
			}
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to record send outcome", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute post-send transaction")
	}

	result.Sent = true
	srv.log(ctx).Info("Status report sent",
		slog.String("recipient", cfg.Recipient),
		slog.Int("expired", result.Expired),
		slog.Int("expiringSoon", result.ExpiringSoon),
		slog.Int("lowQuantity", result.LowQuantity))

	return result, nil
}

// NotifyMutation emails the recipient about a single add or remove when the
// matching preference is enabled. Silently a no-op when notifications are not
// set up.
func (srv *notificationService) NotifyMutation(ctx context.Context, event *service.InventoryEvent) error {
	cfg, err := srv.GetConfig(ctx)
	if err != nil {
		return err
	}
	if cfg.Recipient == "" {
		return nil
	}

	var subject string
	switch entity.Action(event.Action) {
	case entity.ActionAdded:
		if !cfg.Preferences.NotifyAddedItems {
			return nil
		}
		subject = fmt.Sprintf("Item added: %s", event.Item)
	case entity.ActionRemoved:
		if !cfg.Preferences.NotifyRemovedItems {
			return nil
		}
		subject = fmt.Sprintf("Item removed: %s", event.Item)
	default:
		return nil
	}

	body := composeMutationEmail(event)
	if err := srv.mailer.Send(ctx, cfg.Recipient, subject, body); err != nil {
		return errors.Wrap(err, "failed to send mutation email")
	}

	return nil
}

// composeReportEmail renders the scheduled status report as plain text.
func composeReportEmail(report expiry.FilteredReport, now time.Time) (subject, body string) {
	var b strings.Builder

	fmt.Fprintf(&b, "Inventory status report for %s\n", util.FormatDate(now))

	if len(report.Expired) > 0 {
		b.WriteString("\nEXPIRED ITEMS\n")
		for _, status := range report.Expired {
			fmt.Fprintf(&b, "  - %s (%s): expired %d day(s) ago on %s, quantity %d\n",
				status.Item, status.StorageUnit, status.DaysSinceExpiry, status.ExpirationDate, status.Quantity)
		}
	}

	if len(report.ExpiringSoon) > 0 {
		b.WriteString("\nEXPIRING SOON\n")
		for _, status := range report.ExpiringSoon {
			when := fmt.Sprintf("in %d day(s)", status.DaysRemaining)
			if status.DaysRemaining == 0 {
				when = "today"
			}
			fmt.Fprintf(&b, "  - %s (%s): expires %s on %s, quantity %d\n",
				status.Item, status.StorageUnit, when, status.ExpirationDate, status.Quantity)
		}
	}

	if len(report.LowQuantity) > 0 {
		b.WriteString("\nRUNNING LOW\n")
		for _, item := range report.LowQuantity {
			fmt.Fprintf(&b, "  - %s (%s): only %d left\n", item.Item, item.StorageUnit, item.Quantity)
		}
	}

	return fmt.Sprintf("Inventory status report %s", util.FormatDate(now)), b.String()
}

// composeMutationEmail renders a single add/remove notice as plain text.
func composeMutationEmail(event *service.InventoryEvent) string {
	var b strings.Builder

	verb := "added to"
	if entity.Action(event.Action) == entity.ActionRemoved {
		verb = "removed from"
	}

	fmt.Fprintf(&b, "%d x %s %s %s", event.Quantity, event.Item, verb, event.StorageUnit)
	if event.Username != "" {
		fmt.Fprintf(&b, " by %s", event.Username)
	}
	b.WriteString("\n")
	if event.ExpirationDate != "" {
		fmt.Fprintf(&b, "Expiration date: %s\n", event.ExpirationDate)
	}
	if event.Expired {
		b.WriteString("Note: this item was already past its expiration date.\n")
	}

	return b.String()
}
