package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"larder/internal/domain/entity"
	domainerrors "larder/internal/domain/errors"
	"larder/internal/domain/repository"
	"larder/internal/domain/service"
	mockRepo "larder/internal/mocks/repository"
	mockSvc "larder/internal/mocks/service"
	"larder/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type notificationTestDeps struct {
	txManager *mockRepo.MockTransactionManager
	mailer    *mockSvc.MockMailer
	clock     *mockSvc.FixedClock
}

func createTestNotificationService(t *testing.T) (usecase.NotificationUsecase, *notificationTestDeps) {
	deps := &notificationTestDeps{
		txManager: mockRepo.NewMockTransactionManager(t),
		mailer:    mockSvc.NewMockMailer(t),
		clock:     newFixedClock(),
	}

	svc := NewNotificationService(NotificationServiceParams{
		TxManager:     deps.txManager,
		ConfigRepo:    deps.txManager.Factory.ConfigRepo,
		InventoryRepo: deps.txManager.Factory.InventoryRepo,
		ReminderRepo:  deps.txManager.Factory.ReminderRepo,
		Mailer:        deps.mailer,
		Clock:         deps.clock,
		Logger:        newDiscardLogger(),
	})

	return svc, deps
}

// mondayConfig is due at the fixed test clock (Monday 09:00, schedule Monday
// 08:00, never sent).
func mondayConfig(recipient string) *entity.NotificationConfig {
	return &entity.NotificationConfig{
		Recipient:   recipient,
		Schedule:    entity.Schedule{Weekdays: []int{0}, Time: "08:00"},
		Preferences: entity.DefaultPreferences(),
	}
}

func TestNotificationService_GetConfig_CreatesDefaults(t *testing.T) {
	svc, deps := createTestNotificationService(t)
	ctx := context.Background()

	deps.txManager.Factory.ConfigRepo.On("Get", ctx).Return(nil, repository.ErrConfigNotFound)
	deps.txManager.Factory.ConfigRepo.On("Save", ctx, mock.MatchedBy(func(cfg *entity.NotificationConfig) bool {
		return cfg.Recipient == "" && len(cfg.Schedule.Weekdays) > 0 && cfg.Preferences.ExpiringSoonDays == entity.DefaultExpiringSoonDays
	})).Return(nil)

	cfg, err := svc.GetConfig(ctx)

	require.NoError(t, err)
	assert.Nil(t, cfg.LastSent)
}

func TestNotificationService_Configure_RejectsEmptyWeekdays(t *testing.T) {
	svc, _ := createTestNotificationService(t)

	_, err := svc.Configure(context.Background(), usecase.ConfigureNotificationsInput{
		Recipient:   "kitchen@example.com",
		Schedule:    entity.Schedule{Weekdays: []int{}, Time: "08:00"},
		Preferences: entity.DefaultPreferences(),
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidSchedule)
}

func TestNotificationService_Configure_PreservesLastSent(t *testing.T) {
	svc, deps := createTestNotificationService(t)
	ctx := context.Background()

	lastSent := testNow.Add(-24 * time.Hour)
	existing := mondayConfig("old@example.com")
	existing.LastSent = &lastSent

	deps.txManager.Factory.ConfigRepo.On("Get", ctx).Return(existing, nil)
	deps.txManager.Factory.ConfigRepo.On("Save", ctx, mock.MatchedBy(func(cfg *entity.NotificationConfig) bool {
		return cfg.Recipient == "new@example.com" && cfg.LastSent != nil && cfg.LastSent.Equal(lastSent)
	})).Return(nil)

	cfg, err := svc.Configure(ctx, usecase.ConfigureNotificationsInput{
		Recipient:   "new@example.com",
		Schedule:    entity.Schedule{Weekdays: []int{0, 3}, Time: "18:00"},
		Preferences: entity.DefaultPreferences(),
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", cfg.Recipient)
}

func TestNotificationService_RunScheduledCycle_NotDue(t *testing.T) {
	svc, deps := createTestNotificationService(t)
	ctx := context.Background()

	cfg := mondayConfig("kitchen@example.com")
	sentToday := testNow.Add(-30 * time.Minute)
	cfg.LastSent = &sentToday

	deps.txManager.Factory.ConfigRepo.On("Get", ctx).Return(cfg, nil)

	result, err := svc.RunScheduledCycle(ctx)

	require.NoError(t, err)
	assert.False(t, result.Sent)
	assert.Equal(t, "not due", result.Reason)
}

func TestNotificationService_RunScheduledCycle_NoRecipient(t *testing.T) {
	svc, deps := createTestNotificationService(t)
	ctx := context.Background()

	deps.txManager.Factory.ConfigRepo.On("Get", ctx).Return(mondayConfig(""), nil)

	result, err := svc.RunScheduledCycle(ctx)

	require.NoError(t, err)
	assert.False(t, result.Sent)
	assert.Equal(t, "no recipient configured", result.Reason)
}

func TestNotificationService_RunScheduledCycle_NothingToReport(t *testing.T) {
	svc, deps := createTestNotificationService(t)
	ctx := context.Background()

	units := []*entity.StorageUnit{{
		Name: "Pantry",
		Contents: []entity.ItemRecord{
			{Name: "Rice", Quantity: 5, Category: entity.CategoryGrains, ExpirationDate: "2026-01-01"},
		},
	}}

	deps.txManager.Factory.ConfigRepo.On("Get", ctx).Return(mondayConfig("kitchen@example.com"), nil)
	deps.txManager.Factory.InventoryRepo.On("ListUnits", ctx).Return(units, nil)
	deps.txManager.Factory.ReminderRepo.On("ListKeys", ctx).Return([]string{}, nil)

	result, err := svc.RunScheduledCycle(ctx)

	require.NoError(t, err)
	assert.False(t, result.Sent)
	assert.Equal(t, "nothing to report", result.Reason)
	deps.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// The Milk scenario: one item expiring in two days flows scan -> filter ->
// mailer, the reminder key is marked and the last-sent timestamp persisted.
func TestNotificationService_RunScheduledCycle_SendsMilkReport(t *testing.T) {
	svc, deps := createTestNotificationService(t)
	ctx := context.Background()

	units := []*entity.StorageUnit{{
		Name: "Kitchen Fridge",
		Contents: []entity.ItemRecord{
			{Name: "Milk", Quantity: 1, Category: entity.CategoryDairy, ExpirationDate: "2025-03-12"},
			{Name: "Rice", Quantity: 5, Category: entity.CategoryGrains, ExpirationDate: "2026-01-01"},
		},
	}}

	cfg := mondayConfig("kitchen@example.com")
	cfg.Preferences.NotifyLowQuantity = false

	deps.txManager.Factory.ConfigRepo.On("Get", ctx).Return(cfg, nil)
	deps.txManager.Factory.InventoryRepo.On("ListUnits", ctx).Return(units, nil)
	deps.txManager.Factory.ReminderRepo.On("ListKeys", ctx).Return([]string{}, nil)
	deps.mailer.On("Send", ctx, "kitchen@example.com", mock.Anything, mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "Milk") && strings.Contains(body, "in 2 day(s)")
	})).Return(nil)
	deps.txManager.Factory.ReminderRepo.On("MarkKeys", ctx, []string{"Kitchen Fridge_Milk"}).Return(nil)
	deps.txManager.Factory.ConfigRepo.On("UpdateLastSent", ctx, mock.MatchedBy(func(ts *time.Time) bool {
		return ts != nil && ts.Equal(testNow)
	})).Return(nil)

	result, err := svc.RunScheduledCycle(ctx)

	require.NoError(t, err)
	assert.True(t, result.Sent)
	assert.Equal(t, 1, result.ExpiringSoon)
	assert.Equal(t, 0, result.Expired)
}

// Same scenario one week later: the Milk expired yesterday, so the report
// lists it under expired items with the day count, and no reminder key is
// marked because dedup only applies to the expiring-soon warnings.
func TestNotificationService_RunScheduledCycle_ReportsExpiredMilk(t *testing.T) {
	svc, deps := createTestNotificationService(t)
	ctx := context.Background()

	units := []*entity.StorageUnit{{
		Name: "Kitchen Fridge",
		Contents: []entity.ItemRecord{
			{Name: "Milk", Quantity: 1, Category: entity.CategoryDairy, ExpirationDate: "2025-03-09"},
		},
	}}

	cfg := mondayConfig("kitchen@example.com")
	cfg.Preferences.NotifyLowQuantity = false

	deps.txManager.Factory.ConfigRepo.On("Get", ctx).Return(cfg, nil)
	deps.txManager.Factory.InventoryRepo.On("ListUnits", ctx).Return(units, nil)
	deps.txManager.Factory.ReminderRepo.On("ListKeys", ctx).Return([]string{}, nil)
	deps.mailer.On("Send", ctx, "kitchen@example.com", mock.Anything, mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "EXPIRED ITEMS") &&
			strings.Contains(body, "Milk") &&
			strings.Contains(body, "expired 1 day(s) ago on 2025-03-09")
	})).Return(nil)
	deps.txManager.Factory.ConfigRepo.On("UpdateLastSent", ctx, mock.MatchedBy(func(ts *time.Time) bool {
		return ts != nil && ts.Equal(testNow)
	})).Return(nil)

	result, err := svc.RunScheduledCycle(ctx)

	require.NoError(t, err)
	assert.True(t, result.Sent)
	assert.Equal(t, 1, result.Expired)
	assert.Equal(t, 0, result.ExpiringSoon)
	deps.txManager.Factory.ReminderRepo.AssertNotCalled(t, "MarkKeys", mock.Anything, mock.Anything)
}

func TestNotificationService_RunScheduledCycle_TransportFailureKeepsState(t *testing.T) {
	svc, deps := createTestNotificationService(t)
	ctx := context.Background()

	units := []*entity.StorageUnit{{
		Name: "Fridge",
		Contents: []entity.ItemRecord{
			{Name: "Milk", Quantity: 1, Category: entity.CategoryDairy, ExpirationDate: "2025-03-11"},
		},
	}}

	cfg := mondayConfig("kitchen@example.com")
	cfg.Preferences.NotifyLowQuantity = false

	deps.txManager.Factory.ConfigRepo.On("Get", ctx).Return(cfg, nil)
	deps.txManager.Factory.InventoryRepo.On("ListUnits", ctx).Return(units, nil)
	deps.txManager.Factory.ReminderRepo.On("ListKeys", ctx).Return([]string{}, nil)
	deps.mailer.On("Send", ctx, "kitchen@example.com", mock.Anything, mock.Anything).
		Return(errors.New("connection refused"))

	_, err := svc.RunScheduledCycle(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmailSendFailed)
	deps.txManager.Factory.ConfigRepo.AssertNotCalled(t, "UpdateLastSent", mock.Anything, mock.Anything)
	deps.txManager.Factory.ReminderRepo.AssertNotCalled(t, "MarkKeys", mock.Anything, mock.Anything)
}

func TestNotificationService_RunScheduledCycle_DedupSuppressesSecondWarning(t *testing.T) {
	svc, deps := createTestNotificationService(t)
	ctx := context.Background()

	units := []*entity.StorageUnit{{
		Name: "Fridge",
		Contents: []entity.ItemRecord{
			{Name: "Milk", Quantity: 1, Category: entity.CategoryDairy, ExpirationDate: "2025-03-12"},
		},
	}}

	cfg := mondayConfig("kitchen@example.com")
	cfg.Preferences.NotifyLowQuantity = false

	deps.txManager.Factory.ConfigRepo.On("Get", ctx).Return(cfg, nil)
	deps.txManager.Factory.InventoryRepo.On("ListUnits", ctx).Return(units, nil)
	deps.txManager.Factory.ReminderRepo.On("ListKeys", ctx).Return([]string{"Fridge_Milk"}, nil)

	result, err := svc.RunScheduledCycle(ctx)

	require.NoError(t, err)
	assert.False(t, result.Sent)
	assert.Equal(t, "nothing to report", result.Reason)
}

func TestNotificationService_SendNow_RequiresRecipient(t *testing.T) {
	svc, deps := createTestNotificationService(t)
	ctx := context.Background()

	deps.txManager.Factory.ConfigRepo.On("Get", ctx).Return(mondayConfig(""), nil)

	_, err := svc.SendNow(ctx)

	assert.ErrorIs(t, err, domainerrors.ErrNoRecipientConfigured)
}

func TestNotificationService_SendNow_DoesNotAdvanceLastSent(t *testing.T) {
	svc, deps := createTestNotificationService(t)
	ctx := context.Background()

	units := []*entity.StorageUnit{{
		Name: "Fridge",
		Contents: []entity.ItemRecord{
			{Name: "Milk", Quantity: 1, Category: entity.CategoryDairy, ExpirationDate: "2025-03-12"},
		},
	}}

	cfg := mondayConfig("kitchen@example.com")
	cfg.Preferences.NotifyLowQuantity = false

	deps.txManager.Factory.ConfigRepo.On("Get", ctx).Return(cfg, nil)
	deps.txManager.Factory.InventoryRepo.On("ListUnits", ctx).Return(units, nil)
	deps.txManager.Factory.ReminderRepo.On("ListKeys", ctx).Return([]string{}, nil)
	deps.mailer.On("Send", ctx, "kitchen@example.com", mock.Anything, mock.Anything).Return(nil)
	deps.txManager.Factory.ReminderRepo.On("MarkKeys", ctx, []string{"Fridge_Milk"}).Return(nil)

	result, err := svc.SendNow(ctx)

	require.NoError(t, err)
	assert.True(t, result.Sent)
	deps.txManager.Factory.ConfigRepo.AssertNotCalled(t, "UpdateLastSent", mock.Anything, mock.Anything)
}

func TestNotificationService_ResetLastSent(t *testing.T) {
	svc, deps := createTestNotificationService(t)
	ctx := context.Background()

	deps.txManager.Factory.ConfigRepo.On("UpdateLastSent", ctx, (*time.Time)(nil)).Return(nil)

	require.NoError(t, svc.ResetLastSent(ctx))
}

func TestNotificationService_NotifyMutation_PreferenceGate(t *testing.T) {
	svc, deps := createTestNotificationService(t)
	notifier := svc.(usecase.MutationNotifier)
	ctx := context.Background()

	cfg := mondayConfig("kitchen@example.com")
	cfg.Preferences.NotifyAddedItems = false

	deps.txManager.Factory.ConfigRepo.On("Get", ctx).Return(cfg, nil)

	err := notifier.NotifyMutation(ctx, &service.InventoryEvent{Action: "added", Item: "Milk", Quantity: 1, StorageUnit: "Fridge"})

	require.NoError(t, err)
	deps.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationService_NotifyMutation_SendsRemovalNotice(t *testing.T) {
	svc, deps := createTestNotificationService(t)
	notifier := svc.(usecase.MutationNotifier)
	ctx := context.Background()

	deps.txManager.Factory.ConfigRepo.On("Get", ctx).Return(mondayConfig("kitchen@example.com"), nil)
	deps.mailer.On("Send", ctx, "kitchen@example.com", "Item removed: Yogurt", mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "already past its expiration date")
	})).Return(nil)

	err := notifier.NotifyMutation(ctx, &service.InventoryEvent{
		Action:         "removed",
		Item:           "Yogurt",
		Quantity:       2,
		StorageUnit:    "Fridge",
		ExpirationDate: "2025-03-08",
		Expired:        true,
	})

	require.NoError(t, err)
}
