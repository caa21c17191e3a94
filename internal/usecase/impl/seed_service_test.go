package impl

import (
	"context"
	"testing"

	"larder/internal/domain/entity"
	domainerrors "larder/internal/domain/errors"
	mockRepo "larder/internal/mocks/repository"
	"larder/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestSeedService(t *testing.T) (usecase.SeedUsecase, *mockRepo.MockTransactionManager) {
	txManager := mockRepo.NewMockTransactionManager(t)

	svc := NewSeedService(SeedServiceParams{
		TxManager: txManager,
		Clock:     newFixedClock(),
		Logger:    newDiscardLogger(),
	})

	return svc, txManager
}

func TestSeedService_SeedExampleData(t *testing.T) {
	svc, txManager := createTestSeedService(t)
	ctx := context.Background()

	invRepo := txManager.Factory.InventoryRepo
	historyRepo := txManager.Factory.HistoryRepo

	invRepo.On("DeleteExampleUnits", ctx).Return([]string{}, nil)
	historyRepo.On("DeleteExampleEntries", ctx).Return(nil)
	invRepo.On("CreateUnit", ctx, mock.MatchedBy(func(unit *entity.StorageUnit) bool {
		return unit.IsExample
	})).Return(nil)
	invRepo.On("UpsertItem", ctx, mock.Anything, mock.Anything).Return(nil)
	historyRepo.On("Append", ctx, mock.MatchedBy(func(entry *entity.HistoryEntry) bool {
		return entry.IsExample && entry.Action == entity.ActionAdded
	})).Return(nil)

	result, err := svc.SeedExampleData(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Units)
	assert.Equal(t, result.Items, result.History, "one history entry per seeded item")
	assert.Greater(t, result.Items, 0)
}

func TestSeedService_ClearExampleData(t *testing.T) {
	svc, txManager := createTestSeedService(t)
	ctx := context.Background()

	txManager.Factory.InventoryRepo.On("DeleteExampleUnits", ctx).Return([]string{"Kitchen Fridge", "Pantry"}, nil)
	txManager.Factory.ReminderRepo.On("ClearKeysWithPrefix", ctx, "Kitchen Fridge_").Return(nil)
	txManager.Factory.ReminderRepo.On("ClearKeysWithPrefix", ctx, "Pantry_").Return(nil)
	txManager.Factory.HistoryRepo.On("DeleteExampleEntries", ctx).Return(nil)

	require.NoError(t, svc.ClearExampleData(ctx))
}

func TestSeedService_PurgeAll(t *testing.T) {
	t.Run("requires confirmation", func(t *testing.T) {
		svc, _ := createTestSeedService(t)

		err := svc.PurgeAll(context.Background(), false)

		assert.ErrorIs(t, err, domainerrors.ErrConfirmationRequired)
	})

	t.Run("wipes everything when confirmed", func(t *testing.T) {
		svc, txManager := createTestSeedService(t)
		ctx := context.Background()

		txManager.Factory.InventoryRepo.On("DeleteAllUnits", ctx).Return(nil)
		txManager.Factory.HistoryRepo.On("DeleteAll", ctx).Return(nil)
		txManager.Factory.ReminderRepo.On("ClearAll", ctx).Return(nil)

		require.NoError(t, svc.PurgeAll(ctx, true))
	})
}
