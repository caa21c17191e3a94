package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "larder/internal/delivery/context"
	"larder/internal/domain/entity"
	domainerrors "larder/internal/domain/errors"
	"larder/internal/domain/repository"
	"larder/internal/domain/service"
	"larder/internal/usecase"
	"larder/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const seedUsername = "example-data"

// seedService implements the SeedUsecase interface.
type seedService struct {
	txManager repository.TransactionManager
	clock     service.Clock
	logger    *slog.Logger
}

// SeedServiceParams holds dependencies for SeedService, injected by Fx.
type SeedServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Clock     service.Clock
	Logger    *slog.Logger
}

// NewSeedService is the constructor for seedService.
func NewSeedService(params SeedServiceParams) usecase.SeedUsecase {
	return &seedService{
		txManager: params.TxManager,
		clock:     params.Clock,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *seedService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

type seedItem struct {
	name       string
	quantity   int
	category   entity.Category
	expiryDays int // Offset from today; negative means already expired.
}

type seedUnit struct {
	name  string
	kind  entity.UnitKind
	items []seedItem
}

// seedUnits is the demo inventory: a realistic mix of fresh, soon-to-expire
// and already-expired goods.
func seedUnits() []seedUnit {
	return []seedUnit{
		{
			name: "Kitchen Fridge",
			kind: entity.UnitKindFridge,
			items: []seedItem{
				{name: "Milk", quantity: 1, category: entity.CategoryDairy, expiryDays: 2},
				{name: "Yogurt", quantity: 4, category: entity.CategoryDairy, expiryDays: -2},
				{name: "Cheddar", quantity: 1, category: entity.CategoryDairy, expiryDays: 14},
				{name: "Orange Juice", quantity: 2, category: entity.CategoryBeverages, expiryDays: 6},
				{name: "Leftover Curry", quantity: 1, category: entity.CategoryLeftovers, expiryDays: 1},
			},
		},
		{
			name: "Freezer",
			kind: entity.UnitKindFreezer,
			items: []seedItem{
				{name: "Frozen Peas", quantity: 2, category: entity.CategoryFrozen, expiryDays: 90},
				{name: "Chicken Breast", quantity: 3, category: entity.CategoryMeatFish, expiryDays: 45},
				{name: "Ice Cream", quantity: 1, category: entity.CategoryFrozen, expiryDays: 30},
			},
		},
		{
			name: "Pantry",
			kind: entity.UnitKindPantry,
			items: []seedItem{
				{name: "Spaghetti", quantity: 2, category: entity.CategoryGrains, expiryDays: 180},
				{name: "Tomato Sauce", quantity: 1, category: entity.CategoryCondiment, expiryDays: 60},
				{name: "Crackers", quantity: 1, category: entity.CategorySnacks, expiryDays: 5},
				{name: "Apples", quantity: 6, category: entity.CategoryProduce, expiryDays: 10},
			},
		},
	}
}

// SeedExampleData populates demo units, items and history. Existing example
// data is replaced so repeated seeding never piles up duplicates.
func (srv *seedService) SeedExampleData(ctx context.Context) (*usecase.SeedResult, error) {
	now := srv.clock.Now()
	result := &usecase.SeedResult{}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		invRepo := repoFactory.NewInventoryRepository()
		historyRepo := repoFactory.NewHistoryRepository()

		if _, err := invRepo.DeleteExampleUnits(ctx); err != nil {
			return errors.Wrap(err, "failed to clear previous example units")
		}
		if err := historyRepo.DeleteExampleEntries(ctx); err != nil {
			return errors.Wrap(err, "failed to clear previous example history")
		}

		for _, unitSpec := range seedUnits() {
			unit := &entity.StorageUnit{
				Name:      unitSpec.name,
				Kind:      unitSpec.kind,
				IsExample: true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := invRepo.CreateUnit(ctx, unit); err != nil {
				return errors.Wrapf(err, "failed to create example unit %s", unitSpec.name)
			}
			result.Units++

			for _, itemSpec := range unitSpec.items {
				item := entity.ItemRecord{
					Name:           itemSpec.name,
					Quantity:       itemSpec.quantity,
					Category:       itemSpec.category,
					DateAdded:      util.FormatDate(now.AddDate(0, 0, -3)),
					ExpirationDate: util.FormatDate(now.AddDate(0, 0, itemSpec.expiryDays)),
				}
				if err := invRepo.UpsertItem(ctx, unit.Name, &item); err != nil {
					return errors.Wrapf(err, "failed to seed item %s", itemSpec.name)
				}
				result.Items++

				entry := &entity.HistoryEntry{
					ID:             uuid.New(),
					Timestamp:      now.Add(-72 * time.Hour),
					Action:         entity.ActionAdded,
					Item:           itemSpec.name,
					Category:       itemSpec.category,
					Quantity:       itemSpec.quantity,
					StorageUnit:    unit.Name,
					ExpirationDate: item.ExpirationDate,
					IsExample:      true,
					Username:       seedUsername,
				}
				if err := historyRepo.Append(ctx, entry); err != nil {
					return errors.Wrap(err, "failed to seed history entry")
				}
				result.History++
			}
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to seed example data", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute seed transaction")
	}

	srv.log(ctx).Info("Example data seeded",
		slog.Int("units", result.Units),
		slog.Int("items", result.Items),
		slog.Int("history", result.History))

	return result, nil
}

// ClearExampleData removes only data flagged as example data, including the
// reminder keys of the deleted units.
func (srv *seedService) ClearExampleData(ctx context.Context) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		deleted, err := repoFactory.NewInventoryRepository().DeleteExampleUnits(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to delete example units")
		}

		reminderRepo := repoFactory.NewReminderRepository()
		for _, unitName := range deleted {
			if err := reminderRepo.ClearKeysWithPrefix(ctx, unitName+"_"); err != nil {
				return errors.Wrap(err, "failed to clear reminder keys for example unit")
			}
		}

		return errors.Wrap(repoFactory.NewHistoryRepository().DeleteExampleEntries(ctx), "failed to delete example history")
	})
	if err != nil {
		srv.log(ctx).Error("Failed to clear example data", slog.Any("error", err))

		return errors.Wrap(err, "failed to execute clear example data transaction")
	}

	srv.log(ctx).Info("Example data cleared")

	return nil
}

// PurgeAll wipes inventory, history and reminder keys. The confirm flag is a
// guard against fat-fingered calls.
func (srv *seedService) PurgeAll(ctx context.Context, confirm bool) error {
	if !confirm {
		return domainerrors.ErrConfirmationRequired.WrapMessage("purge aborted")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewInventoryRepository().DeleteAllUnits(ctx); err != nil {
			return errors.Wrap(err, "failed to purge inventory")
		}
		if err := repoFactory.NewHistoryRepository().DeleteAll(ctx); err != nil {
			return errors.Wrap(err, "failed to purge history")
		}

		return errors.Wrap(repoFactory.NewReminderRepository().ClearAll(ctx), "failed to purge reminder keys")
	})
	if err != nil {
		srv.log(ctx).Error("Failed to purge data", slog.Any("error", err))

		return errors.Wrap(err, "failed to execute purge transaction")
	}

	srv.log(ctx).Warn("All inventory, history and reminder data purged")

	return nil
}
