// Package impl contains the implementation of the application's business logic.
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

// inventoryService implements the InventoryUsecase interface.
type inventoryService struct {
	txManager     repository.TransactionManager
	inventoryRepo repository.InventoryRepository
	notifier      usecase.MutationNotifier
	publisher     service.EventPublisher
	clock         service.Clock
	logger        *slog.Logger
}

// InventoryServiceParams holds dependencies for InventoryService, injected by Fx.
type InventoryServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	InventoryRepo repository.InventoryRepository
	Notifier      usecase.MutationNotifier
	Publisher     service.EventPublisher
	Clock         service.Clock
	Logger        *slog.Logger
}

// NewInventoryService is the constructor for inventoryService.
func NewInventoryService(params InventoryServiceParams) usecase.InventoryUsecase {
	return &inventoryService{
		txManager:     params.TxManager,
		inventoryRepo: params.InventoryRepo,
		notifier:      params.Notifier,
		publisher:     params.Publisher,
		clock:         params.Clock,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *inventoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateUnit adds a new, empty storage unit.
func (srv *inventoryService) CreateUnit(ctx context.Context, input usecase.CreateUnitInput) (*entity.StorageUnit, error) {
	if input.Name == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unit name must not be empty")
	}
	if !input.Kind.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidUnitKind, "create unit failed")
	}

	now := srv.clock.Now()
	unit := &entity.StorageUnit{
		Name:      input.Name,
		Kind:      input.Kind,
		Contents:  nil,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := srv.inventoryRepo.CreateUnit(ctx, unit); err != nil {
		if errors.Is(err, repository.ErrUnitAlreadyExists) {
			return nil, domainerrors.ErrUnitAlreadyExists.WrapMessage("create unit failed")
		}

		return nil, errors.Wrap(err, "failed to create storage unit")
	}

	srv.log(ctx).Info("Storage unit created", slog.String("unit", unit.Name), slog.String("kind", unit.Kind.String()))

	return unit, nil
}

// DeleteUnit removes a storage unit, its contents and its reminder keys.
func (srv *inventoryService) DeleteUnit(ctx context.Context, name string) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewInventoryRepository().DeleteUnit(ctx, name); err != nil {
			return errors.Wrap(err, "failed to delete storage unit")
		}

		// Reminder keys for the unit's items are meaningless once the unit is gone.
		if err := repoFactory.NewReminderRepository().ClearKeysWithPrefix(ctx, name+"_"); err != nil {
			return errors.Wrap(err, "failed to clear reminder keys for deleted unit")
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrUnitNotFound) {
			return domainerrors.ErrUnitNotFound.WrapMessage("delete unit failed")
		}
		srv.log(ctx).Error("Failed to delete storage unit", slog.String("unit", name), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute delete unit transaction")
	}

	srv.log(ctx).Info("Storage unit deleted", slog.String("unit", name))

	return nil
}

// ListUnits retrieves every storage unit with its contents.
func (srv *inventoryService) ListUnits(ctx context.Context) ([]*entity.StorageUnit, error) {
	units, err := srv.inventoryRepo.ListUnits(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list storage units")
	}

	return units, nil
}

// GetUnit retrieves a single storage unit by name.
func (srv *inventoryService) GetUnit(ctx context.Context, name string) (*entity.StorageUnit, error) {
	unit, err := srv.inventoryRepo.FindUnit(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrUnitNotFound) {
			return nil, domainerrors.ErrUnitNotFound.WrapMessage("get unit failed")
		}

		return nil, errors.Wrap(err, "failed to find storage unit")
	}

	return unit, nil
}

// AddItem adds an item to a unit and appends a history entry in the same
// transaction. When the item already exists its quantity is merged and the
// expiration date replaced.
func (srv *inventoryService) AddItem(ctx context.Context, input usecase.AddItemInput) error {
	if input.ItemName == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "item name must not be empty")
	}
	if input.Quantity <= 0 {
		return errors.Wrap(domainerrors.ErrInvalidQuantity, "add item failed")
	}
	if !input.Category.IsValid() {
		return errors.Wrap(domainerrors.ErrInvalidCategory, "add item failed")
	}
	if _, err := util.ParseDate(input.ExpirationDate); err != nil {
		return errors.Wrap(domainerrors.ErrInvalidDate, "add item failed")
	}

	now := srv.clock.Now()

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		invRepo := repoFactory.NewInventoryRepository()

		unit, err := invRepo.FindUnit(ctx, input.UnitName)
		if err != nil {
			return errors.Wrap(err, "failed to find storage unit")
		}

		item := entity.ItemRecord{
			Name:           input.ItemName,
			Quantity:       input.Quantity,
			Category:       input.Category,
			DateAdded:      util.FormatDate(now),
			ExpirationDate: input.ExpirationDate,
		}
		if existing := unit.FindItem(input.ItemName); existing != nil {
			item.Quantity += existing.Quantity
		}

		if err := invRepo.UpsertItem(ctx, unit.Name, &item); err != nil {
			return errors.Wrap(err, "failed to upsert item")
		}

		entry := &entity.HistoryEntry{
			ID:             uuid.New(),
			Timestamp:      now,
			Action:         entity.ActionAdded,
			Item:           input.ItemName,
			Category:       input.Category,
			Quantity:       input.Quantity,
			StorageUnit:    input.UnitName,
			ExpirationDate: input.ExpirationDate,
			Username:       input.Username,
		}

		return errors.Wrap(repoFactory.NewHistoryRepository().Append(ctx, entry), "failed to append history entry")
	})
	if err != nil {
		if errors.Is(err, repository.ErrUnitNotFound) {
			return domainerrors.ErrUnitNotFound.WrapMessage("add item failed")
		}
		srv.log(ctx).Error("Failed to add item", slog.String("unit", input.UnitName), slog.String("item", input.ItemName), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute add item transaction")
	}

	srv.log(ctx).Info("Item added",
		slog.String("unit", input.UnitName),
		slog.String("item", input.ItemName),
		slog.Int("quantity", input.Quantity))

	srv.afterMutation(ctx, &service.InventoryEvent{
		Action:         entity.ActionAdded.String(),
		StorageUnit:    input.UnitName,
		Item:           input.ItemName,
		Category:       input.Category.String(),
		Quantity:       input.Quantity,
		ExpirationDate: input.ExpirationDate,
		Username:       input.Username,
	})

	return nil
}

// RemoveItem removes some or all of an item's quantity. Removing everything
// deletes the record and clears the item's reminder key.
func (srv *inventoryService) RemoveItem(ctx context.Context, input usecase.RemoveItemInput) (*usecase.RemoveItemOutput, error) {
	if input.Quantity < 0 {
		return nil, errors.Wrap(domainerrors.ErrInvalidQuantity, "remove item failed")
	}

	now := srv.clock.Now()

	var output usecase.RemoveItemOutput
	var category entity.Category
	var expirationDate string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		invRepo := repoFactory.NewInventoryRepository()

		unit, err := invRepo.FindUnit(ctx, input.UnitName)
		if err != nil {
			return errors.Wrap(err, "failed to find storage unit")
		}

		item := unit.FindItem(input.ItemName)
		if item == nil {
			return errors.WithStack(repository.ErrItemNotFound)
		}

		removed := input.Quantity
		if removed == 0 || removed >= item.Quantity {
			removed = item.Quantity
		}

		category = item.Category
		expirationDate = item.ExpirationDate
		output = usecase.RemoveItemOutput{
			Removed:  removed,
			Remained: item.Quantity - removed,
			Expired:  itemIsExpired(item.ExpirationDate, now),
		}

		if output.Remained > 0 {
			item.Quantity = output.Remained
			if err := invRepo.UpsertItem(ctx, unit.Name, item); err != nil {
				return errors.Wrap(err, "failed to reduce item quantity")
			}
		} else {
			if err := invRepo.DeleteItem(ctx, unit.Name, item.Name); err != nil {
				return errors.Wrap(err, "failed to delete item")
			}
			// A fresh purchase of the same item should warn again.
			key := entity.ReminderKey(unit.Name, item.Name)
			if err := repoFactory.NewReminderRepository().ClearKey(ctx, key); err != nil {
				return errors.Wrap(err, "failed to clear reminder key")
			}
		}

		entry := &entity.HistoryEntry{
			ID:             uuid.New(),
			Timestamp:      now,
			Action:         entity.ActionRemoved,
			Item:           input.ItemName,
			Category:       category,
			Quantity:       removed,
			StorageUnit:    input.UnitName,
			Expired:        output.Expired,
			ExpirationDate: expirationDate,
			Username:       input.Username,
		}

		return errors.Wrap(repoFactory.NewHistoryRepository().Append(ctx, entry), "failed to append history entry")
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUnitNotFound):
			return nil, domainerrors.ErrUnitNotFound.WrapMessage("remove item failed")
		case errors.Is(err, repository.ErrItemNotFound):
			return nil, domainerrors.ErrItemNotFound.WrapMessage("remove item failed")
		}
		srv.log(ctx).Error("Failed to remove item", slog.String("unit", input.UnitName), slog.String("item", input.ItemName), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute remove item transaction")
	}

	srv.log(ctx).Info("Item removed",
		slog.String("unit", input.UnitName),
		slog.String("item", input.ItemName),
		slog.Int("removed", output.Removed),
		slog.Int("remained", output.Remained),
		slog.Bool("expired", output.Expired))

	srv.afterMutation(ctx, &service.InventoryEvent{
		Action:         entity.ActionRemoved.String(),
		StorageUnit:    input.UnitName,
		Item:           input.ItemName,
		Category:       category.String(),
		Quantity:       output.Removed,
		ExpirationDate: expirationDate,
		Expired:        output.Expired,
		Username:       input.Username,
	})

	return &output, nil
}

// afterMutation publishes the inventory event and triggers the immediate
// mutation email. Both are best-effort: failures are logged and never fail
// the mutation that already committed.
func (srv *inventoryService) afterMutation(ctx context.Context, event *service.InventoryEvent) {
	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)

	if err := srv.publisher.PublishInventoryEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish inventory event", slog.Any("error", err))
	}

	if err := srv.notifier.NotifyMutation(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to send mutation notification", slog.Any("error", err))
	}
}

// itemIsExpired reports whether the stored expiration date is strictly in the
// past. Unparseable dates count as not expired.
func itemIsExpired(expirationDate string, now time.Time) bool {
	expiration, err := util.ParseDate(expirationDate)
	if err != nil {
		return false
	}

	return util.DaysUntil(expiration, now) < 0
}
