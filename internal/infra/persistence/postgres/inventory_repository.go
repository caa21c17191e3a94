// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"larder/internal/domain/entity"
	domainerrors "larder/internal/domain/errors"
	"larder/internal/domain/repository"
	"larder/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// inventoryRepository implements the repository.InventoryRepository interface.
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository is the constructor for inventoryRepository.
func NewInventoryRepository(db *gorm.DB) repository.InventoryRepository {
	return &inventoryRepository{
		db: db,
	}
}

// FindUnit retrieves a single storage unit with its contents by name.
func (repo *inventoryRepository) FindUnit(ctx context.Context, name string) (*entity.StorageUnit, error) {
	var unitM model.StorageUnitModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("name = ?", name).
		First(&unitM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUnitNotFound
		}

		return nil, errors.Wrap(err, "failed to find storage unit")
	}

	return toUnitDomain(&unitM), nil
}

// ListUnits retrieves every storage unit with its contents, ordered by name.
func (repo *inventoryRepository) ListUnits(ctx context.Context) ([]*entity.StorageUnit, error) {
	var unitModels []*model.StorageUnitModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Order("name ASC").
		Find(&unitModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list storage units")
	}

	units := make([]*entity.StorageUnit, 0, len(unitModels))
	for _, unitM := range unitModels {
		units = append(units, toUnitDomain(unitM))
	}

	return units, nil
}

// CreateUnit persists a new, empty storage unit.
func (repo *inventoryRepository) CreateUnit(ctx context.Context, unit *entity.StorageUnit) error {
	unitM := fromUnitDomain(unit)

	if err := repo.db.WithContext(ctx).Create(unitM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrUnitAlreadyExists
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required storage unit information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create storage unit")
	}

	// Update the entity with generated values
	unit.CreatedAt = unitM.CreatedAt
	unit.UpdatedAt = unitM.UpdatedAt

	return nil
}

// DeleteUnit removes a storage unit. Its items go with it via ON DELETE CASCADE.
func (repo *inventoryRepository) DeleteUnit(ctx context.Context, name string) error {
	result := repo.db.WithContext(ctx).
		Where("name = ?", name).
		Delete(&model.StorageUnitModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete storage unit")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUnitNotFound
	}

	return nil
}

// UpsertItem inserts or replaces an item record inside a unit.
func (repo *inventoryRepository) UpsertItem(ctx context.Context, unitName string, item *entity.ItemRecord) error {
	unitID, err := repo.findUnitID(ctx, unitName)
	if err != nil {
		return err
	}

	var itemM model.ItemModel
	err = repo.db.WithContext(ctx).
		Where("unit_id = ? AND name = ?", unitID, item.Name).
		First(&itemM).Error

	switch {
	case err == nil:
		itemM.Quantity = item.Quantity
		itemM.Category = string(item.Category)
		itemM.DateAdded = item.DateAdded
		itemM.ExpirationDate = item.ExpirationDate
		if err := repo.db.WithContext(ctx).Save(&itemM).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to update item")
		}

		return nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		newItemM := fromItemDomain(unitID, item)
		if err := repo.db.WithContext(ctx).Create(newItemM).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to create item")
		}

		return nil

	default:
		return errors.Wrap(err, "failed to look up item for upsert")
	}
}

// DeleteItem removes an item record from a unit.
func (repo *inventoryRepository) DeleteItem(ctx context.Context, unitName, itemName string) error {
	unitID, err := repo.findUnitID(ctx, unitName)
	if err != nil {
		return err
	}

	result := repo.db.WithContext(ctx).
		Where("unit_id = ? AND name = ?", unitID, itemName).
		Delete(&model.ItemModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrItemNotFound
	}

	return nil
}

// DeleteExampleUnits removes every unit flagged as example data and returns their names.
func (repo *inventoryRepository) DeleteExampleUnits(ctx context.Context) ([]string, error) {
	var names []string

	if err := repo.db.WithContext(ctx).
		Model(&model.StorageUnitModel{}).
		Where("is_example = ?", true).
		Pluck("name", &names).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list example units")
	}

	if len(names) == 0 {
		return []string{}, nil
	}

	if err := repo.db.WithContext(ctx).
		Where("is_example = ?", true).
		Delete(&model.StorageUnitModel{}).Error; err != nil {
		return nil, errors.Wrap(err, "failed to delete example units")
	}

	return names, nil
}

// DeleteAllUnits wipes the whole inventory.
func (repo *inventoryRepository) DeleteAllUnits(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.StorageUnitModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete all storage units")
	}

	return nil
}

// findUnitID resolves a unit name to its primary key, or ErrUnitNotFound.
func (repo *inventoryRepository) findUnitID(ctx context.Context, unitName string) (uuid.UUID, error) {
	var unitM model.StorageUnitModel

	if err := repo.db.WithContext(ctx).
		Select("id").
		Where("name = ?", unitName).
		First(&unitM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, repository.ErrUnitNotFound
		}

		return uuid.Nil, errors.Wrap(err, "failed to resolve storage unit")
	}

	return unitM.ID, nil
}

// --- Mapper Functions ---

// toUnitDomain converts a GORM StorageUnitModel to a domain StorageUnit entity.
func toUnitDomain(data *model.StorageUnitModel) *entity.StorageUnit {
	if data == nil {
		return nil
	}

	contents := make([]entity.ItemRecord, 0, len(data.Items))
	for _, itemM := range data.Items {
		contents = append(contents, entity.ItemRecord{
			Name:           itemM.Name,
			Quantity:       itemM.Quantity,
			Category:       entity.Category(itemM.Category),
			DateAdded:      itemM.DateAdded,
			ExpirationDate: itemM.ExpirationDate,
		})
	}

	return &entity.StorageUnit{
		Name:      data.Name,
		Kind:      entity.UnitKind(data.Kind),
		Contents:  contents,
		IsExample: data.IsExample,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromUnitDomain converts a domain StorageUnit entity to a GORM StorageUnitModel.
func fromUnitDomain(data *entity.StorageUnit) *model.StorageUnitModel {
	if data == nil {
		return nil
	}

	return &model.StorageUnitModel{
		Name:      data.Name,
		Kind:      string(data.Kind),
		IsExample: data.IsExample,
	}
}

// fromItemDomain converts a domain ItemRecord to a GORM ItemModel bound to a unit.
func fromItemDomain(unitID uuid.UUID, data *entity.ItemRecord) *model.ItemModel {
	if data == nil {
		return nil
	}

	return &model.ItemModel{
		UnitID:         unitID,
		Name:           data.Name,
		Quantity:       data.Quantity,
		Category:       string(data.Category),
		DateAdded:      data.DateAdded,
		ExpirationDate: data.ExpirationDate,
	}
}
