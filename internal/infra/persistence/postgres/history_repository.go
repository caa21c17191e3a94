// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"larder/internal/domain/entity"
	domainerrors "larder/internal/domain/errors"
	"larder/internal/domain/repository"
	"larder/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// historyRepository implements the repository.HistoryRepository interface.
type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository is the constructor for historyRepository.
func NewHistoryRepository(db *gorm.DB) repository.HistoryRepository {
	return &historyRepository{
		db: db,
	}
}

// Append persists a new history entry. Entries are never updated.
func (repo *historyRepository) Append(ctx context.Context, entry *entity.HistoryEntry) error {
	entryM := fromHistoryDomain(entry)

	if err := repo.db.WithContext(ctx).Create(entryM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required history information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to append history entry")
	}

	// Update the entity with generated values
	entry.ID = entryM.ID

	return nil
}

// List retrieves entries matching the filter, newest first.
func (repo *historyRepository) List(ctx context.Context, filter repository.HistoryFilter) ([]*entity.HistoryEntry, error) {
	var entryModels []*model.HistoryEntryModel

	query := repo.db.WithContext(ctx).Order("timestamp DESC")

	if filter.SinceDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -filter.SinceDays)
		query = query.Where("timestamp >= ?", cutoff)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", string(filter.Action))
	}
	if filter.Category != "" {
		query = query.Where("category = ?", string(filter.Category))
	}

	if err := query.Find(&entryModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list history entries")
	}

	entries := make([]*entity.HistoryEntry, 0, len(entryModels))
	for _, entryM := range entryModels {
		entries = append(entries, toHistoryDomain(entryM))
	}

	return entries, nil
}

// DeleteExampleEntries removes every entry flagged as example data.
func (repo *historyRepository) DeleteExampleEntries(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).
		Where("is_example = ?", true).
		Delete(&model.HistoryEntryModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete example history entries")
	}

	return nil
}

// DeleteAll wipes the whole history log.
func (repo *historyRepository) DeleteAll(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.HistoryEntryModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete all history entries")
	}

	return nil
}

// --- Mapper Functions ---

// toHistoryDomain converts a GORM HistoryEntryModel to a domain HistoryEntry entity.
func toHistoryDomain(data *model.HistoryEntryModel) *entity.HistoryEntry {
	if data == nil {
		return nil
	}

	return &entity.HistoryEntry{
		ID:             data.ID,
		Timestamp:      data.Timestamp,
		Action:         entity.Action(data.Action),
		Item:           data.Item,
		Category:       entity.Category(data.Category),
		Quantity:       data.Quantity,
		StorageUnit:    data.StorageUnit,
		Expired:        data.Expired,
		ExpirationDate: data.ExpirationDate,
		IsExample:      data.IsExample,
		Username:       data.Username,
	}
}

// fromHistoryDomain converts a domain HistoryEntry entity to a GORM HistoryEntryModel.
func fromHistoryDomain(data *entity.HistoryEntry) *model.HistoryEntryModel {
	if data == nil {
		return nil
	}

	return &model.HistoryEntryModel{
		ID:             data.ID,
		Timestamp:      data.Timestamp,
		Action:         string(data.Action),
		Item:           data.Item,
		Category:       string(data.Category),
		Quantity:       data.Quantity,
		StorageUnit:    data.StorageUnit,
		Expired:        data.Expired,
		ExpirationDate: data.ExpirationDate,
		IsExample:      data.IsExample,
		Username:       data.Username,
	}
}
