// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"strings"

	domainerrors "larder/internal/domain/errors"
	"larder/internal/domain/repository"
	"larder/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reminderRepository implements the repository.ReminderRepository interface.
type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository is the constructor for reminderRepository.
func NewReminderRepository(db *gorm.DB) repository.ReminderRepository {
	return &reminderRepository{
		db: db,
	}
}

// ListKeys returns every marked reminder key.
func (repo *reminderRepository) ListKeys(ctx context.Context) ([]string, error) {
	var keys []string

	if err := repo.db.WithContext(ctx).
		Model(&model.ReminderKeyModel{}).
		Pluck("key", &keys).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list reminder keys")
	}

	return keys, nil
}

// MarkKeys records the given keys as notified. Already-marked keys are ignored.
func (repo *reminderRepository) MarkKeys(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	keyModels := make([]*model.ReminderKeyModel, 0, len(keys))
	for _, key := range keys {
		keyModels = append(keyModels, &model.ReminderKeyModel{Key: key})
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(keyModels).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to mark reminder keys")
	}

	return nil
}

// ClearKey removes a single reminder key if present.
func (repo *reminderRepository) ClearKey(ctx context.Context, key string) error {
	if err := repo.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&model.ReminderKeyModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear reminder key")
	}

	return nil
}

// ClearKeysWithPrefix removes every key starting with the prefix.
func (repo *reminderRepository) ClearKeysWithPrefix(ctx context.Context, prefix string) error {
	if err := repo.db.WithContext(ctx).
		Where("key LIKE ?", escapeLikePattern(prefix)+"%").
		Delete(&model.ReminderKeyModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear reminder keys by prefix")
	}

	return nil
}

// escapeLikePattern escapes LIKE wildcards. Reminder keys always contain an
// underscore separator, so this is not optional.
func escapeLikePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

	return replacer.Replace(s)
}

// ClearAll removes every reminder key.
func (repo *reminderRepository) ClearAll(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.ReminderKeyModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear all reminder keys")
	}

	return nil
}
