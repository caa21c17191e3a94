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
	"gorm.io/gorm/clause"
)

// configRepository implements the repository.ConfigRepository interface.
// The notification config is a single row with a fixed primary key.
type configRepository struct {
	db *gorm.DB
}

// NewConfigRepository is the constructor for configRepository.
func NewConfigRepository(db *gorm.DB) repository.ConfigRepository {
	return &configRepository{
		db: db,
	}
}

// Get retrieves the notification config, or ErrConfigNotFound.
func (repo *configRepository) Get(ctx context.Context) (*entity.NotificationConfig, error) {
	var configM model.NotificationConfigModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", model.SingletonConfigID).
		First(&configM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrConfigNotFound
		}

		return nil, errors.Wrap(err, "failed to load notification config")
	}

	return toConfigDomain(&configM), nil
}

// Save inserts or fully replaces the notification config.
func (repo *configRepository) Save(ctx context.Context, cfg *entity.NotificationConfig) error {
	configM := fromConfigDomain(cfg)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(configM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save notification config")
	}

	cfg.UpdatedAt = configM.UpdatedAt

	return nil
}

// UpdateLastSent sets only the last-sent timestamp. A nil value resets it.
func (repo *configRepository) UpdateLastSent(ctx context.Context, lastSent *time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.NotificationConfigModel{}).
		Where("id = ?", model.SingletonConfigID).
		Update("last_sent", lastSent)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update last sent timestamp")
	}

	if result.RowsAffected == 0 {
		return repository.ErrConfigNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toConfigDomain converts a GORM NotificationConfigModel to a domain NotificationConfig entity.
func toConfigDomain(data *model.NotificationConfigModel) *entity.NotificationConfig {
	if data == nil {
		return nil
	}

	return &entity.NotificationConfig{
		Recipient: data.Recipient,
		Schedule: entity.Schedule{
			Weekdays: data.Weekdays,
			Time:     data.TimeOfDay,
		},
		Preferences: entity.Preferences{
			NotifyExpired:        data.NotifyExpired,
			NotifyExpiringSoon:   data.NotifyExpiringSoon,
			NotifyLowQuantity:    data.NotifyLowQuantity,
			NotifyRemovedItems:   data.NotifyRemovedItems,
			NotifyAddedItems:     data.NotifyAddedItems,
			ExpiringSoonDays:     data.ExpiringSoonDays,
			LowQuantityThreshold: data.LowQuantityThreshold,
		},
		LastSent:  data.LastSent,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromConfigDomain converts a domain NotificationConfig entity to a GORM NotificationConfigModel.
func fromConfigDomain(data *entity.NotificationConfig) *model.NotificationConfigModel {
	if data == nil {
		return nil
	}

	return &model.NotificationConfigModel{
		ID:                   model.SingletonConfigID,
		Recipient:            data.Recipient,
		Weekdays:             data.Schedule.Weekdays,
		TimeOfDay:            data.Schedule.Time,
		NotifyExpired:        data.Preferences.NotifyExpired,
		NotifyExpiringSoon:   data.Preferences.NotifyExpiringSoon,
		NotifyLowQuantity:    data.Preferences.NotifyLowQuantity,
		NotifyRemovedItems:   data.Preferences.NotifyRemovedItems,
		NotifyAddedItems:     data.Preferences.NotifyAddedItems,
		ExpiringSoonDays:     data.Preferences.ExpiringSoonDays,
		LowQuantityThreshold: data.Preferences.LowQuantityThreshold,
		LastSent:             data.LastSent,
	}
}
