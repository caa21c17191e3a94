package jsonfile

import (
	"context"
	"time"

	"larder/internal/domain/entity"
	"larder/internal/domain/repository"
)

// configRepository implements repository.ConfigRepository on the JSON store.
type configRepository struct {
	store *Store
	inTx  bool
}

// NewConfigRepository is the constructor for the standalone (non-transactional) repository.
func NewConfigRepository(store *Store) repository.ConfigRepository {
	return &configRepository{store: store}
}

func (repo *configRepository) Get(_ context.Context) (*entity.NotificationConfig, error) {
	var cfg *entity.NotificationConfig

	err := repo.store.view(repo.inTx, func(doc *document) error {
		if doc.Config == nil {
			return repository.ErrConfigNotFound
		}
		cfg = toConfigEntity(doc.Config)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (repo *configRepository) Save(_ context.Context, cfg *entity.NotificationConfig) error {
	return repo.store.update(repo.inTx, func(doc *document) error {
		cfg.UpdatedAt = time.Now()
		saved := fromConfigEntity(cfg)
		doc.Config = &saved

		return nil
	})
}

func (repo *configRepository) UpdateLastSent(_ context.Context, lastSent *time.Time) error {
	return repo.store.update(repo.inTx, func(doc *document) error {
		if doc.Config == nil {
			return repository.ErrConfigNotFound
		}
		doc.Config.LastSent = lastSent
		doc.Config.UpdatedAt = time.Now()

		return nil
	})
}

// --- Mapper Functions ---

func toConfigEntity(data *configDoc) *entity.NotificationConfig {
	return &entity.NotificationConfig{
		Recipient: data.Recipient,
		Schedule: entity.Schedule{
			Weekdays: data.Weekdays,
			Time:     data.Time,
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

func fromConfigEntity(data *entity.NotificationConfig) configDoc {
	return configDoc{
		Recipient:            data.Recipient,
		Weekdays:             data.Schedule.Weekdays,
		Time:                 data.Schedule.Time,
		NotifyExpired:        data.Preferences.NotifyExpired,
		NotifyExpiringSoon:   data.Preferences.NotifyExpiringSoon,
		NotifyLowQuantity:    data.Preferences.NotifyLowQuantity,
		NotifyRemovedItems:   data.Preferences.NotifyRemovedItems,
		NotifyAddedItems:     data.Preferences.NotifyAddedItems,
		ExpiringSoonDays:     data.Preferences.ExpiringSoonDays,
		LowQuantityThreshold: data.Preferences.LowQuantityThreshold,
		LastSent:             data.LastSent,
		UpdatedAt:            data.UpdatedAt,
	}
}
