package repository

import (
	"context"
	"errors"
	"time"

	"larder/internal/domain/entity"
)

// ErrConfigNotFound is returned when no notification config row exists yet.
var ErrConfigNotFound = errors.New("notification config not found")

// ConfigRepository stores the single notification settings record.
type ConfigRepository interface {
	// Get retrieves the notification config, or ErrConfigNotFound.
	Get(ctx context.Context) (*entity.NotificationConfig, error)

	// Save inserts or fully replaces the notification config.
	Save(ctx context.Context, cfg *entity.NotificationConfig) error

	// UpdateLastSent sets only the last-sent timestamp, leaving the rest of
	// the config untouched. A nil value resets it.
	UpdateLastSent(ctx context.Context, lastSent *time.Time) error
}
