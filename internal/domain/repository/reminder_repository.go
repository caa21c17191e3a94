package repository

import "context"

// ReminderRepository tracks which unit/item pairs already received an
// "expiring soon" warning, keyed by entity.ReminderKey.
type ReminderRepository interface {
	// ListKeys returns every marked reminder key.
	ListKeys(ctx context.Context) ([]string, error)

	// MarkKeys records the given keys as notified. Already-marked keys are ignored.
	MarkKeys(ctx context.Context, keys []string) error

	// ClearKey removes a single reminder key if present.
	ClearKey(ctx context.Context, key string) error

	// ClearKeysWithPrefix removes every key starting with the prefix.
	// Used when a storage unit is deleted.
	ClearKeysWithPrefix(ctx context.Context, prefix string) error

	// ClearAll removes every reminder key.
	ClearAll(ctx context.Context) error
}
