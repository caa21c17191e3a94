package repository

import (
	"context"

	"larder/internal/domain/entity"
)

// HistoryFilter narrows a history listing. Zero values mean "no constraint".
type HistoryFilter struct {
	SinceDays int             // Only entries from the last N days.
	Action    entity.Action   // Only entries with this action.
	Category  entity.Category // Only entries touching this category.
}

// HistoryRepository defines the interface for the append-only mutation log.
type HistoryRepository interface {
	// Append persists a new history entry. Entries are never updated.
	Append(ctx context.Context, entry *entity.HistoryEntry) error

	// List retrieves entries matching the filter, newest first.
	List(ctx context.Context, filter HistoryFilter) ([]*entity.HistoryEntry, error)

	// DeleteExampleEntries removes every entry flagged as example data.
	DeleteExampleEntries(ctx context.Context) error

	// DeleteAll wipes the whole history log.
	DeleteAll(ctx context.Context) error
}
