package usecase

import (
	"context"

	"larder/internal/domain/entity"
	"larder/internal/domain/repository"
)

// HistoryUsecase defines the interface for the inventory mutation log.
type HistoryUsecase interface {
	// List retrieves history entries matching the filter, newest first.
	List(ctx context.Context, filter repository.HistoryFilter) ([]*entity.HistoryEntry, error)

	// ClearHistory wipes the whole log. Admin only.
	ClearHistory(ctx context.Context) error
}
