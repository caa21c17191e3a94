package impl

import (
	"context"
	"log/slog"

	deliverycontext "larder/internal/delivery/context"
	"larder/internal/domain/entity"
	"larder/internal/domain/repository"
	"larder/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// historyService implements the HistoryUsecase interface.
type historyService struct {
	historyRepo repository.HistoryRepository
	logger      *slog.Logger
}

// HistoryServiceParams holds dependencies for HistoryService, injected by Fx.
type HistoryServiceParams struct {
	fx.In

	HistoryRepo repository.HistoryRepository
	Logger      *slog.Logger
}

// NewHistoryService is the constructor for historyService.
func NewHistoryService(params HistoryServiceParams) usecase.HistoryUsecase {
	return &historyService{
		historyRepo: params.HistoryRepo,
		logger:      params.Logger,
	}
}

// List retrieves history entries matching the filter, newest first.
func (srv *historyService) List(ctx context.Context, filter repository.HistoryFilter) ([]*entity.HistoryEntry, error) {
	entries, err := srv.historyRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list history entries")
	}

	return entries, nil
}

// ClearHistory wipes the whole log.
func (srv *historyService) ClearHistory(ctx context.Context) error {
	if err := srv.historyRepo.DeleteAll(ctx); err != nil {
		return errors.Wrap(err, "failed to clear history")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("History cleared")

	return nil
}
