package impl

import (
	"context"
	"log/slog"
	"sort"

	"larder/internal/domain/entity"
	"larder/internal/domain/repository"
	"larder/internal/domain/service"
	"larder/internal/usecase"
	"larder/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultStatsPeriodDays = 30

// statsService implements the StatsUsecase interface.
type statsService struct {
	historyRepo   repository.HistoryRepository
	inventoryRepo repository.InventoryRepository
	configRepo    repository.ConfigRepository
	clock         service.Clock
	logger        *slog.Logger
}

// StatsServiceParams holds dependencies for StatsService, injected by Fx.
type StatsServiceParams struct {
	fx.In

	HistoryRepo   repository.HistoryRepository
	InventoryRepo repository.InventoryRepository
	ConfigRepo    repository.ConfigRepository
	Clock         service.Clock
	Logger        *slog.Logger
}

// NewStatsService is the constructor for statsService.
func NewStatsService(params StatsServiceParams) usecase.StatsUsecase {
	return &statsService{
		historyRepo:   params.HistoryRepo,
		inventoryRepo: params.InventoryRepo,
		configRepo:    params.ConfigRepo,
		clock:         params.Clock,
		logger:        params.Logger,
	}
}

// ActivitySummary aggregates history entries over the last periodDays.
func (srv *statsService) ActivitySummary(ctx context.Context, periodDays int) (*usecase.ActivitySummary, error) {
	if periodDays <= 0 {
		periodDays = defaultStatsPeriodDays
	}

	entries, err := srv.historyRepo.List(ctx, repository.HistoryFilter{SinceDays: periodDays})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list history for activity summary")
	}

	summary := &usecase.ActivitySummary{
		PeriodDays: periodDays,
		ByCategory: make(map[entity.Category]int),
	}
	addedCounts := make(map[string]int)

	for _, entry := range entries {
		summary.ByCategory[entry.Category] += entry.Quantity

		switch entry.Action {
		case entity.ActionAdded:
			summary.Added += entry.Quantity
			addedCounts[entry.Item] += entry.Quantity
		case entity.ActionRemoved:
			if entry.Expired {
				summary.WastedExpired += entry.Quantity
			} else {
				summary.Used += entry.Quantity
			}
		}
	}

	summary.TopAddedItems = topItems(addedCounts, 5)

	return summary, nil
}

// ExpiryOutlook summarizes expiry state across the current inventory, using
// the configured expiring-soon window.
func (srv *statsService) ExpiryOutlook(ctx context.Context) (*usecase.ExpiryOutlook, error) {
	units, err := srv.inventoryRepo.ListUnits(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list storage units for expiry outlook")
	}

	threshold := entity.DefaultExpiringSoonDays
	if cfg, cfgErr := srv.configRepo.Get(ctx); cfgErr == nil {
		threshold = cfg.Preferences.ExpiringSoonDays
	}

	now := srv.clock.Now()
	outlook := &usecase.ExpiryOutlook{}
	daysSum := 0
	daysCount := 0

	for _, unit := range units {
		for i := range unit.Contents {
			item := &unit.Contents[i]
			outlook.TotalItems++

			expiration, parseErr := util.ParseDate(item.ExpirationDate)
			if parseErr != nil {
				continue
			}

			days := util.DaysUntil(expiration, now)
			switch {
			case days < 0:
				outlook.CurrentlyExpired++
			case days <= threshold:
				outlook.ExpiringSoon++
			}
			if days >= 0 {
				daysSum += days
				daysCount++
			}
		}
	}

	if daysCount > 0 {
		outlook.AverageDaysToExpiry = float64(daysSum) / float64(daysCount)
	}

	return outlook, nil
}

// topItems returns the n most frequent items, ties broken alphabetically so
// the output is stable.
func topItems(counts map[string]int, n int) []usecase.ItemCount {
	items := make([]usecase.ItemCount, 0, len(counts))
	for item, count := range counts {
		items = append(items, usecase.ItemCount{Item: item, Count: count})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}

		return items[i].Item < items[j].Item
	})

	if len(items) > n {
		items = items[:n]
	}

	return items
}
