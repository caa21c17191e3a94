package usecase

import (
	"context"

	"larder/internal/domain/entity"
)

// ItemCount pairs an item name with how often it appeared.
type ItemCount struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// ActivitySummary aggregates history over a period.
type ActivitySummary struct {
	PeriodDays     int                     `json:"period_days"`
	Added          int                     `json:"added"`           // Items added in the period.
	Used           int                     `json:"used"`            // Items removed before expiring.
	WastedExpired  int                     `json:"wasted_expired"`  // Items removed after expiring.
	ByCategory     map[entity.Category]int `json:"by_category"`     // Mutations per category.
	TopAddedItems  []ItemCount             `json:"top_added_items"` // Most frequently added items.
}

// ExpiryOutlook summarizes the current state of the inventory.
type ExpiryOutlook struct {
	TotalItems          int     `json:"total_items"`
	CurrentlyExpired    int     `json:"currently_expired"`
	ExpiringSoon        int     `json:"expiring_soon"`
	AverageDaysToExpiry float64 `json:"average_days_to_expiry"` // Over unexpired, parseable items.
}

// StatsUsecase defines the interface for inventory statistics.
type StatsUsecase interface {
	// ActivitySummary aggregates history entries over the last periodDays.
	ActivitySummary(ctx context.Context, periodDays int) (*ActivitySummary, error)

	// ExpiryOutlook summarizes expiry state across the current inventory.
	ExpiryOutlook(ctx context.Context) (*ExpiryOutlook, error)
}
