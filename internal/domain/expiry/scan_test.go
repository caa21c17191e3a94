package expiry

import (
	"testing"
	"time"

	"larder/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitWithItems(name string, items ...entity.ItemRecord) *entity.StorageUnit {
	return &entity.StorageUnit{
		Name:     name,
		Kind:     entity.UnitKindFridge,
		Contents: items,
	}
}

func TestScan_Classification(t *testing.T) {
	t.Parallel()

	today := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	units := []*entity.StorageUnit{
		unitWithItems("Kitchen fridge",
			entity.ItemRecord{Name: "Milk", Quantity: 1, Category: entity.CategoryDairy, ExpirationDate: "2025-03-12"},
			entity.ItemRecord{Name: "Yogurt", Quantity: 4, Category: entity.CategoryDairy, ExpirationDate: "2025-03-07"},
			entity.ItemRecord{Name: "Juice", Quantity: 2, Category: entity.CategoryBeverages, ExpirationDate: "2025-04-20"},
		),
		unitWithItems("Pantry",
			entity.ItemRecord{Name: "Crackers", Quantity: 3, Category: entity.CategorySnacks, ExpirationDate: "2025-03-10"},
		),
	}

	report := Scan(units, today, 7, nil)

	require.Len(t, report.Expired, 1)
	assert.Equal(t, "Yogurt", report.Expired[0].Item)
	assert.Equal(t, 3, report.Expired[0].DaysSinceExpiry)

	require.Len(t, report.ExpiringSoon, 2)
	soonNames := []string{report.ExpiringSoon[0].Item, report.ExpiringSoon[1].Item}
	assert.ElementsMatch(t, []string{"Milk", "Crackers"}, soonNames)
	for _, status := range report.ExpiringSoon {
		if status.Item == "Crackers" {
			assert.Equal(t, 0, status.DaysRemaining, "item expiring today counts as expiring soon")
		}
	}

	assert.Empty(t, report.Skipped)
}

func TestScan_ThresholdBoundary(t *testing.T) {
	t.Parallel()

	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	units := []*entity.StorageUnit{
		unitWithItems("Fridge",
			entity.ItemRecord{Name: "AtThreshold", Quantity: 1, ExpirationDate: "2025-03-17"},
			entity.ItemRecord{Name: "PastThreshold", Quantity: 1, ExpirationDate: "2025-03-18"},
		),
	}

	report := Scan(units, today, 7, nil)

	require.Len(t, report.ExpiringSoon, 1)
	assert.Equal(t, "AtThreshold", report.ExpiringSoon[0].Item)
	assert.Equal(t, 7, report.ExpiringSoon[0].DaysRemaining)
	assert.Empty(t, report.Expired)
}

func TestScan_DedupOnlyAppliesToExpiringSoon(t *testing.T) {
	t.Parallel()

	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	units := []*entity.StorageUnit{
		unitWithItems("Fridge",
			entity.ItemRecord{Name: "Milk", Quantity: 1, ExpirationDate: "2025-03-12"},
			entity.ItemRecord{Name: "Yogurt", Quantity: 1, ExpirationDate: "2025-03-01"},
		),
	}
	notified := map[string]bool{
		entity.ReminderKey("Fridge", "Milk"):   true,
		entity.ReminderKey("Fridge", "Yogurt"): true,
	}

	report := Scan(units, today, 7, notified)

	assert.Empty(t, report.ExpiringSoon, "already-notified soon warnings are suppressed")
	require.Len(t, report.Expired, 1)
	assert.Equal(t, "Yogurt", report.Expired[0].Item, "expired items are re-reported regardless of reminder keys")
}

func TestScan_SkipsUnparseableDates(t *testing.T) {
	t.Parallel()

	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	units := []*entity.StorageUnit{
		unitWithItems("Fridge",
			entity.ItemRecord{Name: "Mystery", Quantity: 1, ExpirationDate: "soon-ish"},
			entity.ItemRecord{Name: "Milk", Quantity: 1, ExpirationDate: "2025-03-11"},
		),
	}

	report := Scan(units, today, 7, nil)

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "Mystery", report.Skipped[0].Item)
	assert.Equal(t, "Fridge", report.Skipped[0].StorageUnit)
	assert.NotEmpty(t, report.Skipped[0].Reason)

	require.Len(t, report.ExpiringSoon, 1, "scan continues past bad records")
	assert.Equal(t, "Milk", report.ExpiringSoon[0].Item)
}

func TestScan_EmptyInventory(t *testing.T) {
	t.Parallel()

	report := Scan(nil, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), 7, nil)

	assert.Empty(t, report.Expired)
	assert.Empty(t, report.ExpiringSoon)
	assert.Empty(t, report.Skipped)
}
