package expiry

import (
	"larder/internal/domain/entity"
)

// LowQuantityItem describes an item whose stock is at or below the
// configured threshold.
type LowQuantityItem struct {
	StorageUnit string
	Item        string
	Category    entity.Category
	Quantity    int
}

// FilteredReport is a scan report reduced to what the recipient asked for,
// plus the low-quantity items computed from the full inventory.
type FilteredReport struct {
	Expired      []ItemStatus
	ExpiringSoon []ItemStatus
	LowQuantity  []LowQuantityItem
}

// Empty reports whether nothing survived the filter. Callers must
// short-circuit on it before composing or sending any email.
func (r FilteredReport) Empty() bool {
	return len(r.Expired) == 0 && len(r.ExpiringSoon) == 0 && len(r.LowQuantity) == 0
}

// Filter applies the recipient's preferences to a scan report. Low-quantity
// items are computed here from the full inventory, not from the report, so an
// item can be flagged as running low without being near expiry.
func Filter(report Report, units []*entity.StorageUnit, prefs entity.Preferences) FilteredReport {
	var filtered FilteredReport

	if prefs.NotifyExpired {
		filtered.Expired = report.Expired
	}
	if prefs.NotifyExpiringSoon {
		filtered.ExpiringSoon = report.ExpiringSoon
	}
	if prefs.NotifyLowQuantity {
		for _, unit := range units {
			for i := range unit.Contents {
				item := &unit.Contents[i]
				if item.Quantity <= prefs.LowQuantityThreshold {
					filtered.LowQuantity = append(filtered.LowQuantity, LowQuantityItem{
						StorageUnit: unit.Name,
						Item:        item.Name,
						Category:    item.Category,
						Quantity:    item.Quantity,
					})
				}
			}
		}
	}

	return filtered
}
