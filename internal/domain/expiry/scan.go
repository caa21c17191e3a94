// Package expiry holds the pure inventory scanning logic: classifying item
// records as expired or expiring soon, and filtering the result through the
// recipient's notification preferences. Nothing here performs I/O; marking
// reminder keys after a successful send is the caller's job.
package expiry

import (
	"time"

	"larder/internal/domain/entity"
	"larder/internal/util"
)

// ItemStatus describes one item flagged by a scan.
type ItemStatus struct {
	StorageUnit     string          // The unit holding the item.
	Item            string          // The item name.
	Category        entity.Category // The item's category code.
	Quantity        int             // Current quantity on hand.
	ExpirationDate  string          // The item's expiration date as stored.
	DaysRemaining   int             // Calendar days until expiry; zero means today.
	DaysSinceExpiry int             // Calendar days past expiry; set only for expired items.
}

// SkippedItem records an item the scanner could not classify.
type SkippedItem struct {
	StorageUnit string
	Item        string
	Reason      string
}

// Report is the raw scan result before preference filtering. Ordering within
// each list is unspecified.
type Report struct {
	Expired      []ItemStatus
	ExpiringSoon []ItemStatus
	Skipped      []SkippedItem
}

// Scan walks every item record and classifies it against today's date.
//
// An item whose expiration date is in the past is always reported as expired.
// An item expiring within thresholdDays (today included) is reported as
// expiring soon only when its reminder key is absent from alreadyNotified.
// Items with unparseable expiration dates are skipped with a reason and never
// abort the scan.
func Scan(units []*entity.StorageUnit, today time.Time, thresholdDays int, alreadyNotified map[string]bool) Report {
	var report Report

	for _, unit := range units {
		for i := range unit.Contents {
			item := &unit.Contents[i]

			expiration, err := util.ParseDate(item.ExpirationDate)
			if err != nil {
				report.Skipped = append(report.Skipped, SkippedItem{
					StorageUnit: unit.Name,
					Item:        item.Name,
					Reason:      err.Error(),
				})

				continue
			}

			status := ItemStatus{
				StorageUnit:    unit.Name,
				Item:           item.Name,
				Category:       item.Category,
				Quantity:       item.Quantity,
				ExpirationDate: item.ExpirationDate,
			}

			daysRemaining := util.DaysUntil(expiration, today)
			switch {
			case daysRemaining < 0:
				status.DaysSinceExpiry = -daysRemaining
				report.Expired = append(report.Expired, status)
			case daysRemaining <= thresholdDays:
				if alreadyNotified[entity.ReminderKey(unit.Name, item.Name)] {
					continue
				}
				status.DaysRemaining = daysRemaining
				report.ExpiringSoon = append(report.ExpiringSoon, status)
			}
		}
	}

	return report
}
