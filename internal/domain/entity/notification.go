package entity

import "time"

// DefaultExpiringSoonDays is the look-ahead window for "expiring soon"
// warnings when no preference has been configured.
const DefaultExpiringSoonDays = 7

// DefaultLowQuantityThreshold is the quantity at or below which an item is
// considered to be running low, absent configuration.
const DefaultLowQuantityThreshold = 2

// Schedule describes when the periodic status report goes out.
type Schedule struct {
	// Weekdays holds the allowed send days, 0=Monday .. 6=Sunday. An empty
	// set is a configuration error, never "every day".
	Weekdays []int `json:"weekdays"`
	// Time is the send time of day in "HH:MM" (24h) form.
	Time string `json:"time"`
}

// Preferences selects which notification classes the recipient wants.
type Preferences struct {
	NotifyExpired        bool `json:"notify_expired"`         // Include already-expired items in the report.
	NotifyExpiringSoon   bool `json:"notify_expiring_soon"`   // Include items expiring within the window.
	NotifyLowQuantity    bool `json:"notify_low_quantity"`    // Include items running low on quantity.
	NotifyRemovedItems   bool `json:"notify_removed_items"`   // Email immediately when an item is removed.
	NotifyAddedItems     bool `json:"notify_added_items"`     // Email immediately when an item is added.
	ExpiringSoonDays     int  `json:"expiring_soon_days"`     // Look-ahead window in days for the soon warning.
	LowQuantityThreshold int  `json:"low_quantity_threshold"` // Quantity at or below which an item counts as low.
}

// DefaultPreferences returns the preference set applied before any user
// configuration.
func DefaultPreferences() Preferences {
	return Preferences{
		NotifyExpired:        true,
		NotifyExpiringSoon:   true,
		NotifyLowQuantity:    true,
		NotifyRemovedItems:   true,
		NotifyAddedItems:     true,
		ExpiringSoonDays:     DefaultExpiringSoonDays,
		LowQuantityThreshold: DefaultLowQuantityThreshold,
	}
}

// NotificationConfig is the single notification settings record. LastSent is
// nil until the first successful scheduled send and is only advanced after a
// report actually went out.
type NotificationConfig struct {
	Recipient   string      `json:"recipient"`   // Destination email address.
	Schedule    Schedule    `json:"schedule"`    // Weekday + time-of-day send schedule.
	Preferences Preferences `json:"preferences"` // Per-class notification toggles and thresholds.
	LastSent    *time.Time  `json:"last_sent"`   // When the last scheduled report was sent, nil if never.
	UpdatedAt   time.Time   `json:"updated_at"`  // Timestamp of the last modification.
}
