package model

import "time"

// ReminderKeyModel mirrors the 'reminder_keys' table. A present row means the
// unit/item pair already received an expiring-soon warning.
type ReminderKeyModel struct {
	Key       string `gorm:"type:varchar(210);primaryKey"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReminderKeyModel) TableName() string {
	return "reminder_keys"
}
