package model

import "time"

// SingletonConfigID pins the notification config to a single row.
const SingletonConfigID = 1

// NotificationConfigModel mirrors the 'notification_configs' table. The app
// keeps exactly one row, addressed by SingletonConfigID.
type NotificationConfigModel struct {
	ID                   int    `gorm:"primaryKey"`
	Recipient            string `gorm:"type:varchar(255)"`
	Weekdays             []int  `gorm:"serializer:json;type:jsonb;not null"`
	TimeOfDay            string `gorm:"type:varchar(5);not null"`
	NotifyExpired        bool   `gorm:"not null;default:true"`
	NotifyExpiringSoon   bool   `gorm:"not null;default:true"`
	NotifyLowQuantity    bool   `gorm:"not null;default:true"`
	NotifyRemovedItems   bool   `gorm:"not null;default:true"`
	NotifyAddedItems     bool   `gorm:"not null;default:true"`
	ExpiringSoonDays     int    `gorm:"not null"`
	LowQuantityThreshold int    `gorm:"not null"`
	LastSent             *time.Time
	UpdatedAt            time.Time
}

// TableName explicitly sets the table name for GORM.
func (NotificationConfigModel) TableName() string {
	return "notification_configs"
}
