package model

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntryModel mirrors the 'history_entries' table. Rows are append-only.
type HistoryEntryModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Timestamp      time.Time `gorm:"not null;index"`
	Action         string    `gorm:"type:varchar(10);not null"`
	Item           string    `gorm:"type:varchar(100);not null"`
	Category       string    `gorm:"type:varchar(30);not null"`
	Quantity       int       `gorm:"not null"`
	StorageUnit    string    `gorm:"type:varchar(100);not null"`
	Expired        bool      `gorm:"not null;default:false"`
	ExpirationDate string    `gorm:"type:varchar(10)"`
	IsExample      bool      `gorm:"not null;default:false"`
	Username       string    `gorm:"type:varchar(50)"`
}

// TableName explicitly sets the table name for GORM.
func (HistoryEntryModel) TableName() string {
	return "history_entries"
}
