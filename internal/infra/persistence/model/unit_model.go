package model

import (
	"time"

	"github.com/google/uuid"
)

// StorageUnitModel mirrors the 'storage_units' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type StorageUnitModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name      string    `gorm:"type:varchar(100);unique;not null"`
	Kind      string    `gorm:"type:varchar(20);not null"`
	IsExample bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []ItemModel `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (StorageUnitModel) TableName() string {
	return "storage_units"
}

// ItemModel mirrors the 'items' table. Dates are stored as the same YYYY-MM-DD
// strings the domain uses, so unparseable user input survives a round trip.
type ItemModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UnitID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_items_unit_name"`
	Name           string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_items_unit_name"`
	Quantity       int       `gorm:"not null"`
	Category       string    `gorm:"type:varchar(30);not null"`
	DateAdded      string    `gorm:"type:varchar(10)"`
	ExpirationDate string    `gorm:"type:varchar(10)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (ItemModel) TableName() string {
	return "items"
}
