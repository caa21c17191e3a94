package entity

import (
	"slices"
	"time"
)

// UnitKind represents the type of a storage unit. Like Category, the code is
// the stored value and the label is presentation only.
type UnitKind string

const (
	UnitKindFridge  UnitKind = "fridge"
	UnitKindFreezer UnitKind = "freezer"
	UnitKindPantry  UnitKind = "pantry"
	UnitKindCabinet UnitKind = "cabinet"
	UnitKindOther   UnitKind = "other"
)

var unitKindLabels = map[UnitKind]string{
	UnitKindFridge:  "🧊 Fridge",
	UnitKindFreezer: "❄️ Freezer",
	UnitKindPantry:  "🏪 Pantry",
	UnitKindCabinet: "🗄️ Cabinet",
	UnitKindOther:   "📦 Other",
}

// AllUnitKinds lists every valid storage unit kind.
func AllUnitKinds() []UnitKind {
	return []UnitKind{UnitKindFridge, UnitKindFreezer, UnitKindPantry, UnitKindCabinet, UnitKindOther}
}

// String returns the string representation of the UnitKind.
func (k UnitKind) String() string {
	return string(k)
}

// Label returns the display label for the unit kind.
func (k UnitKind) Label() string {
	if label, ok := unitKindLabels[k]; ok {
		return label
	}

	return unitKindLabels[UnitKindOther]
}

// IsValid checks if the UnitKind is a valid value.
func (k UnitKind) IsValid() bool {
	return slices.Contains(AllUnitKinds(), k)
}

// ItemRecord is a tracked good inside a storage unit. Quantity is reduced in
// place on partial removal; the record disappears when it reaches zero.
type ItemRecord struct {
	Name           string   `json:"name"`            // The item name; unique within its storage unit.
	Quantity       int      `json:"quantity"`        // Current count on hand; never negative.
	Category       Category `json:"category"`        // The category code of the item.
	DateAdded      string   `json:"date_added"`      // ISO date (YYYY-MM-DD) the item was added.
	ExpirationDate string   `json:"expiration_date"` // ISO date (YYYY-MM-DD) after which the item is expired.
}

// StorageUnit is a named physical location holding item records (a fridge,
// freezer, pantry, ...). The name is the unique key across the inventory.
type StorageUnit struct {
	Name      string       `json:"name"`       // Unique unit name, e.g. "Kitchen fridge".
	Kind      UnitKind     `json:"kind"`       // The kind code of the unit.
	Contents  []ItemRecord `json:"contents"`   // Item records currently stored in the unit.
	IsExample bool         `json:"is_example"` // True for seeded demo data, so it can be purged separately.
	CreatedAt time.Time    `json:"created_at"` // Timestamp of when the unit was created.
	UpdatedAt time.Time    `json:"updated_at"` // Timestamp of the last modification.
}

// FindItem returns the item record with the given name, or nil.
func (u *StorageUnit) FindItem(name string) *ItemRecord {
	for i := range u.Contents {
		if u.Contents[i].Name == name {
			return &u.Contents[i]
		}
	}

	return nil
}

// ReminderKey is the dedup marker preventing repeated "expiring soon"
// notices for the same unit/item pair.
func ReminderKey(unitName, itemName string) string {
	return unitName + "_" + itemName
}
