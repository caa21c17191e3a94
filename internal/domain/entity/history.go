package entity

import (
	"time"

	"github.com/google/uuid"
)

// Action is the kind of inventory mutation recorded in the history log.
type Action string

const (
	// ActionAdded records an item being added to a storage unit.
	ActionAdded Action = "added"
	// ActionRemoved records an item (or part of its quantity) being removed.
	ActionRemoved Action = "removed"
)

// String returns the string representation of the Action.
func (a Action) String() string {
	return string(a)
}

// IsValid checks if the Action is a valid value.
func (a Action) IsValid() bool {
	return a == ActionAdded || a == ActionRemoved
}

// HistoryEntry is an immutable, append-only record of a single inventory
// mutation. Entries are never edited; they are deleted only by the bulk
// admin purge (or the example-data purge, for entries flagged IsExample).
type HistoryEntry struct {
	ID             uuid.UUID `json:"id"`              // The Global Unique Identifier (GUID) for the entry.
	Timestamp      time.Time `json:"timestamp"`       // When the mutation happened.
	Action         Action    `json:"action"`          // "added" or "removed".
	Item           string    `json:"item"`            // The item name.
	Category       Category  `json:"category"`        // The category code of the item.
	Quantity       int       `json:"quantity"`        // How many were added or removed.
	StorageUnit    string    `json:"storage_unit"`    // The name of the unit the mutation touched.
	Expired        bool      `json:"expired"`         // True when a removal concerned an already-expired item.
	ExpirationDate string    `json:"expiration_date"` // The item's expiration date at mutation time, if known.
	IsExample      bool      `json:"is_example"`      // True for seeded demo data.
	Username       string    `json:"username"`        // Who performed the mutation.
}
