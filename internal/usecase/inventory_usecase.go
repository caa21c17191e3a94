// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"larder/internal/domain/entity"
)

// --- Input DTOs ---

// CreateUnitInput defines the data required to create a storage unit.
type CreateUnitInput struct {
	Name string
	Kind entity.UnitKind
}

// AddItemInput defines the data required to add an item to a unit.
type AddItemInput struct {
	UnitName       string
	ItemName       string
	Quantity       int
	Category       entity.Category
	ExpirationDate string
	Username       string
}

// RemoveItemInput defines the data required to remove an item (or part of its
// quantity) from a unit.
type RemoveItemInput struct {
	UnitName string
	ItemName string
	Quantity int // Zero or the full stored quantity removes the record entirely.
	Username string
}

// --- Output DTOs ---

// RemoveItemOutput reports what the removal actually did.
type RemoveItemOutput struct {
	Removed  int  // Quantity removed.
	Remained int  // Quantity left in the unit.
	Expired  bool // True when the removed item was already past its expiration date.
}

// InventoryUsecase defines the interface for storage unit and item management.
type InventoryUsecase interface {
	// CreateUnit adds a new, empty storage unit. Admin only.
	CreateUnit(ctx context.Context, input CreateUnitInput) (*entity.StorageUnit, error)

	// DeleteUnit removes a storage unit with everything inside it and clears
	// the unit's reminder keys. Admin only.
	DeleteUnit(ctx context.Context, name string) error

	// ListUnits retrieves every storage unit with its contents.
	ListUnits(ctx context.Context) ([]*entity.StorageUnit, error)

	// GetUnit retrieves a single storage unit by name.
	GetUnit(ctx context.Context, name string) (*entity.StorageUnit, error)

	// AddItem adds an item to a unit, merging quantities when the item
	// already exists, and appends a history entry.
	AddItem(ctx context.Context, input AddItemInput) error

	// RemoveItem removes some or all of an item's quantity and appends a
	// history entry flagging whether the item had already expired.
	RemoveItem(ctx context.Context, input RemoveItemInput) (*RemoveItemOutput, error)
}
