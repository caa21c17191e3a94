// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"larder/internal/domain/entity"
)

// Domain-specific errors for inventory persistence.
var (
	// ErrUnitNotFound is returned when a storage unit is not found.
	ErrUnitNotFound = errors.New("storage unit not found")
	// ErrUnitAlreadyExists is returned when a unit name collides with an existing one.
	ErrUnitAlreadyExists = errors.New("storage unit already exists")
	// ErrItemNotFound is returned when an item is absent from its storage unit.
	ErrItemNotFound = errors.New("item not found")
)

// InventoryRepository defines the standard operations for storage unit persistence.
// The application layer will depend on this interface, not the concrete implementation.
type InventoryRepository interface {
	// FindUnit retrieves a single storage unit with its contents by name.
	FindUnit(ctx context.Context, name string) (*entity.StorageUnit, error)

	// ListUnits retrieves every storage unit with its contents.
	ListUnits(ctx context.Context) ([]*entity.StorageUnit, error)

	// CreateUnit persists a new, empty storage unit.
	CreateUnit(ctx context.Context, unit *entity.StorageUnit) error

	// DeleteUnit removes a storage unit and everything it contains.
	DeleteUnit(ctx context.Context, name string) error

	// UpsertItem inserts or replaces an item record inside a unit.
	UpsertItem(ctx context.Context, unitName string, item *entity.ItemRecord) error

	// DeleteItem removes an item record from a unit.
	DeleteItem(ctx context.Context, unitName, itemName string) error

	// DeleteExampleUnits removes every unit flagged as example data and
	// returns the names of the deleted units.
	DeleteExampleUnits(ctx context.Context) ([]string, error)

	// DeleteAllUnits wipes the whole inventory.
	DeleteAllUnits(ctx context.Context) error
}
