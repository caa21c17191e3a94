// Package repository provides testify mocks for the repository interfaces.
package repository

import (
	"context"
	"testing"

	"larder/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockInventoryRepository is a mock implementation of repository.InventoryRepository.
type MockInventoryRepository struct {
	mock.Mock
}

// NewMockInventoryRepository creates a mock wired to the test lifecycle.
func NewMockInventoryRepository(t *testing.T) *MockInventoryRepository {
	m := &MockInventoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockInventoryRepository) FindUnit(ctx context.Context, name string) (*entity.StorageUnit, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.StorageUnit), args.Error(1)
}

func (m *MockInventoryRepository) ListUnits(ctx context.Context) ([]*entity.StorageUnit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.StorageUnit), args.Error(1)
}

func (m *MockInventoryRepository) CreateUnit(ctx context.Context, unit *entity.StorageUnit) error {
	return m.Called(ctx, unit).Error(0)
}

func (m *MockInventoryRepository) DeleteUnit(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockInventoryRepository) UpsertItem(ctx context.Context, unitName string, item *entity.ItemRecord) error {
	return m.Called(ctx, unitName, item).Error(0)
}

func (m *MockInventoryRepository) DeleteItem(ctx context.Context, unitName, itemName string) error {
	return m.Called(ctx, unitName, itemName).Error(0)
}

func (m *MockInventoryRepository) DeleteExampleUnits(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

func (m *MockInventoryRepository) DeleteAllUnits(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
