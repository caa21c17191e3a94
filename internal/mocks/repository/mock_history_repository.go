package repository

import (
	"context"
	"testing"

	"larder/internal/domain/entity"
	"larder/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockHistoryRepository is a mock implementation of repository.HistoryRepository.
type MockHistoryRepository struct {
	mock.Mock
}

// NewMockHistoryRepository creates a mock wired to the test lifecycle.
func NewMockHistoryRepository(t *testing.T) *MockHistoryRepository {
	m := &MockHistoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockHistoryRepository) Append(ctx context.Context, entry *entity.HistoryEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockHistoryRepository) List(ctx context.Context, filter repository.HistoryFilter) ([]*entity.HistoryEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.HistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) DeleteExampleEntries(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockHistoryRepository) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
